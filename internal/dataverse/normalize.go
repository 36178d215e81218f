package dataverse

import "secview/internal/domain"

// Normalizers are total over any record shape the service can plausibly
// return: wrong-typed or missing fields fall back to zero values, and an
// absent business-unit expansion maps to the explicit unset BusinessUnitRef.

func normalizeUser(r Record) domain.User {
	return domain.User{
		ID:            stringField(r, "systemuserid"),
		FullName:      stringField(r, "fullname"),
		DomainName:    stringField(r, "domainname"),
		IsDisabled:    boolField(r, "isdisabled"),
		ApplicationID: stringField(r, "applicationid"),
		BusinessUnit:  businessUnitField(r),
	}
}

func normalizeTeam(r Record) domain.Team {
	return domain.Team{
		ID:           stringField(r, "teamid"),
		Name:         stringField(r, "name"),
		Type:         domain.TeamType(intField(r, "teamtype")),
		IsDefault:    boolField(r, "isdefault"),
		BusinessUnit: businessUnitField(r),
	}
}

func normalizeRole(r Record) domain.SecurityRole {
	return domain.SecurityRole{
		ID:           stringField(r, "roleid"),
		Name:         stringField(r, "name"),
		IsManaged:    boolField(r, "ismanaged"),
		BusinessUnit: businessUnitField(r),
	}
}

func normalizeQueue(r Record) domain.Queue {
	return domain.Queue{
		ID:   stringField(r, "queueid"),
		Name: stringField(r, "name"),
		Type: domain.QueueType(intField(r, "queuetypecode")),
	}
}

// businessUnitField copies an expanded businessunitid lookup, or returns the
// unset ref when the expansion is absent or malformed.
func businessUnitField(r Record) domain.BusinessUnitRef {
	raw, ok := r["businessunitid"].(map[string]any)
	if !ok {
		return domain.BusinessUnitRef{}
	}
	return domain.BusinessUnitRef{
		ID:    stringValue(raw["businessunitid"]),
		Name:  stringValue(raw["name"]),
		Valid: true,
	}
}

func stringField(r Record, key string) string { return stringValue(r[key]) }

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolField(r Record, key string) bool {
	b, _ := r[key].(bool)
	return b
}

// intField handles the JSON decoder's float64 representation of numeric
// option-set codes.
func intField(r Record, key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
