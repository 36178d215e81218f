package domain

import "strings"

// StatusFilter narrows users by enablement state.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusEnabled  StatusFilter = "enabled"
	StatusDisabled StatusFilter = "disabled"
)

// UserTypeFilter narrows users by identity kind: interactive humans versus
// application identities (ApplicationID set).
type UserTypeFilter string

const (
	UserTypeAll          UserTypeFilter = "all"
	UserTypeHumans       UserTypeFilter = "users"
	UserTypeApplications UserTypeFilter = "applications"
)

// BusinessUnitAll matches every business unit, including unset ones.
const BusinessUnitAll = "all"

// Filters is the composable predicate set applied to a fetched collection.
// Predicates AND together and are commutative; the apply order below runs
// the cheap equality checks before the substring scan. Status and UserType
// only apply to users.
type Filters struct {
	Status       StatusFilter
	UserType     UserTypeFilter
	BusinessUnit string // BusinessUnitAll or an exact business-unit id
	Text         string // case-insensitive substring
}

// DefaultFilters returns the filter state selected after an entity-kind
// switch: enabled humans across all business units, no text.
func DefaultFilters() Filters {
	return Filters{
		Status:       StatusEnabled,
		UserType:     UserTypeHumans,
		BusinessUnit: BusinessUnitAll,
	}
}

// Validate checks that the filter values are among the documented options.
func (f Filters) Validate() error {
	switch f.Status {
	case StatusAll, StatusEnabled, StatusDisabled:
	default:
		return ErrValidation("status must be 'all', 'enabled', or 'disabled'")
	}
	switch f.UserType {
	case UserTypeAll, UserTypeHumans, UserTypeApplications:
	default:
		return ErrValidation("type must be 'all', 'users', or 'applications'")
	}
	return nil
}

// MatchUser reports whether u passes every active predicate.
func (f Filters) MatchUser(u User) bool {
	if f.Status != StatusAll {
		if (f.Status == StatusEnabled) == u.IsDisabled {
			return false
		}
	}
	if f.UserType != UserTypeAll {
		if (f.UserType == UserTypeApplications) != u.IsApplication() {
			return false
		}
	}
	if f.BusinessUnit != BusinessUnitAll && f.BusinessUnit != "" {
		if !u.BusinessUnit.Valid || u.BusinessUnit.ID != f.BusinessUnit {
			return false
		}
	}
	if f.Text != "" {
		return matchText(f.Text, u.FullName, u.DomainName, u.BusinessUnit.Name)
	}
	return true
}

// MatchTeam reports whether t passes every active predicate. Status and
// user-type predicates do not apply to teams.
func (f Filters) MatchTeam(t Team) bool {
	if f.BusinessUnit != BusinessUnitAll && f.BusinessUnit != "" {
		if !t.BusinessUnit.Valid || t.BusinessUnit.ID != f.BusinessUnit {
			return false
		}
	}
	if f.Text != "" {
		return matchText(f.Text, t.Name, t.BusinessUnit.Name)
	}
	return true
}

// ApplyUsers returns the members of users that pass the filter, in input order.
func (f Filters) ApplyUsers(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if f.MatchUser(u) {
			out = append(out, u)
		}
	}
	return out
}

// ApplyTeams returns the members of teams that pass the filter, in input order.
func (f Filters) ApplyTeams(teams []Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if f.MatchTeam(t) {
			out = append(out, t)
		}
	}
	return out
}

func matchText(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
