// Package domain defines the canonical entity shapes, filter predicates,
// ports, and errors for the security overview tool.
package domain

// EntityKind selects which principal collection is active.
type EntityKind string

const (
	KindUser EntityKind = "systemuser"
	KindTeam EntityKind = "team"
)

// BusinessUnitRef is a denormalized business-unit lookup copied from the
// record it was expanded on. It is a point-in-time snapshot, not a live
// reference. The zero value is the explicit "unset" state.
type BusinessUnitRef struct {
	ID    string
	Name  string
	Valid bool
}

// DisplayName returns the business unit name, or fallback when unset.
func (b BusinessUnitRef) DisplayName(fallback string) string {
	if !b.Valid {
		return fallback
	}
	return b.Name
}

// User is a principal-user record. ApplicationID is non-empty when the
// principal is a non-interactive application identity rather than a human.
type User struct {
	ID            string
	FullName      string
	DomainName    string
	IsDisabled    bool
	ApplicationID string
	BusinessUnit  BusinessUnitRef
}

// IsApplication reports whether the user is an application identity.
func (u User) IsApplication() bool { return u.ApplicationID != "" }

// StatusLabel returns the human-readable enablement state.
func (u User) StatusLabel() string {
	if u.IsDisabled {
		return "Disabled"
	}
	return "Enabled"
}

// TeamType is the remote service's numeric team type code.
type TeamType int

const (
	TeamTypeOwner  TeamType = 0
	TeamTypeAccess TeamType = 1
)

// Label returns the display name for the team type. Codes other than
// Owner and Access render as "Other".
func (t TeamType) Label() string {
	switch t {
	case TeamTypeOwner:
		return "Owner"
	case TeamTypeAccess:
		return "Access"
	default:
		return "Other"
	}
}

// Team is a team record.
type Team struct {
	ID           string
	Name         string
	Type         TeamType
	IsDefault    bool
	BusinessUnit BusinessUnitRef
}

// SecurityRole is a security role record.
type SecurityRole struct {
	ID           string
	Name         string
	IsManaged    bool
	BusinessUnit BusinessUnitRef
}

// QueueType is the remote service's numeric queue type code.
type QueueType int

const (
	QueueTypePrivate QueueType = 1
	QueueTypePublic  QueueType = 2
)

// Label returns the display name for the queue type. Unrecognized codes
// render as "Unknown".
func (q QueueType) Label() string {
	switch q {
	case QueueTypePrivate:
		return "Private"
	case QueueTypePublic:
		return "Public"
	default:
		return "Unknown"
	}
}

// Queue is a queue record.
type Queue struct {
	ID   string
	Name string
	Type QueueType
}
