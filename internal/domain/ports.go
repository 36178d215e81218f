package domain

import "context"

// Directory is the read-only port onto the remote data service. All methods
// exhaust server-side pagination before returning; a failed page fails the
// whole call with a *TransportError and no partial slice.
type Directory interface {
	// Users returns every principal-user, ordered by full name.
	Users(ctx context.Context) ([]User, error)
	// Teams returns every team, ordered by name.
	Teams(ctx context.Context) ([]Team, error)

	// RolesForUser returns the security roles assigned to a user.
	RolesForUser(ctx context.Context, userID string) ([]SecurityRole, error)
	// TeamsForUser returns the teams a user is a member of.
	TeamsForUser(ctx context.Context, userID string) ([]Team, error)
	// QueuesForUser returns the queues a user is a member of.
	QueuesForUser(ctx context.Context, userID string) ([]Queue, error)

	// RolesForTeam returns the security roles assigned to a team.
	RolesForTeam(ctx context.Context, teamID string) ([]SecurityRole, error)
	// MembersForTeam returns the users that are members of a team.
	MembersForTeam(ctx context.Context, teamID string) ([]User, error)
}
