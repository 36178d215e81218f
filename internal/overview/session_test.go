package overview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secview/internal/domain"
	"secview/internal/testutil"
)

func sessionFixture() *testutil.MockDirectory {
	return &testutil.MockDirectory{
		UsersData: []domain.User{
			user("u1", "Alice Adams"),
			{ID: "u2", FullName: "Bob Brown", IsDisabled: true},
		},
		TeamsData: []domain.Team{team("t1", "Ops")},
		RolesByUser: map[string][]domain.SecurityRole{
			"u1": {role("r1", "Admin")},
			"u2": {role("r2", "Reader")},
		},
		RolesByTeam: map[string][]domain.SecurityRole{"t1": {role("r3", "Dispatcher")}},
	}
}

func TestSession_Refresh(t *testing.T) {
	s := NewSession(sessionFixture(), nil)
	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.FilteredUsers(), 1) // default filters hide disabled u2
	assert.Len(t, s.FilteredTeams(), 1)
}

// A failed refresh leaves the previous collections in place.
func TestSession_RefreshFailureKeepsPreviousCollections(t *testing.T) {
	dir := sessionFixture()
	s := NewSession(dir, nil)
	require.NoError(t, s.Refresh(context.Background()))

	dir.TeamsFn = func(context.Context) ([]domain.Team, error) {
		return nil, domain.ErrTransport(nil, "boom")
	}
	require.Error(t, s.Refresh(context.Background()))
	assert.Len(t, s.FilteredUsers(), 1)
	assert.Len(t, s.FilteredTeams(), 1)
}

func TestSession_SelectResolvesDetails(t *testing.T) {
	s := NewSession(sessionFixture(), nil)
	require.NoError(t, s.Select(context.Background(), "u1"))

	id, details := s.Selection()
	assert.Equal(t, "u1", id)
	require.Len(t, details.Roles, 1)
	assert.Equal(t, "Admin", details.Roles[0].Name)
}

func TestSession_ClearSelectionDiscardsDetails(t *testing.T) {
	s := NewSession(sessionFixture(), nil)
	require.NoError(t, s.Select(context.Background(), "u1"))
	require.NoError(t, s.Select(context.Background(), ""))

	id, details := s.Selection()
	assert.Empty(t, id)
	assert.Empty(t, details.Roles)
}

func TestSession_FailedResolutionClearsDetailsAndReports(t *testing.T) {
	dir := sessionFixture()
	dir.RolesForUserFn = func(context.Context, string) ([]domain.SecurityRole, error) {
		return nil, domain.ErrTransport(nil, "boom")
	}
	s := NewSession(dir, nil)

	err := s.Select(context.Background(), "u1")
	require.Error(t, err)
	id, details := s.Selection()
	assert.Equal(t, "u1", id)
	assert.Empty(t, details.Roles)
}

// Switching the entity kind resets filters to their defaults and clears the
// selection, in both directions.
func TestSession_SetEntityKindResets(t *testing.T) {
	for _, tc := range []struct {
		name string
		from domain.EntityKind
		to   domain.EntityKind
		id   string
	}{
		{"user to team", domain.KindUser, domain.KindTeam, "u1"},
		{"team to user", domain.KindTeam, domain.KindUser, "t1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(sessionFixture(), nil)
			s.SetEntityKind(tc.from)
			require.NoError(t, s.SetFilters(domain.Filters{
				Status:       domain.StatusAll,
				UserType:     domain.UserTypeApplications,
				BusinessUnit: "bu1",
				Text:         "alice",
			}))
			require.NoError(t, s.Select(context.Background(), tc.id))

			s.SetEntityKind(tc.to)

			assert.Equal(t, tc.to, s.EntityKind())
			assert.Equal(t, domain.DefaultFilters(), s.Filters())
			id, details := s.Selection()
			assert.Empty(t, id)
			assert.Empty(t, details.Roles)
		})
	}
}

func TestSession_SetEntityKindSameKindKeepsState(t *testing.T) {
	s := NewSession(sessionFixture(), nil)
	custom := domain.Filters{Status: domain.StatusAll, UserType: domain.UserTypeAll, BusinessUnit: domain.BusinessUnitAll}
	require.NoError(t, s.SetFilters(custom))

	s.SetEntityKind(domain.KindUser)
	assert.Equal(t, custom, s.Filters())
}

// Select A, then select B before A's fetch resolves: the session must end
// up with B's data. A's late result is discarded at the join point.
func TestSession_LastSelectionWins(t *testing.T) {
	dir := sessionFixture()

	releaseA := make(chan struct{})
	aStarted := make(chan struct{})
	dir.RolesForUserFn = func(_ context.Context, id string) ([]domain.SecurityRole, error) {
		if id == "u1" {
			close(aStarted)
			<-releaseA // hold A's resolution until B has fully completed
		}
		return dir.RolesByUser[id], nil
	}

	s := NewSession(dir, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Select(context.Background(), "u1")
	}()

	<-aStarted
	require.NoError(t, s.Select(context.Background(), "u2"))

	close(releaseA)
	wg.Wait()

	id, details := s.Selection()
	assert.Equal(t, "u2", id)
	require.Len(t, details.Roles, 1)
	assert.Equal(t, "Reader", details.Roles[0].Name)
}
