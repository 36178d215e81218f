package overview

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secview/internal/domain"
	"secview/internal/testutil"
)

func TestMatrixBuilder_ColumnsAreSparseUnion(t *testing.T) {
	users := []domain.User{user("u1", "Alice"), user("u2", "Bob")}
	dir := &testutil.MockDirectory{
		RolesByUser: map[string][]domain.SecurityRole{
			"u1": {role("rx", "X"), role("rz", "Z")},
			"u2": {role("ry", "Y")},
		},
		TeamsByUser: map[string][]domain.Team{
			"u1": {team("t1", "Ops")},
			"u2": {team("t1", "Ops")}, // shared team appears exactly once
		},
	}

	m, err := NewMatrixBuilder(dir, nil).BuildUsers(context.Background(), users)
	require.NoError(t, err)

	require.Len(t, m.Columns, 4)
	// Role block ordered by name, then the team block.
	assert.Equal(t, AttributeRef{Kind: AttrRole, ID: "rx", Name: "X"}, m.Columns[0])
	assert.Equal(t, AttributeRef{Kind: AttrRole, ID: "ry", Name: "Y"}, m.Columns[1])
	assert.Equal(t, AttributeRef{Kind: AttrRole, ID: "rz", Name: "Z"}, m.Columns[2])
	assert.Equal(t, AttributeRef{Kind: AttrTeam, ID: "t1", Name: "Ops"}, m.Columns[3])

	require.Len(t, m.Rows, 2)
	assert.True(t, m.Rows[0].HasAttribute(m.Columns[0]))
	assert.False(t, m.Rows[0].HasAttribute(m.Columns[1]))
	assert.True(t, m.Rows[0].HasAttribute(m.Columns[2]))
	assert.False(t, m.Rows[1].HasAttribute(m.Columns[0]))
	assert.True(t, m.Rows[1].HasAttribute(m.Columns[1]))
	assert.False(t, m.Rows[1].HasAttribute(m.Columns[2]))
}

func TestMatrixBuilder_NoPrincipalsNoColumns(t *testing.T) {
	m, err := NewMatrixBuilder(&testutil.MockDirectory{}, nil).BuildUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, m.Columns)
	assert.Empty(t, m.Rows)
}

func TestMatrixBuilder_ColumnNameTiesBreakOnID(t *testing.T) {
	users := []domain.User{user("u1", "Alice")}
	dir := &testutil.MockDirectory{
		RolesByUser: map[string][]domain.SecurityRole{
			"u1": {role("r-b", "Same"), role("r-a", "Same")},
		},
	}

	m, err := NewMatrixBuilder(dir, nil).BuildUsers(context.Background(), users)
	require.NoError(t, err)
	require.Len(t, m.Columns, 2)
	assert.Equal(t, "r-a", m.Columns[0].ID)
	assert.Equal(t, "r-b", m.Columns[1].ID)
}

func TestMatrixBuilder_TeamsMatrix(t *testing.T) {
	teams := []domain.Team{team("t1", "Ops"), team("t2", "Finance")}
	dir := &testutil.MockDirectory{
		RolesByTeam: map[string][]domain.SecurityRole{
			"t1": {role("r1", "Dispatcher")},
		},
		MembersByTeam: map[string][]domain.User{
			"t1": {user("u1", "Alice")},
			"t2": {user("u1", "Alice"), user("u2", "Bob")},
		},
	}

	m, err := NewMatrixBuilder(dir, nil).BuildTeams(context.Background(), teams)
	require.NoError(t, err)

	require.Len(t, m.Columns, 3)
	assert.Equal(t, AttrRole, m.Columns[0].Kind)
	assert.Equal(t, AttrMember, m.Columns[1].Kind)
	assert.Equal(t, "Alice", m.Columns[1].Name)
	assert.Equal(t, "Bob", m.Columns[2].Name)

	assert.True(t, m.Rows[0].HasAttribute(m.Columns[0]))
	assert.True(t, m.Rows[1].HasAttribute(m.Columns[1]))
	assert.False(t, m.Rows[1].HasAttribute(m.Columns[0]))
}

// Sequential builds never overlap principal resolutions.
func TestMatrixBuilder_SequentialByDefault(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	dir := &testutil.MockDirectory{
		RolesForUserFn: func(_ context.Context, id string) ([]domain.SecurityRole, error) {
			cur := inFlight.Add(1)
			if cur > maxInFlight.Load() {
				maxInFlight.Store(cur)
			}
			defer inFlight.Add(-1)
			return nil, nil
		},
	}

	users := []domain.User{user("u1", "A"), user("u2", "B"), user("u3", "C")}
	_, err := NewMatrixBuilder(dir, nil).BuildUsers(context.Background(), users)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(1))
}

// Bounded concurrency keeps the all-or-nothing contract.
func TestMatrixBuilder_ConcurrentBuildAllOrNothing(t *testing.T) {
	dir := &testutil.MockDirectory{
		RolesForUserFn: func(_ context.Context, id string) ([]domain.SecurityRole, error) {
			if id == "u2" {
				return nil, domain.ErrTransport(nil, "boom")
			}
			return nil, nil
		},
	}

	builder := NewMatrixBuilder(dir, nil)
	builder.Concurrency = 3

	users := []domain.User{user("u1", "A"), user("u2", "B"), user("u3", "C")}
	m, err := builder.BuildUsers(context.Background(), users)
	require.Error(t, err)
	var tErr *domain.TransportError
	assert.ErrorAs(t, err, &tErr)
	assert.Nil(t, m)
}

func TestMatrixBuilder_SequentialFailureAborts(t *testing.T) {
	calls := 0
	dir := &testutil.MockDirectory{
		RolesForUserFn: func(context.Context, string) ([]domain.SecurityRole, error) {
			calls++
			return nil, domain.ErrTransport(nil, "boom")
		},
	}

	users := []domain.User{user("u1", "A"), user("u2", "B")}
	m, err := NewMatrixBuilder(dir, nil).BuildUsers(context.Background(), users)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 1, calls)
}
