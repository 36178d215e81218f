package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secview/internal/domain"
	"secview/internal/overview"
	"secview/internal/testutil"
)

var reportTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestRenderMarkdown_UserReport(t *testing.T) {
	users := []domain.User{
		{ID: "a", FullName: "Alice Adams", DomainName: "alice@corp.example",
			BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Sales", Valid: true}},
	}
	dir := &testutil.MockDirectory{
		RolesByUser: map[string][]domain.SecurityRole{
			"a": {
				{ID: "r1", Name: "Salesperson"},
				{ID: "r2", Name: "System Administrator", IsManaged: true,
					BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Root BU", Valid: true}},
			},
		},
		TeamsByUser: map[string][]domain.Team{
			"a": {{ID: "t1", Name: "Field Sales", Type: domain.TeamTypeAccess, IsDefault: true,
				BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Sales", Valid: true}}},
		},
		QueuesByUser: map[string][]domain.Queue{
			"a": {{ID: "q1", Name: "Inbound", Type: domain.QueueTypePublic}},
		},
	}

	md := RenderMarkdown(buildUserMatrix(t, dir, users), reportTime)

	assert.True(t, strings.HasPrefix(md, "# User Security Report\n"))
	assert.Contains(t, md, "Generated: 2025-03-14 09:30:00")
	assert.Contains(t, md, "## Alice Adams")
	assert.Contains(t, md, "- **Domain Name:** alice@corp.example")
	assert.Contains(t, md, "- **Business Unit:** Sales")
	assert.Contains(t, md, "- **Status:** Enabled")
	assert.Contains(t, md, "### Security Roles")
	assert.Contains(t, md, "- Salesperson\n")
	assert.Contains(t, md, "- System Administrator (Managed) - Root BU")
	assert.Contains(t, md, "### Team Memberships")
	assert.Contains(t, md, "- Field Sales (Access) [Default] - Sales")
	assert.Contains(t, md, "### Queue Memberships")
	assert.Contains(t, md, "- Inbound (Public)")
}

// A detail kind with zero items renders its italic "none" literal and never
// an empty bullet list.
func TestRenderMarkdown_EmptyDetailKindsRenderNoneLiterals(t *testing.T) {
	users := []domain.User{{ID: "a", FullName: "Alice Adams", DomainName: "alice@corp.example"}}
	md := RenderMarkdown(buildUserMatrix(t, &testutil.MockDirectory{}, users), reportTime)

	assert.Contains(t, md, "*No security roles assigned*")
	assert.Contains(t, md, "*No team memberships*")
	assert.Contains(t, md, "*No queue memberships*")
	assert.NotContains(t, md, "### Security Roles")
	assert.NotContains(t, md, "### Team Memberships")
	assert.NotContains(t, md, "### Queue Memberships")
}

func TestRenderMarkdown_TeamReport(t *testing.T) {
	teams := []domain.Team{
		{ID: "t1", Name: "Ops", Type: domain.TeamTypeOwner,
			BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Root BU", Valid: true}},
	}
	dir := &testutil.MockDirectory{
		MembersByTeam: map[string][]domain.User{
			"t1": {
				// Intentionally unsorted; the renderer sorts members by name.
				{ID: "u2", FullName: "Bob Brown", DomainName: "bob@corp.example", IsDisabled: true},
				{ID: "u1", FullName: "Alice Adams", DomainName: "alice@corp.example",
					BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Sales", Valid: true}},
			},
		},
	}

	m, err := overview.NewMatrixBuilder(dir, nil).BuildTeams(context.Background(), teams)
	require.NoError(t, err)
	md := RenderMarkdown(m, reportTime)

	assert.True(t, strings.HasPrefix(md, "# Team Security Report\n"))
	assert.Contains(t, md, "## Ops")
	assert.Contains(t, md, "- **Team Type:** Owner")
	assert.Contains(t, md, "- **Default Team:** No")
	assert.Contains(t, md, "*No security roles assigned*")
	assert.Contains(t, md, "### Team Members")

	aliceIdx := strings.Index(md, "- Alice Adams (alice@corp.example) - Sales")
	bobIdx := strings.Index(md, "- Bob Brown (bob@corp.example) [Disabled]")
	require.GreaterOrEqual(t, aliceIdx, 0)
	require.GreaterOrEqual(t, bobIdx, 0)
	assert.Less(t, aliceIdx, bobIdx)
}

func TestRenderMarkdown_PrincipalsInInputOrder(t *testing.T) {
	users := []domain.User{
		{ID: "b", FullName: "Zed Zulu", DomainName: "zed@corp.example"},
		{ID: "a", FullName: "Alice Adams", DomainName: "alice@corp.example"},
	}
	md := RenderMarkdown(buildUserMatrix(t, &testutil.MockDirectory{}, users), reportTime)
	assert.Less(t, strings.Index(md, "## Zed Zulu"), strings.Index(md, "## Alice Adams"))
}
