package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secview/internal/domain"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("yaml"))
}

func TestPrintUserTable(t *testing.T) {
	var sb strings.Builder
	users := []domain.User{
		{FullName: "Alice Adams", DomainName: "alice@corp.example",
			BusinessUnit: domain.BusinessUnitRef{ID: "bu1", Name: "Sales", Valid: true}},
		{FullName: "Sync Service", DomainName: "sync@corp.example", ApplicationID: "app"},
	}
	require.NoError(t, printUserTable(&sb, users))

	out := sb.String()
	assert.Contains(t, out, "Alice Adams")
	assert.Contains(t, out, "Sales")
	assert.Contains(t, out, "Application")
}

func TestPrintTeamTable(t *testing.T) {
	var sb strings.Builder
	teams := []domain.Team{
		{Name: "Ops", Type: domain.TeamTypeOwner, IsDefault: true},
	}
	require.NoError(t, printTeamTable(&sb, teams))

	out := sb.String()
	assert.Contains(t, out, "Ops")
	assert.Contains(t, out, "Owner")
	assert.Contains(t, out, "yes")
}

func TestFilterFlags_ToFilters(t *testing.T) {
	f := &filterFlags{
		status:       "all",
		userType:     "applications",
		businessUnit: "bu1",
		search:       "alice",
	}
	filters, err := f.toFilters()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAll, filters.Status)
	assert.Equal(t, domain.UserTypeApplications, filters.UserType)
	assert.Equal(t, "bu1", filters.BusinessUnit)
	assert.Equal(t, "alice", filters.Text)

	bad := &filterFlags{status: "active", userType: "users", businessUnit: "all"}
	_, err = bad.toFilters()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}
