package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"secview/internal/domain"
	"secview/internal/overview"
)

// Empty-section literals. A detail kind with zero items always renders one
// of these instead of an empty bullet list.
const (
	noRolesLine   = "*No security roles assigned*"
	noTeamsLine   = "*No team memberships*"
	noQueuesLine  = "*No queue memberships*"
	noMembersLine = "*No team members*"
)

// RenderMarkdown serializes the matrix rows as a narrative report: one
// heading block per principal in input order, descriptive bullets, then a
// subsection per detail kind.
func RenderMarkdown(m *overview.Matrix, generatedAt time.Time) string {
	var lines []string

	if m.Kind == domain.KindTeam {
		lines = append(lines, "# Team Security Report")
	} else {
		lines = append(lines, "# User Security Report")
	}
	lines = append(lines, "", fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")), "")

	for _, row := range m.Rows {
		if row.Team != nil {
			lines = append(lines, teamSection(row)...)
		} else {
			lines = append(lines, userSection(row)...)
		}
	}

	return strings.Join(lines, "\n")
}

func userSection(row overview.Row) []string {
	u := row.User
	lines := []string{
		"",
		"## " + u.FullName,
		"",
		"- **Domain Name:** " + u.DomainName,
		"- **Business Unit:** " + u.BusinessUnit.DisplayName(noBusinessUnit),
		"- **Status:** " + u.StatusLabel(),
	}
	lines = append(lines, rolesSection(row.Details.Roles)...)
	lines = append(lines, teamsSection(row.Details.Teams)...)
	lines = append(lines, queuesSection(row.Details.Queues)...)
	return lines
}

func teamSection(row overview.Row) []string {
	t := row.Team
	isDefault := "No"
	if t.IsDefault {
		isDefault = "Yes"
	}
	lines := []string{
		"",
		"## " + t.Name,
		"",
		"- **Team Type:** " + t.Type.Label(),
		"- **Business Unit:** " + t.BusinessUnit.DisplayName(noBusinessUnit),
		"- **Default Team:** " + isDefault,
	}
	lines = append(lines, rolesSection(row.Details.Roles)...)
	lines = append(lines, membersSection(row.Details.Members)...)
	return lines
}

func rolesSection(roles []domain.SecurityRole) []string {
	if len(roles) == 0 {
		return []string{"", noRolesLine}
	}
	lines := []string{"", "### Security Roles", ""}
	for _, role := range roles {
		line := "- " + role.Name
		if role.IsManaged {
			line += " (Managed)"
		}
		if role.BusinessUnit.Valid {
			line += " - " + role.BusinessUnit.Name
		}
		lines = append(lines, line)
	}
	return lines
}

func teamsSection(teams []domain.Team) []string {
	if len(teams) == 0 {
		return []string{"", noTeamsLine}
	}
	lines := []string{"", "### Team Memberships", ""}
	for _, team := range teams {
		line := fmt.Sprintf("- %s (%s)", team.Name, team.Type.Label())
		if team.IsDefault {
			line += " [Default]"
		}
		if team.BusinessUnit.Valid {
			line += " - " + team.BusinessUnit.Name
		}
		lines = append(lines, line)
	}
	return lines
}

func queuesSection(queues []domain.Queue) []string {
	if len(queues) == 0 {
		return []string{"", noQueuesLine}
	}
	lines := []string{"", "### Queue Memberships", ""}
	for _, queue := range queues {
		lines = append(lines, fmt.Sprintf("- %s (%s)", queue.Name, queue.Type.Label()))
	}
	return lines
}

func membersSection(members []domain.User) []string {
	if len(members) == 0 {
		return []string{"", noMembersLine}
	}
	sorted := make([]domain.User, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FullName != sorted[j].FullName {
			return sorted[i].FullName < sorted[j].FullName
		}
		return sorted[i].ID < sorted[j].ID
	})

	lines := []string{"", "### Team Members", ""}
	for _, member := range sorted {
		line := fmt.Sprintf("- %s (%s)", member.FullName, member.DomainName)
		if member.IsDisabled {
			line += " [Disabled]"
		}
		if member.BusinessUnit.Valid {
			line += " - " + member.BusinessUnit.Name
		}
		lines = append(lines, line)
	}
	return lines
}
