package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newUsersCmd(state *appState) *cobra.Command {
	filters := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List principal-users from the remote environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := filters.toFilters()
			if err != nil {
				return err
			}
			dir, err := newDirectory(state)
			if err != nil {
				return err
			}
			users, err := dir.Users(cmd.Context())
			if err != nil {
				return err
			}
			filtered := f.ApplyUsers(users)
			state.logger.Info("fetched users", "total", len(users), "filtered", len(filtered))

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, filtered)
			}
			return printUserTable(os.Stdout, filtered)
		},
	}

	filters.register(cmd.Flags())
	return cmd
}

func newTeamsCmd(state *appState) *cobra.Command {
	filters := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams from the remote environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := filters.toFilters()
			if err != nil {
				return err
			}
			dir, err := newDirectory(state)
			if err != nil {
				return err
			}
			teams, err := dir.Teams(cmd.Context())
			if err != nil {
				return err
			}
			filtered := f.ApplyTeams(teams)
			state.logger.Info("fetched teams", "total", len(teams), "filtered", len(filtered))

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, filtered)
			}
			return printTeamTable(os.Stdout, filtered)
		},
	}

	filters.register(cmd.Flags())
	// Status and user-type predicates never apply to teams.
	_ = cmd.Flags().MarkHidden("status")
	_ = cmd.Flags().MarkHidden("type")
	return cmd
}
