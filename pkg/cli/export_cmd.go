package cli

import (
	"github.com/spf13/cobra"

	"secview/internal/domain"
	"secview/internal/export"
	"secview/internal/host"
	"secview/internal/overview"
)

func newExportCmd(state *appState) *cobra.Command {
	var (
		filters     = &filterFlags{}
		entity      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export {csv|markdown}",
		Short: "Export a security membership report",
		Long: "Resolves roles, teams, queues, and members for every principal passing " +
			"the filters and renders a CSV incidence matrix (saved to the export " +
			"directory) or a Markdown report (written to stdout).",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "markdown"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if format != "csv" && format != "markdown" {
				return domain.ErrValidation("format must be 'csv' or 'markdown'")
			}
			kind := domain.KindUser
			switch entity {
			case "users":
			case "teams":
				kind = domain.KindTeam
			default:
				return domain.ErrValidation("entity must be 'users' or 'teams'")
			}
			f, err := filters.toFilters()
			if err != nil {
				return err
			}

			dir, err := newDirectory(state)
			if err != nil {
				return err
			}

			builder := overview.NewMatrixBuilder(dir, state.logger)
			if cmd.Flags().Changed("concurrency") {
				builder.Concurrency = concurrency
			} else {
				builder.Concurrency = state.cfg.ExportConcurrency
			}

			localHost := host.NewLocal(state.cfg.ExportDir, state.logger)
			runner := export.NewRunner(builder, localHost, state.logger)

			ctx := cmd.Context()
			switch kind {
			case domain.KindTeam:
				teams, err := dir.Teams(ctx)
				if err != nil {
					return err
				}
				filtered := f.ApplyTeams(teams)
				if len(filtered) == 0 {
					return domain.ErrValidation("no teams match the active filters")
				}
				if format == "csv" {
					return runner.TeamsCSV(ctx, filtered)
				}
				return runner.TeamsMarkdown(ctx, filtered)
			default:
				users, err := dir.Users(ctx)
				if err != nil {
					return err
				}
				filtered := f.ApplyUsers(users)
				if len(filtered) == 0 {
					return domain.ErrValidation("no users match the active filters")
				}
				if format == "csv" {
					return runner.UsersCSV(ctx, filtered)
				}
				return runner.UsersMarkdown(ctx, filtered)
			}
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().StringVar(&entity, "entity", "users", "Principal kind to export: users or teams")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1,
		"Concurrent per-principal detail fetches (1 = sequential)")
	return cmd
}
