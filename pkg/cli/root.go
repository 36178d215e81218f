// Package cli implements the secview command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"secview/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// appState carries the effective configuration and logger into subcommands
// after flag/env/profile resolution.
type appState struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		serviceURL string
		token      string
		exportDir  string
		output     string
		profile    string
		logLevel   string
	)

	state := &appState{}

	rootCmd := &cobra.Command{
		Use:           "secview",
		Short:         "Security overview CLI",
		Long:          "Inspect and export user, team, role, and queue security metadata from a remote environment.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Config file is optional.
			userCfg, err := LoadUserConfig()
			if err != nil {
				userCfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}
			p := userCfg.ActiveProfile(profile)

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			// Precedence: flag > env > profile > default.
			if cmd.Flags().Changed("service-url") {
				cfg.ServiceURL = serviceURL
			} else if cfg.ServiceURL == "" {
				cfg.ServiceURL = p.ServiceURL
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			} else if cfg.Token == "" {
				cfg.Token = p.Token
			}
			if cmd.Flags().Changed("export-dir") {
				cfg.ExportDir = exportDir
			} else if p.ExportDir != "" && cfg.ExportDir == "." {
				cfg.ExportDir = p.ExportDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if !cmd.Flags().Changed("output") && p.Output != "" {
				output = p.Output
				_ = cmd.Root().PersistentFlags().Set("output", output)
			}
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			state.cfg = cfg
			state.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			for _, warning := range cfg.Warnings {
				state.logger.Warn(warning)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&serviceURL, "service-url", "", "Remote environment root URL")
	pf.StringVar(&token, "token", "", "Bearer token for the remote service")
	pf.StringVar(&exportDir, "export-dir", "", "Directory CSV exports are written to")
	pf.StringVar(&output, "output", "table", "Output format: table or json")
	pf.StringVar(&profile, "profile", "", "Named profile from ~/.secview/config.yaml")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newUsersCmd(state),
		newTeamsCmd(state),
		newExportCmd(state),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
