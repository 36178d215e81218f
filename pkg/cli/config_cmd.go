package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage named connection profiles",
	}
	cmd.AddCommand(newConfigViewCmd(), newConfigSetCmd(), newConfigUseCmd())
	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the stored profiles (tokens redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config at %s: %w", ConfigPath(), err)
			}
			redacted := *cfg
			redacted.Profiles = make(map[string]Profile, len(cfg.Profiles))
			for name, p := range cfg.Profiles {
				if p.Token != "" {
					p.Token = "(set)"
				}
				redacted.Profiles[name] = p
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, redacted)
			}
			fmt.Fprintf(os.Stdout, "current-profile: %s\n", redacted.CurrentProfile)
			for name, p := range redacted.Profiles {
				fmt.Fprintf(os.Stdout, "profile %s: service-url=%s token=%s export-dir=%s\n",
					name, p.ServiceURL, p.Token, p.ExportDir)
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		serviceURL string
		token      string
		exportDir  string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "set <profile>",
		Short: "Create or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{CurrentProfile: args[0], Profiles: map[string]Profile{}}
			}
			p := cfg.Profiles[args[0]]
			if serviceURL != "" {
				p.ServiceURL = serviceURL
			}
			if token != "" {
				p.Token = token
			}
			if exportDir != "" {
				p.ExportDir = exportDir
			}
			if output != "" {
				p.Output = output
			}
			cfg.Profiles[args[0]] = p
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Saved profile %q to %s\n", args[0], ConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceURL, "service-url", "", "Remote environment root URL")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory CSV exports are written to")
	cmd.Flags().StringVar(&output, "output", "", "Default output format: table or json")
	return cmd
}

func newConfigUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config at %s: %w", ConfigPath(), err)
			}
			if _, ok := cfg.Profiles[args[0]]; !ok {
				return fmt.Errorf("profile %q does not exist", args[0])
			}
			cfg.CurrentProfile = args[0]
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Switched to profile %q\n", args[0])
			return nil
		},
	}
}
