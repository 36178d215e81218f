package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"secview/internal/domain"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUserTable(w io.Writer, users []domain.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDOMAIN NAME\tBUSINESS UNIT\tSTATUS\tTYPE")
	for _, u := range users {
		userType := "User"
		if u.IsApplication() {
			userType = "Application"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.FullName, u.DomainName, u.BusinessUnit.DisplayName("N/A"), u.StatusLabel(), userType)
	}
	return tw.Flush()
}

func printTeamTable(w io.Writer, teams []domain.Team) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tBUSINESS UNIT\tDEFAULT")
	for _, t := range teams {
		isDefault := ""
		if t.IsDefault {
			isDefault = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			t.Name, t.Type.Label(), t.BusinessUnit.DisplayName("N/A"), isDefault)
	}
	return tw.Flush()
}
