package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role keywords and skill categories of the active catalog",
	Long: `List the role keywords matched against career goals, in match order, with their required
skills, followed by the skill categories and their keywords.`,
	Args: cobra.NoArgs,
	RunE: runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROLE\tREQUIRED\tNICE TO HAVE")
	for _, r := range cat.Roles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Keyword, strings.Join(r.Required, ", "), strings.Join(r.NiceToHave, ", "))
	}
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tKEYWORDS\t")
	for _, c := range cat.Categories {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t\n", c.Name, strings.Join(c.Keywords, ", "))
	}
	return tw.Flush()
}
