package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holista-dev/holista/internal/dashboard"
)

func newPathsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the remote path each dashboard reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PAGE\tKEY\tPATH")
			for _, p := range dashboard.Pages() {
				if p.Candidates != nil {
					candidates := p.Candidates(a.cfg.FTP)
					fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Key, orUnset(strings.Join(candidates, ", ")))
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Key, orUnset(a.cfg.FTP.ResolvePath(p.Key, "")))
			}
			return tw.Flush()
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
