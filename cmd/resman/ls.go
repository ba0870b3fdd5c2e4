package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) newLsCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the files in a package",
		Long: `Load the package file and list the paths it contains in sorted order.
Content that precedes every path marker, such as the whole of an empty
package, has no path and is not listed.

With --long, also print each file's size and content digest.

Examples:
  resman ls -p assets.res
  resman ls -p assets.res --long`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadedManager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !long {
				for _, p := range m.Cache().Paths() {
					if p == "" {
						continue
					}
					fmt.Fprintln(out, p)
				}
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tSIZE\tDIGEST")
			for p, res := range m.Cache().All() {
				if p == "" {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p, humanize.IBytes(res.Size()), res.Digest())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show size and digest")
	return cmd
}
