package main

import (
	"github.com/spf13/cobra"
)

func (a *app) newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>...",
		Short: "Write packaged files to stdout",
		Long: `Load the package file and write the content of each <path> to stdout.

Paths missing from the package are read from disk instead.

Examples:
  resman cat -p assets.res config/settings.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadedManager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range args {
				res, err := m.Lookup(p)
				if err != nil {
					return err
				}
				if _, err := out.Write(res.Bytes()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
