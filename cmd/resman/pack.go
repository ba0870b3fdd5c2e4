package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/resman"
)

func (a *app) newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <dir>",
		Short: "Pack a directory into a package file",
		Long: `Pack every regular file under <dir> into the package file.

Executable files and files with an excluded extension are left out. The
default exclusions are .res, .cpp, .hpp, .h and .exe; --exclude replaces them.

Examples:
  resman pack ./assets
  resman pack ./assets -p out/assets.res --exclude .psd --exclude .tmp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.manager()
			res, err := m.Pack(cmd.Context(), args[0],
				resman.PackWithProgress(func(e resman.ProgressEvent) {
					if e.Stage == resman.StagePacking {
						a.logger.Debug("packed", "path", e.Path, "files", e.FilesDone)
					}
				}),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %d files (%s) into %s\n",
				len(res.Files), humanize.IBytes(res.Bytes), res.Output)
			return nil
		},
	}
	cmd.Flags().StringSlice(keyExclude, resman.DefaultExcludedExtensions(), "file extension to leave out (repeatable)")
	_ = a.v.BindPFlag(keyExclude, cmd.Flags().Lookup(keyExclude))
	return cmd
}
