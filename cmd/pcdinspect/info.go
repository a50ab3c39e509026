package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/pick"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show point cloud summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.CloudOptions()
			opts.Logger = a.logger
			c, err := cloud.LoadFile(args[0], opts)
			if err != nil {
				return err
			}
			min, max := c.Bounds()
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"name: %s\npoints: %d\nmin: %s\nmax: %s\ncolors: %v\n",
				c.Name, c.Len(),
				pick.FormatCoordinate(min), pick.FormatCoordinate(max),
				c.HasColors(),
			)
			return err
		},
	}
}
