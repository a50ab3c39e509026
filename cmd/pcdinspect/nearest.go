package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/spf13/cobra"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/pick"
)

func newNearestCmd(a *app) *cobra.Command {
	var at mat.Vec3
	atFlag := newVec3Value(&at)
	var maxDist float32
	cmd := &cobra.Command{
		Use:   "nearest FILE",
		Short: "Find the point nearest to a world position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !atFlag.set {
				return errors.New("--at is required")
			}
			opts := a.cfg.CloudOptions()
			opts.Logger = a.logger
			c, err := cloud.LoadFile(args[0], opts)
			if err != nil {
				return err
			}
			id, d, ok := c.Nearest(at, maxDist)
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no hit")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%.3f)\n",
				id, pick.FormatCoordinate(c.Vec3At(id)), d)
			return err
		},
	}
	cmd.Flags().Var(atFlag, "at", "world position")
	cmd.Flags().Float32Var(&maxDist, "max-dist", 1, "search radius")
	return cmd
}
