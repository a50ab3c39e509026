package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/seqsense/pcgol/mat"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
	"github.com/seqsense/pcdinspector/viewer"
)

const watchDebounce = 100 * time.Millisecond

type pickOptions struct {
	x, y          int
	width, height int
	yaw, pitch    float64
	distance      float64
	target        mat.Vec3
	targetFlag    *vec3Value
	watch         bool
}

func newPickCmd(a *app) *cobra.Command {
	o := &pickOptions{}
	o.targetFlag = newVec3Value(&o.target)
	cmd := &cobra.Command{
		Use:   "pick FILE",
		Short: "Pick the point under a pixel",
		Long: `Pick the point under a pixel of a camera orbiting the cloud.
The camera is fitted to the cloud bounds unless --target or --distance is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPicker(a, o, cmd.Flags().Changed("distance"))
			if !o.watch {
				return p.load(cmd.OutOrStdout(), args[0])
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return p.watch(ctx, cmd.OutOrStdout(), args[0])
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.x, "x", -1, "pixel x, center if negative")
	f.IntVar(&o.y, "y", -1, "pixel y, center if negative")
	f.IntVar(&o.width, "width", 640, "viewport width")
	f.IntVar(&o.height, "height", 480, "viewport height")
	f.Float64Var(&o.yaw, "yaw", 0, "camera yaw in radians")
	f.Float64Var(&o.pitch, "pitch", 0, "camera pitch in radians")
	f.Float64Var(&o.distance, "distance", 0, "camera distance from the target")
	f.Var(o.targetFlag, "target", "camera target")
	f.BoolVarP(&o.watch, "watch", "w", false, "pick again when the file changes")
	return cmd
}

// picker commits picks against the latest version of a file.
type picker struct {
	app         *app
	opts        *pickOptions
	distanceSet bool
	logger      *zap.Logger
	loadOpts    cloud.Options
	viewer      *viewer.Viewer
}

func newPicker(a *app, o *pickOptions, distanceSet bool) *picker {
	loadOpts := a.cfg.CloudOptions()
	loadOpts.Logger = a.logger
	return &picker{
		app:         a,
		opts:        o,
		distanceSet: distanceSet,
		logger:      a.logger,
		loadOpts:    loadOpts,
		viewer: viewer.New(scene.New(), viewer.Options{
			Hover:         a.cfg.HoverSelector(),
			Commit:        a.cfg.CommitSelector(),
			DragTolerance: a.cfg.Pick.DragTolerance,
			Logger:        a.logger,
		}),
	}
}

// load reads the file, swaps the cloud and picks.
func (p *picker) load(w io.Writer, path string) error {
	c, err := cloud.LoadFile(path, p.loadOpts)
	if err != nil {
		return err
	}
	p.viewer.SetPointCloud(c)

	orbit := p.app.cfg.Orbit()
	if !p.opts.targetFlag.set && !p.distanceSet {
		orbit.Fit(c.Bounds())
	}
	if p.opts.targetFlag.set {
		orbit.Target = p.opts.target
	}
	if p.distanceSet {
		orbit.Distance = p.opts.distance
	}
	orbit.Yaw, orbit.Pitch = p.opts.yaw, p.opts.pitch

	vp := pick.Viewport{Width: p.opts.width, Height: p.opts.height}
	p.viewer.SetViewport(vp)
	p.viewer.SetCamera(orbit.Camera(vp))

	x, y := p.opts.x, p.opts.y
	if x < 0 {
		x = vp.Width / 2
	}
	if y < 0 {
		y = vp.Height / 2
	}
	p.viewer.PointerMove(x, y)
	p.viewer.PointerDown(x, y)
	res, _ := p.viewer.PointerUp(x, y)
	if !res.OK {
		_, err = fmt.Fprintln(w, "no hit")
		return err
	}
	_, err = fmt.Fprintln(w, pick.FormatCoordinate(res.Position))
	return err
}

// watch picks once and again on every change of the file until ctx is done.
// Load errors while watching are logged and the previous result is kept.
func (p *picker) watch(ctx context.Context, w io.Writer, path string) (err error) {
	fw, err := newFileWatcher(watchDebounce, p.logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, fw.Close())
	}()
	if err := fw.Watch(path); err != nil {
		return err
	}
	if err := p.load(w, path); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-fw.Changes():
			if !ok {
				return nil
			}
			p.logger.Debug("file changed", zap.String("path", changed))
			if err := p.load(w, path); err != nil {
				p.logger.Warn("reload failed", zap.Error(err))
			}
		}
	}
}
