package main

import (
	"bytes"
	"context"
	"strings"
	"syscall/js"
	"time"

	"github.com/pkg/errors"
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/config"
	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
	"github.com/seqsense/pcdinspector/view"
	"github.com/seqsense/pcdinspector/viewer"
)

const keyMoveStep = 0.1

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "mapCanvas")
	logger := newLogger(doc.Call("getElementById", "log"),
		js.Global().Get("pcdinspectorDebug").Truthy())
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid config", zap.Error(err))
		return
	}

	gl, err := webgl.New(canvas)
	if err != nil {
		logger.Error("failed to initialize WebGL", zap.Error(err))
		return
	}
	showDebugInfo(gl, logger)

	r, err := newRenderer(gl)
	if err != nil {
		logger.Error("failed to initialize renderer", zap.Error(err))
		return
	}

	s := scene.New()
	points, err := cfg.ScenePoints()
	if err != nil {
		logger.Error("invalid point settings", zap.Error(err))
		return
	}
	s.SetPoints(points)
	s.Axes.Visible = cfg.Viewer.Axes

	coordDiv := doc.Call("getElementById", "coordinate")
	v := viewer.New(s, viewer.Options{
		Hover:         cfg.HoverSelector(),
		Commit:        cfg.CommitSelector(),
		DragTolerance: cfg.Pick.DragTolerance,
		Text: pick.TextSinkFunc(func(t string) {
			if !coordDiv.IsNull() {
				coordDiv.Set("innerText", t)
			}
		}),
		Logger: logger,
	})
	orbit := cfg.Orbit()
	con := &console{viewer: v, orbit: orbit}
	cur := &cursorSetter{canvas: canvas}
	wheel := &view.WheelNormalizer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := viewer.NewLoop(64)

	syncCamera := func() {
		vp := r.resize()
		v.SetViewport(vp)
		v.SetCamera(orbit.Camera(vp))
	}
	updateCursor := func() {
		if orbit.Dragging() && v.GestureState() == pick.Dragging {
			cur.Set(cursorMove)
			return
		}
		if _, ok := v.Hover(); ok {
			cur.Set(cursorCrosshair)
			return
		}
		cur.Set(cursorDefault)
	}

	g := newGesture()
	g.onDown = func(x, y int, b view.Button) {
		loop.Post(func() {
			syncCamera()
			orbit.DragStart(x, y, b)
			v.PointerDown(x, y)
		})
	}
	g.onMove = func(x, y int) {
		loop.Post(func() {
			orbit.Drag(x, y)
			syncCamera()
			v.PointerMove(x, y)
			updateCursor()
		})
	}
	g.onUp = func(x, y int) {
		loop.Post(func() {
			orbit.DragEnd(x, y)
			syncCamera()
			v.PointerUp(x, y)
			updateCursor()
		})
	}
	g.onCancel = func() {
		loop.Post(func() {
			orbit.DragCancel()
			v.PointerCancel()
			updateCursor()
		})
	}
	g.onWheel = func(d float64) {
		loop.Post(func() {
			orbit.Zoom(d)
		})
	}

	gl.Canvas.OnPointerDown(g.pointerDown)
	gl.Canvas.OnPointerMove(g.pointerMove)
	gl.Canvas.OnPointerUp(g.pointerUp)
	gl.Canvas.OnPointerOut(g.pointerUp)
	gl.Canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		loop.Post(func() {
			if d, ok := wheel.Normalize(e.DeltaY); ok {
				orbit.Zoom(d)
			}
		})
	})
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	gl.Canvas.OnKeyDown(func(e webgl.KeyboardEvent) {
		loop.Post(func() {
			switch e.Code {
			case "ArrowUp":
				orbit.Move(keyMoveStep*orbit.Distance, 0, 0)
			case "ArrowDown":
				orbit.Move(-keyMoveStep*orbit.Distance, 0, 0)
			case "ArrowLeft":
				orbit.Move(0, -keyMoveStep*orbit.Distance, 0)
			case "ArrowRight":
				orbit.Move(0, keyMoveStep*orbit.Distance, 0)
			case "Home":
				orbit.Reset()
			}
		})
	})
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		logger.Error("rendering stopped", zap.Error(errContextLostEvent))
		cancel()
	})

	js.Global().Set("loadPCD", promiseFunc(func(args []js.Value) (interface{}, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		path := args[0].String()
		loop.Post(func() { cur.Set(cursorWait) })
		defer loop.Post(func() { updateCursor() })

		b, err := fetchGet(ctx, path)
		if err != nil {
			return nil, err
		}
		opts := cfg.CloudOptions()
		opts.Logger = logger
		c, err := cloud.Load(bytes.NewReader(b), opts)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", path)
		}
		c.Name = path
		if !loop.Wait(func() {
			v.SetPointCloud(c)
			r.setCloud(c)
			orbit.Fit(c.Bounds())
		}) {
			return nil, errViewerStopped
		}
		return c.Len(), nil
	}))
	js.Global().Set("pcdConsole", promiseFunc(func(args []js.Value) (interface{}, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		var res string
		var err error
		if !loop.Wait(func() {
			res, err = con.Run(args[0].String())
		}) {
			return nil, errViewerStopped
		}
		return res, err
	}))

	tick := time.NewTicker(time.Second / time.Duration(cfg.Viewer.FrameRate))
	defer tick.Stop()

	err = loop.Run(ctx, tick.C, frameFunc{
		update: func(time.Time) {
			syncCamera()
			if m, updated := s.Marker(); updated {
				r.setMarker(m)
			}
		},
		render: func() {
			r.render(v.Camera(), s)
		},
	})
	logger.Info("viewer stopped", zap.Error(err))
}

type frameFunc struct {
	update func(time.Time)
	render func()
}

func (f frameFunc) Update(now time.Time) { f.update(now) }

func (f frameFunc) Render() { f.render() }

// loadConfig reads the YAML config from the global pcdinspectorConfig
// string. Defaults are used if it is not set.
func loadConfig() (*config.Config, error) {
	v := js.Global().Get("pcdinspectorConfig")
	if v.Type() != js.TypeString {
		return config.Default(), nil
	}
	return config.Load(strings.NewReader(v.String()))
}

// promiseFunc wraps fn into a JS function returning a Promise.
// fn runs on its own goroutine.
func promiseFunc(fn func(args []js.Value) (interface{}, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return js.Global().Get("Promise").New(
			js.FuncOf(func(this js.Value, pargs []js.Value) interface{} {
				resolve, reject := pargs[0], pargs[1]
				go func() {
					res, err := fn(args)
					if err != nil {
						reject.Invoke(errorToJS(err))
						return
					}
					resolve.Invoke(res)
				}()
				return nil
			}),
		)
	})
}
