// Package viewer holds the application context of the inspector.
package viewer

import (
	"math"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"

	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
)

var errInvalidThreshold = errors.New("threshold must be finite and >=0")

type Options struct {
	Hover         pick.Selector
	Commit        pick.Selector
	DragTolerance int
	Text          pick.TextSink
	Logger        *zap.Logger
}

// Pick is a commit or hover result stamped with the point cloud
// generation it was computed against.
type Pick struct {
	pick.Hit
	OK         bool
	Generation uint64
}

// Viewer owns the point cloud, the camera and the picking state.
// It is not safe for concurrent use; drive it from a Loop.
type Viewer struct {
	scene      *scene.Scene
	cloud      pc.Vec3RandomAccessor
	generation uint64

	state    pick.State
	gesture  pick.Gesture
	hover    pick.Selector
	commit   pick.Selector
	feedback pick.Feedback

	last      Pick
	lastHover Pick
	onPick    []func(Pick)

	logger *zap.Logger
}

func New(s *scene.Scene, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{
		scene:   s,
		gesture: pick.Gesture{Tolerance: opts.DragTolerance},
		hover:   opts.Hover,
		commit:  opts.Commit,
		feedback: pick.Feedback{
			Marker: s,
			Text:   opts.Text,
		},
		logger: logger,
	}
}

func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// SetPointCloud swaps the active point cloud.
// Results computed against the previous cloud are dropped and the
// feedback is cleared.
func (v *Viewer) SetPointCloud(c pc.Vec3RandomAccessor) {
	v.cloud = c
	v.generation++
	v.last = Pick{}
	v.lastHover = Pick{}
	v.feedback.Clear()

	n := 0
	if c != nil {
		n = c.Len()
	}
	v.logger.Info("point cloud set",
		zap.Int("points", n),
		zap.Uint64("generation", v.generation),
	)
}

func (v *Viewer) PointCloud() pc.Vec3RandomAccessor {
	return v.cloud
}

func (v *Viewer) Generation() uint64 {
	return v.generation
}

func (v *Viewer) SetCamera(c pick.Camera) {
	v.state.Camera = c
}

func (v *Viewer) Camera() pick.Camera {
	return v.state.Camera
}

func (v *Viewer) SetViewport(vp pick.Viewport) {
	v.state.Viewport = vp
}

func (v *Viewer) Viewport() pick.Viewport {
	return v.state.Viewport
}

func (v *Viewer) GestureState() pick.GestureState {
	return v.gesture.State()
}

// PointerMove updates the pointer sample and runs the hover selector
// unless a button is held.
func (v *Viewer) PointerMove(x, y int) {
	v.state.SetPointer(x, y)
	v.gesture.PointerMove(x, y)
	if v.gesture.Pressed() {
		return
	}
	h, ok := v.selectAt(v.hover)
	v.lastHover = Pick{Hit: h, OK: ok, Generation: v.generation}
}

func (v *Viewer) PointerDown(x, y int) {
	v.state.SetPointer(x, y)
	v.gesture.PointerDown(x, y)
	v.lastHover = Pick{}
}

// PointerUp ends the gesture. It commits a pick and returns true
// if the gesture was a click.
func (v *Viewer) PointerUp(x, y int) (Pick, bool) {
	v.state.SetPointer(x, y)
	if !v.gesture.PointerUp() {
		return Pick{}, false
	}
	return v.Pick(), true
}

// PointerCancel aborts the gesture, e.g. when a multi-touch gesture starts.
func (v *Viewer) PointerCancel() {
	v.gesture.Cancel()
}

// Pick commits a pick at the current pointer sample.
// The pick is skipped when no pointer sample is available.
func (v *Viewer) Pick() Pick {
	if _, ok := v.state.Ray(); !ok {
		v.logger.Debug("pick skipped, no pointer sample")
		return Pick{Generation: v.generation}
	}
	h, ok := v.selectAt(v.commit)
	p := Pick{Hit: h, OK: ok, Generation: v.generation}
	v.last = p
	v.feedback.Apply(h, ok)

	if ok {
		v.logger.Info("picked",
			zap.Int("index", h.Index),
			zap.String("position", pick.FormatCoordinate(h.Position)),
			zap.Float32("distance", h.Distance),
		)
	} else {
		v.logger.Debug("no point picked")
	}
	for _, cb := range v.onPick {
		cb(p)
	}
	return p
}

func (v *Viewer) selectAt(s pick.Selector) (pick.Hit, bool) {
	if v.cloud == nil || !v.scene.Pickable() {
		return pick.Hit{}, false
	}
	r, ok := v.state.Ray()
	if !ok {
		return pick.Hit{}, false
	}
	return s.Select(r, v.cloud)
}

// Valid returns true if p was computed against the active point cloud.
func (v *Viewer) Valid(p Pick) bool {
	return p.Generation == v.generation
}

// Last returns the last committed hit if it is still valid.
func (v *Viewer) Last() (Pick, bool) {
	if !v.last.OK || !v.Valid(v.last) {
		return Pick{}, false
	}
	return v.last, true
}

// Hover returns the point under the pointer if it is still valid.
func (v *Viewer) Hover() (Pick, bool) {
	if !v.lastHover.OK || !v.Valid(v.lastHover) {
		return Pick{}, false
	}
	return v.lastHover, true
}

// OnPick registers a callback called on each committed pick.
func (v *Viewer) OnPick(cb func(Pick)) {
	v.onPick = append(v.onPick, cb)
}

func (v *Viewer) HoverThreshold() float32 {
	return v.hover.Threshold
}

func (v *Viewer) SetHoverThreshold(th float32) error {
	if !validThreshold(th) {
		return errInvalidThreshold
	}
	v.hover.Threshold = th
	return nil
}

func validThreshold(th float32) bool {
	return th >= 0 && !math.IsInf(float64(th), 1)
}

func (v *Viewer) CommitThreshold() float32 {
	return v.commit.Threshold
}

func (v *Viewer) SetCommitThreshold(th float32) error {
	if !validThreshold(th) {
		return errInvalidThreshold
	}
	v.commit.Threshold = th
	return nil
}
