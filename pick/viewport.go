package pick

import (
	"github.com/seqsense/pcgol/mat"
)

// Camera is a snapshot of the transforms used to draw a frame.
type Camera struct {
	View       mat.Mat4 // world to eye
	Projection mat.Mat4 // eye to clip
}

// Viewport is the drawing area size in device pixels.
type Viewport struct {
	Width, Height int
}

// Pointer is a pointer position in normalized device coordinates.
type Pointer struct {
	X, Y float32
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

func (v Viewport) Aspect() float32 {
	if !v.Valid() {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// NDC converts a device pixel position, origin at the top-left corner,
// into normalized device coordinates.
// It returns false if the viewport has no area.
func (v Viewport) NDC(x, y int) (Pointer, bool) {
	if !v.Valid() {
		return Pointer{}, false
	}
	return Pointer{
		X: float32(x)*2/float32(v.Width) - 1,
		Y: 1 - float32(y)*2/float32(v.Height),
	}, true
}

// State holds the camera and the latest pointer sample.
type State struct {
	Camera   Camera
	Viewport Viewport

	pointer    Pointer
	hasPointer bool
}

// SetPointer records the latest pointer position given in device pixels.
// On a degenerate viewport the sample is dropped instead of keeping an
// outdated one.
func (s *State) SetPointer(x, y int) bool {
	p, ok := s.Viewport.NDC(x, y)
	s.pointer, s.hasPointer = p, ok
	return ok
}

func (s *State) Pointer() (Pointer, bool) {
	return s.pointer, s.hasPointer
}

// Ray returns the pick ray under the latest pointer sample.
func (s *State) Ray() (Ray, bool) {
	if !s.hasPointer {
		return Ray{}, false
	}
	return NewRay(s.Camera, s.pointer), true
}
