// Package scene holds the render state shared by the viewer and the renderer.
package scene

import (
	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/pcdinspector/pick"
)

const (
	DefaultSize       = 1.5
	MinSize           = 0.01
	MaxSize           = 3.0
	DefaultCustomSize = 3.0
	MinCustomSize     = 1.0
	MaxCustomSize     = 15.0
	DefaultAxesLength = 1.0
)

// Points is the point layer state.
type Points struct {
	Visible      bool
	Material     Material
	Size         float32
	CustomSize   float32
	Color        mat.Vec3
	VertexColors bool
}

func DefaultPoints() Points {
	return Points{
		Visible:      true,
		Material:     Standard,
		Size:         DefaultSize,
		CustomSize:   DefaultCustomSize,
		Color:        mat.Vec3{1, 1, 1},
		VertexColors: true,
	}
}

// PointSize returns the point size in pixels for the active material.
func (p Points) PointSize() float32 {
	if p.Material == CustomShaded {
		return p.CustomSize
	}
	return p.Size
}

// UseVertexColors returns true if per-point colors replace the uniform color.
func (p Points) UseVertexColors(hasColors bool) bool {
	if !hasColors {
		return false
	}
	return p.VertexColors || p.Material == CustomShaded
}

// ClampSize limits v to the range of the standard point size.
func ClampSize(v float32) float32 {
	return clamp(v, MinSize, MaxSize)
}

// ClampCustomSize limits v to the range of the custom shaded point size.
func ClampCustomSize(v float32) float32 {
	return clamp(v, MinCustomSize, MaxCustomSize)
}

func clamp(v, min, max float32) float32 {
	switch {
	case v < min:
		return min
	case v > max:
		return max
	}
	return v
}

type Axes struct {
	Visible bool
	Length  float32
}

// Scene is the render state. It implements pick.MarkerSink.
type Scene struct {
	Points Points
	Axes   Axes

	marker        pick.Marker
	markerUpdated bool
	pointsUpdated bool
}

func New() *Scene {
	return &Scene{
		Points: DefaultPoints(),
		Axes:   Axes{Visible: true, Length: DefaultAxesLength},
	}
}

func (s *Scene) UpdateMarker(m pick.Marker) {
	s.marker = m
	s.markerUpdated = true
}

// Marker returns the marker and whether it was updated since the last call.
func (s *Scene) Marker() (pick.Marker, bool) {
	updated := s.markerUpdated
	s.markerUpdated = false
	return s.marker, updated
}

// Pickable returns true if the point layer accepts picks.
// A hidden layer is not pickable.
func (s *Scene) Pickable() bool {
	return s.Points.Visible
}

func (s *Scene) SetPoints(p Points) {
	p.Size = ClampSize(p.Size)
	p.CustomSize = ClampCustomSize(p.CustomSize)
	s.Points = p
	s.pointsUpdated = true
}

// PointsUpdated returns true if the point layer changed since the last call.
func (s *Scene) PointsUpdated() bool {
	updated := s.pointsUpdated
	s.pointsUpdated = false
	return updated
}
