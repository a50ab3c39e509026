package pick

import (
	"testing"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

type markerRecorder struct {
	markers []Marker
}

func (r *markerRecorder) UpdateMarker(m Marker) {
	r.markers = append(r.markers, m)
}

func (r *markerRecorder) last() Marker {
	return r.markers[len(r.markers)-1]
}

func TestFeedback(t *testing.T) {
	points := pc.Vec3Slice{{0, 0, 0}, {0, 0, 1}, {5, 5, 5}}
	origin := mat.Vec3{0, 0, -1}

	testCases := map[string]struct {
		ray       Ray
		threshold float32
		visible   bool
		position  mat.Vec3
		text      string
	}{
		"Nearest": {
			ray:       Ray{Origin: origin, Direction: mat.Vec3{0, 0, 1}},
			threshold: 1,
			visible:   true,
			position:  mat.Vec3{0, 0, 0},
			text:      "0.00, 0.00, 0.00",
		},
		"Far": {
			ray:       rayTo(origin, mat.Vec3{5, 5, 5}),
			threshold: 0.1,
			visible:   true,
			position:  mat.Vec3{5, 5, 5},
			text:      "5.00, 5.00, 5.00",
		},
		"Miss": {
			ray:       rayTo(origin, mat.Vec3{100, 100, 100}),
			threshold: 0.1,
			visible:   false,
			text:      "",
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			var marker markerRecorder
			text := "stale"
			f := Feedback{
				Marker: &marker,
				Text:   TextSinkFunc(func(s string) { text = s }),
			}
			f.Apply(Selector{Threshold: tt.threshold}.Select(tt.ray, points))

			if len(marker.markers) != 1 {
				t.Fatalf("Marker must be updated once, got %d", len(marker.markers))
			}
			m := marker.last()
			if m.Visible() != tt.visible {
				t.Fatalf("Expected marker visibility %v, got %v", tt.visible, m.Visible())
			}
			if tt.visible && m.Position != tt.position {
				t.Errorf("Expected marker at %v, got %v", tt.position, m.Position)
			}
			if text != tt.text {
				t.Errorf("Expected text %q, got %q", tt.text, text)
			}
		})
	}
}

func TestFeedback_NilSinks(t *testing.T) {
	f := Feedback{}
	f.Apply(Hit{Position: mat.Vec3{1, 2, 3}}, true)
	f.Clear()
}

func TestFeedback_Clear(t *testing.T) {
	var marker markerRecorder
	text := ""
	f := Feedback{
		Marker: &marker,
		Text:   TextSinkFunc(func(s string) { text = s }),
	}
	f.Apply(Hit{Position: mat.Vec3{1, 2, 3}}, true)
	if !marker.last().Visible() || text == "" {
		t.Fatal("Feedback must be shown")
	}
	f.Clear()
	if marker.last().Visible() {
		t.Error("Marker must be hidden")
	}
	if text != "" {
		t.Errorf("Text must be cleared, got %q", text)
	}
}

func TestFormatCoordinate(t *testing.T) {
	testCases := map[string]struct {
		p        mat.Vec3
		expected string
	}{
		"Zero":     {mat.Vec3{0, 0, 0}, "0.00, 0.00, 0.00"},
		"Rounding": {mat.Vec3{1.234, -5.678, 100.005}, "1.23, -5.68, 100.00"},
		"NegZero":  {mat.Vec3{-0.001, 0, -0.004}, "0.00, 0.00, 0.00"},
		"Large":    {mat.Vec3{12345.5, 0.5, -2}, "12345.50, 0.50, -2.00"},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if s := FormatCoordinate(tt.p); s != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, s)
			}
		})
	}
}
