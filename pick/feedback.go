package pick

import (
	"strconv"
	"strings"

	"github.com/seqsense/pcgol/mat"
)

// Marker is the picked point indicator drawn in the scene.
type Marker struct {
	Position mat.Vec3
	Opacity  float32
}

func (m Marker) Visible() bool {
	return m.Opacity > 0
}

// MarkerSink receives marker updates.
type MarkerSink interface {
	UpdateMarker(Marker)
}

// TextSink receives the coordinate text. An empty string clears it.
type TextSink interface {
	SetText(string)
}

// TextSinkFunc adapts a function to TextSink.
type TextSinkFunc func(string)

func (f TextSinkFunc) SetText(s string) {
	f(s)
}

// Feedback shows a pick result on the marker and the coordinate text.
// Nil sinks are skipped.
type Feedback struct {
	Marker MarkerSink
	Text   TextSink
}

func (f *Feedback) Apply(h Hit, ok bool) {
	if !ok {
		f.Clear()
		return
	}
	if f.Marker != nil {
		f.Marker.UpdateMarker(Marker{Position: h.Position, Opacity: 1})
	}
	if f.Text != nil {
		f.Text.SetText(FormatCoordinate(h.Position))
	}
}

// Clear hides the marker and clears the coordinate text.
func (f *Feedback) Clear() {
	if f.Marker != nil {
		f.Marker.UpdateMarker(Marker{})
	}
	if f.Text != nil {
		f.Text.SetText("")
	}
}

// FormatCoordinate formats p as "x, y, z" with two decimals per axis.
func FormatCoordinate(p mat.Vec3) string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = strconv.FormatFloat(float64(v), 'f', 2, 32)
		if s[i] == "-0.00" {
			s[i] = "0.00"
		}
	}
	return strings.Join(s, ", ")
}
