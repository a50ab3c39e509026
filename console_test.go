package main

import (
	"testing"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
	"github.com/seqsense/pcdinspector/view"
	"github.com/seqsense/pcdinspector/viewer"
)

const helpOutput = `axes
camera_reset
commit_threshold
custom_size
help
hover_threshold
last
material
pick
point_color
point_size
points_visible`

func newTestConsole() *console {
	v := viewer.New(scene.New(), viewer.Options{
		Hover:  pick.Selector{Threshold: 0.05},
		Commit: pick.Selector{Threshold: 0.005},
	})
	v.SetViewport(pick.Viewport{Width: 200, Height: 200})
	v.SetCamera(pick.Camera{
		View:       mat.Translate(0, 0, -10),
		Projection: mat.Perspective(1.57, 1, 1, 100),
	})
	return &console{viewer: v, orbit: view.New()}
}

func TestConsole_Run(t *testing.T) {
	testCases := map[string]struct {
		lines    []string
		expected string
		err      bool
	}{
		"Empty": {
			lines:    []string{""},
			expected: "",
		},
		"Invalid": {
			lines: []string{"foo"},
			err:   true,
		},
		"Help": {
			lines:    []string{"help"},
			expected: helpOutput,
		},
		"PointSize": {
			lines:    []string{"point_size 2"},
			expected: "2.000",
		},
		"PointSizeClamped": {
			lines:    []string{"point_size 100"},
			expected: "3.000",
		},
		"PointSizeGet": {
			lines:    []string{"point_size"},
			expected: "1.500",
		},
		"PointSizeArgs": {
			lines: []string{"point_size 1 2"},
			err:   true,
		},
		"PointSizeNotNumber": {
			lines: []string{"point_size abc"},
			err:   true,
		},
		"PointSizeNaN": {
			lines: []string{"point_size NaN"},
			err:   true,
		},
		"CustomSize": {
			lines:    []string{"custom_size 0"},
			expected: "1.000",
		},
		"PointColor": {
			lines:    []string{"point_color #ff0000"},
			expected: "#ff0000",
		},
		"PointColorInvalid": {
			lines: []string{"point_color red"},
			err:   true,
		},
		"Material": {
			lines:    []string{"material custom"},
			expected: "custom",
		},
		"MaterialInvalid": {
			lines: []string{"material glass"},
			err:   true,
		},
		"PointsVisible": {
			lines:    []string{"points_visible false"},
			expected: "false",
		},
		"Axes": {
			lines:    []string{"axes true", "axes"},
			expected: "true",
		},
		"HoverThreshold": {
			lines:    []string{"hover_threshold 0.1"},
			expected: "0.100",
		},
		"CommitThresholdNegative": {
			lines: []string{"commit_threshold -1"},
			err:   true,
		},
		"CommitThresholdNaN": {
			lines: []string{"commit_threshold NaN"},
			err:   true,
		},
		"HoverThresholdInf": {
			lines: []string{"hover_threshold +Inf"},
			err:   true,
		},
		"LastEmpty": {
			lines:    []string{"last"},
			expected: "no hit",
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c := newTestConsole()
			var res string
			var err error
			for _, l := range tt.lines {
				res, err = c.Run(l)
			}
			if tt.err {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, res)
			}
		})
	}
}

func TestConsole_Pick(t *testing.T) {
	c := newTestConsole()
	c.viewer.SetPointCloud(pc.Vec3Slice{{0, 0, 0}, {0, 0, 1}})

	if res, err := c.Run("pick"); err != nil || res != "no hit" {
		t.Errorf("Pick without pointer must miss, got %q %v", res, err)
	}

	c.viewer.PointerMove(100, 100)
	res, err := c.Run("pick")
	if err != nil {
		t.Fatal(err)
	}
	if res != "0.00, 0.00, 1.00" {
		t.Errorf("Expected %q, got %q", "0.00, 0.00, 1.00", res)
	}
	res, err = c.Run("last")
	if err != nil {
		t.Fatal(err)
	}
	if res != "1 0.00, 0.00, 1.00" {
		t.Errorf("Expected %q, got %q", "1 0.00, 0.00, 1.00", res)
	}

	c.Run("points_visible false")
	if res, _ := c.Run("pick"); res != "no hit" {
		t.Errorf("Hidden points must not be picked, got %q", res)
	}
}

func TestConsole_CameraReset(t *testing.T) {
	c := newTestConsole()
	d := c.orbit.Distance
	c.orbit.Zoom(10)
	if c.orbit.Distance == d {
		t.Fatal("Zoom must change distance")
	}
	if _, err := c.Run("camera_reset"); err != nil {
		t.Fatal(err)
	}
	if c.orbit.Distance != d {
		t.Errorf("Expected %f, got %f", d, c.orbit.Distance)
	}
}
