// Package config reads the inspector configuration.
package config

import (
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
	"github.com/seqsense/pcdinspector/view"
)

const (
	DefaultHoverThreshold  = 0.05
	DefaultCommitThreshold = 0.005
	DefaultFrameRate       = 30
)

type Config struct {
	Pick   Pick   `yaml:"pick"`
	Camera Camera `yaml:"camera"`
	Points Points `yaml:"points"`
	Loader Loader `yaml:"loader"`
	Viewer Viewer `yaml:"viewer"`
}

// Pick configures the point selectors.
// Thresholds are distances from the ray in world units, or per unit
// distance along the ray if ScaleThreshold is set.
type Pick struct {
	HoverThreshold  float32 `yaml:"hover_threshold"`
	CommitThreshold float32 `yaml:"commit_threshold"`
	ScaleThreshold  bool    `yaml:"scale_threshold"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	DragTolerance   int     `yaml:"drag_tolerance"`
}

type Camera struct {
	Fov      float64 `yaml:"fov"` // degrees
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
}

type Points struct {
	Visible      bool           `yaml:"visible"`
	Material     scene.Material `yaml:"material"`
	Size         float32        `yaml:"size"`
	CustomSize   float32        `yaml:"custom_size"`
	Color        string         `yaml:"color"`
	VertexColors bool           `yaml:"vertex_colors"`
}

type Loader struct {
	VoxelSize float32 `yaml:"voxel_size"`
	Center    bool    `yaml:"center"`
	FlipX     bool    `yaml:"flip_x"`
}

type Viewer struct {
	FrameRate int  `yaml:"frame_rate"`
	Axes      bool `yaml:"axes"`
}

func Default() *Config {
	return &Config{
		Pick: Pick{
			HoverThreshold:  DefaultHoverThreshold,
			CommitThreshold: DefaultCommitThreshold,
		},
		Camera: Camera{
			Fov:      view.DefaultFov * 180 / math.Pi,
			Near:     view.DefaultNear,
			Far:      view.DefaultFar,
			Distance: view.DefaultDistance,
		},
		Points: Points{
			Visible:      true,
			Material:     scene.Standard,
			Size:         scene.DefaultSize,
			CustomSize:   scene.DefaultCustomSize,
			Color:        "#ffffff",
			VertexColors: true,
		},
		Loader: Loader{
			Center: true,
			FlipX:  true,
		},
		Viewer: Viewer{
			FrameRate: DefaultFrameRate,
			Axes:      true,
		},
	}
}

// Load reads YAML configuration. Missing keys keep their default values
// and unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadFile(path string) (c *Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	c, err = Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return c, nil
}

// Validate returns all the problems found.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			err = multierr.Append(err, errors.Errorf(format, args...))
		}
	}
	check(c.Pick.HoverThreshold >= 0, "pick.hover_threshold must be >=0, got %v", c.Pick.HoverThreshold)
	check(c.Pick.CommitThreshold >= 0, "pick.commit_threshold must be >=0, got %v", c.Pick.CommitThreshold)
	check(c.Pick.Near >= 0, "pick.near must be >=0, got %v", c.Pick.Near)
	check(c.Pick.Far == 0 || c.Pick.Far > c.Pick.Near, "pick.far must be 0 or >pick.near, got %v", c.Pick.Far)
	check(c.Pick.DragTolerance >= 0, "pick.drag_tolerance must be >=0, got %v", c.Pick.DragTolerance)

	check(0 < c.Camera.Fov && c.Camera.Fov < 180, "camera.fov must be in (0, 180), got %v", c.Camera.Fov)
	check(c.Camera.Near > 0, "camera.near must be >0, got %v", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far must be >camera.near, got %v", c.Camera.Far)
	check(c.Camera.Distance > 0, "camera.distance must be >0, got %v", c.Camera.Distance)

	check(c.Points.Size > 0, "points.size must be >0, got %v", c.Points.Size)
	check(c.Points.CustomSize > 0, "points.custom_size must be >0, got %v", c.Points.CustomSize)
	if _, e := ParseColor(c.Points.Color); e != nil {
		err = multierr.Append(err, errors.Wrap(e, "points.color"))
	}

	check(c.Loader.VoxelSize >= 0, "loader.voxel_size must be >=0, got %v", c.Loader.VoxelSize)
	check(c.Viewer.FrameRate > 0, "viewer.frame_rate must be >0, got %v", c.Viewer.FrameRate)
	return err
}

func (c *Config) HoverSelector() pick.Selector {
	return pick.Selector{
		Threshold: c.Pick.HoverThreshold,
		Near:      c.Pick.Near,
		Far:       c.Pick.Far,
		Scaled:    c.Pick.ScaleThreshold,
	}
}

func (c *Config) CommitSelector() pick.Selector {
	return pick.Selector{
		Threshold: c.Pick.CommitThreshold,
		Near:      c.Pick.Near,
		Far:       c.Pick.Far,
		Scaled:    c.Pick.ScaleThreshold,
	}
}

// ScenePoints returns the point layer state.
func (c *Config) ScenePoints() (scene.Points, error) {
	col, err := ParseColor(c.Points.Color)
	if err != nil {
		return scene.Points{}, err
	}
	return scene.Points{
		Visible:      c.Points.Visible,
		Material:     c.Points.Material,
		Size:         scene.ClampSize(c.Points.Size),
		CustomSize:   scene.ClampCustomSize(c.Points.CustomSize),
		Color:        col,
		VertexColors: c.Points.VertexColors,
	}, nil
}

func (c *Config) CloudOptions() cloud.Options {
	opts := cloud.Options{
		VoxelSize: c.Loader.VoxelSize,
		Center:    c.Loader.Center,
	}
	if c.Loader.FlipX {
		opts.RotateX = math.Pi
	}
	return opts
}

// Orbit returns the camera controls.
func (c *Config) Orbit() *view.Orbit {
	o := view.New()
	o.Fov = c.Camera.Fov * math.Pi / 180
	o.Near = c.Camera.Near
	o.Far = c.Camera.Far
	o.Distance = c.Camera.Distance
	o.SetHome()
	return o
}

// ParseColor parses a hex color like "#ff8000" into RGB in [0, 1].
func ParseColor(s string) (mat.Vec3, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return mat.Vec3{}, errors.Wrapf(err, "invalid color %q", s)
	}
	return mat.Vec3{float32(col.R), float32(col.G), float32(col.B)}, nil
}

// FormatColor formats RGB in [0, 1] as a hex color.
func FormatColor(v mat.Vec3) string {
	return colorful.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2])}.Clamped().Hex()
}
