package main

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/seqsense/pcdinspector/config"
	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
	"github.com/seqsense/pcdinspector/view"
	"github.com/seqsense/pcdinspector/viewer"
)

type console struct {
	viewer *viewer.Viewer
	orbit  *view.Orbit
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

type consoleCommand func(c *console, args []string) ([]string, error)

var consoleCommands = map[string]consoleCommand{
	"point_size": func(c *console, args []string) ([]string, error) {
		return c.floatParam(args,
			func(p *scene.Points) *float32 { return &p.Size },
			scene.ClampSize,
		)
	},
	"custom_size": func(c *console, args []string) ([]string, error) {
		return c.floatParam(args,
			func(p *scene.Points) *float32 { return &p.CustomSize },
			scene.ClampCustomSize,
		)
	},
	"point_color": func(c *console, args []string) ([]string, error) {
		s := c.viewer.Scene()
		switch len(args) {
		case 0:
		case 1:
			col, err := config.ParseColor(args[0])
			if err != nil {
				return nil, err
			}
			p := s.Points
			p.Color = col
			s.SetPoints(p)
		default:
			return nil, errArgumentNumber
		}
		return []string{config.FormatColor(s.Points.Color)}, nil
	},
	"points_visible": func(c *console, args []string) ([]string, error) {
		s := c.viewer.Scene()
		return boolParam(args,
			func() bool { return s.Points.Visible },
			func(v bool) {
				p := s.Points
				p.Visible = v
				s.SetPoints(p)
			},
		)
	},
	"axes": func(c *console, args []string) ([]string, error) {
		s := c.viewer.Scene()
		return boolParam(args,
			func() bool { return s.Axes.Visible },
			func(v bool) { s.Axes.Visible = v },
		)
	},
	"material": func(c *console, args []string) ([]string, error) {
		s := c.viewer.Scene()
		switch len(args) {
		case 0:
		case 1:
			m, err := scene.ParseMaterial(args[0])
			if err != nil {
				return nil, err
			}
			p := s.Points
			p.Material = m
			s.SetPoints(p)
		default:
			return nil, errArgumentNumber
		}
		return []string{s.Points.Material.String()}, nil
	},
	"hover_threshold": func(c *console, args []string) ([]string, error) {
		return c.threshold(args, c.viewer.HoverThreshold, c.viewer.SetHoverThreshold)
	},
	"commit_threshold": func(c *console, args []string) ([]string, error) {
		return c.threshold(args, c.viewer.CommitThreshold, c.viewer.SetCommitThreshold)
	},
	"pick": func(c *console, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		p := c.viewer.Pick()
		if !p.OK {
			return []string{"no hit"}, nil
		}
		return []string{pick.FormatCoordinate(p.Position)}, nil
	},
	"last": func(c *console, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		p, ok := c.viewer.Last()
		if !ok {
			return []string{"no hit"}, nil
		}
		return []string{
			strconv.Itoa(p.Index) + " " + pick.FormatCoordinate(p.Position),
		}, nil
	},
	"camera_reset": func(c *console, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		c.orbit.Reset()
		return nil, nil
	},
}

func init() {
	// help refers consoleCommands, so it can't be in the initializer.
	consoleCommands["help"] = func(c *console, args []string) ([]string, error) {
		names := make([]string, 0, len(consoleCommands))
		for name := range consoleCommands {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c, args[1:])
	if err != nil {
		return "", errors.Wrap(err, args[0])
	}
	return strings.Join(res, "\n"), nil
}

func (c *console) floatParam(args []string, field func(*scene.Points) *float32, clamp func(float32) float32) ([]string, error) {
	s := c.viewer.Scene()
	switch len(args) {
	case 0:
	case 1:
		v, err := parseFloat(args[0])
		if err != nil {
			return nil, err
		}
		p := s.Points
		*field(&p) = clamp(v)
		s.SetPoints(p)
	default:
		return nil, errArgumentNumber
	}
	p := s.Points
	return []string{formatFloat(*field(&p))}, nil
}

func boolParam(args []string, get func() bool, set func(bool)) ([]string, error) {
	switch len(args) {
	case 0:
	case 1:
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return nil, err
		}
		set(v)
	default:
		return nil, errArgumentNumber
	}
	return []string{strconv.FormatBool(get())}, nil
}

func (c *console) threshold(args []string, get func() float32, set func(float32) error) ([]string, error) {
	switch len(args) {
	case 0:
	case 1:
		v, err := parseFloat(args[0])
		if err != nil {
			return nil, err
		}
		if err := set(v); err != nil {
			return nil, err
		}
	default:
		return nil, errArgumentNumber
	}
	return []string{formatFloat(get())}, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("non-finite value %s", s)
	}
	return float32(f), nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 3, 32)
}
