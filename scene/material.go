package scene

import (
	"strings"

	"github.com/pkg/errors"
)

// Material is the point layer material variant.
type Material int

const (
	// Standard draws square points of Points.Size pixels.
	Standard Material = iota
	// CustomShaded draws round points of Points.CustomSize pixels
	// colored by the vertex colors.
	CustomShaded
)

var errUnknownMaterial = errors.New("unknown material")

func (m Material) String() string {
	switch m {
	case Standard:
		return "standard"
	case CustomShaded:
		return "custom"
	}
	return "unknown"
}

// ParseMaterial parses the material name.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "none", "":
		return Standard, nil
	case "custom", "custom_shader", "custom_shaded":
		return CustomShaded, nil
	}
	return Standard, errors.Wrapf(errUnknownMaterial, "%q", s)
}

// RoundPoints returns true if fragments outside of the point radius are discarded.
func (m Material) RoundPoints() bool {
	return m == CustomShaded
}

func (m Material) MarshalText() ([]byte, error) {
	if m != Standard && m != CustomShaded {
		return nil, errors.Wrapf(errUnknownMaterial, "%d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Material) UnmarshalText(b []byte) error {
	v, err := ParseMaterial(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
