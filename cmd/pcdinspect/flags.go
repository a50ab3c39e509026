package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
)

// vec3Value is a pflag.Value parsing "x,y,z".
type vec3Value struct {
	v   *mat.Vec3
	set bool
}

func newVec3Value(v *mat.Vec3) *vec3Value {
	return &vec3Value{v: v}
}

func (f *vec3Value) String() string {
	if f.v == nil {
		return ""
	}
	s := make([]string, 3)
	for i, e := range f.v {
		s[i] = strconv.FormatFloat(float64(e), 'g', -1, 32)
	}
	return strings.Join(s, ",")
}

func (f *vec3Value) Set(s string) error {
	v, err := parseVec3(s)
	if err != nil {
		return err
	}
	*f.v = v
	f.set = true
	return nil
}

func (f *vec3Value) Type() string {
	return "x,y,z"
}

func parseVec3(s string) (mat.Vec3, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return mat.Vec3{}, errors.Errorf("expected x,y,z, got %q", s)
	}
	var v mat.Vec3
	for i, f := range fields {
		e, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return mat.Vec3{}, errors.Wrapf(err, "parsing %q", s)
		}
		v[i] = float32(e)
	}
	return v, nil
}
