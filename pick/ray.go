package pick

import (
	"github.com/seqsense/pcgol/mat"
)

// Ray is a half line starting at Origin. Direction has unit length.
type Ray struct {
	Origin    mat.Vec3
	Direction mat.Vec3
}

// NewRay unprojects the pointer on the near and the far clip planes
// and returns the ray passing through both points.
// The camera must be invertible.
func NewRay(cam Camera, p Pointer) Ray {
	inv := cam.Projection.Mul(cam.View).Inv()
	near := unproject(inv, mat.NewVec3(p.X, p.Y, -1))
	far := unproject(inv, mat.NewVec3(p.X, p.Y, 1))
	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalized(),
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mat.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// unproject applies column-major m to (v, 1) including the homogeneous divide.
func unproject(m mat.Mat4, v mat.Vec3) mat.Vec3 {
	var out [4]float32
	for i := range out {
		out[i] = m[4*0+i]*v[0] + m[4*1+i]*v[1] + m[4*2+i]*v[2] + m[4*3+i]
	}
	if out[3] == 0 {
		return mat.NewVec3(out[0], out[1], out[2])
	}
	return mat.NewVec3(out[0]/out[3], out[1]/out[3], out[2]/out[3])
}
