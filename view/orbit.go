// Package view implements the orbit camera controls.
package view

import (
	"math"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/pcdinspector/pick"
)

const (
	DefaultFov      = 40 * math.Pi / 180
	DefaultNear     = 0.1
	DefaultFar      = 100000.0
	DefaultDistance = 5.0
	MinDistance     = 0.01
	MaxDistance     = 10000.0

	rotateSpeed = 0.01
	panSpeed    = 0.002
	zoomSpeed   = 0.05
	pitchLimit  = math.Pi/2 - 0.01
	fitMargin   = 1.2
)

// Button is the mouse button starting a drag.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type pose struct {
	target     mat.Vec3
	yaw, pitch float64
	distance   float64
}

// Orbit is a camera orbiting around Target.
// Y axis is up. With zero Yaw and Pitch the camera looks toward -Z.
type Orbit struct {
	Fov, Near, Far float64

	Target     mat.Vec3
	Yaw, Pitch float64
	Distance   float64

	home pose

	drag0  *pose
	button Button
	x0, y0 int
}

func New() *Orbit {
	o := &Orbit{
		Fov:      DefaultFov,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Distance: DefaultDistance,
	}
	o.home = o.pose()
	return o
}

func (o *Orbit) pose() pose {
	return pose{target: o.Target, yaw: o.Yaw, pitch: o.Pitch, distance: o.Distance}
}

func (o *Orbit) setPose(p pose) {
	o.Target, o.Yaw, o.Pitch, o.Distance = p.target, p.yaw, p.pitch, p.distance
}

// Reset moves the camera back to the home position.
func (o *Orbit) Reset() {
	o.setPose(o.home)
	o.drag0 = nil
}

// SetHome stores the current position as the home position.
func (o *Orbit) SetHome() {
	o.home = o.pose()
}

// Fit aims the camera at the center of the bounding box and
// backs off until the whole box is in view. The result becomes the home position.
func (o *Orbit) Fit(min, max mat.Vec3) {
	o.Target = min.Add(max).Mul(0.5)
	radius := float64(max.Sub(min).Norm()) / 2
	d := fitMargin * radius / math.Sin(o.Fov/2)
	o.Yaw, o.Pitch = 0, 0
	o.Distance = clamp(d, MinDistance, MaxDistance)
	o.SetHome()
}

func (o *Orbit) Dragging() bool {
	return o.drag0 != nil
}

func (o *Orbit) DragStart(x, y int, b Button) {
	p := o.pose()
	o.drag0 = &p
	o.button = b
	o.x0, o.y0 = x, y
}

func (o *Orbit) DragEnd(x, y int) {
	if o.drag0 == nil {
		return
	}
	o.Drag(x, y)
	o.drag0 = nil
}

// DragCancel stops dragging, keeping the current position.
func (o *Orbit) DragCancel() {
	o.drag0 = nil
}

// Drag rotates the camera by a left button drag and pans by the others.
func (o *Orbit) Drag(x, y int) {
	if o.drag0 == nil {
		return
	}
	xDiff := float64(x - o.x0)
	yDiff := float64(y - o.y0)
	switch o.button {
	case ButtonLeft:
		o.Yaw = math.Remainder(o.drag0.yaw-rotateSpeed*xDiff, 2*math.Pi)
		o.Pitch = clamp(o.drag0.pitch-rotateSpeed*yDiff, -pitchLimit, pitchLimit)
	default:
		inv := o.rotation().InvAffine()
		right := inv.TransformAffine(mat.Vec3{1, 0, 0})
		up := inv.TransformAffine(mat.Vec3{0, 1, 0})
		s := float32(o.drag0.distance * panSpeed)
		o.Target = o.drag0.target.
			Sub(right.Mul(float32(xDiff) * s)).
			Add(up.Mul(float32(yDiff) * s))
	}
}

// Zoom changes the distance to the target by a normalized wheel delta.
// Positive delta moves the camera away.
func (o *Orbit) Zoom(d float64) {
	o.Distance = clamp(o.Distance+d*o.Distance*zoomSpeed, MinDistance, MaxDistance)
}

// Move translates the target on the horizontal plane relative to the
// camera heading and turns the heading by dyaw.
func (o *Orbit) Move(forward, right, dyaw float64) {
	s, c := math.Sincos(o.Yaw)
	o.Target[0] += float32(c*right + s*forward)
	o.Target[2] += float32(s*right - c*forward)
	o.Yaw = math.Remainder(o.Yaw+dyaw, 2*math.Pi)
}

func (o *Orbit) rotation() mat.Mat4 {
	return mat.Rotate(1, 0, 0, float32(o.Pitch)).
		MulAffine(mat.Rotate(0, 1, 0, float32(o.Yaw)))
}

// View returns the world to eye transform.
func (o *Orbit) View() mat.Mat4 {
	return mat.Translate(0, 0, -float32(o.Distance)).
		MulAffine(o.rotation()).
		MulAffine(mat.Translate(-o.Target[0], -o.Target[1], -o.Target[2]))
}

func (o *Orbit) Projection(aspect float32) mat.Mat4 {
	return mat.Perspective(float32(o.Fov), aspect, float32(o.Near), float32(o.Far))
}

// Eye returns the camera position in world coordinates.
func (o *Orbit) Eye() mat.Vec3 {
	return o.View().InvAffine().TransformAffine(mat.Vec3{})
}

func (o *Orbit) Camera(vp pick.Viewport) pick.Camera {
	return pick.Camera{
		View:       o.View(),
		Projection: o.Projection(vp.Aspect()),
	}
}

func clamp(v, min, max float64) float64 {
	switch {
	case v < min:
		return min
	case v > max:
		return max
	}
	return v
}
