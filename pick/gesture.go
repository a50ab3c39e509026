package pick

// GestureState is the state of the click/drag classifier.
type GestureState int

const (
	Idle GestureState = iota
	Dragging
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Gesture tells a click from a drag on the canvas used for both
// camera orbiting and picking.
//
// Any pointer move turns the gesture into a drag. A pointer down resets it.
// A pointer up is a click only if no drag happened since the last down.
// Tolerance, in pixels, lets a pressed pointer jitter around its down
// position without starting a drag.
type Gesture struct {
	Tolerance int

	state   GestureState
	pressed bool
	x0, y0  int
}

func (g *Gesture) State() GestureState {
	return g.state
}

// Pressed reports whether a pointer is held down.
func (g *Gesture) Pressed() bool {
	return g.pressed
}

func (g *Gesture) PointerDown(x, y int) {
	g.state = Idle
	g.pressed = true
	g.x0, g.y0 = x, y
}

func (g *Gesture) PointerMove(x, y int) {
	if g.state == Dragging {
		return
	}
	if g.pressed && g.Tolerance > 0 &&
		abs(x-g.x0) <= g.Tolerance && abs(y-g.y0) <= g.Tolerance {
		return
	}
	g.state = Dragging
}

// PointerUp returns true if the gesture ending here is a click.
func (g *Gesture) PointerUp() bool {
	g.pressed = false
	return g.state != Dragging
}

// Cancel releases the pointer without a click.
func (g *Gesture) Cancel() {
	g.pressed = false
	g.state = Idle
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
