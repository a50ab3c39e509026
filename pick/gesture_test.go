package pick

import (
	"testing"
)

type gestureEvent struct {
	kind byte // 'd': down, 'm': move, 'u': up, 'c': cancel
	x, y int
}

func TestGesture(t *testing.T) {
	testCases := map[string]struct {
		tolerance int
		events    []gestureEvent
		clicks    []bool
		state     GestureState
	}{
		"Click": {
			events: []gestureEvent{{'d', 10, 10}, {'u', 10, 10}},
			clicks: []bool{true},
			state:  Idle,
		},
		"Drag": {
			events: []gestureEvent{{'d', 10, 10}, {'m', 11, 10}, {'u', 11, 10}},
			clicks: []bool{false},
			state:  Dragging,
		},
		"DragThenClick": {
			events: []gestureEvent{
				{'d', 10, 10}, {'m', 20, 20}, {'u', 20, 20},
				{'d', 20, 20}, {'u', 20, 20},
			},
			clicks: []bool{false, true},
			state:  Idle,
		},
		"HoverMoveThenClick": {
			events: []gestureEvent{{'m', 1, 1}, {'m', 2, 2}, {'d', 2, 2}, {'u', 2, 2}},
			clicks: []bool{true},
			state:  Idle,
		},
		"HoverMoveWithoutDown": {
			events: []gestureEvent{{'m', 1, 1}, {'u', 1, 1}},
			clicks: []bool{false},
			state:  Dragging,
		},
		"WithinTolerance": {
			tolerance: 3,
			events:    []gestureEvent{{'d', 10, 10}, {'m', 12, 8}, {'m', 13, 13}, {'u', 13, 13}},
			clicks:    []bool{true},
			state:     Idle,
		},
		"BeyondTolerance": {
			tolerance: 3,
			events:    []gestureEvent{{'d', 10, 10}, {'m', 12, 8}, {'m', 14, 10}, {'m', 10, 10}, {'u', 10, 10}},
			clicks:    []bool{false},
			state:     Dragging,
		},
		"Cancel": {
			events: []gestureEvent{{'d', 0, 0}, {'c', 0, 0}, {'m', 0, 0}},
			state:  Dragging,
		},
		"CancelThenClick": {
			events: []gestureEvent{{'d', 0, 0}, {'c', 0, 0}, {'d', 5, 5}, {'u', 5, 5}},
			clicks: []bool{true},
			state:  Idle,
		},
		"RepeatedClicks": {
			events: []gestureEvent{{'d', 0, 0}, {'u', 0, 0}, {'d', 0, 0}, {'u', 0, 0}},
			clicks: []bool{true, true},
			state:  Idle,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			g := Gesture{Tolerance: tt.tolerance}
			if g.State() != Idle {
				t.Fatalf("Initial state must be %s, got %s", Idle, g.State())
			}
			var clicks []bool
			for _, e := range tt.events {
				switch e.kind {
				case 'd':
					g.PointerDown(e.x, e.y)
					if g.State() != Idle {
						t.Fatalf("Pointer down must reset the state, got %s", g.State())
					}
					if !g.Pressed() {
						t.Fatal("Pointer must be pressed")
					}
				case 'm':
					g.PointerMove(e.x, e.y)
				case 'c':
					g.Cancel()
					if g.Pressed() || g.State() != Idle {
						t.Fatal("Cancel must release the pointer")
					}
				case 'u':
					clicks = append(clicks, g.PointerUp())
					if g.Pressed() {
						t.Fatal("Pointer must be released")
					}
				}
			}
			if len(clicks) != len(tt.clicks) {
				t.Fatalf("Expected %d pointer ups, got %d", len(tt.clicks), len(clicks))
			}
			for i := range clicks {
				if clicks[i] != tt.clicks[i] {
					t.Errorf("Pointer up %d: expected click %v, got %v", i, tt.clicks[i], clicks[i])
				}
			}
			if g.State() != tt.state {
				t.Errorf("Expected final state %s, got %s", tt.state, g.State())
			}
		})
	}
}

func TestGestureState_String(t *testing.T) {
	for s, expected := range map[GestureState]string{
		Idle:            "idle",
		Dragging:        "dragging",
		GestureState(5): "unknown",
	} {
		if str := s.String(); str != expected {
			t.Errorf("Expected %q, got %q", expected, str)
		}
	}
}
