package main

import (
	"math"

	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/pcdinspector/view"
)

type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureRotate
	gestureWheel
	gestureMove
)

// gesture translates pointer events, including multi-touch, into
// drag and zoom callbacks.
type gesture struct {
	pointers map[int]webgl.PointerEvent
	pointer0 webgl.PointerEvent

	onDown   func(x, y int, b view.Button)
	onMove   func(x, y int)
	onUp     func(x, y int)
	onCancel func()
	onWheel  func(d float64)

	mode      gestureMode
	distance0 float64
}

func newGesture() *gesture {
	return &gesture{pointers: make(map[int]webgl.PointerEvent)}
}

func pointerButton(b webgl.MouseButton) view.Button {
	switch b {
	case 1:
		return view.ButtonMiddle
	case 2:
		return view.ButtonRight
	}
	return view.ButtonLeft
}

func (g *gesture) pointerDistance() float64 {
	var pp []webgl.PointerEvent
	for id := range g.pointers {
		pp = append(pp, g.pointers[id])
		if len(pp) == 2 {
			break
		}
	}
	return math.Hypot(float64(pp[0].OffsetX-pp[1].OffsetX), float64(pp[0].OffsetY-pp[1].OffsetY))
}

func (g *gesture) pointerDown(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	g.pointers[e.PointerId] = e

	switch len(g.pointers) {
	case 1:
		g.pointer0 = e
		g.mode = gestureRotate
		g.onDown(e.OffsetX, e.OffsetY, pointerButton(e.Button))
	case 2:
		if g.mode == gestureRotate {
			g.onCancel()
		}
		g.mode = gestureWheel
		g.distance0 = g.pointerDistance()
	case 3:
		g.mode = gestureMove
		g.onDown(g.pointer0.OffsetX, g.pointer0.OffsetY, view.ButtonMiddle)
	}
}

func (g *gesture) pointerMove(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if _, ok := g.pointers[e.PointerId]; !ok {
		if len(g.pointers) == 0 && e.IsPrimary {
			g.onMove(e.OffsetX, e.OffsetY)
		}
		return
	}
	g.pointers[e.PointerId] = e

	switch g.mode {
	case gestureRotate, gestureMove:
		if e.IsPrimary {
			g.onMove(e.OffsetX, e.OffsetY)
		}
	case gestureWheel:
		if len(g.pointers) != 2 {
			break
		}
		d := g.pointerDistance()
		g.onWheel((g.distance0 - d) / 10)
		g.distance0 = d
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
}

func (g *gesture) pointerUp(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if _, ok := g.pointers[e.PointerId]; !ok {
		return
	}
	delete(g.pointers, e.PointerId)
	if e.IsPrimary {
		g.pointer0 = e
	}
	if len(g.pointers) > 0 {
		if g.mode == gestureMove {
			g.onCancel()
			g.mode = gestureNone
		}
		return
	}
	switch g.mode {
	case gestureRotate, gestureMove:
		g.onUp(g.pointer0.OffsetX, g.pointer0.OffsetY)
	}
	g.mode = gestureNone
}
