package main

import (
	"syscall/js"
)

type cursor string

const (
	cursorDefault   cursor = "default"
	cursorCrosshair cursor = "crosshair"
	cursorMove      cursor = "move"
	cursorWait      cursor = "wait"
)

type cursorSetter struct {
	canvas js.Value
	cur    cursor
}

func (c *cursorSetter) Set(cur cursor) {
	if c.cur == cur {
		return
	}
	c.cur = cur
	c.canvas.Get("style").Set("cursor", string(cur))
}
