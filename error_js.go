package main

import (
	"syscall/js"

	"github.com/pkg/errors"
)

var errContextLostEvent = errors.New("received context lost event")
var errViewerStopped = errors.New("viewer stopped")

func errorToJS(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
