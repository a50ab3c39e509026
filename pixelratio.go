package main

import (
	"math"
)

const markerSize = 9

// bufferSize returns the drawing buffer size for a canvas of w x h CSS pixels.
// Invalid ratios are treated as 1.
func bufferSize(w, h int, ratio float64) (int, int) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	return int(math.Round(float64(w) * ratio)), int(math.Round(float64(h) * ratio))
}
