package main

import (
	"math"
	"testing"
)

func TestBufferSize(t *testing.T) {
	testCases := map[string]struct {
		ratio float64
		w, h  int
	}{
		"Normal":   {ratio: 1, w: 640, h: 480},
		"HiDPI":    {ratio: 2, w: 1280, h: 960},
		"Zoomed":   {ratio: 1.25, w: 800, h: 600},
		"Zero":     {ratio: 0, w: 640, h: 480},
		"NaN":      {ratio: math.NaN(), w: 640, h: 480},
		"Inf":      {ratio: math.Inf(1), w: 640, h: 480},
		"Negative": {ratio: -2, w: 640, h: 480},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			w, h := bufferSize(640, 480, tt.ratio)
			if w != tt.w || h != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, w, h)
			}
		})
	}
}
