package view

import (
	"time"
)

const (
	binaryDetectCnt = 4
	initialMaxDelta = 10
)

type wheelType int

const (
	wheelTypeNone wheelType = iota
	wheelTypeBinary
	wheelTypeContinuous
)

// WheelNormalizer maps raw wheel deltas of different devices onto
// a common scale. Notched wheels give ±1 per event, continuous
// devices (touch pads) give a delta relative to their recent peak rate.
type WheelNormalizer struct {
	// Now returns current time. time.Now is used if nil.
	Now func() time.Time

	init     bool
	eventCnt int

	wheelType wheelType
	maxDelta  float64

	binaryCnt int
	binaryAbs float64

	timePrev time.Time
	dSum     float64
}

// Normalize returns the normalized delta. The second value is false
// until enough events are observed to classify the device.
func (n *WheelNormalizer) Normalize(d float64) (float64, bool) {
	if n.eventCnt > binaryDetectCnt {
		n.init = true
	} else {
		n.eventCnt++
	}

	dAbs := d
	if dAbs < 0 {
		dAbs = -d
	}
	if dAbs == 0 {
		return 0, n.init
	}

	if n.binaryAbs == dAbs {
		n.binaryCnt++
	} else {
		n.binaryCnt = 0
	}
	n.binaryAbs = dAbs

	typePrev := n.wheelType
	if n.binaryCnt > binaryDetectCnt {
		n.wheelType = wheelTypeBinary
	} else {
		n.wheelType = wheelTypeContinuous
	}
	if n.wheelType != typePrev {
		n.maxDelta = initialMaxDelta
	}

	now := n.now()
	dt := now.Sub(n.timePrev).Seconds()
	n.dSum += d
	if dt > 0 {
		if dt > 0.1 {
			dt = 0.1
		}
		dpsAbs := n.dSum / dt
		if dpsAbs < 0 {
			dpsAbs = -dpsAbs
		}
		n.dSum = 0
		n.timePrev = now

		if n.maxDelta < dpsAbs {
			// LPF to suppress spikes
			n.maxDelta = n.maxDelta*0.5 + dpsAbs*0.5
		}
		n.maxDelta *= 0.95
	}

	if n.maxDelta < 1 {
		n.maxDelta = 1
	}
	if n.wheelType == wheelTypeBinary {
		if d < 0 {
			return -1, n.init
		}
		return 1, n.init
	}
	return d * 250 / n.maxDelta, n.init
}

func (n *WheelNormalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}
