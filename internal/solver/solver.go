package solver

import (
	"time"
)

// Func is a continuous scalar function of time (an altitude, a phase angle
// offset, ...).
type Func func(t time.Time) float64

// EventType describes which direction of crossing we are looking for.
type EventType int

const (
	// CrossingUp means the value is increasing through the target.
	CrossingUp EventType = iota
	// CrossingDown means the value is decreasing through the target.
	CrossingDown
)

// Result holds the output of an event search.
type Result struct {
	Time time.Time // approximate time of the event
	OK   bool      // true if an event was found
}

// FindEvent searches for the first time in [start, end] where f crosses
// target in the direction specified by eventType.
// It uses a simple bracket-then-bisect strategy: steps evenly spaced samples
// locate a bracket, then bisection narrows it down to tol.
func FindEvent(f Func, start, end time.Time, target float64, eventType EventType, steps int, tol time.Duration) Result {
	if !start.Before(end) {
		return Result{OK: false}
	}
	if steps < 2 {
		steps = 2
	}

	interval := end.Sub(start) / time.Duration(steps-1)

	var (
		prevT   = start
		prevVal = f(prevT) - target
	)

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		val := f(t) - target

		if hasCrossing(prevVal, val, eventType) {
			// We have a bracket [prevT, t]
			return bisect(f, prevT, t, target, eventType, tol)
		}

		prevT, prevVal = t, val
	}

	return Result{OK: false}
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		// Generic sign change
		return a1*a2 <= 0
	}
}

func bisect(f Func, a, b time.Time, target float64, eventType EventType, tol time.Duration) Result {
	var (
		valA = f(a) - target
		valB = f(b) - target
	)

	// Simple safety check
	if !hasCrossing(valA, valB, eventType) {
		return Result{OK: false}
	}

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		valM := f(mid) - target

		if hasCrossing(valA, valM, eventType) {
			b = mid
		} else {
			a = mid
			valA = valM
		}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}
}
