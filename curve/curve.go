// Package curve provides easing functions mapping normalized time in [0,1]
// to a normalized progress value, plus a process-wide registry so transition
// specs can refer to curves by name.
package curve

import "math"

// Func maps normalized time t in [0,1] to normalized progress. Progress is
// usually in [0,1] but may overshoot (e.g. spring curves).
type Func func(t float64) float64

// Linear progresses uniformly.
func Linear(t float64) float64 {
	return t
}

// Flat never progresses. It is the curve behind pure delays: time must
// elapse, but the value provably does not move.
func Flat(_ float64) float64 {
	return 0
}

// EaseIn accelerates from rest.
func EaseIn(t float64) float64 {
	return t * t
}

// EaseOut decelerates to rest.
func EaseOut(t float64) float64 {
	return t * (2 - t)
}

// EaseInOut accelerates, then decelerates.
func EaseInOut(t float64) float64 {
	if t <= 0.5 {
		return 2 * t * t
	}

	return -2*t*t + 4*t - 1
}

// OutBounce overshoots slightly before settling.
func OutBounce(t float64) float64 {
	return t * (3 - 2*t)
}

// Spring oscillates around the target with decaying amplitude.
func Spring(t float64) float64 {
	return (1-t)*math.Sin(6*math.Pi*t) + t
}
