// Package utils contains small shared math helpers.
package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns true if they are within
// epsilon of each other.
func Float64AlmostEqual(v, ov, epsilon float64) bool {
	return math.Abs(v-ov) <= epsilon
}
