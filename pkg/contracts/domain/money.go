package domain

// RoundDiv is the single rounding policy used at every division point in the
// pipeline, including the report's write-time average. It returns 0 when
// either operand is non-positive; otherwise it returns the nearest integer to
// n/d using round-half-up on a positive numerator.
func RoundDiv(n, d int64) int64 {
	if n <= 0 || d <= 0 {
		return 0
	}
	return (n + d/2) / d
}

// Clamp bounds v to the inclusive range [low, high].
func Clamp(v, low, high int64) int64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
