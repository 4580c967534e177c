package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CeilDiv divides rounding up. The divisor must be positive.
func CeilDiv(n, d int) int {
	return (n + d - 1) / d
}
