package provider

import "strconv"

// parseFloat tolerates the string-encoded numerics several providers use.
// Unparseable values become zero, which the calculators treat as missing.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
