package protocol

import "math"

// QuantScale is the fixed-point factor for transform fields on the wire.
const QuantScale = 5

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Quantize converts a world value to its wire form.
func Quantize(v float64) float64 {
	return Round1(v) * QuantScale
}

// Dequantize converts a wire value back to world units.
func Dequantize(w float64) float64 {
	return w / QuantScale
}
