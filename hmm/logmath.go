package hmm

import "math"

var negInf = float32(math.Inf(-1))

// addLogs returns log(e^a + e^b) without leaving the log domain. A negative
// infinity operand is the additive identity (probability zero) and never
// yields NaN.
func addLogs(a, b float32) float32 {
	if a < b {
		a, b = b, a
	}
	if b == negInf {
		return a
	}
	return a + float32(math.Log1p(math.Exp(float64(b-a))))
}
