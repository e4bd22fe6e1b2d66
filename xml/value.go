package xml

import (
	"math"
	"strconv"
)

// FormatFloat renders a float as XML schema character data. Finite values
// use fixed notation in the range [1e-6, 1e21) and scientific notation
// outside it; the special values render as NaN, INF and -INF.
func FormatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	}
	return string(appendFloat(nil, v, bits))
}

// appendFloat encodes a finite float value as per the stdlib xml encoder.
func appendFloat(dst []byte, v float64, bits int) []byte {
	abs := math.Abs(v)
	fmt := byte('f')

	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmt = 'e'
		}
	}

	dst = strconv.AppendFloat(dst, v, fmt, -1, bits)

	if fmt == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}

	return dst
}
