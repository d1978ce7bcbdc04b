package scale

import (
	"fmt"
	"strconv"
)

// BuildClamp produces the three-part CSS clamp() expression that
// interpolates linearly between (minViewport, minPx) and
// (maxViewport, maxPx).
//
// The interpolation line is computed in pixel space regardless of the
// output unit. The vw coefficient and the constant term are formatted
// to 4 decimal places; min/max follow FormatValue (integer px, 3-decimal
// rem). When the constant term formats to exactly zero it is omitted and
// only the vw term is emitted.
//
// The function is stateless: identical inputs produce byte-identical
// output.
func BuildClamp(minPx, maxPx float64, minViewport, maxViewport int, unit Unit) string {
	coeff := (maxPx - minPx) / float64(maxViewport-minViewport) * 100
	constant := minPx - coeff*float64(minViewport)/100

	if unit == UnitRem {
		constant = PxToRem(constant)
	}

	coeffStr := strconv.FormatFloat(coeff, 'f', 4, 64)
	constStr := strconv.FormatFloat(constant, 'f', 4, 64)

	minStr := FormatValue(minPx, unit)
	maxStr := FormatValue(maxPx, unit)

	if constStr == "0.0000" || constStr == "-0.0000" {
		return fmt.Sprintf("clamp(%s, %svw, %s)", minStr, coeffStr, maxStr)
	}
	return fmt.Sprintf("clamp(%s, %s%s + %svw, %s)", minStr, constStr, unit, coeffStr, maxStr)
}
