package scale

import (
	"fmt"
	"math"
	"strconv"
)

// Unit selects how generated values are written out. It affects display
// formatting only; all interpolation math happens in pixel space.
type Unit int

const (
	UnitPx Unit = iota
	UnitRem
)

// rootFontSize is the browser default used for px→rem conversion.
const rootFontSize = 16.0

func (u Unit) String() string {
	if u == UnitRem {
		return "rem"
	}
	return "px"
}

// ParseUnit maps a storage key or CLI flag value to a Unit. The empty
// string reads as px so blobs written before the unit existed still load.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "px", "":
		return UnitPx, nil
	case "rem":
		return UnitRem, nil
	}
	return UnitPx, fmt.Errorf("unknown unit %q (want px or rem)", s)
}

// MarshalText stores units as "px"/"rem" in JSON and TOML blobs.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// PxToRem converts a pixel value to root-relative units.
func PxToRem(px float64) float64 {
	return px / rootFontSize
}

// FormatValue renders a pixel-space value in the target unit: integer
// pixels, or rem to exactly 3 decimal places.
func FormatValue(px float64, unit Unit) string {
	if unit == UnitRem {
		return strconv.FormatFloat(PxToRem(px), 'f', 3, 64) + "rem"
	}
	return strconv.Itoa(int(math.Round(px))) + "px"
}
