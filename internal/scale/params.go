package scale

import "fmt"

// Floors applied when clamping invalid parameter input. There are no
// ceilings; only positivity and min<max ordering are enforced.
const (
	baseFloor     = 1.0
	viewportFloor = 1
	ratioFloor    = 0.1
)

// Parameters is the shared settings record driving every table's scale.
// Base values and viewports are pixel-denominated; the ratios are
// per-step multipliers applied at the min and max viewport edges.
type Parameters struct {
	MinBaseValue  float64 `json:"min_base_value" toml:"min_base_value"`
	MaxBaseValue  float64 `json:"max_base_value" toml:"max_base_value"`
	MinViewport   int     `json:"min_viewport" toml:"min_viewport"`
	MaxViewport   int     `json:"max_viewport" toml:"max_viewport"`
	MinScaleRatio float64 `json:"min_scale_ratio" toml:"min_scale_ratio"`
	MaxScaleRatio float64 `json:"max_scale_ratio" toml:"max_scale_ratio"`
	Unit          Unit    `json:"unit" toml:"unit"`
}

// DefaultParameters returns the seed settings: an 8–12px anchor across
// a 375–1620px viewport range with major-second / minor-third ratios.
func DefaultParameters() Parameters {
	return Parameters{
		MinBaseValue:  8,
		MaxBaseValue:  12,
		MinViewport:   375,
		MaxViewport:   1620,
		MinScaleRatio: 1.125,
		MaxScaleRatio: 1.200,
		Unit:          UnitPx,
	}
}

// Correction records one clamped parameter: the value the caller gave,
// the value that was applied instead, and a human-readable reason.
type Correction struct {
	Field   string
	Given   float64
	Applied float64
	Reason  string
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %g → %g (%s)", c.Field, c.Given, c.Applied, c.Reason)
}

// Normalize re-validates every numeric bound, clamping out-of-range
// input to the nearest valid boundary. Invalid values are corrected in
// place rather than rejected; each correction is reported back.
func (p *Parameters) Normalize() []Correction {
	var cs []Correction

	clampFloat := func(field string, v *float64, floor float64, reason string) {
		if *v < floor {
			cs = append(cs, Correction{Field: field, Given: *v, Applied: floor, Reason: reason})
			*v = floor
		}
	}

	clampFloat("min_base_value", &p.MinBaseValue, baseFloor, "base value must be positive")
	clampFloat("max_base_value", &p.MaxBaseValue, baseFloor, "base value must be positive")
	clampFloat("min_scale_ratio", &p.MinScaleRatio, ratioFloor, "scale ratio must be positive")
	clampFloat("max_scale_ratio", &p.MaxScaleRatio, ratioFloor, "scale ratio must be positive")

	if p.MinViewport < viewportFloor {
		cs = append(cs, Correction{Field: "min_viewport", Given: float64(p.MinViewport), Applied: viewportFloor, Reason: "viewport must be positive"})
		p.MinViewport = viewportFloor
	}
	if p.MaxViewport < viewportFloor {
		cs = append(cs, Correction{Field: "max_viewport", Given: float64(p.MaxViewport), Applied: viewportFloor, Reason: "viewport must be positive"})
		p.MaxViewport = viewportFloor
	}

	if p.MaxBaseValue <= p.MinBaseValue {
		applied := p.MinBaseValue + 1
		cs = append(cs, Correction{Field: "max_base_value", Given: p.MaxBaseValue, Applied: applied, Reason: "max base value must exceed min base value"})
		p.MaxBaseValue = applied
	}
	if p.MaxViewport <= p.MinViewport {
		applied := p.MinViewport + 1
		cs = append(cs, Correction{Field: "max_viewport", Given: float64(p.MaxViewport), Applied: float64(applied), Reason: "max viewport must exceed min viewport"})
		p.MaxViewport = applied
	}

	return cs
}
