package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

// PanLaw selects the curve mapping a pan position to a pair of channel gains.
type PanLaw int

const (
	// PanLawEqualPower keeps left² + right² = 1 across the pan range.
	PanLawEqualPower PanLaw = iota
	// PanLawLinear is a plain crossfade. Loudness dips by 6 dB at center.
	PanLawLinear
	// PanLawSmoothStep eases in and out of the extremes (cubic Hermite S-curve).
	PanLawSmoothStep
	// PanLawExponential shapes the crossfade with t^1.7, biasing the
	// transition toward the right end.
	PanLawExponential
)

const exponentialPanExponent = 1.7

var panLawNames = [...]string{
	PanLawEqualPower:  "equal-power",
	PanLawLinear:      "linear",
	PanLawSmoothStep:  "smoothstep",
	PanLawExponential: "exponential",
}

// PanLaws returns every supported pan law in declaration order.
func PanLaws() []PanLaw {
	return []PanLaw{PanLawEqualPower, PanLawLinear, PanLawSmoothStep, PanLawExponential}
}

// Valid reports whether l is one of the declared pan laws.
func (l PanLaw) Valid() bool {
	return l >= PanLawEqualPower && l <= PanLawExponential
}

func (l PanLaw) String() string {
	if !l.Valid() {
		return fmt.Sprintf("PanLaw(%d)", int(l))
	}
	return panLawNames[l]
}

// ParsePanLaw returns the pan law with the given name. Matching ignores case
// and accepts "_" or " " in place of "-".
func ParsePanLaw(name string) (PanLaw, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	if key == "equalpower" {
		key = "equal-power"
	}
	for _, l := range PanLaws() {
		if panLawNames[l] == key {
			return l, nil
		}
	}
	return PanLawEqualPower, fmt.Errorf("spatial: unknown pan law %q", name)
}

// Gains maps t in [0, 1] (0 = hard left, 1 = hard right) to left and right
// channel gains. Unknown laws fall back to equal power. t is not clamped.
func Gains(t float64, law PanLaw) (left, right float64) {
	switch law {
	case PanLawLinear:
		return 1 - t, t
	case PanLawSmoothStep:
		s := t * t * (3 - 2*t)
		return 1 - s, s
	case PanLawExponential:
		s := math.Pow(t, exponentialPanExponent)
		return 1 - s, s
	default:
		angle := t * math.Pi / 2
		return math.Cos(angle), math.Sin(angle)
	}
}

// PanToT maps a pan control in [-1, 1] to the normalized position t in
// [0, 1] consumed by Gains. Out-of-range and NaN pan values are clamped.
func PanToT(pan float64) float64 {
	pan = core.Clamp(pan, -1, 1)
	return core.Clamp(0.5*(pan+1), 0, 1)
}
