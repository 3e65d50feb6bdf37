package stereo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

const defaultMaxLag = 64

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// MaxLag bounds the delay search in samples.
	MaxLag int
}

// Option mutates a Config.
type Option func(*Config)

// WithMaxLag bounds the delay search to +-n samples.
func WithMaxLag(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxLag = n
		}
	}
}

// Result holds stereo image measurements.
type Result struct {
	// DelaySamples is positive when the left channel trails the right one.
	DelaySamples int
	DelaySeconds float64

	LeftPeak  float64
	RightPeak float64
	LeftRMS   float64
	RightRMS  float64

	// BalanceDB is the left/right energy ratio in dB; positive means left
	// is louder, 0 for silence.
	BalanceDB float64

	// Correlation is the normalized inter-channel correlation at
	// DelaySamples, in [-1, 1].
	Correlation float64
}

// EqualPowerPan returns the pan position in [-1, 1] an equal-power panner
// would need to produce the measured RMS levels. Silence maps to 0.
func (r Result) EqualPowerPan() float64 {
	if r.LeftRMS == 0 && r.RightRMS == 0 {
		return 0
	}

	t := math.Atan2(r.RightRMS, r.LeftRMS) / (math.Pi / 2)

	return core.Clamp(2*t-1, -1, 1)
}

// Analyze measures a stereo signal sampled at sampleRate.
func Analyze(left, right []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(left) == 0 || len(right) == 0 {
		return Result{}, ErrEmptyInput
	}

	if len(left) != len(right) {
		return Result{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(left), len(right))
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Result{}, fmt.Errorf("stereo: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := Config{SampleRate: sampleRate, MaxLag: defaultMaxLag}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	lag, err := EstimateDelay(left, right, cfg.MaxLag)
	if err != nil {
		return Result{}, err
	}

	n := float64(len(left))
	energyL := vecmath.DotProduct(left, left)
	energyR := vecmath.DotProduct(right, right)

	res := Result{
		DelaySamples: lag,
		DelaySeconds: float64(lag) / cfg.SampleRate,
		LeftPeak:     vecmath.MaxAbs(left),
		RightPeak:    vecmath.MaxAbs(right),
		LeftRMS:      math.Sqrt(energyL / n),
		RightRMS:     math.Sqrt(energyR / n),
		Correlation:  correlationAt(left, right, lag),
	}

	if energyL > 0 || energyR > 0 {
		res.BalanceDB = core.LinearPowerToDB(energyL / energyR)
	}

	return res, nil
}

// correlationAt returns the normalized correlation of left[i] with
// right[i-lag] over the overlapping region.
func correlationAt(left, right []float64, lag int) float64 {
	a, b := left, right
	if lag > 0 {
		a, b = left[lag:], right[:len(right)-lag]
	} else if lag < 0 {
		a, b = left[:len(left)+lag], right[-lag:]
	}

	ea := vecmath.DotProduct(a, a)
	eb := vecmath.DotProduct(b, b)

	if ea == 0 || eb == 0 {
		return 0
	}

	return core.Clamp(vecmath.DotProduct(a, b)/math.Sqrt(ea*eb), -1, 1)
}
