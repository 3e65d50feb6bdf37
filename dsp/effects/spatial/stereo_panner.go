package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

const (
	// DefaultStartFade is the fade-in length suggested for hosts that start
	// panners on live material.
	DefaultStartFade = 0.005

	maxStartFade = 0.1

	// Gain pairs closer than this are treated as unchanged across a block.
	gainEpsilon = 1e-8
)

// StereoPannerOption mutates stereo panner construction parameters.
type StereoPannerOption func(*stereoPannerConfig) error

type stereoPannerConfig struct {
	startFade float64
}

func defaultStereoPannerConfig() stereoPannerConfig {
	return stereoPannerConfig{startFade: 0}
}

// WithStartFade enables a linear fade-in of the given length in seconds,
// applied after every Reset. 0 disables the fade (default).
// Valid range: [0, 0.1].
func WithStartFade(seconds float64) StereoPannerOption {
	return func(cfg *stereoPannerConfig) error {
		if seconds < 0 || seconds > maxStartFade || math.IsNaN(seconds) {
			return fmt.Errorf("stereo panner start fade must be in [0, %g]: %f",
				maxStartFade, seconds)
		}

		cfg.startFade = seconds

		return nil
	}
}

// StereoPanner distributes a mono signal across two channels using a
// selectable pan law.
//
// Gains are evaluated at the pan position of the previous block and at the
// current one, then interpolated per sample across the block so a pan
// change never produces a gain step at a block boundary. When the pan is
// unchanged the gains are applied as constants.
//
// An optional start fade ramps the output up from silence after Reset,
// spanning as many blocks as needed.
//
// This processor is mono-in/stereo-out, real-time safe, and not thread-safe.
type StereoPanner struct {
	sampleRate float64
	startFade  float64

	lastPan       float64
	initialized   bool
	fadeTotal     int
	fadeRemaining int
}

// NewStereoPanner creates a stereo panner for the given sample rate.
func NewStereoPanner(sampleRate float64, opts ...StereoPannerOption) (*StereoPanner, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("stereo panner sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultStereoPannerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	p := &StereoPanner{
		sampleRate: sampleRate,
		startFade:  cfg.startFade,
	}
	p.Reset()

	return p, nil
}

// Process renders one block. left and right are zeroed first; if either
// length differs from len(in) they are left silent and panner state is not
// advanced.
func (p *StereoPanner) Process(in, left, right []float64, pan float64, law PanLaw) {
	core.Zero2(left, right)

	n := len(in)
	if n == 0 || len(left) != n || len(right) != n {
		return
	}

	current := core.Clamp(pan, -1, 1)

	leftStart, rightStart := Gains(PanToT(p.lastPan), law)
	leftEnd, rightEnd := Gains(PanToT(current), law)

	p.initialized = true

	if math.Abs(leftStart-leftEnd) <= gainEpsilon && math.Abs(rightStart-rightEnd) <= gainEpsilon {
		p.applyConstant(in, left, right, leftStart, rightStart)
	} else {
		p.applyRamp(in, left, right, leftStart, rightStart, leftEnd, rightEnd)
	}

	p.lastPan = current
}

func (p *StereoPanner) applyConstant(in, left, right []float64, gainL, gainR float64) {
	if p.fadeRemaining == 0 {
		vecmath.ScaleBlock(left, in, gainL)
		vecmath.ScaleBlock(right, in, gainR)
		return
	}

	for i, x := range in {
		f := p.nextFadeGain()
		left[i] = x * gainL * f
		right[i] = x * gainR * f
	}
}

func (p *StereoPanner) applyRamp(in, left, right []float64, leftStart, rightStart, leftEnd, rightEnd float64) {
	last := float64(len(in) - 1)

	for i, x := range in {
		alpha := 0.0
		if last > 0 {
			alpha = float64(i) / last
		}

		gainL := core.Lerp(leftStart, leftEnd, alpha)
		gainR := core.Lerp(rightStart, rightEnd, alpha)

		if p.fadeRemaining > 0 {
			f := p.nextFadeGain()
			gainL *= f
			gainR *= f
		}

		left[i] = x * gainL
		right[i] = x * gainR
	}
}

// nextFadeGain returns the fade multiplier for the next sample, rising
// linearly from 0, and consumes one sample of the fade window.
func (p *StereoPanner) nextFadeGain() float64 {
	if p.fadeRemaining <= 0 {
		return 1
	}

	g := float64(p.fadeTotal-p.fadeRemaining) / float64(p.fadeTotal)
	p.fadeRemaining--

	return g
}

// Reset returns the panner to its initial state: pan interpolation starts
// from center and the start fade, if enabled, is re-armed for the current
// sample rate.
func (p *StereoPanner) Reset() {
	p.lastPan = 0
	p.initialized = false
	p.fadeTotal = fadeSamples(p.startFade, p.sampleRate)
	p.fadeRemaining = p.fadeTotal
}

func fadeSamples(seconds, sampleRate float64) int {
	if seconds <= 0 {
		return 0
	}

	n := int(math.Round(seconds * sampleRate))
	if n < 1 {
		n = 1
	}

	return n
}

// SampleRate returns the sample rate in Hz.
func (p *StereoPanner) SampleRate() float64 { return p.sampleRate }

// StartFade returns the configured start fade in seconds.
func (p *StereoPanner) StartFade() float64 { return p.startFade }

// LastPan returns the clamped pan value of the most recent block.
func (p *StereoPanner) LastPan() float64 { return p.lastPan }

// Initialized reports whether a block has been processed since Reset.
func (p *StereoPanner) Initialized() bool { return p.initialized }

// FadeTotal returns the start fade length in samples (0 when disabled).
func (p *StereoPanner) FadeTotal() int { return p.fadeTotal }

// FadeRemaining returns how many samples of the start fade are still pending.
func (p *StereoPanner) FadeRemaining() int { return p.fadeRemaining }

// SetSampleRate updates the sample rate. The fade window is recomputed at
// the next Reset.
func (p *StereoPanner) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("stereo panner sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate

	return nil
}
