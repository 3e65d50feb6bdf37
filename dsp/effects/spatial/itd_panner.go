package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/dsp/delay"
)

const (
	// MaxITDSeconds is the interaural time difference at hard left/right,
	// derived from an average head width.
	MaxITDSeconds = 0.0006

	// ITDDelayCapacity is the delay line length in samples. It exceeds the
	// largest offset produced by MaxITDSeconds up to 96 kHz.
	ITDDelayCapacity = 64

	maxITDLimitSeconds = 0.002
)

// ITDPannerOption mutates ITD panner construction parameters.
type ITDPannerOption func(*itdPannerConfig) error

type itdPannerConfig struct {
	maxITD float64
}

func defaultITDPannerConfig() itdPannerConfig {
	return itdPannerConfig{maxITD: MaxITDSeconds}
}

// WithMaxITD overrides the hard-left/right interaural delay in seconds.
// Valid range: (0, 0.002]. Offsets beyond the delay line capacity are clamped.
func WithMaxITD(seconds float64) ITDPannerOption {
	return func(cfg *itdPannerConfig) error {
		if seconds <= 0 || seconds > maxITDLimitSeconds ||
			math.IsNaN(seconds) {
			return fmt.Errorf("itd panner max ITD must be in (0, %g]: %f",
				maxITDLimitSeconds, seconds)
		}

		cfg.maxITD = seconds

		return nil
	}
}

// ITDPanner spatializes a mono signal by delaying the channel facing away
// from the source.
//
// Azimuth runs from -1 (hard left) through 0 (front) to +1 (hard right).
// For a source on the right, the left channel is delayed by up to
// MaxITDSeconds; at or left of center the right channel is delayed.
// The delay is derived once per block from the azimuth value.
//
// This processor is mono-in/stereo-out, real-time safe, and not thread-safe.
type ITDPanner struct {
	sampleRate float64
	maxITD     float64
	line       *delay.Line
}

// NewITDPanner creates an ITD panner for the given sample rate.
func NewITDPanner(sampleRate float64, opts ...ITDPannerOption) (*ITDPanner, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("itd panner sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultITDPannerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	line, err := delay.New(ITDDelayCapacity)
	if err != nil {
		return nil, fmt.Errorf("itd panner: %w", err)
	}

	return &ITDPanner{
		sampleRate: sampleRate,
		maxITD:     cfg.maxITD,
		line:       line,
	}, nil
}

// ReadOffset returns the integer delay in samples applied for azimuth.
func (p *ITDPanner) ReadOffset(azimuth float64) int {
	az := core.Clamp(azimuth, -1, 1)
	offset := int(math.Abs(az*p.maxITD) * p.sampleRate)

	if offset >= p.line.Len() {
		offset = p.line.Len() - 1
	}

	return offset
}

// Process renders one block. in is the mono input; left and right receive
// the stereo output and must hold at least len(in) samples, otherwise the
// call does nothing.
func (p *ITDPanner) Process(in, left, right []float64, azimuth float64) {
	n := len(in)
	if n == 0 || len(left) < n || len(right) < n {
		return
	}

	az := core.Clamp(azimuth, -1, 1)
	offset := p.ReadOffset(az)
	left = left[:n]
	right = right[:n]

	if az > 0 {
		for i, x := range in {
			p.line.Write(x)
			left[i] = p.line.ReadDelayed(offset)
			right[i] = x
		}
		return
	}

	for i, x := range in {
		p.line.Write(x)
		left[i] = x
		right[i] = p.line.ReadDelayed(offset)
	}
}

// Reset clears the delay line and rewinds the write cursor.
func (p *ITDPanner) Reset() {
	p.line.Reset()
}

// SampleRate returns the sample rate in Hz.
func (p *ITDPanner) SampleRate() float64 { return p.sampleRate }

// MaxITD returns the hard-left/right delay in seconds.
func (p *ITDPanner) MaxITD() float64 { return p.maxITD }

// Capacity returns the delay line length in samples.
func (p *ITDPanner) Capacity() int { return p.line.Len() }

// SetSampleRate updates the sample rate. The delay line keeps its contents;
// call Reset to start from silence.
func (p *ITDPanner) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("itd panner sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate

	return nil
}
