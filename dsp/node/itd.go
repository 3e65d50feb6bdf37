package node

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/dsp/buffer"
	"github.com/cwbudde/algo-spatial/dsp/effects/spatial"
)

// ITDOperator wraps a spatial.ITDPanner.
//
// Audio and Azimuth are the bound inputs. They start out pointing at
// operator-owned defaults (silence, azimuth 0); a host rebinds them by
// assigning new references. A nil reference reads as the default.
type ITDOperator struct {
	Audio   *buffer.Buffer
	Azimuth *float64

	stereoOut
	panner *spatial.ITDPanner
}

// NewITDOperator builds and resets an ITD operator for ctx.
func NewITDOperator(ctx Context, opts ...spatial.ITDPannerOption) (*ITDOperator, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	p, err := spatial.NewITDPanner(ctx.SampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}

	op := &ITDOperator{
		Audio:     buffer.New(ctx.BlockSize),
		Azimuth:   new(float64),
		stereoOut: newStereoOut(ctx.BlockSize),
		panner:    p,
	}

	if err := op.Reset(ctx); err != nil {
		return nil, err
	}

	return op, nil
}

// Reset zeroes both outputs and the delay line.
func (o *ITDOperator) Reset(ctx Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}

	if err := o.panner.SetSampleRate(ctx.SampleRate); err != nil {
		return fmt.Errorf("node: %w", err)
	}

	o.panner.Reset()
	o.reset(ctx.BlockSize)

	return nil
}

// Execute renders one block. The outputs follow the input length; an
// input longer than the reset block size leaves the outputs silent.
func (o *ITDOperator) Execute() {
	in := samplesOf(o.Audio)
	if !o.fit(len(in)) {
		o.silence()
		return
	}

	o.panner.Process(in, o.left.Samples(), o.right.Samples(), valueOf(o.Azimuth, 0))
}

// Input returns the bound audio input.
func (o *ITDOperator) Input() *buffer.Buffer { return o.Audio }

// Panner exposes the wrapped processor.
func (o *ITDOperator) Panner() *spatial.ITDPanner { return o.panner }
