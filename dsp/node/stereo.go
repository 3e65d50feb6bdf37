package node

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/dsp/buffer"
	"github.com/cwbudde/algo-spatial/dsp/effects/spatial"
)

// StereoOperator wraps a spatial.StereoPanner.
//
// Audio, Pan and Law are the bound inputs. Defaults are silence, pan 0 and
// spatial.PanLawEqualPower.
type StereoOperator struct {
	Audio *buffer.Buffer
	Pan   *float64
	Law   *spatial.PanLaw

	stereoOut
	panner *spatial.StereoPanner
}

// NewStereoOperator builds and resets a stereo panner operator for ctx.
func NewStereoOperator(ctx Context, opts ...spatial.StereoPannerOption) (*StereoOperator, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	p, err := spatial.NewStereoPanner(ctx.SampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}

	law := spatial.PanLawEqualPower
	op := &StereoOperator{
		Audio:     buffer.New(ctx.BlockSize),
		Pan:       new(float64),
		Law:       &law,
		stereoOut: newStereoOut(ctx.BlockSize),
		panner:    p,
	}

	if err := op.Reset(ctx); err != nil {
		return nil, err
	}

	return op, nil
}

// Reset zeroes both outputs and returns the panner to center, re-arming
// its start fade for the new sample rate.
func (o *StereoOperator) Reset(ctx Context) error {
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
func (o *StereoOperator) Execute() {
	in := samplesOf(o.Audio)
	if !o.fit(len(in)) {
		o.silence()
		return
	}

	o.panner.Process(in, o.left.Samples(), o.right.Samples(),
		valueOf(o.Pan, 0), valueOf(o.Law, spatial.PanLawEqualPower))
}

// Input returns the bound audio input.
func (o *StereoOperator) Input() *buffer.Buffer { return o.Audio }

// Panner exposes the wrapped processor.
func (o *StereoOperator) Panner() *spatial.StereoPanner { return o.panner }
