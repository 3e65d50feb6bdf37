package node

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

// Context carries the settings a host fixes at graph-build or reset time.
type Context struct {
	SampleRate float64
	// BlockSize is the largest block passed to Execute.
	BlockSize int
}

// NewContext builds a Context from processor options, falling back to the
// core defaults for anything not set.
func NewContext(opts ...core.ProcessorOption) Context {
	cfg := core.ApplyProcessorOptions(opts...)
	return Context{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}
}

// Validate reports whether ctx can drive an operator.
func (ctx Context) Validate() error {
	cfg := core.ProcessorConfig{SampleRate: ctx.SampleRate, BlockSize: ctx.BlockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: %w", err)
	}
	return nil
}
