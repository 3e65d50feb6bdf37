package node

import (
	"errors"
	"fmt"
)

// ControlFunc is called before each block with the block index and the
// offset of its first sample, so the caller can update bound control values.
type ControlFunc func(block, start int)

// Render resets op for ctx and runs it over in block by block, returning
// the concatenated left and right outputs. The final block may be shorter
// than ctx.BlockSize.
func Render(op Operator, ctx Context, in []float64, control ControlFunc) ([]float64, []float64, error) {
	if op == nil {
		return nil, nil, errors.New("node: nil operator")
	}

	if err := op.Reset(ctx); err != nil {
		return nil, nil, err
	}

	src := op.Input()
	if src == nil {
		return nil, nil, errors.New("node: operator has no bound audio input")
	}

	if src.Cap() < ctx.BlockSize {
		src.Resize(ctx.BlockSize)
	}

	left := make([]float64, len(in))
	right := make([]float64, len(in))
	outL, outR := op.Outputs()

	for block, start := 0, 0; start < len(in); block, start = block+1, start+ctx.BlockSize {
		end := min(start+ctx.BlockSize, len(in))
		if !src.SetLen(end - start) {
			return nil, nil, fmt.Errorf("node: block of %d samples exceeds input capacity %d", end-start, src.Cap())
		}

		copy(src.Samples(), in[start:end])

		if control != nil {
			control(block, start)
		}

		op.Execute()

		copy(left[start:end], outL.Samples())
		copy(right[start:end], outR.Samples())
	}

	return left, right, nil
}

var (
	_ Operator = (*ITDOperator)(nil)
	_ Operator = (*StereoOperator)(nil)
)
