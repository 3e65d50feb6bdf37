package node

import "github.com/cwbudde/algo-spatial/dsp/buffer"

// Operator is the per-instance processing contract a host drives.
type Operator interface {
	// Reset prepares the operator for ctx, clearing all processing state and
	// zeroing the outputs. It may allocate.
	Reset(ctx Context) error
	// Execute renders one block from the bound inputs into the outputs.
	Execute()
	// Input returns the bound mono audio input.
	Input() *buffer.Buffer
	// Outputs returns the left and right output blocks owned by the operator.
	Outputs() (left, right *buffer.Buffer)
}

// stereoOut is the output pair shared by both panner operators.
type stereoOut struct {
	left  *buffer.Buffer
	right *buffer.Buffer
}

func newStereoOut(blockSize int) stereoOut {
	return stereoOut{left: buffer.New(blockSize), right: buffer.New(blockSize)}
}

func (o *stereoOut) Outputs() (left, right *buffer.Buffer) {
	return o.left, o.right
}

func (o *stereoOut) reset(blockSize int) {
	o.left.Resize(blockSize)
	o.right.Resize(blockSize)
	o.left.Zero()
	o.right.Zero()
}

// fit sets both outputs to length n. It fails without touching the
// buffers when n exceeds the block size given to Reset.
func (o *stereoOut) fit(n int) bool {
	if n > o.left.Cap() || n > o.right.Cap() {
		return false
	}
	o.left.SetLen(n)
	o.right.SetLen(n)
	return true
}

func (o *stereoOut) silence() {
	o.left.Zero()
	o.right.Zero()
}

func samplesOf(b *buffer.Buffer) []float64 {
	if b == nil {
		return nil
	}
	return b.Samples()
}

func valueOf[T any](ref *T, fallback T) T {
	if ref == nil {
		return fallback
	}
	return *ref
}
