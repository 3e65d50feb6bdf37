package buffer

// Buffer is a fixed-capacity audio block.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current block length.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the largest length reachable without reallocating.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reallocating only if n exceeds Cap.
// Newly exposed samples are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n > cap(b.samples) {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
		return
	}
	oldLen := len(b.samples)
	b.samples = b.samples[:n]
	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
}

// SetLen changes the length within the existing capacity. It reports false
// and leaves the buffer untouched when n is negative or exceeds Cap, which
// keeps it safe to call on a real-time path.
func (b *Buffer) SetLen(n int) bool {
	if n < 0 || n > cap(b.samples) {
		return false
	}
	oldLen := len(b.samples)
	b.samples = b.samples[:n]
	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
	return true
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}
