package node

import (
	"testing"

	"github.com/cwbudde/algo-spatial/dsp/buffer"
)

type stubOperator struct {
	in    *buffer.Buffer
	out   stereoOut
	execs int
}

func newStubOperator(blockSize int) *stubOperator {
	return &stubOperator{in: buffer.New(blockSize), out: newStereoOut(blockSize)}
}

func (s *stubOperator) Reset(ctx Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	s.out.reset(ctx.BlockSize)
	s.execs = 0
	return nil
}

func (s *stubOperator) Execute() {
	in := s.in.Samples()
	s.out.fit(len(in))
	copy(s.out.left.Samples(), in)
	for i, x := range in {
		s.out.right.Samples()[i] = -x
	}
	s.execs++
}

func (s *stubOperator) Input() *buffer.Buffer { return s.in }

func (s *stubOperator) Outputs() (left, right *buffer.Buffer) { return s.out.Outputs() }

func testContext(blockSize int) Context {
	return Context{SampleRate: 48000, BlockSize: blockSize}
}

func requireSilent(t *testing.T, b *buffer.Buffer) {
	t.Helper()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}
