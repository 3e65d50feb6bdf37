package spatial

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func newTestStereoPanner(t *testing.T, opts ...StereoPannerOption) *StereoPanner {
	t.Helper()

	p, err := NewStereoPanner(48000, opts...)
	if err != nil {
		t.Fatalf("NewStereoPanner() error = %v", err)
	}

	return p
}

func processStereo(p *StereoPanner, in []float64, pan float64, law PanLaw) (left, right []float64) {
	left = make([]float64, len(in))
	right = make([]float64, len(in))
	p.Process(in, left, right, pan, law)

	return left, right
}

func TestNewStereoPannerValidation(t *testing.T) {
	if _, err := NewStereoPanner(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	for _, fade := range []float64{-0.001, 0.5, math.NaN()} {
		if _, err := NewStereoPanner(48000, WithStartFade(fade)); err == nil {
			t.Fatalf("expected error for start fade %v", fade)
		}
	}

	p := newTestStereoPanner(t, nil)
	if p.FadeTotal() != 0 || p.FadeRemaining() != 0 || p.Initialized() || p.LastPan() != 0 {
		t.Fatalf("unexpected initial state: %+v", *p)
	}
}

func TestStereoPannerLinearCenterSteadyState(t *testing.T) {
	p := newTestStereoPanner(t)
	const amp = 0.8

	left, right := processStereo(p, testutil.DC(amp, 128), 0, PanLawLinear)

	for i := range left {
		if left[i] != 0.5*amp || right[i] != 0.5*amp {
			t.Fatalf("sample %d: L=%v R=%v, want %v", i, left[i], right[i], 0.5*amp)
		}
	}

	if !p.Initialized() {
		t.Fatal("panner should be initialized after first block")
	}
}

func TestStereoPannerConstantPanGivesIdenticalBlocks(t *testing.T) {
	in := testutil.DeterministicNoise(11, 1, 64)

	for _, law := range PanLaws() {
		t.Run(law.String(), func(t *testing.T) {
			p := newTestStereoPanner(t)
			processStereo(p, in, 0.3, law)

			aL, aR := processStereo(p, in, 0.3, law)
			bL, bR := processStereo(p, in, 0.3, law)

			testutil.RequireSliceNearlyEqual(t, aL, bL, 0)
			testutil.RequireSliceNearlyEqual(t, aR, bR, 0)

			wantL, wantR := Gains(PanToT(0.3), law)
			for i, x := range in {
				if aL[i] != x*wantL || aR[i] != x*wantR {
					t.Fatalf("sample %d: got (%v, %v), want constant gains (%v, %v)",
						i, aL[i], aR[i], x*wantL, x*wantR)
				}
			}
		})
	}
}

func TestStereoPannerStepIsMonotonicRamp(t *testing.T) {
	for _, law := range PanLaws() {
		t.Run(law.String(), func(t *testing.T) {
			p := newTestStereoPanner(t)
			ones := testutil.Ones(256)

			processStereo(p, ones, -1, law)
			left, right := processStereo(p, ones, 1, law)

			startL, startR := Gains(0, law)
			endL, endR := Gains(1, law)

			testutil.RequireMonotonic(t, left, 1e-12)
			testutil.RequireMonotonic(t, right, 1e-12)
			testutil.RequireWithin(t, left, startL, endL, 1e-12)
			testutil.RequireWithin(t, right, startR, endR, 1e-12)

			if math.Abs(left[0]-startL) > 1e-12 || math.Abs(left[255]-endL) > 1e-12 {
				t.Fatalf("left ramp endpoints %v..%v, want %v..%v", left[0], left[255], startL, endL)
			}

			if math.Abs(right[0]-startR) > 1e-12 || math.Abs(right[255]-endR) > 1e-12 {
				t.Fatalf("right ramp endpoints %v..%v, want %v..%v", right[0], right[255], startR, endR)
			}

			for i := 1; i < len(left)-1; i++ {
				if left[i] == left[i-1] {
					t.Fatalf("left gain stalled at sample %d", i)
				}
			}
		})
	}
}

func TestStereoPannerContinuousAcrossBlocks(t *testing.T) {
	p := newTestStereoPanner(t)
	ones := testutil.Ones(32)
	pans := []float64{-0.8, -0.2, 0.4, 0.9, 0.1}

	prevL, prevR := processStereo(p, ones, pans[0], PanLawEqualPower)
	for _, pan := range pans[1:] {
		left, right := processStereo(p, ones, pan, PanLawEqualPower)

		if math.Abs(left[0]-prevL[len(prevL)-1]) > 1e-12 ||
			math.Abs(right[0]-prevR[len(prevR)-1]) > 1e-12 {
			t.Fatalf("gain jump at block boundary for pan %v", pan)
		}

		prevL, prevR = left, right
	}
}

func TestStereoPannerSingleSampleBlockUsesStartGains(t *testing.T) {
	p := newTestStereoPanner(t)
	left, right := processStereo(p, []float64{1}, 1, PanLawLinear)

	if left[0] != 0.5 || right[0] != 0.5 {
		t.Fatalf("N=1: got (%v, %v), want start gains (0.5, 0.5)", left[0], right[0])
	}

	if p.LastPan() != 1 {
		t.Fatalf("LastPan() = %v, want 1", p.LastPan())
	}
}

func TestStereoPannerMismatchedOutputsStayZero(t *testing.T) {
	p := newTestStereoPanner(t)
	in := testutil.Ones(16)
	left := testutil.DC(3, 16)
	right := testutil.DC(3, 8)

	p.Process(in, left, right, 0.5, PanLawLinear)

	for i, v := range left {
		if v != 0 {
			t.Fatalf("left[%d] = %v, want 0", i, v)
		}
	}

	for i, v := range right {
		if v != 0 {
			t.Fatalf("right[%d] = %v, want 0", i, v)
		}
	}

	if p.LastPan() != 0 || p.Initialized() {
		t.Fatal("mismatched block must not advance panner state")
	}
}

func TestStereoPannerEmptyBlockIsNoOp(t *testing.T) {
	p := newTestStereoPanner(t)
	p.Process(nil, nil, nil, 1, PanLawLinear)

	if p.LastPan() != 0 || p.Initialized() {
		t.Fatal("empty block must not advance panner state")
	}
}

func TestStereoPannerPanClamped(t *testing.T) {
	p := newTestStereoPanner(t)
	processStereo(p, testutil.Ones(8), 7, PanLawLinear)

	if p.LastPan() != 1 {
		t.Fatalf("LastPan() = %v, want 1", p.LastPan())
	}

	left, right := processStereo(p, testutil.Ones(8), 1, PanLawLinear)
	for i := range left {
		if left[i] != 0 || right[i] != 1 {
			t.Fatalf("sample %d: (%v, %v), want (0, 1)", i, left[i], right[i])
		}
	}
}

func TestStereoPannerUnknownLawIsEqualPower(t *testing.T) {
	in := testutil.DeterministicNoise(5, 1, 40)

	a := newTestStereoPanner(t)
	b := newTestStereoPanner(t)

	for _, pan := range []float64{0.2, -0.6, -0.6} {
		aL, aR := processStereo(a, in, pan, PanLaw(42))
		bL, bR := processStereo(b, in, pan, PanLawEqualPower)

		testutil.RequireSliceNearlyEqual(t, aL, bL, 0)
		testutil.RequireSliceNearlyEqual(t, aR, bR, 0)
	}
}

func TestStereoPannerStartFade(t *testing.T) {
	p := newTestStereoPanner(t, WithStartFade(0.001))
	if p.FadeTotal() != 48 || p.FadeRemaining() != 48 {
		t.Fatalf("fade total=%d remaining=%d, want 48", p.FadeTotal(), p.FadeRemaining())
	}

	ones := testutil.Ones(32)
	first, _ := processStereo(p, ones, 0, PanLawLinear)

	if first[0] != 0 {
		t.Fatalf("fade must start from silence, got %v", first[0])
	}

	if p.FadeRemaining() != 16 {
		t.Fatalf("FadeRemaining() = %d, want 16", p.FadeRemaining())
	}

	second, _ := processStereo(p, ones, 0, PanLawLinear)
	if p.FadeRemaining() != 0 {
		t.Fatalf("FadeRemaining() = %d, want 0", p.FadeRemaining())
	}

	out := append(first, second...)
	testutil.RequireMonotonic(t, out, 0)

	for i := range out {
		want := 0.5
		if i < 48 {
			want = 0.5 * float64(i) / 48
		}

		if math.Abs(out[i]-want) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, out[i], want)
		}
	}
}

func TestStereoPannerStartFadeDuringPanRamp(t *testing.T) {
	p := newTestStereoPanner(t, WithStartFade(DefaultStartFade))
	if p.FadeTotal() != 240 {
		t.Fatalf("FadeTotal() = %d, want 240", p.FadeTotal())
	}

	left, right := processStereo(p, testutil.Ones(64), 1, PanLawLinear)
	if left[0] != 0 || right[0] != 0 {
		t.Fatalf("first sample (%v, %v), want silence", left[0], right[0])
	}

	testutil.RequireMonotonic(t, right, 0)
	testutil.RequireFinite(t, left)
}

func TestStereoPannerResetRearmsFade(t *testing.T) {
	p := newTestStereoPanner(t, WithStartFade(0.001))
	processStereo(p, testutil.Ones(100), 0.5, PanLawSmoothStep)

	if err := p.SetSampleRate(96000); err != nil {
		t.Fatalf("SetSampleRate() error = %v", err)
	}

	p.Reset()

	if p.FadeTotal() != 96 || p.FadeRemaining() != 96 {
		t.Fatalf("after Reset: total=%d remaining=%d, want 96", p.FadeTotal(), p.FadeRemaining())
	}

	if p.LastPan() != 0 || p.Initialized() {
		t.Fatal("Reset must clear pan state")
	}
}

func TestStereoPannerResetIdempotent(t *testing.T) {
	a := newTestStereoPanner(t, WithStartFade(0.002))
	b := newTestStereoPanner(t, WithStartFade(0.002))

	in := testutil.DeterministicNoise(9, 1, 50)
	processStereo(a, in, 0.7, PanLawExponential)
	processStereo(b, in, 0.7, PanLawExponential)

	a.Reset()
	b.Reset()
	b.Reset()

	if *a != *b {
		t.Fatalf("state after one Reset %+v differs from two %+v", *a, *b)
	}
}

func TestStereoPannerSetSampleRateValidation(t *testing.T) {
	p := newTestStereoPanner(t)
	if err := p.SetSampleRate(math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite sample rate")
	}
}

func TestStereoPannerProcessDoesNotAllocate(t *testing.T) {
	p := newTestStereoPanner(t, WithStartFade(DefaultStartFade))
	in := testutil.DeterministicNoise(2, 1, 256)
	left := make([]float64, len(in))
	right := make([]float64, len(in))
	pan := -1.0

	allocs := testing.AllocsPerRun(50, func() {
		pan = -pan
		p.Process(in, left, right, pan, PanLawEqualPower)
		p.Process(in, left, right, pan, PanLawEqualPower)
	})
	if allocs != 0 {
		t.Fatalf("allocs per Process = %v, want 0", allocs)
	}
}
