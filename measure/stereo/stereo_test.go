package stereo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/dsp/effects/spatial"
	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func TestCrossCorrelateImpulses(t *testing.T) {
	a := testutil.Impulse(8, 3)
	b := testutil.Impulse(8, 1)

	corr, err := CrossCorrelate(a, b)
	if err != nil {
		t.Fatalf("CrossCorrelate() error = %v", err)
	}

	if len(corr) != 15 {
		t.Fatalf("len = %d, want 15", len(corr))
	}

	peak := 0
	for i, v := range corr {
		if v > corr[peak] {
			peak = i
		}
	}

	if lag := peak - (len(b) - 1); lag != 2 {
		t.Fatalf("peak lag = %d, want 2", lag)
	}
}

func TestCrossCorrelateMatchesDirect(t *testing.T) {
	a := testutil.DeterministicNoise(1, 1, 37)
	b := testutil.DeterministicNoise(2, 1, 21)

	got, err := CrossCorrelate(a, b)
	if err != nil {
		t.Fatalf("CrossCorrelate() error = %v", err)
	}

	want := make([]float64, len(a)+len(b)-1)
	for k := range want {
		lag := k - (len(b) - 1)
		for j := range b {
			if i := j + lag; i >= 0 && i < len(a) {
				want[k] += a[i] * b[j]
			}
		}
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestCrossCorrelateEmpty(t *testing.T) {
	if _, err := CrossCorrelate(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func itdOutput(t *testing.T, azimuth float64) (left, right []float64) {
	t.Helper()

	p, err := spatial.NewITDPanner(48000)
	if err != nil {
		t.Fatalf("NewITDPanner() error = %v", err)
	}

	in := testutil.DeterministicNoise(17, 0.5, 4096)
	left = make([]float64, len(in))
	right = make([]float64, len(in))
	p.Process(in, left, right, azimuth)

	return left, right
}

func TestEstimateDelayRecoversITD(t *testing.T) {
	tests := []struct {
		azimuth float64
		want    int
	}{
		{1, 28},
		{-1, -28},
		{0.5, 14},
		{0, 0},
	}

	for _, tt := range tests {
		left, right := itdOutput(t, tt.azimuth)

		got, err := EstimateDelay(left, right, 40)
		if err != nil {
			t.Fatalf("EstimateDelay() error = %v", err)
		}

		if got != tt.want {
			t.Fatalf("azimuth %v: delay = %d, want %d", tt.azimuth, got, tt.want)
		}
	}
}

func TestEstimateDelayRespectsMaxLag(t *testing.T) {
	left, right := itdOutput(t, 1)

	got, err := EstimateDelay(left, right, 10)
	if err != nil {
		t.Fatalf("EstimateDelay() error = %v", err)
	}

	if got < -10 || got > 10 {
		t.Fatalf("delay %d outside max lag", got)
	}
}

func TestEstimateDelayValidation(t *testing.T) {
	if _, err := EstimateDelay(nil, nil, 4); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	if _, err := EstimateDelay([]float64{1, 2}, []float64{1}, 4); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := EstimateDelay([]float64{1}, []float64{1}, -1); err == nil {
		t.Fatal("expected error for negative max lag")
	}
}

func TestEstimateDelaySilence(t *testing.T) {
	got, err := EstimateDelay(make([]float64, 64), make([]float64, 64), 16)
	if err != nil {
		t.Fatalf("EstimateDelay() error = %v", err)
	}

	if got != 0 {
		t.Fatalf("silent delay = %d, want 0", got)
	}
}

func TestAnalyzeITD(t *testing.T) {
	left, right := itdOutput(t, 1)

	res, err := Analyze(left, right, 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.DelaySamples != 28 {
		t.Fatalf("DelaySamples = %d, want 28", res.DelaySamples)
	}

	if math.Abs(res.DelaySeconds-28.0/48000) > 1e-12 {
		t.Fatalf("DelaySeconds = %v", res.DelaySeconds)
	}

	if res.Correlation < 0.999 {
		t.Fatalf("Correlation = %v, want about 1 after alignment", res.Correlation)
	}

	if math.Abs(res.BalanceDB) > 0.1 {
		t.Fatalf("BalanceDB = %v, want about 0 for a pure delay", res.BalanceDB)
	}
}

func TestAnalyzeEqualPowerPan(t *testing.T) {
	in := testutil.DeterministicSine(440, 48000, 0.9, 4800)
	gl, gr := spatial.Gains(spatial.PanToT(0.4), spatial.PanLawEqualPower)

	left := make([]float64, len(in))
	right := make([]float64, len(in))

	for i, x := range in {
		left[i] = x * gl
		right[i] = x * gr
	}

	res, err := Analyze(left, right, 48000, WithMaxLag(8))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := res.EqualPowerPan(); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("EqualPowerPan() = %v, want 0.4", got)
	}

	wantBalance := 20 * math.Log10(gl/gr)
	if math.Abs(res.BalanceDB-wantBalance) > 1e-9 {
		t.Fatalf("BalanceDB = %v, want %v", res.BalanceDB, wantBalance)
	}

	if math.Abs(res.LeftPeak-0.9*gl) > 1e-3 || math.Abs(res.RightPeak-0.9*gr) > 1e-3 {
		t.Fatalf("peaks = %v/%v", res.LeftPeak, res.RightPeak)
	}

	if res.DelaySamples != 0 {
		t.Fatalf("DelaySamples = %d, want 0", res.DelaySamples)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	res, err := Analyze(make([]float64, 32), make([]float64, 32), 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res != (Result{}) {
		t.Fatalf("silence result = %+v, want zero value", res)
	}

	if res.EqualPowerPan() != 0 {
		t.Fatal("silence pan should be 0")
	}
}

func TestAnalyzeValidation(t *testing.T) {
	if _, err := Analyze(nil, nil, 48000); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	if _, err := Analyze([]float64{1}, []float64{1, 2}, 48000); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := Analyze([]float64{1}, []float64{1}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
