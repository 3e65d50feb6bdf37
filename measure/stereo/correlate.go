package stereo

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyInput     = errors.New("stereo: empty input")
	ErrLengthMismatch = errors.New("stereo: left and right lengths differ")
)

const minFFTSize = 16

// CrossCorrelate computes the full cross-correlation of a and b using FFT.
// The result has length len(a) + len(b) - 1; index k corresponds to lag
// k - (len(b) - 1), and a positive lag means a trails b.
func CrossCorrelate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(a)
	m := len(b)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stereo: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)

	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}

	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("stereo: forward FFT failed: %w", err)
	}

	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("stereo: forward FFT failed: %w", err)
	}

	// A * conj(B), reusing aFreq.
	for i := range aFreq {
		aFreq[i] *= complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	circular := aPadded
	if err := plan.Inverse(circular, aFreq); err != nil {
		return nil, fmt.Errorf("stereo: inverse FFT failed: %w", err)
	}

	// Unwrap the circular result: non-negative lags sit at the front,
	// negative lags at the end.
	out := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		out[m-1+i] = real(circular[i])
	}

	for i := 0; i < m-1; i++ {
		out[i] = real(circular[fftSize-m+1+i])
	}

	return out, nil
}

// EstimateDelay returns the lag in samples, limited to |lag| <= maxLag, at
// which left best matches right. A positive result means left is delayed
// relative to right. Silent input yields 0.
func EstimateDelay(left, right []float64, maxLag int) (int, error) {
	if len(left) == 0 || len(right) == 0 {
		return 0, ErrEmptyInput
	}

	if len(left) != len(right) {
		return 0, ErrLengthMismatch
	}

	if maxLag < 0 {
		return 0, fmt.Errorf("stereo: max lag must be >= 0: %d", maxLag)
	}

	corr, err := CrossCorrelate(left, right)
	if err != nil {
		return 0, err
	}

	zero := len(right) - 1
	maxLag = min(maxLag, zero)

	best := 0
	bestVal := corr[zero]

	// Walk outwards so ties resolve to the smallest |lag|.
	for d := 1; d <= maxLag; d++ {
		if v := corr[zero+d]; v > bestVal {
			best, bestVal = d, v
		}

		if v := corr[zero-d]; v > bestVal {
			best, bestVal = -d, v
		}
	}

	return best, nil
}

func nextPowerOf2(n int) int {
	p := minFFTSize
	for p < n {
		p <<= 1
	}

	return p
}
