// Package stereo measures the spatial image of a stereo signal: the
// interaural delay between channels (via FFT cross-correlation), level
// balance, peaks and inter-channel correlation.
//
// It is intended for verifying panner output offline, not for use on a
// real-time path: Analyze and EstimateDelay allocate.
package stereo
