// Package spatial provides real-time mono-to-stereo spatialization.
//
// Included processors:
//   - ITDPanner: Interaural time difference panning through a short delay line.
//   - StereoPanner: Pan-law amplitude panning with per-sample gain
//     interpolation across block boundaries.
//
// Pan laws (see PanLaw and Gains) are pure functions shared by all
// StereoPanner instances.
//
// Processors render one block per call into caller-owned output slices. They
// never allocate or block inside Process and clamp out-of-range control
// values instead of failing.
package spatial
