// Package buffer provides the audio block type exchanged between a host and
// a panner operator. Panners themselves accept raw []float64 slices; Buffer
// owns the storage so that block length can change between calls without
// reallocating on the processing path.
package buffer
