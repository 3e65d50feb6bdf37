// Package delay provides a fixed-capacity circular sample delay line with
// O(1) write and integer-offset read.
package delay
