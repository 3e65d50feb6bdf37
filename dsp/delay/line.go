package delay

import "fmt"

// Line is a fixed-capacity circular delay line.
//
// The write cursor always names the next slot to be overwritten. Reads are
// taken relative to the most recent write, so a block loop writes the
// current sample first and then reads the delayed one.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zeroed delay line of fixed capacity.
func New(capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}
	return &Line{buffer: make([]float64, capacity)}, nil
}

// Len returns the capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// WritePos returns the index of the next slot to be written.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write stores one sample and advances the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// ReadDelayed returns the sample written offset steps before the most
// recently written one. ReadDelayed(0) is the newest sample.
// Offset is clamped to [0, Len()-1].
func (d *Line) ReadDelayed(offset int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if offset < 0 {
		offset = 0
	} else if offset >= size {
		offset = size - 1
	}

	readPos := d.writePos - 1 - offset
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Read reads relative to the write cursor: Read(1) is the newest sample.
// Delay wraps modulo Len().
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Resize sets a new capacity and clears the line. The backing array is only
// reallocated when the capacity changes. Not for use on a processing path.
func (d *Line) Resize(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}
	if capacity != len(d.buffer) {
		d.buffer = make([]float64, capacity)
		d.writePos = 0
		return nil
	}
	d.Reset()
	return nil
}
