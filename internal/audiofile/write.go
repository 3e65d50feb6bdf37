package audiofile

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

const wavFormatPCM = 1

// WriteStereoWAV writes left and right as an interleaved two-channel PCM
// WAV file. Samples outside [-1, 1] are clipped. Supported bit depths are
// 16, 24 and 32.
func WriteStereoWAV(path string, sampleRate int, left, right []float64, bitDepth int) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("audiofile: sample rate must be > 0: %d", sampleRate)
	}

	if len(left) != len(right) {
		return fmt.Errorf("audiofile: channel lengths differ: %d != %d", len(left), len(right))
	}

	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("audiofile: unsupported bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	peak := fullScale(bitDepth) - 1
	data := make([]int, 2*len(left))

	for i := range left {
		data[2*i] = quantize(left[i], peak)
		data[2*i+1] = quantize(right[i], peak)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 2, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: write %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finalize %s: %w", path, err)
	}

	return nil
}

func quantize(x, peak float64) int {
	if math.IsNaN(x) {
		return 0
	}

	return int(math.Round(core.Clamp(x, -1, 1) * peak))
}
