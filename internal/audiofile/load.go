package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no decoder.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

	errInvalidFile = errors.New("audiofile: invalid file")
)

// Extensions lists the input extensions LoadMono understands.
func Extensions() []string {
	return []string{".aif", ".aiff", ".mp3", ".ogg", ".wav"}
}

// LoadMono decodes the file at path and returns its samples downmixed to
// mono in [-1, 1] together with the sample rate.
func LoadMono(path string) ([]float64, int, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var (
		samples []float64
		rate    int
	)

	switch ext {
	case ".wav":
		samples, rate, err = decodeWAV(f)
	case ".aif", ".aiff":
		samples, rate, err = decodeAIFF(f)
	case ".mp3":
		samples, rate, err = decodeMP3(f)
	case ".ogg":
		samples, rate, err = decodeVorbis(f)
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}

	return samples, rate, nil
}

func decodeWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	bitDepth := int(dec.BitDepth)

	// 8-bit WAV PCM is unsigned.
	if bitDepth == 8 {
		for i := range buf.Data {
			buf.Data[i] -= 128
		}
	}

	return intBufferToMono(buf, bitDepth), int(dec.SampleRate), nil
}

func decodeAIFF(r io.ReadSeeker) ([]float64, int, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	return intBufferToMono(buf, int(dec.BitDepth)), buf.Format.SampleRate, nil
}

func intBufferToMono(buf *audio.IntBuffer, bitDepth int) []float64 {
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	scale := fullScale(bitDepth)
	data := make([]float64, len(buf.Data))

	for i, v := range buf.Data {
		data[i] = float64(v) / scale
	}

	return Downmix(data, channels)
}

func decodeMP3(r io.Reader) ([]float64, int, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, err
	}

	// go-mp3 always emits interleaved 16-bit little-endian stereo.
	data := make([]float64, len(raw)/2)
	for i := range data {
		data[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return Downmix(data, 2), dec.SampleRate(), nil
}

func decodeVorbis(r io.Reader) ([]float64, int, error) {
	raw, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}

	data := make([]float64, len(raw))
	for i, v := range raw {
		data[i] = float64(v)
	}

	return Downmix(data, format.Channels), format.SampleRate, nil
}

// Downmix averages interleaved frames of the given channel count into mono.
// A trailing partial frame is dropped. channels <= 1 returns data as is.
func Downmix(data []float64, channels int) []float64 {
	if channels <= 1 {
		return data
	}

	frames := len(data) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)

	for i := range out {
		sum := 0.0
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum * inv
	}

	return out
}

func fullScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}

	return float64(int64(1) << (bitDepth - 1))
}
