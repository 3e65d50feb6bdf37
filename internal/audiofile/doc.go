// Package audiofile decodes mono input for the spatialize command and writes
// its stereo result.
//
// Input is picked by file extension: .wav, .aif/.aiff, .mp3 and .ogg. Multi-
// channel input is downmixed to mono by averaging channels. Output is always
// interleaved PCM WAV.
package audiofile
