// Command spatialize places a mono recording in the stereo field.
//
// Usage:
//
//	spatialize [flags] input output.wav
//
// The input may be WAV, AIFF, MP3 or Ogg Vorbis; multi-channel input is
// downmixed to mono first. The output is a stereo PCM WAV file.
//
// Examples:
//
//	spatialize -mode itd -azimuth 0.8 voice.wav voice-itd.wav
//	spatialize -mode pan -pan -0.5 -law smoothstep voice.mp3 voice-left.wav
//	spatialize -mode pan -sweep -fade 0.005 loop.ogg loop-sweep.wav
//	spatialize -analyze -mode itd -azimuth 1 click.wav click-itd.wav
//	spatialize -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/dsp/effects/spatial"
	"github.com/cwbudde/algo-spatial/dsp/node"
	"github.com/cwbudde/algo-spatial/internal/audiofile"
	"github.com/cwbudde/algo-spatial/measure/stereo"
)

const (
	modeITD = "itd"
	modePan = "pan"
)

type config struct {
	mode    string
	azimuth float64
	pan     float64
	law     spatial.PanLaw
	sweep   bool
	block   int
	fade    float64
	bits    int
	analyze bool
	list    bool
	input   string
	output  string
}

// errUsage marks command-line mistakes, which exit with status 2.
var errUsage = errors.New("usage error")

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if cfg.list {
		printList(os.Stdout)
		return
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("spatialize", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	var law string

	fs.StringVar(&cfg.mode, "mode", modeITD, "panner: itd (interaural delay) or pan (amplitude pan law)")
	fs.Float64Var(&cfg.azimuth, "azimuth", 0, "ITD azimuth in [-1, 1]; positive delays the left channel")
	fs.Float64Var(&cfg.pan, "pan", 0, "pan position in [-1, 1]; -1 is hard left")
	fs.StringVar(&law, "law", spatial.PanLawEqualPower.String(), "pan law for -mode pan (see -list)")
	fs.BoolVar(&cfg.sweep, "sweep", false, "sweep azimuth or pan from -1 to +1 over the file")
	fs.IntVar(&cfg.block, "block", 256, "processing block size in samples")
	fs.Float64Var(&cfg.fade, "fade", 0, "start fade-in in seconds for -mode pan (0 disables)")
	fs.IntVar(&cfg.bits, "bits", 16, "output bit depth: 16, 24 or 32")
	fs.BoolVar(&cfg.analyze, "analyze", false, "print delay and level analysis of the result")
	fs.BoolVar(&cfg.list, "list", false, "list pan laws and operator classes")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spatialize [flags] input output.wav\n\n")
		fmt.Fprintf(stderr, "Places a mono recording in the stereo field using an interaural\n")
		fmt.Fprintf(stderr, "time difference or an amplitude pan law.\n")
		fmt.Fprintf(stderr, "Input formats: %s\n\n", strings.Join(audiofile.Extensions(), " "))
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  spatialize -mode itd -azimuth 0.8 voice.wav voice-itd.wav\n")
		fmt.Fprintf(stderr, "  spatialize -mode pan -pan -0.5 -law smoothstep voice.mp3 out.wav\n")
		fmt.Fprintf(stderr, "  spatialize -mode pan -sweep loop.ogg loop-sweep.wav\n")
		fmt.Fprintf(stderr, "  spatialize -list\n")
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.list {
		return cfg, nil
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return config{}, fmt.Errorf("%w: expected input and output paths, got %d arguments", errUsage, fs.NArg())
	}

	cfg.input, cfg.output = fs.Arg(0), fs.Arg(1)

	if cfg.mode != modeITD && cfg.mode != modePan {
		return config{}, fmt.Errorf("%w: unknown mode %q (want %s or %s)", errUsage, cfg.mode, modeITD, modePan)
	}

	l, err := spatial.ParsePanLaw(law)
	if err != nil {
		return config{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	cfg.law = l

	if cfg.block <= 0 {
		return config{}, fmt.Errorf("%w: block size must be > 0: %d", errUsage, cfg.block)
	}

	return cfg, nil
}

func run(cfg config, stdout, stderr io.Writer) error {
	in, rate, err := audiofile.LoadMono(cfg.input)
	if err != nil {
		return err
	}

	if len(in) == 0 {
		return fmt.Errorf("%s contains no samples", cfg.input)
	}

	ctx := node.NewContext(core.WithSampleRate(float64(rate)), core.WithBlockSize(cfg.block))

	var regOpts []node.RegistryOption
	if cfg.fade > 0 {
		regOpts = append(regOpts, node.WithStereoOptions(spatial.WithStartFade(cfg.fade)))
	}

	op, control, err := buildOperator(node.DefaultRegistry(regOpts...), ctx, cfg, len(in))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stderr, "%s: %d samples at %d Hz, mode %s\n", cfg.input, len(in), rate, cfg.mode)

	left, right, err := node.Render(op, ctx, in, control)
	if err != nil {
		return err
	}

	if err := audiofile.WriteStereoWAV(cfg.output, rate, left, right, cfg.bits); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stderr, "wrote %s (%d-bit stereo)\n", cfg.output, cfg.bits)

	if cfg.analyze {
		res, err := stereo.Analyze(left, right, float64(rate))
		if err != nil {
			return err
		}
		return printAnalysis(stdout, res)
	}

	return nil
}

// buildOperator creates the operator for cfg.mode and returns a control
// function that drives its azimuth or pan input.
func buildOperator(reg *node.Registry, ctx node.Context, cfg config, n int) (node.Operator, node.ControlFunc, error) {
	switch cfg.mode {
	case modeITD:
		op, err := reg.Create(node.ClassITDPanner, ctx)
		if err != nil {
			return nil, nil, err
		}
		itd := op.(*node.ITDOperator)
		*itd.Azimuth = cfg.azimuth
		return op, controlFor(itd.Azimuth, cfg.sweep, n), nil
	case modePan:
		op, err := reg.Create(node.ClassStereoPanner, ctx)
		if err != nil {
			return nil, nil, err
		}
		sp := op.(*node.StereoOperator)
		*sp.Pan = cfg.pan
		*sp.Law = cfg.law
		return op, controlFor(sp.Pan, cfg.sweep, n), nil
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

// controlFor returns nil for a fixed control value, or a function that
// moves *value linearly from -1 to +1 across n samples.
func controlFor(value *float64, sweep bool, n int) node.ControlFunc {
	if !sweep {
		return nil
	}

	return func(_, start int) {
		if n <= 1 {
			*value = 0
			return
		}
		*value = core.Lerp(-1, 1, float64(start)/float64(n-1))
	}
}

func printList(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Pan law\tCenter L/R\n")
	_, _ = fmt.Fprintf(tw, "-------\t----------\n")

	for _, l := range spatial.PanLaws() {
		gl, gr := spatial.Gains(0.5, l)
		_, _ = fmt.Fprintf(tw, "%s\t%.4f / %.4f\n", l, gl, gr)
	}

	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\nOperator classes:\n")
	for _, c := range node.DefaultRegistry().Classes() {
		_, _ = fmt.Fprintf(w, "  %s\n", c)
	}
}

func printAnalysis(w io.Writer, res stereo.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value string
	}{
		{"Delay", fmt.Sprintf("%d samples (%.3f ms)", res.DelaySamples, res.DelaySeconds*1000)},
		{"Peak L/R", fmt.Sprintf("%.4f / %.4f", res.LeftPeak, res.RightPeak)},
		{"RMS L/R", fmt.Sprintf("%.4f / %.4f", res.LeftRMS, res.RightRMS)},
		{"Balance", fmt.Sprintf("%+.2f dB", res.BalanceDB)},
		{"Correlation", fmt.Sprintf("%.4f", res.Correlation)},
		{"Equal-power pan", fmt.Sprintf("%+.3f", res.EqualPowerPan())},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
	}

	return tw.Flush()
}
