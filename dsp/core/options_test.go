package core

import (
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(256))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 256 {
		t.Fatalf("block size = %d, want 256", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithSampleRate(math.Inf(1)), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if err := (ProcessorConfig{SampleRate: 0, BlockSize: 64}).Validate(); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if err := (ProcessorConfig{SampleRate: 48000, BlockSize: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero block size")
	}
}
