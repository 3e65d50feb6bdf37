package node

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-spatial/dsp/effects/spatial"
)

// Built-in operator classes.
const (
	ClassITDPanner    = "itd-panner"
	ClassStereoPanner = "stereo-panner"
)

// Factory builds one Operator instance.
type Factory func(ctx Context) (Operator, error)

// Registry maps operator class names to their factories.
type Registry struct {
	factories map[string]Factory
}

var (
	errDuplicateClass = errors.New("duplicate operator class")

	// ErrUnknownClass is returned by Create for unregistered class names.
	ErrUnknownClass = errors.New("node: unknown operator class")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given class.
func (r *Registry) Register(class string, factory Factory) error {
	if class == "" {
		return errors.New("empty operator class")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[class]; exists {
		return fmt.Errorf("%w: %s", errDuplicateClass, class)
	}

	r.factories[class] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(class string, factory Factory) {
	err := r.Register(class, factory)
	if err != nil {
		panic("node registry: " + err.Error())
	}
}

// Lookup returns the factory for the given class, or nil.
func (r *Registry) Lookup(class string) Factory {
	return r.factories[class]
}

// Create builds an operator of the given class.
func (r *Registry) Create(class string, ctx Context) (Operator, error) {
	f := r.Lookup(class)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}

	return f(ctx)
}

// Classes returns the registered class names in sorted order.
func (r *Registry) Classes() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type registryConfig struct {
	itdOpts    []spatial.ITDPannerOption
	stereoOpts []spatial.StereoPannerOption
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithITDOptions passes construction options to every ITD operator.
func WithITDOptions(opts ...spatial.ITDPannerOption) RegistryOption {
	return func(c *registryConfig) { c.itdOpts = append(c.itdOpts, opts...) }
}

// WithStereoOptions passes construction options to every stereo operator.
func WithStereoOptions(opts ...spatial.StereoPannerOption) RegistryOption {
	return func(c *registryConfig) { c.stereoOpts = append(c.stereoOpts, opts...) }
}

// DefaultRegistry returns a Registry with the built-in panner operators.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	r := NewRegistry()

	r.MustRegister(ClassITDPanner, func(ctx Context) (Operator, error) {
		return NewITDOperator(ctx, cfg.itdOpts...)
	})
	r.MustRegister(ClassStereoPanner, func(ctx Context) (Operator, error) {
		return NewStereoOperator(ctx, cfg.stereoOpts...)
	})

	return r
}
