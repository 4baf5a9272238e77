package effects

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/cantrip/dsp/core"
)

// Factory builds one processor with default parameters.
type Factory func(cfg core.ProcessorConfig) (Processor, error)

// Registry maps effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

var (
	errDuplicateEffect = errors.New("duplicate effect")

	// ErrUnknownEffect is returned by Registry.New for unregistered names.
	ErrUnknownEffect = errors.New("unknown effect")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("empty effect name")
	}
	if factory == nil {
		return errors.New("nil factory")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}

	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic("effects registry: " + err.Error())
	}
}

// Lookup returns the factory for name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the processor registered under name.
func (r *Registry) New(name string, opts ...core.ProcessorOption) (Processor, error) {
	factory := r.Lookup(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return factory(core.ApplyProcessorOptions(opts...))
}

// DefaultRegistry returns a registry holding filter, compressor, delay
// and gain with their default parameters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("filter", func(cfg core.ProcessorConfig) (Processor, error) {
		return NewFilter(DefaultFilterParams(), configOptions(cfg)...)
	})
	r.MustRegister("compressor", func(cfg core.ProcessorConfig) (Processor, error) {
		return NewCompressor(DefaultCompressorParams(), configOptions(cfg)...)
	})
	r.MustRegister("delay", func(cfg core.ProcessorConfig) (Processor, error) {
		return NewDelay(DefaultDelayParams(), configOptions(cfg)...)
	})
	r.MustRegister("gain", func(cfg core.ProcessorConfig) (Processor, error) {
		return NewGain(DefaultGainParams(), configOptions(cfg)...)
	})
	return r
}

func configOptions(cfg core.ProcessorConfig) []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(cfg.SampleRate),
		core.WithMaxDelayMs(cfg.MaxDelayMs),
	}
}
