package stack

import (
	"fmt"

	"go.uber.org/zap"
)

// Factory builds coders of type C for blocks within fixed bounds. Every Build
// allocates and constructs a new coder; see Pool for recycling.
//
// A Factory is safe for concurrent use. The coders it returns are not.
type Factory[C any, P Constructible[C]] struct {
	bounds Bounds
	opts   options
}

// NewFactory returns a factory for the given factory layer. It fails with
// ErrConfiguration if either bound is zero.
func NewFactory[C any, P Constructible[C]](bounds Bounds, opts ...Option) (*Factory[C, P], error) {
	if bounds == nil {
		return nil, fmt.Errorf("factory: nil bounds: %w", ErrConfiguration)
	}
	if bounds.MaxSymbols() == 0 || bounds.MaxSymbolSize() == 0 {
		return nil, fmt.Errorf("factory: max_symbols=%d max_symbol_size=%d: %w",
			bounds.MaxSymbols(), bounds.MaxSymbolSize(), ErrConfiguration)
	}
	return &Factory[C, P]{bounds: bounds, opts: newOptions(opts)}, nil
}

// Bounds returns the factory layer the coders are constructed against.
func (f *Factory[C, P]) Bounds() Bounds { return f.bounds }

// Name returns the stack label used in logs and metrics.
func (f *Factory[C, P]) Name() string { return f.opts.name }

// Build constructs a coder and initializes it for a block of symbols
// symbols of symbolSize bytes each. Parameters beyond the bounds fail with
// ErrInvalidArgument.
func (f *Factory[C, P]) Build(symbols, symbolSize uint32) (P, error) {
	var zero P
	if err := CheckBounds(f.bounds, symbols, symbolSize); err != nil {
		return zero, err
	}
	c, err := f.construct()
	if err != nil {
		return zero, err
	}
	if err := c.Initialize(symbols, symbolSize); err != nil {
		return zero, fmt.Errorf("%s: initialize: %w", f.opts.name, err)
	}
	return c, nil
}

func (f *Factory[C, P]) construct() (P, error) {
	c := P(new(C))
	if err := c.Construct(f.bounds); err != nil {
		var zero P
		return zero, fmt.Errorf("%s: construct: %w", f.opts.name, err)
	}
	f.opts.observer.CoderBuilt(f.opts.name)
	f.opts.log().Debug("coder constructed",
		zap.String("stack", f.opts.name),
		zap.Uint32("max_symbols", f.bounds.MaxSymbols()),
		zap.Uint32("max_symbol_size", f.bounds.MaxSymbolSize()))
	return c, nil
}
