package rlnc

import (
	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/internal/metrics"
	"github.com/observe-l/rlnc/layer"
	"github.com/observe-l/rlnc/stack"
)

// GeneratorCoder generates uniformly random coefficient vectors over F for
// one block at a time.
type GeneratorCoder[F field.Field] struct {
	layer.UniformGenerator[F]
}

// SymbolIDCoder writes and reads symbol identifiers holding the packed
// coefficient vector over F.
type SymbolIDCoder[F field.Field] struct {
	layer.UniformSymbolID[F]
}

type (
	// GeneratorHandle is a GeneratorCoder borrowed from a GeneratorPool.
	GeneratorHandle[F field.Field] = stack.Handle[*GeneratorCoder[F]]
	// SymbolIDHandle is a SymbolIDCoder borrowed from a SymbolIDPool.
	SymbolIDHandle[F field.Field] = stack.Handle[*SymbolIDCoder[F]]
)

// GeneratorFactory builds a new GeneratorCoder per call to Build.
type GeneratorFactory[F field.Field] struct {
	*layer.CoefficientFactory[F]
	*stack.Factory[GeneratorCoder[F], *GeneratorCoder[F]]
}

// NewGeneratorFactory returns a factory for blocks of up to maxSymbols
// symbols of up to maxSymbolSize bytes.
func NewGeneratorFactory[F field.Field](maxSymbols, maxSymbolSize uint32, opts ...stack.Option) (*GeneratorFactory[F], error) {
	bounds, err := layer.NewCoefficientFactory[F](maxSymbols, maxSymbolSize)
	if err != nil {
		return nil, err
	}
	f, err := stack.NewFactory[GeneratorCoder[F]](bounds, named[F]("generator", opts)...)
	if err != nil {
		return nil, err
	}
	return &GeneratorFactory[F]{CoefficientFactory: bounds, Factory: f}, nil
}

// GeneratorPool recycles GeneratorCoders.
type GeneratorPool[F field.Field] struct {
	*layer.CoefficientFactory[F]
	*stack.Pool[GeneratorCoder[F], *GeneratorCoder[F]]
}

func NewGeneratorPool[F field.Field](maxSymbols, maxSymbolSize uint32, opts ...stack.Option) (*GeneratorPool[F], error) {
	bounds, err := layer.NewCoefficientFactory[F](maxSymbols, maxSymbolSize)
	if err != nil {
		return nil, err
	}
	p, err := stack.NewPool[GeneratorCoder[F]](bounds, named[F]("generator", opts)...)
	if err != nil {
		return nil, err
	}
	return &GeneratorPool[F]{CoefficientFactory: bounds, Pool: p}, nil
}

// SymbolIDFactory builds a new SymbolIDCoder per call to Build. Its
// MaxSymbolIDSize is large enough for every coder it builds.
type SymbolIDFactory[F field.Field] struct {
	*layer.SymbolIDFactory[F]
	*stack.Factory[SymbolIDCoder[F], *SymbolIDCoder[F]]
}

func NewSymbolIDFactory[F field.Field](maxSymbols, maxSymbolSize uint32, opts ...stack.Option) (*SymbolIDFactory[F], error) {
	bounds, err := layer.NewSymbolIDFactory[F](maxSymbols, maxSymbolSize)
	if err != nil {
		return nil, err
	}
	f, err := stack.NewFactory[SymbolIDCoder[F]](bounds, named[F]("symbol_id", opts)...)
	if err != nil {
		return nil, err
	}
	return &SymbolIDFactory[F]{SymbolIDFactory: bounds, Factory: f}, nil
}

// SymbolIDPool recycles SymbolIDCoders.
type SymbolIDPool[F field.Field] struct {
	*layer.SymbolIDFactory[F]
	*stack.Pool[SymbolIDCoder[F], *SymbolIDCoder[F]]
}

func NewSymbolIDPool[F field.Field](maxSymbols, maxSymbolSize uint32, opts ...stack.Option) (*SymbolIDPool[F], error) {
	bounds, err := layer.NewSymbolIDFactory[F](maxSymbols, maxSymbolSize)
	if err != nil {
		return nil, err
	}
	p, err := stack.NewPool[SymbolIDCoder[F]](bounds, named[F]("symbol_id", opts)...)
	if err != nil {
		return nil, err
	}
	return &SymbolIDPool[F]{SymbolIDFactory: bounds, Pool: p}, nil
}

// named puts the default stack label in front of the caller's options so a
// WithName among them wins.
func named[F field.Field](prefix string, opts []stack.Option) []stack.Option {
	var f F
	return append([]stack.Option{stack.WithName(metrics.Label(prefix, f.Bits()))}, opts...)
}
