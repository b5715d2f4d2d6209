package layer

import (
	"fmt"

	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/stack"
)

// SymbolIDFactory adds the largest symbol identifier to the factory bounds.
type SymbolIDFactory[F field.Field] struct {
	CoefficientFactory[F]
	maxIDSize uint32
}

// NewSymbolIDFactory fails with stack.ErrConfiguration for zero bounds or
// when max_symbols coefficients of F do not pack into 1..math.MaxUint32
// bytes.
func NewSymbolIDFactory[F field.Field](maxSymbols, maxSymbolSize uint32) (*SymbolIDFactory[F], error) {
	f := new(SymbolIDFactory[F])
	if err := f.init(maxSymbols, maxSymbolSize); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *SymbolIDFactory[F]) init(maxSymbols, maxSymbolSize uint32) error {
	if err := f.CoefficientFactory.init(maxSymbols, maxSymbolSize); err != nil {
		return err
	}
	f.maxIDSize = f.MaxCoefficientsSize()
	if f.maxIDSize == 0 {
		return fmt.Errorf("symbol id factory: %s packs %d symbols into 0 bytes: %w",
			field.Name[F](), maxSymbols, stack.ErrConfiguration)
	}
	return nil
}

// MaxSymbolIDSize is the identifier size for a block of MaxSymbols()
// symbols. Buffers of this size fit every coder the factory builds.
func (f *SymbolIDFactory[F]) MaxSymbolIDSize() uint32 { return f.maxIDSize }

// UniformSymbolID writes uniformly random coefficients straight into the
// symbol identifier: the identifier is the packed coefficient vector.
// WriteID consumes randomness; ReadID only reinterprets the buffer.
type UniformSymbolID[F field.Field] struct {
	UniformGenerator[F]
	idSize uint32
}

func (s *UniformSymbolID[F]) Initialize(symbols, symbolSize uint32) error {
	if err := s.UniformGenerator.Initialize(symbols, symbolSize); err != nil {
		return err
	}
	s.idSize = s.CoefficientsSize()
	return nil
}

// SymbolIDSize is the identifier length in bytes for the current block.
func (s *UniformSymbolID[F]) SymbolIDSize() uint32 { return s.idSize }

// WriteID fills the first SymbolIDSize() bytes of id with fresh coefficients
// and returns them as the coefficient vector.
func (s *UniformSymbolID[F]) WriteID(id []byte) ([]byte, error) {
	if len(id) < int(s.idSize) {
		return nil, shortBuffer("write id", len(id), s.idSize)
	}
	coefficients := id[:s.idSize]
	s.fill(coefficients)
	return coefficients, nil
}

// ReadID returns the coefficient vector carried by id without modifying it.
func (s *UniformSymbolID[F]) ReadID(id []byte) ([]byte, error) {
	if len(id) < int(s.idSize) {
		return nil, shortBuffer("read id", len(id), s.idSize)
	}
	return id[:s.idSize], nil
}
