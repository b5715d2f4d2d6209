package layer

import (
	"fmt"

	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/stack"
)

// CoefficientFactory adds coefficient vector bounds for field F.
type CoefficientFactory[F field.Field] struct {
	BlockFactory
}

func NewCoefficientFactory[F field.Field](maxSymbols, maxSymbolSize uint32) (*CoefficientFactory[F], error) {
	f := new(CoefficientFactory[F])
	if err := f.init(maxSymbols, maxSymbolSize); err != nil {
		return nil, err
	}
	return f, nil
}

// init fails with stack.ErrConfiguration when max_symbols coefficients of F
// do not pack into a uint32 byte count.
func (f *CoefficientFactory[F]) init(maxSymbols, maxSymbolSize uint32) error {
	if err := f.BlockFactory.init(maxSymbols, maxSymbolSize); err != nil {
		return err
	}
	if _, err := field.Size[F](maxSymbols); err != nil {
		return fmt.Errorf("coefficient factory: max_symbols=%d: %w: %w",
			maxSymbols, err, stack.ErrConfiguration)
	}
	return nil
}

// MaxCoefficientsSize is the packed size of the longest coefficient vector.
func (f *CoefficientFactory[F]) MaxCoefficientsSize() uint32 {
	return field.BytesNeeded[F](f.MaxSymbols())
}

// CoefficientInfo knows how many coefficients a block needs and how many
// bytes they pack into in F.
type CoefficientInfo[F field.Field] struct {
	BlockInfo
	length uint32
	size   uint32
}

func (c *CoefficientInfo[F]) Initialize(symbols, symbolSize uint32) error {
	if err := c.BlockInfo.Initialize(symbols, symbolSize); err != nil {
		return err
	}
	size, err := field.Size[F](symbols)
	if err != nil {
		return fmt.Errorf("coefficient info: %w: %w", err, stack.ErrConfiguration)
	}
	if size == 0 && symbols > 0 {
		return fmt.Errorf("coefficient info: %s packs %d symbols into 0 bytes: %w",
			field.Name[F](), symbols, stack.ErrConfiguration)
	}
	c.length = symbols
	c.size = size
	return nil
}

// CoefficientsLength is the number of coefficients, one per symbol.
func (c *CoefficientInfo[F]) CoefficientsLength() uint32 { return c.length }

// CoefficientsSize is the number of bytes the coefficients pack into.
func (c *CoefficientInfo[F]) CoefficientsSize() uint32 { return c.size }

// Field returns the zero value of the coefficient field.
func (c *CoefficientInfo[F]) Field() F {
	var f F
	return f
}
