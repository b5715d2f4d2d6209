// Package layer holds the capability layers coders are composed from, and the
// factory layers that declare their bounds.
//
// Coder layers, bottom to top:
//
//	BlockInfo              symbols, symbol size, bounds
//	CoefficientInfo[F]     coefficient vector length and packed size in F
//	UniformGenerator[F]    seeded uniform coefficient generation
//	UniformSymbolID[F]     symbol identifier sizing, WriteID and ReadID
//
// Factory layers mirror them: BlockFactory, CoefficientFactory[F] and
// SymbolIDFactory[F]. Every layer embeds the one beneath it, forwards
// Construct and Initialize to it first, and only adds to its surface.
package layer

import (
	"fmt"

	"github.com/observe-l/rlnc/stack"
)

// BlockFactory is the bottom factory layer. It stores the bounds every coder
// of the stack is constructed against.
type BlockFactory struct {
	maxSymbols    uint32
	maxSymbolSize uint32
}

// NewBlockFactory fails with stack.ErrConfiguration if either bound is zero.
func NewBlockFactory(maxSymbols, maxSymbolSize uint32) (*BlockFactory, error) {
	f := new(BlockFactory)
	if err := f.init(maxSymbols, maxSymbolSize); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *BlockFactory) init(maxSymbols, maxSymbolSize uint32) error {
	if maxSymbols == 0 || maxSymbolSize == 0 {
		return fmt.Errorf("block factory: max_symbols=%d max_symbol_size=%d: %w",
			maxSymbols, maxSymbolSize, stack.ErrConfiguration)
	}
	f.maxSymbols = maxSymbols
	f.maxSymbolSize = maxSymbolSize
	return nil
}

func (f *BlockFactory) MaxSymbols() uint32    { return f.maxSymbols }
func (f *BlockFactory) MaxSymbolSize() uint32 { return f.maxSymbolSize }

// MaxBlockSize is the largest block, in bytes, a coder of the stack holds.
func (f *BlockFactory) MaxBlockSize() uint64 {
	return uint64(f.maxSymbols) * uint64(f.maxSymbolSize)
}

// BlockInfo is the bottom coder layer: the block geometry.
type BlockInfo struct {
	maxSymbols    uint32
	maxSymbolSize uint32
	symbols       uint32
	symbolSize    uint32
}

// Construct records the bounds Initialize checks against.
func (b *BlockInfo) Construct(bounds stack.Bounds) error {
	if bounds.MaxSymbols() == 0 || bounds.MaxSymbolSize() == 0 {
		return fmt.Errorf("block info: zero bounds: %w", stack.ErrConfiguration)
	}
	b.maxSymbols = bounds.MaxSymbols()
	b.maxSymbolSize = bounds.MaxSymbolSize()
	return nil
}

// Initialize sets up the coder for a block. Parameters beyond the
// constructed bounds fail with stack.ErrInvalidArgument.
func (b *BlockInfo) Initialize(symbols, symbolSize uint32) error {
	if b.maxSymbols == 0 {
		return fmt.Errorf("block info: coder was not constructed: %w", stack.ErrInvalidArgument)
	}
	if err := stack.CheckBounds(b, symbols, symbolSize); err != nil {
		return err
	}
	b.symbols = symbols
	b.symbolSize = symbolSize
	return nil
}

func (b *BlockInfo) Symbols() uint32       { return b.symbols }
func (b *BlockInfo) SymbolSize() uint32    { return b.symbolSize }
func (b *BlockInfo) MaxSymbols() uint32    { return b.maxSymbols }
func (b *BlockInfo) MaxSymbolSize() uint32 { return b.maxSymbolSize }

// BlockSize is symbols * symbol size in bytes.
func (b *BlockInfo) BlockSize() uint64 {
	return uint64(b.symbols) * uint64(b.symbolSize)
}
