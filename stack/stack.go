// Package stack is the composition mechanism coders are assembled with.
//
// A coder is a stack of capability layers. Each layer is a struct that embeds
// the layer beneath it, so the layer's methods are added to the promoted
// surface of everything below and calls resolve at compile time. Layers
// forward two operations downward before doing their own work:
//
//   - Construct(bounds) runs once, when a factory creates the coder, and
//     sizes anything that depends only on the factory's upper bounds.
//   - Initialize(symbols, symbolSize) runs for every block, on fresh and
//     recycled coders alike.
//
// The final layer is not part of the coder: a Factory or a Pool, generic
// over the composed coder type, owns construction and lifetime. A coder type
// that lacks Construct or Initialize does not satisfy Constructible and fails
// to compile as a factory argument.
package stack

// Bounds is the capability every factory layer exposes: the fixed upper
// limits coders are constructed against.
type Bounds interface {
	MaxSymbols() uint32
	MaxSymbolSize() uint32
}

// Layer is the operation surface the final factory drives.
type Layer interface {
	Construct(bounds Bounds) error
	Initialize(symbols, symbolSize uint32) error
}

// Constructible ties a coder struct C to its pointer type so a factory can
// allocate it with new(C).
type Constructible[C any] interface {
	*C
	Layer
}

// Observer receives factory and pool events. The default implementation
// exports them as Prometheus metrics.
type Observer interface {
	// CoderBuilt is called after a coder was allocated and constructed.
	CoderBuilt(stack string)
	// CoderLent is called when a pool hands out a coder.
	CoderLent(stack string, reused bool)
	// CoderReturned is called when Handle.Release puts a coder back.
	CoderReturned(stack string)
	// HandleLeaked is called when a handle became unreachable without
	// Release. Its coder never returns to the pool.
	HandleLeaked(stack string)
	// IdleChanged reports the new free list length of a pool.
	IdleChanged(stack string, idle int)
}

// CheckBounds reports whether (symbols, symbolSize) fits inside b.
func CheckBounds(b Bounds, symbols, symbolSize uint32) error {
	if symbols > b.MaxSymbols() {
		return &BoundsError{Param: "symbols", Value: symbols, Max: b.MaxSymbols()}
	}
	if symbolSize > b.MaxSymbolSize() {
		return &BoundsError{Param: "symbol_size", Value: symbolSize, Max: b.MaxSymbolSize()}
	}
	return nil
}
