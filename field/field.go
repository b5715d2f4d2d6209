// Package field describes the finite fields coefficients are drawn from.
//
// Every field is a zero-size type, so generic code can ask it questions
// through a zero value without carrying any state:
//
//	n := field.BytesNeeded[field.Binary8](symbols)
//
// BytesNeeded saturates at math.MaxUint32. Code that sizes buffers or wire
// fields from untrusted counts uses Size, which reports the overflow.
//
// Elements of the binary extension fields are packed little-end first into
// bytes: eight GF(2) elements per byte, two GF(2^4) elements per byte, one
// GF(2^8) element per byte and two bytes per GF(2^16) element.
package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned by Size when n elements pack into more than
// math.MaxUint32 bytes.
var ErrOverflow = errors.New("field: packed size overflows uint32")

// Field is the capability the coding layers consume from a finite field.
type Field interface {
	// Name is the short identifier used in configuration and logs.
	Name() string
	// Bits is the width of one element in bits.
	Bits() uint8
	// BytesNeeded returns the bytes required to pack n elements, saturated
	// at math.MaxUint32. It is 0 only when n is 0.
	BytesNeeded(n uint32) uint32
}

// Binary is GF(2).
type Binary struct{}

func (Binary) Name() string { return "binary" }
func (Binary) Bits() uint8  { return 1 }

func (f Binary) BytesNeeded(n uint32) uint32 { return saturate(packed(f, n)) }

// Binary4 is GF(2^4).
type Binary4 struct{}

func (Binary4) Name() string { return "binary4" }
func (Binary4) Bits() uint8  { return 4 }

func (f Binary4) BytesNeeded(n uint32) uint32 { return saturate(packed(f, n)) }

// Binary8 is GF(2^8), see gf256.go for its arithmetic.
type Binary8 struct{}

func (Binary8) Name() string { return "binary8" }
func (Binary8) Bits() uint8  { return 8 }

func (Binary8) BytesNeeded(n uint32) uint32 {
	return n
}

// Binary16 is GF(2^16).
type Binary16 struct{}

func (Binary16) Name() string { return "binary16" }
func (Binary16) Bits() uint8  { return 16 }

func (f Binary16) BytesNeeded(n uint32) uint32 { return saturate(packed(f, n)) }

// BytesNeeded is the field size oracle: the number of bytes needed to pack n
// elements of F.
func BytesNeeded[F Field](n uint32) uint32 {
	var f F
	return f.BytesNeeded(n)
}

// packed is the exact byte count of n elements of f, rounded up.
func packed(f Field, n uint32) uint64 {
	return (uint64(n)*uint64(f.Bits()) + 7) / 8
}

func saturate(n uint64) uint32 {
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// SizeOf is the checked size oracle: the bytes needed to pack n elements of
// f, or ErrOverflow when that does not fit in a uint32.
func SizeOf(f Field, n uint32) (uint32, error) {
	size := packed(f, n)
	if size > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d %s elements need %d bytes", ErrOverflow, n, f.Name(), size)
	}
	return uint32(size), nil
}

// Size is SizeOf for the field type F.
func Size[F Field](n uint32) (uint32, error) {
	var f F
	return SizeOf(f, n)
}

// Name returns the name of F.
func Name[F Field]() string {
	var f F
	return f.Name()
}

// Lookup resolves a field by name or by its element width in bits.
func Lookup(name string) (Field, error) {
	for _, f := range All() {
		if f.Name() == name || fmt.Sprint(f.Bits()) == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("field: unknown field %q", name)
}

// ByBits resolves a field by its element width.
func ByBits(bits uint8) (Field, error) {
	for _, f := range All() {
		if f.Bits() == bits {
			return f, nil
		}
	}
	return nil, fmt.Errorf("field: no field with %d-bit elements", bits)
}

// All lists the supported fields, narrowest first.
func All() []Field {
	return []Field{Binary{}, Binary4{}, Binary8{}, Binary16{}}
}
