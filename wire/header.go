// Package wire frames one coded symbol for transports above the coder:
// a fixed header, the symbol identifier, then the payload. The identifier is
// carried as is; its length follows from the header's field and symbol count.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/stack"
)

// Version is the only header version understood.
const Version uint8 = 1

// Layout, little endian:
//
//	VERSION     u8
//	FIELD       u8   element width in bits (1, 4, 8, 16)
//	BLOCK       u16  per-block counter
//	SYMBOLS     u32  symbols in the block
//	SYMBOL_SIZE u32  payload bytes
//	SEED        u32  generator seed the identifiers were drawn with
const HeaderLen = 1 + 1 + 2 + 4 + 4 + 4

// MaxBlocks is the number of distinct BLOCK values, so the number of blocks
// one stream can frame before block ids repeat.
const MaxBlocks = math.MaxUint16 + 1

// ErrMalformed is returned for frames that cannot be parsed.
var ErrMalformed = errors.New("rlnc: malformed symbol frame")

type Header struct {
	Version    uint8
	FieldBits  uint8
	BlockID    uint16
	Symbols    uint32
	SymbolSize uint32
	Seed       uint32
}

// NewHeader fills a header for a block coded over F.
func NewHeader[F field.Field](blockID uint16, symbols, symbolSize, seed uint32) Header {
	var f F
	return Header{
		Version:    Version,
		FieldBits:  f.Bits(),
		BlockID:    blockID,
		Symbols:    symbols,
		SymbolSize: symbolSize,
		Seed:       seed,
	}
}

// IDSize is the length of the identifier that follows the header.
func (h *Header) IDSize() (uint32, error) {
	f, err := field.ByBits(h.FieldBits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n, err := field.SizeOf(f, h.Symbols)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return n, nil
}

// FrameLen is the full frame length: header, identifier and payload.
func (h *Header) FrameLen() (int, error) {
	n, err := h.IDSize()
	if err != nil {
		return 0, err
	}
	total := uint64(HeaderLen) + uint64(n) + uint64(h.SymbolSize)
	if total > math.MaxInt {
		return 0, fmt.Errorf("%w: frame of %d bytes", ErrMalformed, total)
	}
	return int(total), nil
}

// MarshalBinary writes the header into b, allocating when b is too short.
func (h *Header) MarshalBinary(b []byte) []byte {
	if len(b) < HeaderLen {
		b = make([]byte, HeaderLen)
	}
	b[0] = h.Version
	b[1] = h.FieldBits
	binary.LittleEndian.PutUint16(b[2:4], h.BlockID)
	binary.LittleEndian.PutUint32(b[4:8], h.Symbols)
	binary.LittleEndian.PutUint32(b[8:12], h.SymbolSize)
	binary.LittleEndian.PutUint32(b[12:16], h.Seed)
	return b[:HeaderLen]
}

func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderLen {
		return fmt.Errorf("%w: header needs %d bytes, have %d", ErrMalformed, HeaderLen, len(b))
	}
	if b[0] != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformed, b[0])
	}
	h.Version = b[0]
	h.FieldBits = b[1]
	h.BlockID = binary.LittleEndian.Uint16(b[2:4])
	h.Symbols = binary.LittleEndian.Uint32(b[4:8])
	h.SymbolSize = binary.LittleEndian.Uint32(b[8:12])
	h.Seed = binary.LittleEndian.Uint32(b[12:16])
	return nil
}

// AppendSymbol appends one frame to dst. id must be exactly IDSize() bytes
// and payload exactly SymbolSize bytes; otherwise it fails with
// stack.ErrInvalidArgument.
func AppendSymbol(dst []byte, h *Header, id, payload []byte) ([]byte, error) {
	idSize, err := h.IDSize()
	if err != nil {
		return dst, err
	}
	if len(id) != int(idSize) {
		return dst, fmt.Errorf("wire: identifier is %d bytes, header says %d: %w", len(id), idSize, stack.ErrInvalidArgument)
	}
	if len(payload) != int(h.SymbolSize) {
		return dst, fmt.Errorf("wire: payload is %d bytes, header says %d: %w", len(payload), h.SymbolSize, stack.ErrInvalidArgument)
	}
	var hdr [HeaderLen]byte
	dst = append(dst, h.MarshalBinary(hdr[:])...)
	dst = append(dst, id...)
	return append(dst, payload...), nil
}

// ParseSymbol splits one frame. id and payload alias b. Trailing bytes after
// the frame are returned in rest.
func ParseSymbol(b []byte) (h Header, id, payload, rest []byte, err error) {
	if err = h.UnmarshalBinary(b); err != nil {
		return Header{}, nil, nil, nil, err
	}
	n, err := h.FrameLen()
	if err != nil {
		return Header{}, nil, nil, nil, err
	}
	if len(b) < n {
		return Header{}, nil, nil, nil, fmt.Errorf("%w: frame needs %d bytes, have %d", ErrMalformed, n, len(b))
	}
	idSize, _ := h.IDSize()
	id = b[HeaderLen : HeaderLen+int(idSize) : HeaderLen+int(idSize)]
	payload = b[HeaderLen+int(idSize) : n : n]
	return h, id, payload, b[n:], nil
}
