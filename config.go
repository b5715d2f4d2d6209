package rlnc

import (
	"fmt"
	"io"

	"github.com/francoispqt/gojay"

	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/layer"
	"github.com/observe-l/rlnc/stack"
	"github.com/observe-l/rlnc/wire"
)

const (
	DefaultField         = "binary8"
	DefaultMaxSymbols    = 64
	DefaultMaxSymbolSize = 1400
	DefaultCount         = 1024
	DefaultWorkers       = 4
)

// Config describes a coder stack and a batch of work for it. Zero values are
// replaced by defaults; Symbols and SymbolSize default to their maximums.
type Config struct {
	Field         string
	MaxSymbols    uint32
	MaxSymbolSize uint32
	Symbols       uint32
	SymbolSize    uint32
	Seed          *uint32 // nil: unseeded coders
	Count         int     // identifiers to generate
	Overhead      uint32  // identifiers per block beyond Symbols
	Loss          float64 // erasure probability of the simulated channel
	Workers       int
	Pooled        bool
}

var (
	_ gojay.UnmarshalerJSONObject = (*Config)(nil)
	_ gojay.MarshalerJSONObject   = (*Config)(nil)
)

func (c *Config) setDefaults() {
	if c.Field == "" {
		c.Field = DefaultField
	}
	if c.MaxSymbols == 0 {
		c.MaxSymbols = DefaultMaxSymbols
	}
	if c.MaxSymbolSize == 0 {
		c.MaxSymbolSize = DefaultMaxSymbolSize
	}
	if c.Symbols == 0 {
		c.Symbols = c.MaxSymbols
	}
	if c.SymbolSize == 0 {
		c.SymbolSize = c.MaxSymbolSize
	}
	if c.Count == 0 {
		c.Count = DefaultCount
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate applies defaults and checks that the configuration can build a
// coder. Failures wrap stack.ErrConfiguration.
func (c *Config) Validate() error {
	c.setDefaults()
	f, err := field.Lookup(c.Field)
	if err != nil {
		return fmt.Errorf("config: %v: %w", err, stack.ErrConfiguration)
	}
	if _, err := field.SizeOf(f, c.MaxSymbols); err != nil {
		return fmt.Errorf("config: max_symbols: %w: %w", err, stack.ErrConfiguration)
	}
	bounds, err := layer.NewBlockFactory(c.MaxSymbols, c.MaxSymbolSize)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := stack.CheckBounds(bounds, c.Symbols, c.SymbolSize); err != nil {
		return fmt.Errorf("config: %v: %w", err, stack.ErrConfiguration)
	}
	if c.Count < 0 {
		return fmt.Errorf("config: count %d is negative: %w", c.Count, stack.ErrConfiguration)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers %d is negative: %w", c.Workers, stack.ErrConfiguration)
	}
	if !(c.Loss >= 0 && c.Loss <= 1) {
		return fmt.Errorf("config: loss %v outside [0, 1]: %w", c.Loss, stack.ErrConfiguration)
	}
	if n := c.Blocks(); n > wire.MaxBlocks {
		return fmt.Errorf("config: count %d needs %d blocks of %d identifiers, at most %d fit the block id: %w",
			c.Count, n, c.PerBlock(), wire.MaxBlocks, stack.ErrConfiguration)
	}
	return nil
}

// PerBlock is the number of identifiers generated per block, Symbols plus
// Overhead and at least one.
func (c *Config) PerBlock() int {
	return int(max(uint64(c.Symbols)+uint64(c.Overhead), 1))
}

// Blocks is the number of blocks Count identifiers are split into.
func (c *Config) Blocks() int {
	if c.Count <= 0 {
		return 0
	}
	n := c.PerBlock()
	return (c.Count + n - 1) / n
}

// FieldType resolves the configured field.
func (c *Config) FieldType() (field.Field, error) {
	return field.Lookup(c.Field)
}

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (c *Config) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "field":
		return dec.String(&c.Field)
	case "max_symbols":
		return dec.Uint32(&c.MaxSymbols)
	case "max_symbol_size":
		return dec.Uint32(&c.MaxSymbolSize)
	case "symbols":
		return dec.Uint32(&c.Symbols)
	case "symbol_size":
		return dec.Uint32(&c.SymbolSize)
	case "seed":
		var seed uint32
		if err := dec.Uint32(&seed); err != nil {
			return err
		}
		c.Seed = &seed
	case "count":
		return dec.Int(&c.Count)
	case "overhead":
		return dec.Uint32(&c.Overhead)
	case "loss":
		return dec.Float64(&c.Loss)
	case "workers":
		return dec.Int(&c.Workers)
	case "pooled":
		return dec.Bool(&c.Pooled)
	}
	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject. Unknown keys are skipped.
func (c *Config) NKeys() int { return 0 }

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (c *Config) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("field", c.Field)
	enc.Uint32Key("max_symbols", c.MaxSymbols)
	enc.Uint32Key("max_symbol_size", c.MaxSymbolSize)
	enc.Uint32Key("symbols", c.Symbols)
	enc.Uint32Key("symbol_size", c.SymbolSize)
	if c.Seed != nil {
		enc.Uint32Key("seed", *c.Seed)
	}
	enc.IntKey("count", c.Count)
	enc.Uint32Key("overhead", c.Overhead)
	enc.Float64Key("loss", c.Loss)
	enc.IntKey("workers", c.Workers)
	enc.BoolKey("pooled", c.Pooled)
}

func (c *Config) IsNil() bool { return c == nil }

// MarshalJSON encodes the configuration with the same keys ParseConfig reads.
func (c *Config) MarshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(c)
}

// ParseConfig decodes and validates a JSON configuration.
func ParseConfig(data []byte) (*Config, error) {
	c := new(Config)
	if err := gojay.UnmarshalJSONObject(data, c); err != nil {
		return nil, fmt.Errorf("config: decode: %v: %w", err, stack.ErrConfiguration)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig is ParseConfig over a reader.
func LoadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	dec := gojay.BorrowDecoder(r)
	defer dec.Release()
	if err := dec.DecodeObject(c); err != nil {
		return nil, fmt.Errorf("config: decode: %v: %w", err, stack.ErrConfiguration)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
