package layer

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/stack"
)

// UniformGenerator draws coefficients uniformly at random. Each coefficient
// byte is one independent draw over 0..255, so every packed element of F is
// uniform as well.
//
// Until Seed is called the generator starts from an unpredictable state, so
// independent coders do not produce the same coefficients. After Seed(s) the
// output stream is a pure function of s and the calls made since.
type UniformGenerator[F field.Field] struct {
	CoefficientInfo[F]
	rng *rand.Rand
}

func (g *UniformGenerator[F]) Construct(bounds stack.Bounds) error {
	if err := g.CoefficientInfo.Construct(bounds); err != nil {
		return err
	}
	g.rng = rand.New(rand.NewSource(entropySeed()))
	return nil
}

// Seed resets the generator to the deterministic state for seed.
func (g *UniformGenerator[F]) Seed(seed uint32) {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(int64(seed)))
		return
	}
	g.rng.Seed(int64(seed))
}

// Generate fills the first CoefficientsSize() bytes of coefficients.
func (g *UniformGenerator[F]) Generate(coefficients []byte) error {
	n := g.CoefficientsSize()
	if len(coefficients) < int(n) {
		return shortBuffer("generate", len(coefficients), n)
	}
	g.fill(coefficients[:n])
	return nil
}

func (g *UniformGenerator[F]) fill(b []byte) {
	for i := range b {
		b[i] = byte(g.rng.Intn(256))
	}
}

func entropySeed() int64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func shortBuffer(op string, got int, want uint32) error {
	return fmt.Errorf("%s: buffer holds %d bytes, need %d: %w", op, got, want, stack.ErrInvalidArgument)
}
