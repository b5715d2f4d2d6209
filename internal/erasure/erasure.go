// Package erasure simulates a lossy channel between an encoder and a decoder.
package erasure

import (
	"fmt"
	"math/rand"

	"github.com/observe-l/rlnc/stack"
)

// Channel erases each identifier independently with a fixed probability.
// The erasure pattern is a pure function of the seed, so one channel per
// block replays the same losses however the blocks are scheduled.
type Channel struct {
	loss float64
	rng  *rand.Rand
}

// NewChannel fails with stack.ErrInvalidArgument unless 0 <= loss <= 1.
func NewChannel(loss float64, seed int64) (*Channel, error) {
	if !(loss >= 0 && loss <= 1) {
		return nil, fmt.Errorf("erasure: loss %v outside [0, 1]: %w", loss, stack.ErrInvalidArgument)
	}
	return &Channel{loss: loss, rng: rand.New(rand.NewSource(seed))}, nil
}

// Loss is the erasure probability.
func (c *Channel) Loss() float64 { return c.loss }

// Filter returns the items that cross the channel, in order. in is not
// modified. A lossless channel returns in itself and consumes no randomness.
func Filter[T any](c *Channel, in []T) []T {
	if c.loss == 0 {
		return in
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if c.loss < 1 && c.rng.Float64() >= c.loss {
			out = append(out, v)
		}
	}
	return out
}
