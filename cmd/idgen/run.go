package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/observe-l/rlnc"
	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/internal/erasure"
	"github.com/observe-l/rlnc/stack"
	"github.com/observe-l/rlnc/wire"
)

type report struct {
	blocks      int
	identifiers int
	idBytes     int
	counts      [256]int
	dropped     int
	// only filled for GF(2^8)
	rankChecked bool
	fullRank    int
	frames      [][]byte
	elapsed     time.Duration
}

// chiSquared is the statistic of the byte histogram against uniform.
func (r *report) chiSquared() float64 {
	if r.idBytes == 0 {
		return 0
	}
	expected := float64(r.idBytes) / 256
	var chi2 float64
	for _, n := range r.counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	return chi2
}

func (r *report) print(w io.Writer, cfg *rlnc.Config) {
	fmt.Fprintf(w, "field=%s symbols=%d symbol_size=%d pooled=%v workers=%d\n",
		cfg.Field, cfg.Symbols, cfg.SymbolSize, cfg.Pooled, cfg.Workers)
	fmt.Fprintf(w, "blocks=%d identifiers=%d bytes=%d elapsed=%v\n",
		r.blocks, r.identifiers, r.idBytes, r.elapsed)
	fmt.Fprintf(w, "chi2=%.1f (df=255)\n", r.chiSquared())
	if cfg.Loss > 0 {
		fmt.Fprintf(w, "loss=%.3f dropped=%d\n", cfg.Loss, r.dropped)
	}
	if r.rankChecked {
		fmt.Fprintf(w, "full_rank_blocks=%d/%d\n", r.fullRank, r.blocks)
	}
}

// blockResult is what one worker produces for one block.
type blockResult struct {
	ids      [][]byte
	dropped  int
	fullRank bool
}

// acquireFunc hands out a coder initialized for a block and a release func.
type acquireFunc[F field.Field] func(symbols, symbolSize uint32) (*rlnc.SymbolIDCoder[F], func(), error)

func newAcquire[F field.Field](cfg *rlnc.Config) (acquireFunc[F], error) {
	if cfg.Pooled {
		p, err := rlnc.NewSymbolIDPool[F](cfg.MaxSymbols, cfg.MaxSymbolSize)
		if err != nil {
			return nil, err
		}
		return func(symbols, symbolSize uint32) (*rlnc.SymbolIDCoder[F], func(), error) {
			h, err := p.Build(symbols, symbolSize)
			if err != nil {
				return nil, nil, err
			}
			return h.Coder(), h.Release, nil
		}, nil
	}
	f, err := rlnc.NewSymbolIDFactory[F](cfg.MaxSymbols, cfg.MaxSymbolSize)
	if err != nil {
		return nil, err
	}
	return func(symbols, symbolSize uint32) (*rlnc.SymbolIDCoder[F], func(), error) {
		c, err := f.Build(symbols, symbolSize)
		return c, func() {}, err
	}, nil
}

// blockSeed picks the seed for block b. The second result is false when the
// coder should stay unseeded.
func blockSeed(cfg *rlnc.Config, key []byte, b int) (uint32, bool) {
	switch {
	case cfg.Seed != nil:
		return *cfg.Seed, true
	case len(key) > 0:
		return rlnc.DeriveSeed(key, uint64(b)), true
	}
	return 0, false
}

// run splits cfg.Count identifiers into at most wire.MaxBlocks blocks of
// cfg.Symbols+cfg.Overhead identifiers and generates them on cfg.Workers goroutines. The rank check
// only sees the identifiers that survive the simulated channel. With
// keepFrames every identifier is also framed for output.
func run[F field.Field](ctx context.Context, cfg *rlnc.Config, key []byte, keepFrames bool, log *zap.Logger) (*report, error) {
	acquire, err := newAcquire[F](cfg)
	if err != nil {
		return nil, err
	}
	perBlock, blocks := cfg.PerBlock(), cfg.Blocks()
	if blocks > wire.MaxBlocks {
		return nil, fmt.Errorf("%d blocks exceed the %d block ids of a frame stream: %w",
			blocks, wire.MaxBlocks, stack.ErrConfiguration)
	}
	results := make([]blockResult, blocks)
	checkRank := field.Name[F]() == field.Name[field.Binary8]()

	next := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(next)
		for b := 0; b < blocks; b++ {
			select {
			case next <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < max(cfg.Workers, 1); w++ {
		g.Go(func() error {
			for b := range next {
				n := min(perBlock, cfg.Count-b*perBlock)
				res, err := generateBlock(acquire, cfg, key, b, n, checkRank)
				if err != nil {
					return fmt.Errorf("block %d: %w", b, err)
				}
				results[b] = res
				log.Debug("block generated", zap.Int("block", b), zap.Int("identifiers", n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &report{blocks: blocks, rankChecked: checkRank}
	for b, res := range results {
		if res.fullRank {
			rep.fullRank++
		}
		rep.dropped += res.dropped
		seed, _ := blockSeed(cfg, key, b)
		h := wire.NewHeader[F](uint16(b), cfg.Symbols, cfg.SymbolSize, seed)
		var payload []byte
		if keepFrames {
			payload = make([]byte, cfg.SymbolSize)
		}
		for _, id := range res.ids {
			rep.identifiers++
			rep.idBytes += len(id)
			for _, v := range id {
				rep.counts[v]++
			}
			if !keepFrames {
				continue
			}
			frame, err := wire.AppendSymbol(nil, &h, id, payload)
			if err != nil {
				return nil, err
			}
			rep.frames = append(rep.frames, frame)
		}
	}
	return rep, nil
}

func generateBlock[F field.Field](acquire acquireFunc[F], cfg *rlnc.Config, key []byte, b, n int, checkRank bool) (blockResult, error) {
	c, release, err := acquire(cfg.Symbols, cfg.SymbolSize)
	if err != nil {
		return blockResult{}, err
	}
	defer release()
	if seed, ok := blockSeed(cfg, key, b); ok {
		c.Seed(seed)
	}
	res := blockResult{ids: make([][]byte, n)}
	for i := range res.ids {
		res.ids[i] = make([]byte, c.SymbolIDSize())
		if _, err := c.WriteID(res.ids[i]); err != nil {
			return blockResult{}, err
		}
	}
	received := res.ids
	if cfg.Loss > 0 {
		ch, err := erasure.NewChannel(cfg.Loss, int64(b))
		if err != nil {
			return blockResult{}, err
		}
		received = erasure.Filter(ch, res.ids)
		res.dropped = n - len(received)
	}
	if checkRank {
		res.fullRank = len(received) >= int(cfg.Symbols) &&
			field.Rank(received, int(cfg.Symbols)) == int(cfg.Symbols)
	}
	return res, nil
}
