package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/observe-l/rlnc"
	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/stack"
	"github.com/observe-l/rlnc/wire"
)

func testConfig(t *testing.T, json string) *rlnc.Config {
	t.Helper()
	cfg, err := rlnc.ParseConfig([]byte(json))
	require.NoError(t, err)
	return cfg
}

func TestRunBinary8(t *testing.T) {
	for _, pooled := range []bool{false, true} {
		cfg := testConfig(t, `{"max_symbols":32,"max_symbol_size":16,"symbols":24,"count":100,"workers":3}`)
		cfg.Pooled = pooled
		rep, err := run[field.Binary8](context.Background(), cfg, []byte("k"), false, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.Equal(t, 5, rep.blocks)
		require.Equal(t, 100, rep.identifiers)
		require.Equal(t, 100*24, rep.idBytes)
		require.True(t, rep.rankChecked)
		// the last block holds 4 identifiers and cannot reach rank 24; a
		// square random matrix is singular with probability about 1/255
		require.LessOrEqual(t, rep.fullRank, 4)
		require.GreaterOrEqual(t, rep.fullRank, 3)
		require.Empty(t, rep.frames)
	}
}

func TestRunIsReproducibleWithKey(t *testing.T) {
	cfg := testConfig(t, `{"field":"binary4","max_symbols":20,"max_symbol_size":8,"count":60,"workers":4,"pooled":true}`)
	a, err := run[field.Binary4](context.Background(), cfg, []byte("shared"), true, zaptest.NewLogger(t))
	require.NoError(t, err)
	cfg.Workers = 1
	b, err := run[field.Binary4](context.Background(), cfg, []byte("shared"), true, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, a.frames, b.frames)
	require.Equal(t, a.counts, b.counts)
	require.False(t, a.rankChecked)

	// every frame parses and carries the derived seed of its block
	require.Len(t, a.frames, 60)
	h, id, payload, rest, err := wire.ParseSymbol(a.frames[25])
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, uint16(1), h.BlockID)
	require.Equal(t, rlnc.DeriveSeed([]byte("shared"), 1), h.Seed)
	require.Len(t, id, 10)
	require.Len(t, payload, 8)
}

func TestRunWithLoss(t *testing.T) {
	cfg := testConfig(t, `{"max_symbols":16,"max_symbol_size":4,"overhead":8,"loss":1,"count":48}`)
	rep, err := run[field.Binary8](context.Background(), cfg, []byte("k"), false, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, 2, rep.blocks)
	require.Equal(t, 48, rep.dropped)
	require.Zero(t, rep.fullRank)

	// with overhead a moderate loss still leaves most blocks decodable
	cfg = testConfig(t, `{"max_symbols":16,"max_symbol_size":4,"overhead":16,"loss":0.2,"count":640}`)
	rep, err = run[field.Binary8](context.Background(), cfg, []byte("k"), false, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, 20, rep.blocks)
	require.Greater(t, rep.dropped, 0)
	require.GreaterOrEqual(t, rep.fullRank, 18)

	var out bytes.Buffer
	rep.print(&out, cfg)
	require.Contains(t, out.String(), "loss=0.200")
}

func TestRunCanceled(t *testing.T) {
	cfg := testConfig(t, `{"count":100000,"workers":2}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := run[field.Binary](ctx, cfg, nil, false, zaptest.NewLogger(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsMoreBlocksThanBlockIDs(t *testing.T) {
	cfg := testConfig(t, `{"max_symbols":1,"max_symbol_size":1,"count":65536,"workers":8}`)
	require.Equal(t, wire.MaxBlocks, cfg.Blocks())

	cfg.Count = 70000
	_, err := run[field.Binary8](context.Background(), cfg, nil, true, zaptest.NewLogger(t))
	require.ErrorIs(t, err, stack.ErrConfiguration)
}

func TestRunRejectsInvalidLoss(t *testing.T) {
	cfg := testConfig(t, `{"max_symbols":4,"max_symbol_size":4,"count":8}`)
	cfg.Loss = 1.5
	_, err := run[field.Binary8](context.Background(), cfg, nil, false, zaptest.NewLogger(t))
	require.ErrorIs(t, err, stack.ErrInvalidArgument)
}

func TestDispatchAndWriteFrames(t *testing.T) {
	cfg := testConfig(t, `{"field":"binary16","max_symbols":4,"max_symbol_size":3,"count":8,"seed":1}`)
	rep, err := dispatch(context.Background(), cfg, nil, true, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, 2, rep.blocks)
	// a fixed seed repeats the identifiers of every block
	require.Equal(t, rep.frames[0][wire.HeaderLen:], rep.frames[4][wire.HeaderLen:])

	path := filepath.Join(t.TempDir(), "ids.bin")
	require.NoError(t, writeFrames(path, rep.frames))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 8*(wire.HeaderLen+8+3))

	var out bytes.Buffer
	rep.print(&out, cfg)
	require.Contains(t, out.String(), "identifiers=8")
	require.NotContains(t, out.String(), "full_rank_blocks")
}
