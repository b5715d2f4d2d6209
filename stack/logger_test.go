package stack_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"

	"github.com/observe-l/rlnc/stack"
)

func TestSetLoggerNilKeepsBuildsWorking(t *testing.T) {
	prev := stack.SetLogger(nil)
	t.Cleanup(func() { stack.SetLogger(prev) })
	require.NotNil(t, stack.Logger())

	p := newCounterPool(t, stack.WithObserver(&countingObserver{}))
	h, err := p.Build(2, 2)
	require.NoError(t, err)
	h.Release()
	h, err = p.Build(2, 2)
	require.NoError(t, err)
	h.Release()

	f, err := stack.NewFactory[counter](bounds{4, 4}, stack.WithObserver(&countingObserver{}))
	require.NoError(t, err)
	_, err = f.Build(1, 1)
	require.NoError(t, err)
}

func TestSetLoggerReachesExistingPools(t *testing.T) {
	p := newCounterPool(t, stack.WithObserver(&countingObserver{}))

	core, logs := zapobserver.New(zapcore.DebugLevel)
	prev := stack.SetLogger(zap.New(core))
	t.Cleanup(func() { stack.SetLogger(prev) })

	h, err := p.Build(1, 1)
	require.NoError(t, err)
	h.Release()
	require.Equal(t, 1, logs.FilterMessage("coder released").Len())

	require.Same(t, stack.Logger(), stack.SetLogger(nil))
	require.NotNil(t, stack.Logger())
}
