package stack

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Pool wraps a Factory and recycles the coders it builds. Build hands out a
// Handle; releasing the handle puts the coder back on the free list without
// re-seeding or re-initializing it. The next Build re-initializes it for the
// requested block.
//
// Only Release returns a coder. Callers release on every exit path:
//
//	h, err := pool.Build(symbols, symbolSize)
//	if err != nil {
//		return err
//	}
//	defer h.Release()
//
// A handle that becomes unreachable without Release is reported as leaked
// and its coder is left to the garbage collector, since the caller may still
// hold the coder itself.
//
// The free list is shared by all goroutines using the pool and is guarded by
// a mutex.
type Pool[C any, P Constructible[C]] struct {
	factory *Factory[C, P]

	mu   sync.Mutex
	free []P
}

// NewPool returns a pool over a new Factory with the same bounds and options.
func NewPool[C any, P Constructible[C]](bounds Bounds, opts ...Option) (*Pool[C, P], error) {
	f, err := NewFactory[C, P](bounds, opts...)
	if err != nil {
		return nil, err
	}
	return &Pool[C, P]{factory: f}, nil
}

// Factory returns the wrapped factory.
func (p *Pool[C, P]) Factory() *Factory[C, P] { return p.factory }

// Bounds returns the factory layer the coders are constructed against.
func (p *Pool[C, P]) Bounds() Bounds { return p.factory.bounds }

// Build returns a handle to a coder initialized for the block, reusing an
// idle coder when one is available.
func (p *Pool[C, P]) Build(symbols, symbolSize uint32) (*Handle[P], error) {
	if err := CheckBounds(p.factory.bounds, symbols, symbolSize); err != nil {
		return nil, err
	}
	c, reused := p.take()
	if !reused {
		var err error
		if c, err = p.factory.construct(); err != nil {
			return nil, err
		}
	}
	if err := c.Initialize(symbols, symbolSize); err != nil {
		p.put(c)
		return nil, fmt.Errorf("%s: initialize: %w", p.factory.opts.name, err)
	}
	p.factory.opts.observer.CoderLent(p.factory.opts.name, reused)
	if reused {
		p.factory.opts.log().Debug("coder reused",
			zap.String("stack", p.factory.opts.name),
			zap.Uint32("symbols", symbols),
			zap.Uint32("symbol_size", symbolSize))
	}

	h := &Handle[P]{coder: c, release: p.release}
	h.cleanup = runtime.AddCleanup(h, p.leaked, struct{}{})
	return h, nil
}

// Idle returns the number of coders in the free list.
func (p *Pool[C, P]) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Trim drops idle coders until at most keep remain and returns how many
// were dropped.
func (p *Pool[C, P]) Trim(keep int) int {
	if keep < 0 {
		keep = 0
	}
	p.mu.Lock()
	n := len(p.free) - keep
	if n <= 0 {
		p.mu.Unlock()
		return 0
	}
	clear(p.free[keep:])
	p.free = p.free[:keep]
	p.mu.Unlock()

	p.factory.opts.observer.IdleChanged(p.factory.opts.name, keep)
	p.factory.opts.log().Debug("pool trimmed",
		zap.String("stack", p.factory.opts.name),
		zap.Int("dropped", n),
		zap.Int("idle", keep))
	return n
}

func (p *Pool[C, P]) take() (P, bool) {
	var zero P
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return zero, false
	}
	c := p.free[n-1]
	p.free[n-1] = zero
	p.free = p.free[:n-1]
	p.mu.Unlock()

	p.factory.opts.observer.IdleChanged(p.factory.opts.name, n-1)
	return c, true
}

// put returns c to the free list. Coders beyond the idle bound are dropped.
func (p *Pool[C, P]) put(c P) {
	p.mu.Lock()
	if limit := p.factory.opts.maxIdle; limit > 0 && len(p.free) >= limit {
		p.mu.Unlock()
		p.factory.opts.log().Debug("pool full, dropping coder",
			zap.String("stack", p.factory.opts.name),
			zap.Int("max_idle", limit))
		return
	}
	p.free = append(p.free, c)
	idle := len(p.free)
	p.mu.Unlock()

	p.factory.opts.observer.IdleChanged(p.factory.opts.name, idle)
}

func (p *Pool[C, P]) release(c P) {
	p.factory.opts.observer.CoderReturned(p.factory.opts.name)
	p.factory.opts.log().Debug("coder released", zap.String("stack", p.factory.opts.name))
	p.put(c)
}

// leaked runs on the cleanup goroutine when a handle became unreachable
// without Release. The coder is not reclaimed.
func (p *Pool[C, P]) leaked(struct{}) {
	p.factory.opts.observer.HandleLeaked(p.factory.opts.name)
	p.factory.opts.log().Warn("pool handle dropped without Release",
		zap.String("stack", p.factory.opts.name))
}

// Handle is a borrowed pooled coder. Release returns the coder; the coder
// must not be used afterwards.
type Handle[P any] struct {
	coder   P
	release func(P)
	cleanup runtime.Cleanup
	once    sync.Once
}

// Coder returns the borrowed coder, or the zero value after Release.
func (h *Handle[P]) Coder() P { return h.coder }

// Release returns the coder to its pool. Further calls are no-ops.
func (h *Handle[P]) Release() {
	h.once.Do(func() {
		h.cleanup.Stop()
		c := h.coder
		var zero P
		h.coder = zero
		h.release(c)
	})
}
