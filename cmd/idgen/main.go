// Command idgen builds symbol identifier coders from a configuration and
// generates identifiers with them in parallel. It reports how uniform the
// coefficients were and, over GF(2^8), whether every block was decodable.
// With -out it writes each identifier as a wire frame.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/observe-l/rlnc"
	"github.com/observe-l/rlnc/field"
	"github.com/observe-l/rlnc/internal/metrics"
	"github.com/observe-l/rlnc/stack"
)

func main() {
	var (
		configPath    = flag.String("config", "", "JSON config file (flags override it)")
		fieldName     = flag.String("field", "", "field: binary, binary4, binary8, binary16")
		maxSymbols    = flag.Uint("max-symbols", 0, "factory max symbols")
		maxSymbolSize = flag.Uint("max-symbol-size", 0, "factory max symbol bytes")
		symbols       = flag.Uint("symbols", 0, "symbols per block")
		symbolSize    = flag.Uint("symbol-size", 0, "bytes per symbol")
		seed          = flag.Int64("seed", -1, "seed every block with this value (-1 = unseeded)")
		key           = flag.String("key", "", "derive a per-block seed from this key")
		count         = flag.Int("count", 0, "identifiers to generate")
		overhead      = flag.Uint("overhead", 0, "identifiers per block beyond symbols")
		loss          = flag.Float64("loss", 0, "erasure probability of the simulated channel")
		workers       = flag.Int("workers", 0, "parallel workers")
		pooled        = flag.Bool("pooled", false, "recycle coders through a pool")
		out           = flag.String("out", "", "write framed identifiers to this file (payload zero-filled)")
		metricsAddr   = flag.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
		verbose       = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	stack.SetLogger(log)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(log, err)
	}
	var flagErr error
	setUint32 := func(dst *uint32, name string, v uint) {
		n, err := uint32Flag(name, v)
		flagErr = errors.Join(flagErr, err)
		*dst = n
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "field":
			cfg.Field = *fieldName
		case "max-symbols":
			setUint32(&cfg.MaxSymbols, f.Name, *maxSymbols)
		case "max-symbol-size":
			setUint32(&cfg.MaxSymbolSize, f.Name, *maxSymbolSize)
		case "symbols":
			setUint32(&cfg.Symbols, f.Name, *symbols)
		case "symbol-size":
			setUint32(&cfg.SymbolSize, f.Name, *symbolSize)
		case "seed":
			s, err := seedFromFlag(*seed)
			flagErr = errors.Join(flagErr, err)
			cfg.Seed = s
		case "count":
			cfg.Count = *count
		case "overhead":
			setUint32(&cfg.Overhead, f.Name, *overhead)
		case "loss":
			cfg.Loss = *loss
		case "workers":
			cfg.Workers = *workers
		case "pooled":
			cfg.Pooled = *pooled
		}
	})
	if flagErr != nil {
		fatal(log, flagErr)
	}
	if err := cfg.Validate(); err != nil {
		fatal(log, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	runCtx, done := context.WithCancel(ctx)
	if *metricsAddr != "" {
		e := metrics.NewExporter(*metricsAddr)
		addr, err := e.Listen()
		if err != nil {
			fatal(log, err)
		}
		log.Info("serving metrics", zap.Stringer("addr", addr))
		g.Go(func() error { return e.Serve(runCtx) })
	}

	var rep *report
	g.Go(func() error {
		defer done()
		var err error
		rep, err = dispatch(runCtx, cfg, []byte(*key), *out != "", log)
		return err
	})
	if err := g.Wait(); err != nil {
		fatal(log, err)
	}

	if *out != "" {
		if err := writeFrames(*out, rep.frames); err != nil {
			fatal(log, err)
		}
		log.Info("frames written", zap.String("file", *out), zap.Int("frames", rep.identifiers))
	}
	rep.print(os.Stdout, cfg)
}

// seedFromFlag maps -seed to Config.Seed. Negative values leave the coders
// unseeded.
func seedFromFlag(v int64) (*uint32, error) {
	if v < 0 {
		return nil, nil
	}
	if v > math.MaxUint32 {
		return nil, fmt.Errorf("-seed %d exceeds %d: %w", v, uint32(math.MaxUint32), stack.ErrConfiguration)
	}
	s := uint32(v)
	return &s, nil
}

func uint32Flag(name string, v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("-%s %d exceeds %d: %w", name, v, uint32(math.MaxUint32), stack.ErrConfiguration)
	}
	return uint32(v), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig(path string) (*rlnc.Config, error) {
	if path == "" {
		return new(rlnc.Config), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rlnc.LoadConfig(f)
}

func fatal(log *zap.Logger, err error) {
	log.Error("idgen failed", zap.Error(err))
	_ = log.Sync()
	if errors.Is(err, stack.ErrConfiguration) {
		os.Exit(2)
	}
	os.Exit(1)
}

func writeFrames(path string, frames [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, fr := range frames {
		if _, err := w.Write(fr); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dispatch(ctx context.Context, cfg *rlnc.Config, key []byte, keepFrames bool, log *zap.Logger) (*report, error) {
	f, err := cfg.FieldType()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	var rep *report
	switch f.(type) {
	case field.Binary:
		rep, err = run[field.Binary](ctx, cfg, key, keepFrames, log)
	case field.Binary4:
		rep, err = run[field.Binary4](ctx, cfg, key, keepFrames, log)
	case field.Binary8:
		rep, err = run[field.Binary8](ctx, cfg, key, keepFrames, log)
	case field.Binary16:
		rep, err = run[field.Binary16](ctx, cfg, key, keepFrames, log)
	default:
		return nil, fmt.Errorf("idgen: field %s: %w", f.Name(), stack.ErrConfiguration)
	}
	if err != nil {
		return nil, err
	}
	rep.elapsed = time.Since(start)
	return rep, nil
}
