package fhestr

import (
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// Engine runs string operations over ciphertexts. It holds no key material:
// every operation is a fixed sequence of backend primitives whose shape
// depends only on clear sizes, never on encrypted contents.
//
// An Engine is safe for concurrent use.
type Engine struct {
	b      Backend
	config *config
	log    *zap.Logger
}

// config holds engine configuration options.
type config struct {
	workers              int
	logger               *zap.Logger
	compressionThreshold int
	compressionDisabled  bool
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		workers:              runtime.NumCPU(),
		logger:               zap.NewNop(),
		compressionThreshold: defaultCompressionThreshold,
	}
}

// New creates an Engine evaluating on the given backend.
//
// Example:
//
//	key, _ := fhestr.NewSealed(fhestr.WithKey("v1", masterKey))
//	engine := fhestr.New(key.Backend(), fhestr.WithWorkers(4))
func New(b Backend, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		b:      b,
		config: cfg,
		log:    cfg.logger.With(zap.String("backend", b.Name())),
	}
}

// Backend returns the backend the engine evaluates on.
func (e *Engine) Backend() Backend { return e.b }

// EncryptTrivial encrypts text without a key. The result is unpadded and
// its contents are not secret.
func (e *Engine) EncryptTrivial(text string) (EncryptedString, error) {
	if err := CheckASCII(text); err != nil {
		return EncryptedString{}, err
	}
	if err := checkCapacity(len(text)); err != nil {
		return EncryptedString{}, err
	}
	bytes := make([]Byte, len(text))
	for i := 0; i < len(text); i++ {
		bytes[i] = e.b.TrivialByte(text[i])
	}
	return EncryptedString{bytes: bytes}, nil
}

// parallel calls fn(i) for i in [0, n) on the worker pool and waits for all
// calls to return.
func (e *Engine) parallel(n int, fn func(i int)) {
	if e.config.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(e.config.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// trace logs an operation at debug level when it returns. Usage:
//
//	defer e.trace("contains", s)()
func (e *Engine) trace(op string, s EncryptedString, fields ...zap.Field) func() {
	if !e.log.Core().Enabled(zapcore.DebugLevel) {
		return func() {}
	}
	start := time.Now()
	counter, counted := e.b.(CallCounter)
	var before uint64
	if counted {
		before = counter.Calls()
	}
	return func() {
		fields = append(fields,
			zap.String("op", op),
			zap.Int("capacity", s.Cap()),
			zap.Bool("padded", s.padded),
			zap.Duration("elapsed", time.Since(start)),
		)
		if counted {
			fields = append(fields, zap.Uint64("primitives", counter.Calls()-before))
		}
		e.log.Debug("string operation", fields...)
	}
}

// finish turns result cells into a string and applies the requested extra
// padding.
func (e *Engine) finish(cells []cell, padded bool, cfg opConfig) EncryptedString {
	mustFit("padding", len(cells)+cfg.padding)
	bytes := make([]Byte, len(cells), len(cells)+cfg.padding)
	e.parallel(len(cells), func(i int) {
		bytes[i] = e.byteCT(cells[i])
	})
	for i := 0; i < cfg.padding; i++ {
		bytes = append(bytes, e.b.TrivialByte(0))
	}
	return EncryptedString{bytes: bytes, padded: padded || cfg.padding > 0}
}

// withPadding applies the requested extra padding to an existing string.
func (e *Engine) withPadding(s EncryptedString, cfg opConfig) EncryptedString {
	if cfg.padding == 0 {
		return s
	}
	mustFit("padding", len(s.bytes)+cfg.padding)
	bytes := make([]Byte, len(s.bytes), len(s.bytes)+cfg.padding)
	copy(bytes, s.bytes)
	for i := 0; i < cfg.padding; i++ {
		bytes = append(bytes, e.b.TrivialByte(0))
	}
	return EncryptedString{bytes: bytes, padded: true}
}

// countOperand resolves a Count against the per-call bound override.
func (e *Engine) countOperand(n Count, cfg opConfig) (Number, int) {
	if n.ct == nil {
		return clearNumber(n.n), n.n
	}
	bound := n.max
	if cfg.max >= 0 {
		bound = cfg.max
	}
	return Number{ct: n.ct}, bound
}
