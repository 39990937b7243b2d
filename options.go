package fhestr

import "go.uber.org/zap"

// Option is a functional option for configuring an Engine.
type Option func(*config)

// WithWorkers bounds the number of goroutines evaluating independent
// primitive calls. n <= 1 evaluates everything on the calling goroutine.
// Default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger used for per-operation debug traces.
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCompressionThreshold sets the minimum serialized size in bytes before
// MarshalString attempts compression. Default is 1024 (1KB).
func WithCompressionThreshold(bytes int) Option {
	return func(c *config) {
		c.compressionThreshold = bytes
	}
}

// WithCompressionDisabled disables compression in MarshalString.
func WithCompressionDisabled() Option {
	return func(c *config) {
		c.compressionDisabled = true
	}
}

// SealedOption is a functional option for configuring a SealedKey.
type SealedOption func(*sealedConfig)

// WithKey registers a master key with the given key ID.
// The master key must be exactly 32 bytes.
// Multiple keys can be registered for key rotation support.
// The key is copied internally; the caller may zero the original after calling NewSealed().
func WithKey(keyID string, masterKey []byte) SealedOption {
	return func(c *sealedConfig) {
		if c.keys == nil {
			c.keys = make(map[string][]byte)
		}
		c.keys[keyID] = cloneBytes(masterKey)
		if c.defaultKeyID == "" {
			c.defaultKeyID = keyID
		}
	}
}

// WithDefaultKeyID sets the key ID used for new encryptions and for
// ciphertexts produced by evaluation. The key must be registered via WithKey.
func WithDefaultKeyID(keyID string) SealedOption {
	return func(c *sealedConfig) {
		c.defaultKeyID = keyID
	}
}

// OpOption configures a single engine operation.
type OpOption func(*opConfig)

// opConfig holds per-operation settings.
type opConfig struct {
	max     int // -1 when unset
	padding int
}

func newOpConfig(opts []OpOption) opConfig {
	cfg := opConfig{max: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMax overrides the clear upper bound of an encrypted count argument.
// The bound must not be smaller than the encrypted value; it sizes outputs
// and loop counts, so a smaller bound truncates the result.
func WithMax(m int) OpOption {
	return func(c *opConfig) {
		if m >= 0 {
			c.max = m
		}
	}
}

// WithPadding appends k encrypted null bytes to a string result, obscuring
// its length further. Results with k > 0 are always padded.
func WithPadding(k int) OpOption {
	return func(c *opConfig) {
		if k > 0 {
			c.padding = k
		}
	}
}
