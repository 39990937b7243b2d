package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/ai8future/fhestr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"

	backendName string
	workers     int
	verbose     bool
	wire        bool

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fhestr",
	Short: "Run string operations over encrypted ASCII strings",
	Long: `fhestr encrypts its string arguments, runs the requested operations on
the ciphertexts and prints each decrypted result next to the result of the
same operation on clear text.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "sealed", "evaluation backend: sealed or plain")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "worker goroutines (0 = number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&wire, "wire", false, "marshal and unmarshal every encrypted subject before use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every engine operation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(vectorsCmd)
	rootCmd.AddCommand(opsCmd)
}

// newSession builds the key and engine for one CLI invocation.
func newSession() (*session, error) {
	var sk fhestr.SecretKey
	var b fhestr.Backend
	switch backendName {
	case "plain":
		p := fhestr.NewPlainBackend()
		sk, b = p, p
	case "sealed":
		master := make([]byte, 32)
		if _, err := rand.Read(master); err != nil {
			return nil, err
		}
		key, err := fhestr.NewSealed(fhestr.WithKey("cli", master))
		if err != nil {
			return nil, err
		}
		sk, b = key, key.Backend()
	default:
		return nil, fmt.Errorf("unknown backend %q", backendName)
	}

	opts := []fhestr.Option{fhestr.WithLogger(logger)}
	if workers > 0 {
		opts = append(opts, fhestr.WithWorkers(workers))
	}
	return &session{
		client: fhestr.NewClientKey(sk),
		engine: fhestr.New(b, opts...),
		wire:   wire,
	}, nil
}
