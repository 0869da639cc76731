// Command hensel encodes, decodes and computes with Hensel codes.
//
//	hensel encode 2/3 --prime 257 --exponent 3
//	hensel eval 2/3 + 3/5 --repr expansion
//	hensel decode 11316396,12127632,12976740 --repr composite --primes 257,263,269
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/henselcode/config"
)

// app carries the flag values and the logger shared by every subcommand.
type app struct {
	verbose    bool
	configPath string
	repr       string
	prime      string
	primes     []string
	exponent   int
	seed       int64

	cfg    *config.Config
	logger *zap.Logger

	// buildLogger is replaced in tests.
	buildLogger func(level zapcore.Level) (*zap.Logger, error)
}

func newApp() *app {
	return &app{buildLogger: productionLogger}
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func newRootCmd(a *app, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "hensel",
		Short: "Exact rational arithmetic with Hensel codes",
		Long: `hensel maps rationals into finite rings (residues modulo p^k, base-p digit
vectors, or one residue per prime) and back, with exact +, -, *, / in between.

Settings are read from --config (YAML), then HENSEL_* environment variables,
then command line flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVarP(&a.repr, "repr", "r", "", "Representation: truncated, expansion or composite")
	flags.StringVarP(&a.prime, "prime", "p", "", "Prime for single-prime codes")
	flags.StringSliceVar(&a.primes, "primes", nil, "Comma-separated primes for composite codes")
	flags.IntVarP(&a.exponent, "exponent", "k", 0, "Truncation depth k")
	flags.Int64Var(&a.seed, "seed", 0, "Seed for lifting digits and random primes (0: crypto/rand)")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newEvalCmd(a),
		newCRTCmd(a),
		newPrimeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup resolves the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("repr") {
		cfg.Representation = a.repr
	}
	if flags.Changed("prime") {
		cfg.Prime = a.prime
	}
	if flags.Changed("primes") {
		cfg.Primes = a.primes
	}
	if flags.Changed("exponent") {
		cfg.Exponent = a.exponent
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if a.logger, err = a.buildLogger(level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger.Debug("configuration resolved",
		zap.String("config", a.configPath),
		zap.String("representation", cfg.Representation),
		zap.String("prime", cfg.Prime),
		zap.Strings("primes", cfg.Primes),
		zap.Int("exponent", cfg.Exponent),
		zap.Int64("seed", cfg.Seed))
	return nil
}

func main() {
	if err := newRootCmd(newApp(), os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
