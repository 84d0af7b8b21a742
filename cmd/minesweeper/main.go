package main

import (
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/cli"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	logFile string
	verbose bool
	seed    uint64
)

// setupLogging points every package logger at stderr and, with --log-file
// or LOG_FILE, at a rotating file.
func setupLogging(level logrus.Level) error {
	if verbose || config.Development() {
		level = logrus.DebugLevel
	}
	if logFile == "" {
		logFile = os.Getenv("LOG_FILE")
	}
	opts := logging.Options{
		Level:       level,
		File:        logFile,
		Output:      os.Stderr,
		ForceColors: config.Development(),
	}
	for _, l := range []*logrus.Logger{log, mines.Log, cli.Log} {
		if err := logging.Setup(l, opts); err != nil {
			return err
		}
	}
	return nil
}

// newSource seeds a PCG with seed, or randomly when seed is 0.
func newSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func newRootCmd() *cobra.Command {
	play := newPlayCmd()
	root := &cobra.Command{
		Use:           "minesweeper",
		Short:         "Minesweeper in the terminal or over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          play.RunE,
	}
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this rotating file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	root.Flags().Uint64Var(&seed, "seed", 0, "seed for mine placement (0 picks one at random)")

	root.AddCommand(play, newServeCmd(), newMigrateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
