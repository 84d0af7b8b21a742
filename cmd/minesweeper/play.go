package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/cli"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// warnings only, so the log does not interleave with the board
			if err := setupLogging(logrus.WarnLevel); err != nil {
				return err
			}
			return cli.New(os.Stdin, os.Stdout, newSource(seed)).Run()
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for mine placement (0 picks one at random)")
	return cmd
}
