package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

func newServeCmd() *cobra.Command {
	var addr string
	var serveSeed uint64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewApp()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if logFile == "" {
				logFile = cfg.LogFile
			}
			if err := setupLogging(logrus.InfoLevel); err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"addr":        cfg.Addr,
				"base_path":   cfg.BasePath,
				"development": cfg.Development,
				"session_ttl": cfg.SessionTTL.String(),
			}).Info("starting up")

			ctx, stop := signal.NotifyContext(
				context.Background(),
				os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			var src mines.Source
			if serveSeed != 0 {
				src = newSource(serveSeed)
			}
			return app.New(log, cfg).Start(ctx, src)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides APP_ADDR and APP_PORT")
	cmd.Flags().Uint64Var(&serveSeed, "seed", 0, "seed for mine placement (0 picks one at random)")
	return cmd
}
