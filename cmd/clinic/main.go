package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-agenda/internal/app"
	"github.com/jwalitptl/clinic-agenda/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic scheduling dashboard for the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd)
		},
	}
	config.BindFlags(rootCmd.PersistentFlags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command) error {
	cfg, err := config.LoadFlags(cmd.PersistentFlags())
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clinic := app.New(cfg, os.Stderr, time.Now())
	sh := newShell(clinic, cmd.OutOrStdout())

	if err := sh.Run(ctx, cmd.InOrStdin()); err != nil {
		clinic.Logger.Error(err, "shell stopped")
		return err
	}
	clinic.Logger.Info("bye")
	return nil
}
