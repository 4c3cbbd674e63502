package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"news-verifier/config"
	"news-verifier/services"
	"news-verifier/storage"
)

var (
	verbose bool
	userID  uint
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "newsctl",
	Short: "Check news articles and topics from the terminal",
	Long: `newsctl runs the news verification pipeline directly against the
configured database, search provider and language model.

Configuration is read from the environment (and .env), exactly like the server.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().UintVar(&userID, "user", 0, "user id to record interactions for (0 = anonymous)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
}

// env hält alles, was ein Kommando zur Laufzeit braucht.
type env struct {
	logger   *zap.Logger
	pipeline *services.Pipeline
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	pipeline, err := services.NewPipelineFromConfig(ctx, cfg, db, logger)
	if err != nil {
		return nil, err
	}
	return &env{logger: logger, pipeline: pipeline}, nil
}

func userPtr() *uint {
	if userID == 0 {
		return nil
	}
	id := userID
	return &id
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
