package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"news-verifier/config"
	"news-verifier/services"
	"news-verifier/storage"
)

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}

	logging, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	// Datenbank
	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	logging.Info("Successfully connected to database.", zap.String("driver", cfg.DBDriver))

	logging.Info("Running database auto-migration...")
	if err := storage.Migrate(db); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	pipeline, err := services.NewPipelineFromConfig(context.Background(), cfg, db, logging)
	if err != nil {
		logging.Fatal("Pipeline setup failed", zap.Error(err))
	}
	logging.Info("Pipeline ready",
		zap.String("judgment_provider", cfg.JudgmentProvider),
		zap.String("retention_policy", cfg.RetentionPolicy),
		zap.Bool("archive", cfg.ArchiveEnabled()))

	router := gin.Default()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupHealthRoutes(router, db)
	setupNewsRoutes(router, pipeline, logging)
	setupHistoryRoutes(router, pipeline.Recorder, logging)
	setupUserRoutes(router, pipeline.Recorder, logging)

	if cfg.HistoryRetentionDays > 0 {
		scheduler, err := schedulePrune(cfg, pipeline.Recorder, logging)
		if err != nil {
			logging.Fatal("Invalid PRUNE_SCHEDULE", zap.String("schedule", cfg.PruneSchedule), zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// Eine Themensuche macht bis zu vier Modellaufrufe nacheinander
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// schedulePrune registriert den Job, der alte Interaktionen löscht.
func schedulePrune(cfg *config.Config, recorder *services.InteractionRecorder, logging *zap.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.PruneSchedule, func() {
		cutoff := time.Now().AddDate(0, 0, -cfg.HistoryRetentionDays)
		logging.Info("Running scheduled history prune...", zap.Time("cutoff", cutoff))
		n, err := recorder.Prune(context.Background(), cutoff)
		if err != nil {
			logging.Error("Prune job failed", zap.Error(err))
			return
		}
		logging.Info("Prune job completed", zap.Int64("deleted", n))
	})
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}
