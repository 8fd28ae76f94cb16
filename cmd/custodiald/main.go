package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/export"
	"github.com/ca-facilities/custodial-command/internal/extract"
	"github.com/ca-facilities/custodial-command/internal/repository"
	"github.com/ca-facilities/custodial-command/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.HealthCheck(ctx, db, 3*time.Second); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		logger.Error("running migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	inspections := repository.NewInspectionRepository(db, logger)
	rooms := repository.NewRoomInspectionRepository(db, logger)
	notes := repository.NewCustodialNoteRepository(db, logger)
	feedback := repository.NewMonthlyFeedbackRepository(db, logger)

	srv := server.New(server.Deps{
		Inspections: inspections,
		Rooms:       rooms,
		Notes:       notes,
		Feedback:    feedback,
		Exporter:    export.NewService(inspections, logger),
		Extractor: extract.NewPDFExtractor(extract.Config{
			Pdftotext: cfg.Extract.Pdftotext,
			Timeout:   cfg.Extract.Timeout,
		}, logger),
		Sessions:  &server.StaticTokenStore{Token: cfg.Server.AdminToken},
		DB:        db,
		UploadDir: cfg.Upload.Dir,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
