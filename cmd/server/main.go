package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/sentchunk/internal/api"
	"github.com/dgallion1/sentchunk/internal/config"
	"github.com/dgallion1/sentchunk/internal/pipeline"
	"github.com/dgallion1/sentchunk/internal/render"
	"github.com/dgallion1/sentchunk/internal/tokenize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tok, err := tokenize.New()
	if err != nil {
		log.Error("load sentence model", "error", err)
		os.Exit(1)
	}
	renderer, err := render.New()
	if err != nil {
		log.Error("load page template", "error", err)
		os.Exit(1)
	}

	analyzer := pipeline.NewAnalyzer(cfg, tok, log)
	analyzer.Start(ctx)

	srv := api.NewServer(analyzer, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		analyzer.Stop()
	}()

	log.Info("starting sentchunk",
		"port", cfg.Port,
		"sample_start", cfg.SampleStart,
		"sample_end", cfg.SampleEnd,
		"pdftotext_fallback", cfg.PDFFallbackPdftotext,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
