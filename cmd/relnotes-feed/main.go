package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/relnotes-feed/app/api"
	"github.com/lysyi3m/relnotes-feed/app/cfg"
	"github.com/lysyi3m/relnotes-feed/app/feed"
	"github.com/lysyi3m/relnotes-feed/app/release"
	"github.com/lysyi3m/relnotes-feed/app/source"
	"github.com/lysyi3m/relnotes-feed/app/tasks"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	appCfg, err := cfg.Load(args, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "relnotes-feed: %v\n", err)
		if errors.Is(err, cfg.ErrUsage) {
			fmt.Fprintln(stderr, "usage: relnotes-feed [OPTIONS] <atom|rss>")
			return exitUsage
		}
		return exitError
	}
	if appCfg == nil {
		// Help was shown
		return exitOK
	}

	setupLogger(stderr, appCfg.Debug)

	pipeline := tasks.NewPipeline(appCfg.URL, appCfg.Channel(),
		source.NewFetcher(&http.Client{}, appCfg.UserAgent, appCfg.Timeout),
		source.NewFinder(appCfg.Selector),
		release.NewExtractor(),
		feed.NewGenerator())

	if appCfg.Listen != "" {
		if err := serve(appCfg, pipeline); err != nil {
			slog.Error("Server error", "error", err)
			return exitError
		}
		return exitOK
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := pipeline.Build(ctx, appCfg.Format)
	if err != nil {
		slog.Error("Failed to build feed", "source", appCfg.URL, "error", err)
		return exitError
	}

	if _, err := io.WriteString(stdout, result.Document+"\n"); err != nil {
		slog.Error("Failed to write feed", "error", err)
		return exitError
	}

	return exitOK
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func serve(appCfg *cfg.Cfg, pipeline *tasks.Pipeline) error {
	handler := api.NewHandler(pipeline, appCfg.URL, appCfg.Version)

	httpServer := &http.Server{
		Addr:         appCfg.Listen,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: appCfg.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", appCfg.Listen, "source", appCfg.URL, "version", appCfg.Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("HTTP server stopped")
	return nil
}
