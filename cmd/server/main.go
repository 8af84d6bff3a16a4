package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hoanghai1803/draftpress/internal/ai"
	"github.com/hoanghai1803/draftpress/internal/api"
	"github.com/hoanghai1803/draftpress/internal/config"
	"github.com/hoanghai1803/draftpress/internal/feeds"
	"github.com/hoanghai1803/draftpress/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open the entry store; legacy error entries are filtered on load.
	store, err := storage.Open(filepath.Join(*dataDir, "blogs.json"))
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	// Create the article writer (nil if no API key -- handlers check for this).
	var writer *ai.Writer
	if cfg.AI.APIKey != "" {
		backend, err := ai.NewGeminiBackend(context.Background(), cfg.AI.APIKey)
		if err != nil {
			slog.Error("failed to create gemini backend", "error", err)
			os.Exit(1)
		}
		defer backend.Close()

		resolver := ai.NewResolver(backend)
		if cfg.AI.Model != "" {
			resolver.Remember(cfg.AI.Model)
			slog.Info("model pinned from config", "model", cfg.AI.Model)
		}

		writer = ai.NewWriter(backend, resolver)
		slog.Info("gemini backend configured")
	} else {
		slog.Warn("no Gemini API key configured, article generation will be disabled")
	}

	// Create feed fetcher.
	fetcher := feeds.NewFetcher()

	// Build router with all page routes and static file serving.
	router := api.NewRouter(store, writer, fetcher, cfg)

	// Determine server address (localhost only for security).
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)

	// Auto-open browser after a short delay to let the server start.
	if cfg.Server.AutoOpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser("http://" + addr)
		}()
	}

	// Start HTTP server.
	slog.Info("starting server", "addr", "http://"+addr, "entries", store.Len())
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openBrowser opens the given URL in the user's default browser.
// It is a fire-and-forget operation; errors are silently ignored.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
