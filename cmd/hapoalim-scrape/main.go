package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/bankfeed/hapoalim/config"
	"github.com/bankfeed/hapoalim/models"
	"github.com/bankfeed/hapoalim/scraper"
)

var cli struct {
	UserCode  string `help:"Bank user code." env:"HAPOALIM_USER_CODE"`
	Password  string `help:"Bank password." env:"HAPOALIM_PASSWORD"`
	StartDate string `name:"start-date" help:"Earliest transaction date to fetch (YYYY-MM-DD). Clamped to one year back."`
	Pretty    bool   `help:"Indent the JSON output."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("hapoalim-scrape"),
		kong.Description("Fetch Bank Hapoalim accounts and transactions as JSON."),
	)

	cfg := config.Load()
	initLogger(cfg.Log)

	var opts scraper.ScrapeOptions
	if cli.StartDate != "" {
		start, err := time.Parse("2006-01-02", cli.StartDate)
		kctx.FatalIfErrorf(err, "invalid --start-date")
		opts.StartDate = start
	}

	sc, err := scraper.New(cfg)
	if err != nil {
		slog.Error("failed to start scraper", "error", err)
		os.Exit(1)
	}
	defer sc.Close()

	creds := models.Credentials{}
	if cli.UserCode != "" {
		creds.UserCode = &cli.UserCode
	}
	if cli.Password != "" {
		creds.Password = &cli.Password
	}

	result := sc.GetAccountDataWithOptions(context.Background(), creds, opts)

	enc := json.NewEncoder(os.Stdout)
	if cli.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		slog.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	if !result.Success {
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
