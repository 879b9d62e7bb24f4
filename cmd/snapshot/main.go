// Package main captures the chart of a running stockchart server as a PNG.
//
// Usage:
//
//	snapshot -stock AAPL -start 2024-01-01 -end 2024-06-30 -out aapl.png
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/aristath/stockchart/internal/config"
	"github.com/aristath/stockchart/internal/snapshot"
	"github.com/aristath/stockchart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	baseURL := flag.String("base-url", cfg.Snapshot.BaseURL, "Address of the running server")
	stock := flag.String("stock", "", "Stock symbol (empty or \"all\" for every stock)")
	start := flag.String("start", "", "Start date, inclusive")
	end := flag.String("end", "", "End date, inclusive")
	dateRange := flag.String("range", "", "Range preset when no start date is given (1M, 3M, 6M, 1Y, 5Y, 10Y)")
	sma := flag.Int("sma", 0, "Moving average period, 0 disables the overlay")
	out := flag.String("out", "chart.png", "Output PNG file")
	width := flag.Int64("width", int64(cfg.ChartWidth)+40, "Viewport width in pixels")
	height := flag.Int64("height", int64(cfg.ChartHeight)+200, "Viewport height in pixels")
	timeout := flag.Duration("timeout", time.Duration(cfg.Snapshot.TimeoutSeconds)*time.Second, "Capture timeout")
	headless := flag.Bool("headless", true, "Run Chrome headless")
	flag.Parse()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	browser := snapshot.NewBrowser(*headless, log)
	defer browser.Close()

	png, err := browser.Capture(context.Background(), snapshot.Options{
		BaseURL: *baseURL,
		Stock:   *stock,
		Start:   *start,
		End:     *end,
		Range:   *dateRange,
		SMA:     *sma,
		Width:   *width,
		Height:  *height,
		Timeout: *timeout,
	})
	if err != nil {
		browser.Close()
		log.Fatal().Err(err).Msg("Snapshot failed")
	}

	if err := os.WriteFile(*out, png, 0644); err != nil {
		browser.Close()
		log.Fatal().Err(err).Str("path", *out).Msg("Failed to write snapshot")
	}

	log.Info().Str("path", *out).Int("bytes", len(png)).Msg("Snapshot written")
}
