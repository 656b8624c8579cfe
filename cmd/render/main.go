package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/stener88/joltibase/config"
	"github.com/stener88/joltibase/pkg/blocks"
	"github.com/stener88/joltibase/pkg/logger"
	"github.com/stener88/joltibase/pkg/render"
	"github.com/stener88/joltibase/pkg/sections"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

func main() {
	var (
		inPath    = flag.String("in", "", "input JSON file (default: stdin)")
		outPath   = flag.String("out", "", "output HTML file (default: stdout)")
		tagsPath  = flag.String("merge-tags", "", "optional merge-tags JSON file (flat string map)")
		legacy    = flag.Bool("legacy", false, "treat input as a legacy sections document")
		skipCheck = flag.Bool("no-validate", false, "skip schema validation before rendering")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		osExit(1)
		return
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	if err := run(cfg, log, *inPath, *outPath, *tagsPath, *legacy, *skipCheck); err != nil {
		log.WithField("error", err.Error()).Error("render failed")
		osExit(1)
	}
}

func run(cfg *config.Config, log logger.Logger, inPath, outPath, tagsPath string, legacy, skipCheck bool) error {
	input, err := readInput(inPath)
	if err != nil {
		return err
	}

	var tags blocks.MergeTagMap
	if tagsPath != "" {
		data, err := os.ReadFile(tagsPath)
		if err != nil {
			return fmt.Errorf("read merge tags: %w", err)
		}
		if err := json.Unmarshal(data, &tags); err != nil {
			return fmt.Errorf("parse merge tags: %w", err)
		}
	}

	email, err := decodeEmail(input, legacy)
	if err != nil {
		return err
	}

	if email.GlobalSettings == nil {
		email.GlobalSettings = &blocks.GlobalEmailSettings{
			BackgroundColor:  cfg.Canvas.BackgroundColor,
			MaxWidth:         cfg.Canvas.MaxWidth,
			FontFamily:       cfg.Canvas.FontFamily,
			MobileBreakpoint: cfg.Canvas.MobileBreakpoint,
		}
	}

	req := render.CompileEmailRequest{
		Email:          email,
		MergeTags:      tags,
		SkipValidation: skipCheck,
	}
	if cfg.Tracking.Enabled || cfg.Tracking.UTMSource != "" || cfg.Tracking.UTMCampaign != "" {
		req.TrackingSettings = &render.TrackingSettings{
			EnableTracking: cfg.Tracking.Enabled,
			Endpoint:       cfg.Tracking.Endpoint,
			UTMSource:      cfg.Tracking.UTMSource,
			UTMMedium:      cfg.Tracking.UTMMedium,
			UTMCampaign:    cfg.Tracking.UTMCampaign,
		}
	}

	resp, err := render.New(log).CompileEmail(req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("validate: %w", resp.Error)
	}

	return writeOutput(outPath, *resp.HTML)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// decodeEmail turns the raw input into an Email. Legacy sections documents
// are migrated to blocks first.
func decodeEmail(data []byte, legacy bool) (*blocks.Email, error) {
	if legacy {
		content, err := sections.ParseEmailContent(data)
		if err != nil {
			return nil, err
		}
		migrated, err := sections.ContentToBlocks(content, nil)
		if err != nil {
			return nil, fmt.Errorf("migrate legacy content: %w", err)
		}
		return &blocks.Email{Subject: content.Headline, Blocks: migrated}, nil
	}

	var email blocks.Email
	if err := json.Unmarshal(data, &email); err != nil {
		return nil, fmt.Errorf("parse email document: %w", err)
	}
	return &email, nil
}

func writeOutput(path, html string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(html)
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
