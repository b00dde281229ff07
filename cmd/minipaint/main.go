// Package main is the entry point for the Minipaint preview tool.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/minipaint/internal/config"
	"github.com/Faultbox/minipaint/internal/logger"
	"github.com/Faultbox/minipaint/internal/segment"
	"github.com/Faultbox/minipaint/internal/session"
	"github.com/Faultbox/minipaint/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Minipaint ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	client := segment.NewClient(cfg.Oracle.URL, cfg.Oracle.RequestTimeout)
	sess := session.New(client, session.Config{
		Profile:   segment.Profile(cfg.Oracle.Profile),
		Precision: cfg.Mesh.Precision,
		Log:       logger.Log,
	})

	// Probe the oracle before enabling uploads. An offline oracle only
	// disables loading; the viewer itself still runs.
	if err := sess.CheckHealth(context.Background()); err != nil {
		logger.Warn("uploads disabled until the segmentation backend is reachable",
			zap.String("url", cfg.Oracle.URL))
	}

	v, err := viewer.New(viewer.Config{
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		VSync:      cfg.Viewer.VSync,
		ExportPath: cfg.Export.Path,
	}, sess)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	// Load the model given on the command line, if any.
	if path := config.ModelPath(); path != "" {
		if !sess.CanUpload() {
			logger.Error("cannot load model while the backend is unreachable",
				zap.String("path", path))
		} else if err := sess.Load(path); err != nil {
			logger.Error("failed to load model", zap.Error(err))
		}
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
