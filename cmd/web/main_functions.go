package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-while/go-medhub/internal/config"
	"go.uber.org/zap"
)

// updateFileInterval is how often monitorUpdateFile looks for the update file
const updateFileInterval = 60 * time.Second

// cliFlags holds the command-line overrides. Zero values leave the config alone.
type cliFlags struct {
	configFile  string
	webport     int
	webhost     string
	webssl      bool
	webcertFile string
	webkeyFile  string
	staticDir   string
	storeDriver string
	storePath   string
	logLevel    string
	logFormat   string
	debug       bool
	updateFile  string
	pprof       bool
}

// applyFlags overrides cfg with every flag that was given
func applyFlags(cfg *config.MainConfig, f cliFlags) {
	if f.webport > 0 {
		cfg.Web.ListenPort = f.webport
	}
	if f.webhost != "" {
		cfg.Web.ListenHost = f.webhost
	}
	if f.webssl {
		cfg.Web.SSL = true
	}
	if f.webcertFile != "" {
		cfg.Web.CertFile = f.webcertFile
	}
	if f.webkeyFile != "" {
		cfg.Web.KeyFile = f.webkeyFile
	}
	if f.debug {
		cfg.Web.Debug = true
	}
	if f.staticDir != "" {
		// uploads and templates follow the static root unless configured apart
		defaults := config.NewDefaultConfig().Paths
		if cfg.Paths.UploadsDir == defaults.UploadsDir {
			cfg.Paths.UploadsDir = filepath.Join(f.staticDir, "uploads")
		}
		if cfg.Paths.TemplatesDir == defaults.TemplatesDir {
			cfg.Paths.TemplatesDir = filepath.Join(f.staticDir, "templates")
		}
		cfg.Paths.StaticDir = f.staticDir
	}
	if f.storeDriver != "" {
		cfg.Store.Driver = f.storeDriver
	}
	if f.storePath != "" {
		cfg.Store.Path = f.storePath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}

// monitorUpdateFile checks for the update file every interval and signals
// shutdown when found, after renaming it to <path>.todo
func monitorUpdateFile(ctx context.Context, log *zap.Logger, path string, interval time.Duration, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Debug("Update file monitor started", zap.String("path", path), zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := os.Stat(path); err != nil {
			continue
		}
		log.Info("Update file detected, triggering graceful shutdown", zap.String("path", path))

		if err := os.Rename(path, path+".todo"); err != nil {
			log.Warn("Failed to rename update file", zap.String("path", path), zap.Error(err))
			continue
		}

		select {
		case shutdownChan <- true:
		default:
			log.Debug("Shutdown channel already signaled")
		}
		return
	}
}
