// Web server for go-medhub: serves the static site and the read-only catalog API
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-medhub/internal/config"
	"github.com/go-while/go-medhub/internal/database"
	"github.com/go-while/go-medhub/internal/logger"
	"github.com/go-while/go-medhub/internal/web"
	"go.uber.org/zap"
)

var Prof *prof.Profiler

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	var flags cliFlags
	flag.StringVar(&flags.configFile, "config", "", "YAML config file (default: $"+config.ConfigEnv+" or built-in defaults)")
	flag.IntVar(&flags.webport, "webport", 0, "Web server port (default: 9010)")
	flag.StringVar(&flags.webhost, "webhost", "", "Web server listen address (default: 0.0.0.0)")
	flag.BoolVar(&flags.webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&flags.webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&flags.webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&flags.staticDir, "static", "", "Static root with index.html, admin.html, css/, js/ (default: web)")
	flag.StringVar(&flags.storeDriver, "store", "", "Catalog store: memory or sqlite (default: memory)")
	flag.StringVar(&flags.storePath, "storepath", "", "SQLite database file, use with -store sqlite (default: data/medhub.sq3)")
	flag.StringVar(&flags.logLevel, "loglevel", "", "Log level: debug, info, warn, error (default: info)")
	flag.StringVar(&flags.logFormat, "logformat", "", "Log format: json or console (default: json)")
	flag.BoolVar(&flags.debug, "debug", false, "Run the router in debug mode")
	flag.StringVar(&flags.updateFile, "updatefile", ".update", "shut down gracefully when this file appears (empty disables)")
	flag.BoolVar(&flags.pprof, "pprof", false, "Serve pprof on :51111 and write periodic memory profiles")
	flag.Parse()

	mainConfig, err := config.Load(flags.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WEB]: Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&mainConfig, flags)
	if err := mainConfig.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "[WEB]: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(mainConfig.Log.Level, mainConfig.Log.Format, "go-medhub")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WEB]: Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting go-medhub web server",
		zap.String("version", appVersion),
		zap.String("environment", mainConfig.Environment),
		zap.String("addr", mainConfig.Web.Addr()),
		zap.Bool("ssl", mainConfig.Web.SSL),
	)

	if flags.pprof {
		Prof = prof.NewProf()
		go Prof.PprofWeb(":51111")
		Prof.StartMemProfile(5*time.Minute, 30*time.Second)
		log.Info("Profiler enabled", zap.String("addr", ":51111"))
	}

	if err := mainConfig.Paths.EnsureUploadDirs(); err != nil {
		log.Fatal("Failed to prepare upload directories", zap.Error(err))
	}

	store, err := database.Open(mainConfig.Store.Driver, mainConfig.Store.Path)
	if err != nil {
		log.Fatal("Failed to open catalog store", zap.String("driver", mainConfig.Store.Driver), zap.Error(err))
	}
	log.Info("Catalog store ready", zap.String("driver", store.Name()))

	server := web.NewServer(store, mainConfig, log)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	updateFileChan := make(chan bool, 1)
	if flags.updateFile != "" {
		go monitorUpdateFile(monitorCtx, log, flags.updateFile, updateFileInterval, updateFileChan)
	}

	log.Info("Server started. Press Ctrl+C to gracefully shutdown...")

	exitCode := 0
	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal, initiating graceful shutdown...", zap.String("signal", sig.String()))
	case err := <-webServerErrChan:
		log.Error("Web server failed", zap.Error(err))
		exitCode = 1
	case <-updateFileChan:
		log.Info("Update file detected, initiating graceful shutdown for update...")
	}
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), mainConfig.Web.ShutdownWait)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("Web server shutdown incomplete", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Warn("Failed to close catalog store", zap.Error(err))
	}

	log.Info("Graceful shutdown completed")
	if exitCode != 0 {
		log.Sync()
		os.Exit(exitCode)
	}
} // end main
