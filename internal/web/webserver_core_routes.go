// Package web provides the HTTP server and web interface for go-medhub
package web

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-medhub/internal/config"
	"github.com/go-while/go-medhub/internal/database"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// WebServer represents the web server
type WebServer struct {
	Store     database.Store
	Router    *gin.Engine
	Config    config.MainConfig
	StartTime time.Time // Track server start time for uptime calculations

	log        *zap.Logger
	errorPages errorPages
	httpServer *http.Server
}

// NewServer creates a new web server instance
func NewServer(store database.Store, cfg config.MainConfig, log *zap.Logger) *WebServer {
	if cfg.Web.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})

	server := &WebServer{
		Store:     store,
		Router:    router,
		Config:    cfg,
		StartTime: time.Now(),
		log:       log.Named("web"),
	}
	server.errorPages = loadErrorPages(cfg.Paths.TemplatesDir, server.log)

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if cfg.Web.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	router.Use(server.RequestIDMiddleware())
	router.Use(server.AccessLogMiddleware())
	router.Use(server.RecoveryMiddleware())
	router.Use(secure.New(secureConfig))

	server.setupRoutes()
	server.httpServer = &http.Server{
		Addr:         cfg.Web.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}
	return server
}

// readMethods are registered for every read-only route
var readMethods = []string{http.MethodGet, http.MethodHead}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	paths := s.Config.Paths

	// Static files first
	s.Router.Match(readMethods, "/css/*filepath", s.staticDirHandler(filepath.Join(paths.StaticDir, "css")))
	s.Router.Match(readMethods, "/js/*filepath", s.staticDirHandler(filepath.Join(paths.StaticDir, "js")))
	s.Router.Match(readMethods, "/uploads/*filepath", s.staticDirHandler(paths.UploadsDir))

	s.Router.Match(readMethods, "/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// Pages
	s.Router.Match(readMethods, "/", s.homePage)
	s.Router.Match(readMethods, "/admin", s.adminPage)

	// API routes
	api := s.Router.Group("/api")
	{
		api.Match(readMethods, "/health", s.getHealth)

		api.Match(readMethods, "/hospitals", s.listHospitals)
		api.Match(readMethods, "/hospitals/stats", s.getHospitalStats)
		api.Match(readMethods, "/hospitals/:id", s.getHospital)

		api.Match(readMethods, "/departments", s.listDepartments)
		api.Match(readMethods, "/departments/stats", s.getDepartmentStats)
		api.Match(readMethods, "/departments/hospital/:id", s.listHospitalDepartments)
		api.Match(readMethods, "/departments/:id", s.getDepartment)

		api.Match(readMethods, "/projects", s.listProjects)
		api.Match(readMethods, "/projects/stats", s.getProjectStats)
		api.Match(readMethods, "/projects/:id", s.getProject)
		api.POST("/projects/join", s.joinProject)
	}

	s.Router.NoRoute(s.renderNotFound)
}

// Handler returns the root http.Handler, gzip-wrapped when enabled
func (s *WebServer) Handler() http.Handler {
	if s.Config.Web.Gzip {
		return gzhttp.GzipHandler(s.Router)
	}
	return s.Router
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops and returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Start() error {
	web := s.Config.Web
	if web.SSL {
		if web.CertFile == "" || web.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		s.log.Info("Starting HTTPS server", zap.String("addr", web.Addr()))
		return s.httpServer.ListenAndServeTLS(web.CertFile, web.KeyFile)
	}
	s.log.Info("Starting HTTP server", zap.String("addr", web.Addr()))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx expires
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
