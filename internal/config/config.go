// Package config provides configuration management for go-medhub.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var AppVersion = "-unset-" // will be set at build time

// ConfigEnv names the environment variable holding an optional YAML config path
const ConfigEnv = "MEDHUB_CONFIG"

const (
	// Default web settings
	DefaultListenHost   = "0.0.0.0"
	DefaultListenPort   = 9010
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
	DefaultShutdownWait = 10 * time.Second
	DefaultMaxJoinBody  = 1 << 20 // 1 MB
)

// MainConfig holds the main configuration for go-medhub.
// It is built once at startup and passed by value.
type MainConfig struct {
	// Web interface settings
	Web WebConfig `yaml:"web"`

	// Filesystem locations
	Paths PathsConfig `yaml:"paths"`

	// Catalog store settings
	Store StoreConfig `yaml:"store"`

	// Logging settings
	Log LogConfig `yaml:"log"`

	Environment string `yaml:"environment"` // reported by /api/health
	AppVersion  string `yaml:"-"`           // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost   string        `yaml:"listen_host"`
	ListenPort   int           `yaml:"listen_port"`
	SSL          bool          `yaml:"ssl"`
	CertFile     string        `yaml:"cert_file,omitempty"`
	KeyFile      string        `yaml:"key_file,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	ShutdownWait time.Duration `yaml:"shutdown_wait"`
	Gzip         bool          `yaml:"gzip"`
	MaxJoinBody  int64         `yaml:"max_join_body"` // bytes read from a join request
	Debug        bool          `yaml:"debug"`
}

// PathsConfig holds the directories static content is served from
type PathsConfig struct {
	StaticDir     string   `yaml:"static_dir"`     // holds index.html, admin.html, css/, js/
	UploadsDir    string   `yaml:"uploads_dir"`    // served under /uploads
	TemplatesDir  string   `yaml:"templates_dir"`  // optional 404.html / 500.html overrides
	UploadSubdirs []string `yaml:"upload_subdirs"` // created under UploadsDir at startup
}

// StoreConfig selects the catalog store
type StoreConfig struct {
	Driver string `yaml:"driver"` // memory or sqlite
	Path   string `yaml:"path"`   // sqlite database file
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() MainConfig {
	return MainConfig{
		AppVersion:  AppVersion,
		Environment: "production",
		Web: WebConfig{
			ListenHost:   DefaultListenHost,
			ListenPort:   DefaultListenPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
			ShutdownWait: DefaultShutdownWait,
			Gzip:         true,
			MaxJoinBody:  DefaultMaxJoinBody,
		},
		Paths: PathsConfig{
			StaticDir:     "web",
			UploadsDir:    filepath.Join("web", "uploads"),
			TemplatesDir:  filepath.Join("web", "templates"),
			UploadSubdirs: []string{"images", "documents", "temp"},
		},
		Store: StoreConfig{
			Driver: "memory",
			Path:   filepath.Join("data", "medhub.sq3"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path falls back to $MEDHUB_CONFIG; if that is empty too the defaults are returned.
func Load(path string) (MainConfig, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return MainConfig{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MainConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.AppVersion = AppVersion
	return cfg, nil
}

// Addr returns the listen address of the web server
func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.ListenHost, w.ListenPort)
}

// Validate checks the config for values the server cannot start with
func (c MainConfig) Validate() error {
	if c.Web.ListenPort < 1 || c.Web.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", c.Web.ListenPort)
	}
	if c.Web.SSL && (c.Web.CertFile == "" || c.Web.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if c.Web.MaxJoinBody < 0 {
		return fmt.Errorf("invalid max_join_body: %d", c.Web.MaxJoinBody)
	}
	if c.Paths.StaticDir == "" {
		return errors.New("static_dir must be set")
	}
	if c.Paths.UploadsDir == "" {
		return errors.New("uploads_dir must be set")
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return errors.New("store driver sqlite needs a path")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}
	return nil
}

// EnsureUploadDirs creates the upload subdirectories if they are missing
func (p PathsConfig) EnsureUploadDirs() error {
	for _, sub := range p.UploadSubdirs {
		dir := filepath.Join(p.UploadsDir, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}
