package web

import (
	"embed"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

//go:embed static/*
var EmbeddedStaticFS embed.FS

// errorPages holds the fallback bodies for 404 and 500 responses
type errorPages struct {
	notFound []byte
	internal []byte
}

// loadErrorPages reads 404.html and 500.html from dir, falling back to the embedded copies
func loadErrorPages(dir string, log *zap.Logger) errorPages {
	return errorPages{
		notFound: loadErrorPage(dir, "404.html", log),
		internal: loadErrorPage(dir, "500.html", log),
	}
}

func loadErrorPage(dir, name string, log *zap.Logger) []byte {
	if dir != "" {
		path := filepath.Join(dir, name)
		if content, err := os.ReadFile(path); err == nil {
			log.Debug("Using error page from templates dir", zap.String("path", path))
			return content
		}
	}
	content, err := EmbeddedStaticFS.ReadFile("static/" + name)
	if err != nil {
		// the embed pattern guarantees the file, this only trips on a broken build
		panic("missing embedded error page " + name + ": " + err.Error())
	}
	return content
}
