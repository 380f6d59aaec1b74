package web

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// staticCacheControl is sent with every file served from disk
const staticCacheControl = "public, max-age=3600" // browser caches an hour

// homePage serves the front page
func (s *WebServer) homePage(c *gin.Context) {
	s.serveFile(c, filepath.Join(s.Config.Paths.StaticDir, "index.html"))
}

// adminPage serves the admin page. There is no login in front of it.
func (s *WebServer) adminPage(c *gin.Context) {
	s.serveFile(c, filepath.Join(s.Config.Paths.StaticDir, "admin.html"))
}

// staticDirHandler serves files below root from the *filepath wildcard.
// Paths containing a ".." element and directories answer with the 404 page.
func (s *WebServer) staticDirHandler(root string) gin.HandlerFunc {
	dir := http.Dir(root)
	return func(c *gin.Context) {
		name := c.Param("filepath")
		if name == "" || name == "/" || hasDotDot(name) {
			s.renderNotFound(c)
			return
		}

		f, err := dir.Open(name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.log.Debug("static open failed", zap.String("root", root), zap.String("name", name), zap.Error(err))
			}
			s.renderNotFound(c)
			return
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil || st.IsDir() {
			s.renderNotFound(c)
			return
		}

		c.Header("Cache-Control", staticCacheControl)
		http.ServeContent(c.Writer, c.Request, st.Name(), st.ModTime(), f)
	}
}

// serveFile writes a single file or the 404 page when it is missing
func (s *WebServer) serveFile(c *gin.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("page open failed", zap.String("path", path), zap.Error(err))
		}
		s.renderNotFound(c)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		s.renderNotFound(c)
		return
	}

	c.Header("Cache-Control", staticCacheControl)
	http.ServeContent(c.Writer, c.Request, st.Name(), st.ModTime(), f)
}

// hasDotDot reports whether any slash or backslash separated element is ".."
func hasDotDot(name string) bool {
	if !strings.Contains(name, "..") {
		return false
	}
	for _, elem := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if elem == ".." {
			return true
		}
	}
	return false
}
