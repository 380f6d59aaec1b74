package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-while/go-medhub/internal/config"
	"github.com/go-while/go-medhub/internal/database"
	"github.com/go-while/go-medhub/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secretContent = "outside the static root"

// newTestServer builds a server over the memory store and a temp static root.
// A secret file is placed next to the root to catch traversal.
func newTestServer(t *testing.T, mutate ...func(*config.MainConfig)) *WebServer {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "web")
	writeFile(t, filepath.Join(base, "secret.txt"), secretContent)
	writeFile(t, filepath.Join(root, "index.html"), "<h1>home</h1>")
	writeFile(t, filepath.Join(root, "admin.html"), "<h1>admin</h1>")
	writeFile(t, filepath.Join(root, "css", "style.css"), "body { color: #333; }")
	writeFile(t, filepath.Join(root, "js", "app.js"), "console.log('app');")
	writeFile(t, filepath.Join(root, "uploads", "images", "a.txt"), "upload")

	cfg := config.NewDefaultConfig()
	cfg.Environment = "test"
	cfg.Paths.StaticDir = root
	cfg.Paths.UploadsDir = filepath.Join(root, "uploads")
	cfg.Paths.TemplatesDir = filepath.Join(root, "templates")
	for _, m := range mutate {
		m(&cfg)
	}

	store := database.NewMemoryStore(database.NewCatalog())
	t.Cleanup(func() { store.Close() })
	return NewServer(store, cfg, zap.NewNop())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func doRequest(s *WebServer, method, target string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *WebServer, target string, headers ...string) *httptest.ResponseRecorder {
	return doRequest(s, http.MethodGet, target, nil, headers...)
}

func post(s *WebServer, target, body string) *httptest.ResponseRecorder {
	return doRequest(s, http.MethodPost, target, strings.NewReader(body), "Content-Type", "application/json")
}

// listEnvelope decodes a list response with typed items
type listEnvelope[T any] struct {
	Success    bool                   `json:"success"`
	Data       []T                    `json:"data"`
	Pagination *models.PaginationInfo `json:"pagination"`
}

type dataEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
