package middleware

import (
	"net/http"
	"os"
	"path/filepath"
)

const placeholderPage = `<!doctype html><html><head><meta charset="utf-8"><title>Debt dashboard</title></head><body><h1>Debt dashboard</h1><p>The dashboard bundle is not deployed. The API lives under /api/v1.</p></body></html>`

// StaticFileServer serves the built dashboard assets, falling back to a
// placeholder page when the bundle is missing.
func StaticFileServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			http.ServeFile(w, r, path)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(placeholderPage))
	})
}
