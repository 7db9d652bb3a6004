package web

import (
	"embed"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed static
var staticFS embed.FS

// Static asset routes. Assets are keyed by slug; a missing file falls back to
// the directory's default.png so a new team or player never breaks the page.
func registerAssetRoutes(mux *http.ServeMux, assetsDir string) {
	if strings.TrimSpace(assetsDir) == "" {
		assetsDir = "assets"
	}
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.Handle("GET /team-logos/{file}", assetHandler(filepath.Join(assetsDir, "team-logos")))
	mux.Handle("GET /flags/{file}", assetHandler(filepath.Join(assetsDir, "flags")))
	mux.Handle("GET /player-photos/{file}", assetHandler(filepath.Join(assetsDir, "player-photos")))
}

func assetHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Base(r.PathValue("file"))
		if name == "." || name == "/" {
			http.NotFound(w, r)
			return
		}

		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err != nil {
			target = filepath.Join(dir, "default.png")
			if _, err := os.Stat(target); err != nil {
				http.NotFound(w, r)
				return
			}
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFile(w, r, target)
	})
}
