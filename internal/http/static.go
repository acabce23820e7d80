package http

import (
	"net/http"
	"path"

	"github.com/charmbracelet/log"
)

// StaticHandler serves the front-end from Cfg.PublicDir. Paths that do not name
// a file fall back to index.html so client side routes resolve.
func (s *Server) StaticHandler() http.HandlerFunc {
	root := http.Dir(s.Cfg.PublicDir)
	files := http.FileServer(root)
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if name != "/" && name != "/index.html" {
			if f, err := root.Open(name); err == nil {
				stat, err := f.Stat()
				f.Close()
				if err == nil && !stat.IsDir() {
					files.ServeHTTP(w, r)
					return
				}
			}
		}

		index, err := root.Open("/index.html")
		if err != nil {
			log.Warn("No index.html to serve", "dir", s.Cfg.PublicDir, "error", err)
			http.NotFound(w, r)
			return
		}
		defer index.Close()
		stat, err := index.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", stat.ModTime(), index)
	}
}
