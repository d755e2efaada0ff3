package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed assets
var assetsFS embed.FS

// mountStatic serves the embedded stylesheet.
func (s *Server) mountStatic() {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		s.logger.Warn("embedded assets missing", "error", err)
		return
	}
	s.engine.StaticFS("/assets", http.FS(sub))
}
