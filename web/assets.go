package web

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-sprited/datafiles"
	"badc0de.net/pkg/go-sprited/paths"
)

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, datafiles.IndexHTML)
}

// fileHandler serves a frontend file that is built separately from the
// server.
func (h *Handler) fileHandler(fileName, mime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := paths.FindIn(h.assetsDir, fileName)
		if path == "" {
			glog.Warningf("web: %s not found; was the frontend built?", fileName)
			http.Error(w, fileName+" not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mime)
		http.ServeFile(w, r, path)
	}
}

// RegisterAssetRoutes registers the browser frontend: the page itself, its
// stylesheet and the wasm binary that draws the editor.
func (h *Handler) RegisterAssetRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(datafiles.StaticFS))))
	r.HandleFunc("/main.wasm", h.fileHandler("main.wasm", "application/wasm")).Methods(http.MethodGet)
	r.HandleFunc("/wasm_exec.js", h.fileHandler("wasm_exec.js", "text/javascript")).Methods(http.MethodGet)
}
