package web

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/playback"
	"badc0de.net/pkg/go-sprited/render"
)

const (
	defaultImageSize = 256
	maxImageSize     = 1024
)

// Options configure a Handler.
type Options struct {
	// FrameRate is the initial playback frame rate; zero means
	// playback.DefaultFrameRate.
	FrameRate float64
	// TickInterval is the period of the playback scheduler; zero means
	// playback.DefaultTickInterval.
	TickInterval time.Duration
	// AssetsDir holds main.wasm and wasm_exec.js of the browser frontend.
	// If empty, they are looked up with paths.Find.
	AssetsDir string
}

// Handler serves a single sprite editing session over HTTP.
//
// Every request and every playback tick runs while holding the session
// lock, so the frame store and the playback controller only ever see one
// event at a time.
type Handler struct {
	mu     sync.Mutex
	store  *frames.Store
	player *playback.Controller
	sched  *playback.TickerScheduler
	hub    *previewHub

	assetsDir string
}

// NewHandler constructs a web handler editing the passed store.
func NewHandler(store *frames.Store, opts Options) (*Handler, error) {
	h := &Handler{
		store:     store,
		hub:       newPreviewHub(),
		assetsDir: opts.AssetsDir,
	}
	h.sched = playback.NewTickerScheduler(opts.TickInterval, &h.mu)
	h.player = playback.New(store, h.sched)
	if opts.FrameRate != 0 {
		if err := h.player.SetFrameRate(opts.FrameRate); err != nil {
			return nil, err
		}
	}
	h.player.OnRedraw(func(int) {
		h.publishLocked()
	})
	return h, nil
}

type sessionState struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Count        int     `json:"count"`
	Current      int     `json:"current"`
	FrameRate    float64 `json:"frameRate"`
	State        string  `json:"state"`
	PreviewIndex int     `json:"previewIndex"`
	Export       string  `json:"export"`
}

func (h *Handler) stateLocked() sessionState {
	return sessionState{
		Width:        h.store.Width(),
		Height:       h.store.Height(),
		Count:        h.store.Len(),
		Current:      h.store.CurrentIndex(),
		FrameRate:    h.player.FrameRate(),
		State:        h.player.State().String(),
		PreviewIndex: h.player.DisplayIndex(h.store.CurrentIndex()),
		Export:       h.store.Export(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("web: error writing json response: %v", err)
	}
}

// respondState writes the session state after a successful event and
// pushes the new preview to websocket clients. Must be called with the lock
// held.
func (h *Handler) respondStateLocked(w http.ResponseWriter) {
	h.publishLocked()
	writeJSON(w, h.stateLocked())
}

func (h *Handler) stateHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, h.stateLocked())
}

// frameIndexLocked parses the {idx} route variable and checks it against
// the store. On failure it writes the error response and returns false.
func (h *Handler) frameIndexLocked(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return 0, false
	}
	if idx < 0 || idx >= h.store.Len() {
		http.Error(w, fmt.Sprintf("no frame %d", idx), http.StatusNotFound)
		return 0, false
	}
	return idx, true
}

func (h *Handler) appendHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store.Append()
	h.respondStateLocked(w)
}

func (h *Handler) removeLastHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store.RemoveLast()
	h.respondStateLocked(w)
}

func (h *Handler) selectHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.frameIndexLocked(w, r)
	if !ok {
		return
	}
	h.store.Select(idx)
	h.respondStateLocked(w)
}

func (h *Handler) toggleHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.frameIndexLocked(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	x, err := strconv.Atoi(vars["x"])
	if err != nil || x < 0 || x >= h.store.Width() {
		http.Error(w, "x out of range", http.StatusBadRequest)
		return
	}
	y, err := strconv.Atoi(vars["y"])
	if err != nil || y < 0 || y >= h.store.Height() {
		http.Error(w, "y out of range", http.StatusBadRequest)
		return
	}

	h.store.Frame(idx).TogglePixel(x, y)
	glog.V(2).Infof("web: toggled %d,%d on frame %d", x, y, idx)
	h.respondStateLocked(w)
}

func (h *Handler) clearHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.frameIndexLocked(w, r)
	if !ok {
		return
	}
	h.store.Frame(idx).Clear()
	h.respondStateLocked(w)
}

func (h *Handler) playHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.Play()
	h.respondStateLocked(w)
}

func (h *Handler) stopHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.Stop()
	h.respondStateLocked(w)
}

func (h *Handler) togglePlaybackHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.Toggle()
	h.respondStateLocked(w)
}

func (h *Handler) rateHandler(w http.ResponseWriter, r *http.Request) {
	fps, err := strconv.ParseFloat(r.URL.Query().Get("fps"), 64)
	if err != nil {
		http.Error(w, "fps not a number", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.player.SetFrameRate(fps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respondStateLocked(w)
}

func (h *Handler) exportHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	export := h.store.Export()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, export)
}

// imageSize reads the size query parameter: the edge of the square viewport
// frames are rendered into.
func imageSize(r *http.Request) image.Point {
	size := defaultImageSize
	if s := r.URL.Query().Get("size"); s != "" {
		size, _ = strconv.Atoi(s)
		// ignore invalid size
		if size <= 0 {
			size = defaultImageSize
		}
	}
	if size > maxImageSize {
		size = maxImageSize
	}
	return image.Pt(size, size)
}

// frameSnapshot copies frame idx under the lock so it can be rendered
// without holding it.
func (h *Handler) frameSnapshot(w http.ResponseWriter, r *http.Request) (*frames.Frame, int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.frameIndexLocked(w, r)
	if !ok {
		return nil, 0, false
	}
	return h.store.Frame(idx).Clone(), idx, true
}

func frameETag(f *frames.Frame, kind string, size image.Point, grid bool, mime string) string {
	generation := 1 // bump if the way we generate it changes
	return fmt.Sprintf(`W/"%s:%d:%dx%d:%08x:%d:%t:%s"`, kind, generation, f.Width(), f.Height(), crc32.ChecksumIEEE([]byte(f.Encode())), size.X, grid, mime)
}

func (h *Handler) framePNGHandler(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.frameSnapshot(w, r)
	if !ok {
		return
	}

	size := imageSize(r)
	grid := r.URL.Query().Get("grid") == "1"
	mime := "image/png"
	etag := frameETag(f, "frame", size, grid, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var img image.Image
	if grid {
		img = render.Grid(f, size)
	} else {
		img = render.Preview(f, size)
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	if err := render.EncodePNG(w, img); err != nil {
		glog.Errorf("web: error encoding frame png: %v", err)
	}
}

func (h *Handler) frameGIFHandler(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.frameSnapshot(w, r)
	if !ok {
		return
	}

	size := imageSize(r)
	mime := "image/gif"
	etag := frameETag(f, "frame", size, false, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	if err := render.EncodeGIF(w, render.Preview(f, size)); err != nil {
		glog.Errorf("web: error encoding frame gif: %v", err)
	}
}

func (h *Handler) frameDataURLHandler(w http.ResponseWriter, r *http.Request) {
	f, idx, ok := h.frameSnapshot(w, r)
	if !ok {
		return
	}

	s, err := render.DataURL(render.Preview(f, imageSize(r)))
	if err != nil {
		http.Error(w, "could not build data url", http.StatusInternalServerError)
		glog.Errorf("web: error building data url for frame %d: %v", idx, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, s)
}

func (h *Handler) previewPNGHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	f := h.store.Frame(h.player.DisplayIndex(h.store.CurrentIndex())).Clone()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := render.EncodePNG(w, render.Preview(f, imageSize(r))); err != nil {
		glog.Errorf("web: error encoding preview png: %v", err)
	}
}

func (h *Handler) animGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	var fs []*frames.Frame
	for _, f := range h.store.Frames() {
		fs = append(fs, f.Clone())
	}
	fps := h.player.FrameRate()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := render.EncodeAnimation(w, fs, imageSize(r), fps); err != nil {
		glog.Errorf("web: error encoding animation: %v", err)
	}
}

// RegisterRoutes registers the session API on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/frames", h.stateHandler).Methods(http.MethodGet)
	api.HandleFunc("/frames", h.appendHandler).Methods(http.MethodPost)
	api.HandleFunc("/frames/last", h.removeLastHandler).Methods(http.MethodDelete)
	api.HandleFunc("/frames/{idx:[0-9]+}/select", h.selectHandler).Methods(http.MethodPost)
	api.HandleFunc("/frames/{idx:[0-9]+}/toggle/{x:[0-9]+}/{y:[0-9]+}", h.toggleHandler).Methods(http.MethodPost)
	api.HandleFunc("/frames/{idx:[0-9]+}/clear", h.clearHandler).Methods(http.MethodPost)
	api.HandleFunc("/frames/{idx:[0-9]+}.png", h.framePNGHandler).Methods(http.MethodGet)
	api.HandleFunc("/frames/{idx:[0-9]+}.gif", h.frameGIFHandler).Methods(http.MethodGet)
	api.HandleFunc("/frames/{idx:[0-9]+}/dataurl", h.frameDataURLHandler).Methods(http.MethodGet)

	api.HandleFunc("/export.txt", h.exportHandler).Methods(http.MethodGet)
	api.HandleFunc("/anim.gif", h.animGIFHandler).Methods(http.MethodGet)
	api.HandleFunc("/preview.png", h.previewPNGHandler).Methods(http.MethodGet)
	api.HandleFunc("/preview/ws", h.previewWSHandler)

	api.HandleFunc("/playback/play", h.playHandler).Methods(http.MethodPost)
	api.HandleFunc("/playback/stop", h.stopHandler).Methods(http.MethodPost)
	api.HandleFunc("/playback/toggle", h.togglePlaybackHandler).Methods(http.MethodPost)
	api.HandleFunc("/playback/rate", h.rateHandler).Methods(http.MethodPut)
}
