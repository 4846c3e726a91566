package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// previewMessage is sent to websocket clients whenever the preview view
// should be redrawn.
type previewMessage struct {
	Index   int      `json:"index"`
	Count   int      `json:"count"`
	Running bool     `json:"running"`
	Rows    []string `json:"rows"`
}

// Slow clients miss intermediate previews rather than stall playback.
const previewQueueLen = 8

type previewHub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]chan previewMessage
}

func newPreviewHub() *previewHub {
	return &previewHub{
		clients: make(map[uuid.UUID]chan previewMessage),
	}
}

func (p *previewHub) subscribe() (uuid.UUID, <-chan previewMessage) {
	id := uuid.New()
	ch := make(chan previewMessage, previewQueueLen)
	p.mu.Lock()
	p.clients[id] = ch
	p.mu.Unlock()
	return id, ch
}

func (p *previewHub) unsubscribe(id uuid.UUID) {
	p.mu.Lock()
	delete(p.clients, id)
	p.mu.Unlock()
}

func (p *previewHub) broadcast(msg previewMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, ch := range p.clients {
		select {
		case ch <- msg:
		default:
			glog.V(2).Infof("web: preview client %s is behind; dropping update", id)
		}
	}
}

func (h *Handler) previewLocked() previewMessage {
	idx := h.player.DisplayIndex(h.store.CurrentIndex())
	f := h.store.Frame(idx)
	rows := make([]string, f.Height())
	for y := range rows {
		rows[y] = f.EncodeRow(y)
	}
	return previewMessage{
		Index:   idx,
		Count:   h.store.Len(),
		Running: h.player.Running(),
		Rows:    rows,
	}
}

// publishLocked pushes the current preview to all websocket clients. Must
// be called with the lock held.
func (h *Handler) publishLocked() {
	h.hub.broadcast(h.previewLocked())
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// previewWSHandler streams a previewMessage for every preview redraw: each
// playback tick and each edit.
func (h *Handler) previewWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Errorf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id, updates := h.hub.subscribe()
	defer h.hub.unsubscribe(id)
	glog.Infof("web: preview client %s connected from %s", id, r.RemoteAddr)

	h.mu.Lock()
	initial := h.previewLocked()
	h.mu.Unlock()
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	// Clients only listen; reading detects when they go away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			glog.Infof("web: preview client %s disconnected", id)
			return
		case msg := <-updates:
			if err := conn.WriteJSON(msg); err != nil {
				glog.Errorf("web: error writing preview to %s: %v", id, err)
				return
			}
		}
	}
}

// Run drives playback ticks until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	return h.sched.Run(ctx)
}
