package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/3-lines-studio/stitch/internal/core"
)

const ReloadPath = "/__stitch/reload"

const reloadMarker = "data-stitch-reload"

const reloadScriptSource = `(function(){` +
	`var es=new EventSource("` + ReloadPath + `");` +
	`es.addEventListener("reload",function(){location.reload()});` +
	`})();`

// ReloadHub fans change notifications out to every connected browser over
// server-sent events.
type ReloadHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		subs: map[chan struct{}]struct{}{},
	}
}

func (h *ReloadHub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *ReloadHub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *ReloadHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *ReloadHub) Notify() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ch:
			_, _ = w.Write([]byte("event: reload\ndata: 1\n\n"))
			flusher.Flush()
		}
	}
}

func AppendReloadScript(html string) string {
	if strings.Contains(html, reloadMarker) {
		return html
	}
	return core.InjectBeforeBodyEnd(html, "<script "+reloadMarker+">"+reloadScriptSource+"</script>")
}
