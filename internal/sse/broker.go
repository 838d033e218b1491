// Package sse implements a Server-Sent Events broker that announces index
// changes (note indexed, note deleted) to connected UI clients.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// NoteEvent is the payload broadcast for every index mutation.
// Kind is one of "indexed" or "deleted".
type NoteEvent struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Broker fans note events out to subscribed HTTP clients. Slow clients are
// skipped rather than blocking the publisher.
type Broker struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	closed  bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{clients: make(map[chan []byte]struct{})}
}

// PublishNoteEvent broadcasts one event to every connected client.
func (b *Broker) PublishNoteEvent(kind, path string) {
	payload, err := json.Marshal(NoteEvent{Kind: kind, Path: path})
	if err != nil {
		return
	}
	msg := []byte(fmt.Sprintf("event: note\ndata: %s\n\n", payload))

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client. Further subscriptions are rejected.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.clients {
		close(ch)
	}
	b.clients = nil
}

func (b *Broker) subscribe() (chan []byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, false
	}
	ch := make(chan []byte, 64)
	b.clients[ch] = struct{}{}
	return ch, true
}

func (b *Broker) unsubscribe(ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// ServeHTTP streams events to one client until it disconnects or the
// broker closes.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, ok := b.subscribe()
	if !ok {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer b.unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
