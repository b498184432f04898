package realtime

// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out catalog refresh events to multiple listeners (e.g.
// WebSocket firehose sessions).
//
// Design goals:
//   - Zero external dependencies beyond the standard library.
//   - Best-effort fan-out: slow listeners drop events (never backpressure
//     provider fetches).
//   - No persistence or replay semantics (ephemeral stream).

import (
	"sync"
	"time"
)

// CourseEvent represents a single freshly fetched course delivered over the
// firehose path.
type CourseEvent struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Platform  string    `json:"platform"`
	Title     string    `json:"title"`
	Level     string    `json:"level"`
	Price     string    `json:"price"`
	FetchedAt time.Time `json:"fetched_at"`
}

// InternalEvent is the hub's envelope, allowing future introduction of
// additional event kinds (snapshot, heartbeat) without changing channel
// element types. Currently Type is "course" or "snapshot".
type InternalEvent struct {
	Type     string      `json:"type"`
	Course   CourseEvent `json:"course,omitempty"`
	Snapshot string      `json:"snapshot,omitempty"`
}

// Hub is an in-memory fan-out dispatcher. Each registered listener receives
// events via its own buffered channel. If a listener's channel buffer is
// full when an event arrives, that event is dropped for that listener only,
// so one slow consumer never degrades delivery to the rest.
//
// The hub is concurrency-safe.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan InternalEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a new hub with per-listener buffer size. If bufSize <= 0,
// a default of 32 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		listeners: make(map[uint64]chan InternalEvent),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns (listenerID, receiveOnlyChannel).
// Callers must later Unregister(id) to release resources.
func (h *Hub) Register() (uint64, <-chan InternalEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan InternalEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// Unknown ids are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// BroadcastCourse delivers a course event to all registered listeners (best
// effort).
func (h *Hub) BroadcastCourse(event CourseEvent) {
	h.broadcast(InternalEvent{Type: "course", Course: event})
}

// BroadcastSnapshot announces that a provider group was replaced and the
// catalog now has a new snapshot ID.
func (h *Hub) BroadcastSnapshot(snapshot string) {
	h.broadcast(InternalEvent{Type: "snapshot", Snapshot: snapshot})
}

func (h *Hub) broadcast(ie InternalEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- ie:
		default:
			// Drop for slow listener.
		}
	}
}

// Close unregisters every listener, closing their channels. The hub can be
// reused afterwards; Close only ends current subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.listeners {
		delete(h.listeners, id)
		close(ch)
	}
}

// Size returns the current number of active listeners (approximate).
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
