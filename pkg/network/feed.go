package network

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// SubscriberBufferSize is the default number of events buffered per subscriber
	SubscriberBufferSize = 64
	// WriteTimeout bounds how long a single event write may take
	WriteTimeout = 5 * time.Second
)

// FeedHub fans out events to websocket subscribers.
// A subscriber whose buffer is full is disconnected instead of blocking the broadcaster.
type FeedHub struct {
	subscribers     map[uint32]chan *messages.Event
	subscribersLock sync.RWMutex
	nextID          uint32
	closed          bool
	bufferSize      int
	originPatterns  []string
}

type NewFeedHubOptions struct {
	// BufferSize is the number of events buffered per subscriber
	BufferSize int
	// OriginPatterns lists the origin hosts allowed to open the feed
	OriginPatterns []string
}

// NewFeedHub creates a new FeedHub
func NewFeedHub(opts NewFeedHubOptions) *FeedHub {
	bufferSize := opts.BufferSize
	if bufferSize <= 0 {
		bufferSize = SubscriberBufferSize
	}
	return &FeedHub{
		subscribers:    make(map[uint32]chan *messages.Event),
		bufferSize:     bufferSize,
		originPatterns: opts.OriginPatterns,
	}
}

// OriginPatterns converts a CORS allowed origin into websocket origin patterns.
func OriginPatterns(allowOrigin string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowOrigin, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			origin = u.Host
		}
		patterns = append(patterns, origin)
	}
	return patterns
}

// Subscribe registers a new subscriber and returns its ID and event channel.
// The channel is closed when the subscriber is removed or the hub is closed.
func (h *FeedHub) Subscribe() (uint32, <-chan *messages.Event) {
	h.subscribersLock.Lock()
	defer h.subscribersLock.Unlock()
	h.nextID++
	ch := make(chan *messages.Event, h.bufferSize)
	if h.closed {
		close(ch)
		return h.nextID, ch
	}
	h.subscribers[h.nextID] = ch
	return h.nextID, ch
}

// Close disconnects every subscriber and rejects new ones.
func (h *FeedHub) Close() {
	h.subscribersLock.Lock()
	defer h.subscribersLock.Unlock()
	h.closed = true
	for id := range h.subscribers {
		h.remove(id)
	}
}

func (h *FeedHub) isClosed() bool {
	h.subscribersLock.RLock()
	defer h.subscribersLock.RUnlock()
	return h.closed
}

// Unsubscribe removes a subscriber. It is safe to call more than once.
func (h *FeedHub) Unsubscribe(id uint32) {
	h.subscribersLock.Lock()
	defer h.subscribersLock.Unlock()
	h.remove(id)
}

func (h *FeedHub) remove(id uint32) {
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Size returns the number of subscribers.
func (h *FeedHub) Size() int {
	h.subscribersLock.RLock()
	defer h.subscribersLock.RUnlock()
	return len(h.subscribers)
}

// Broadcast sends event to every subscriber without blocking.
func (h *FeedHub) Broadcast(event *messages.Event) {
	h.subscribersLock.Lock()
	defer h.subscribersLock.Unlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			log.Warn("Feed subscriber %d is too slow, disconnecting", id)
			h.remove(id)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams events as JSON text frames.
func (h *FeedHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		log.Error("Failed to accept websocket connection: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	id, events := h.Subscribe()
	defer h.Unsubscribe(id)
	log.Debug("Feed subscriber %d connected from %s", id, r.RemoteAddr)

	// the feed is one-way, CloseRead discards anything the client sends
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			log.Debug("Feed subscriber %d disconnected", id)
			return
		case event, ok := <-events:
			if !ok {
				if h.isClosed() {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
				} else {
					conn.Close(websocket.StatusPolicyViolation, "subscriber too slow")
				}
				return
			}
			if err := writeEvent(ctx, conn, event); err != nil {
				log.Debug("Failed to write event to feed subscriber %d: %v", id, err)
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, event *messages.Event) error {
	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, event)
}
