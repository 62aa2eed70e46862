package SSE

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SSEBroadcaster manages SSE connections and broadcasts messages to all clients.
type SSEBroadcaster struct {
	clients map[chan string]bool
	mu      sync.Mutex
}

// NewSSEBroadcaster creates a new SSEBroadcaster.
func NewSSEBroadcaster() *SSEBroadcaster {
	return &SSEBroadcaster{
		clients: make(map[chan string]bool),
	}
}

// Register adds a new client to the broadcaster.
func (b *SSEBroadcaster) Register(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = true
}

// Unregister removes a client from the broadcaster. Safe to call after the
// broadcaster already dropped the client for being unresponsive.
func (b *SSEBroadcaster) Unregister(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; !ok {
		return
	}
	delete(b.clients, client)
	close(client)
}

// Broadcast sends a message to all registered clients.
func (b *SSEBroadcaster) Broadcast(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client <- message:
		case <-time.After(1 * time.Second):
			// If the client is not responding, unregister them.
			delete(b.clients, client)
			close(client)
		}
	}
}

var visitsBroadcaster = NewSSEBroadcaster()

// NotifyVisitsChanged tells every connected dashboard to refetch its visit
// data.
func NotifyVisitsChanged() {
	visitsBroadcaster.Broadcast("visits_updated")
}

// VisitsSSE streams refresh events to a dashboard client.
func VisitsSSE(c *gin.Context) {
	client := make(chan string, 1)
	visitsBroadcaster.Register(client)
	defer visitsBroadcaster.Unregister(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	for {
		select {
		case message, ok := <-client:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", message)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
