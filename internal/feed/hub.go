// Package feed pushes complaint lifecycle events to connected admin
// dashboards over WebSocket.
package feed

import (
	"log"
	"time"

	"complaintwall/backend/internal/models"
)

// Event types carried on the feed.
const (
	EventSubmitted     = "complaint_submitted"
	EventStatusUpdated = "status_updated"
)

// Event is one feed message. It carries only fields an admin list view
// needs; the dashboard fetches full records through the REST API.
type Event struct {
	Type            string          `json:"type"`
	ComplaintNumber string          `json:"complaintNumber"`
	Category        string          `json:"category"`
	Priority        models.Priority `json:"priority"`
	Status          models.Status   `json:"status"`
	At              time.Time       `json:"at"`
}

// Hub fans events out to registered clients. All state is owned by the
// Run goroutine; registration and broadcast go through channels.
type Hub struct {
	clients map[*Client]bool

	RegisterCh   chan *Client
	UnregisterCh chan *Client
	BroadcastCh  chan Event
}

// NewHub creates the feed hub. Call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client),
		BroadcastCh:  make(chan Event, 64),
	}
}

// Run is the hub dispatch loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.clients[client] = true
			log.Printf("feed: admin client connected (%d active)", len(h.clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("feed: admin client disconnected (%d active)", len(h.clients))
			}

		case event := <-h.BroadcastCh:
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					// Slow consumer: drop the connection rather than block the hub.
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Publish enqueues an event for broadcast. Never blocks the caller; if
// the hub's buffer is full the event is dropped with a log line.
func (h *Hub) Publish(event Event) {
	select {
	case h.BroadcastCh <- event:
	default:
		log.Printf("feed: event buffer full, dropping %s for %s", event.Type, event.ComplaintNumber)
	}
}
