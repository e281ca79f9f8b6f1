package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/domain/providers"
)

// SSEHandler streams booking lifecycle events to the admin dashboard
// over Server-Sent Events
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[chan *entities.BookingEvent]bool
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[chan *entities.BookingEvent]bool),
	}
}

// StreamBookingUpdates handles SSE connections for booking updates
// GET /api/admin/bookings/stream
func (h *SSEHandler) StreamBookingUpdates(w http.ResponseWriter, r *http.Request) {
	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event stream not available")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Create client channel
	clientChan := make(chan *entities.BookingEvent, 10)

	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	// Subscribe to booking events. Nothing has been written yet, so a
	// failed subscription can still answer with a real status code.
	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelBookingUpdates)
	if err != nil {
		log.Printf("Failed to subscribe to booking updates: %v", err)
		respondWithError(w, http.StatusServiceUnavailable, "event stream not available")
		return
	}

	// Send initial connection event
	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	// Start forwarding events
	go h.forwardEvents(r.Context(), eventChan, clientChan)

	// Keep connection alive and send events
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("Client disconnected from booking stream")
			return
		case <-ticker.C:
			// Send heartbeat
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.BookingEvent, clientChan chan<- *entities.BookingEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

func (h *SSEHandler) registerClient(clientChan chan *entities.BookingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[clientChan] = true
	log.Printf("Client registered for booking stream (total: %d)", len(h.clients))
}

func (h *SSEHandler) unregisterClient(clientChan chan *entities.BookingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, clientChan)
	log.Printf("Client unregistered from booking stream (remaining: %d)", len(h.clients))
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal event data: %v", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// ClientCount returns the number of connected clients for debugging
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
