package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models"
)

// Hub maintains the set of active clients and pushes notifications to them
type Hub struct {
	// Registered clients organized by recipient user ID
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound notification pushes
	push chan *Push

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Push represents a notification pushed over WebSocket
type Push struct {
	// Recipient user this push is addressed to
	RecipientID int64 `json:"-"`

	// Notification ID from the database
	ID int64 `json:"id"`

	// Type of notification: NEW_TASK, SUBMISSION_GRADED, INVITATION
	Type models.NotificationType `json:"type"`

	// Notification content
	Content string `json:"content"`

	// ID of the originating post, submission or invitation
	ReferenceID *int64 `json:"referenceId,omitempty"`

	// Timestamp when the notification was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan *Push, 64),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and pushes
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case p := <-h.push:
			h.deliverPush(p)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Msg("Notification client unregistered")
		}
	}
}

// deliverPush sends a push to every connection the recipient has open.
// Users with no open connection just read the notification from their
// inbox later; the push is best-effort.
func (h *Hub) deliverPush(p *Push) {
	h.mu.RLock()
	clients, ok := h.clients[p.RecipientID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("recipientID", p.RecipientID).
			Msg("Failed to marshal notification push")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they might be slow or disconnected
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Disconnect slow clients directly. deliverPush runs on the hub
	// goroutine, which is the only reader of h.unregister, so sending
	// there would deadlock the hub.
	for _, client := range slow {
		h.unregisterClient(client)
	}
}

// SendToUser queues a notification push for a recipient. Never blocks the
// caller; if the hub's queue is full the push is dropped and the recipient
// relies on the inbox.
func (h *Hub) SendToUser(p *Push) {
	select {
	case h.push <- p:
	default:
		h.logger.Warn().
			Int64("recipientID", p.RecipientID).
			Msg("Notification push queue full, dropping push")
	}
}

// GetClientsCount returns the number of open connections for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}
