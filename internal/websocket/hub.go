package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"docuchat-be/internal/pkg/logger"
)

// Hub fans document status updates out to connected owners. Owners are
// guests or users alike; the key is whichever id the session carries.
// Redis relays updates across instances when configured.
type Hub struct {
	// OwnerID -> connected clients (multi-tab, multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

// relayChannel is the Redis pub/sub channel carrying cross-instance pushes.
const relayChannel = "document_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OwnerID] = append(h.clients[client.OwnerID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"owner_id": client.OwnerID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OwnerID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OwnerID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OwnerID]) == 0 {
					delete(h.clients, client.OwnerID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a payload to every local connection of an owner and relays it
// through Redis for connections held by other instances.
func (h *Hub) Send(ownerID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize payload", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[ownerID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client buffer full, dropping connection", map[string]interface{}{"owner_id": ownerID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		relay, _ := json.Marshal(relayEnvelope{
			TargetOwnerID: ownerID.String(),
			Message:       data,
		})
		h.rdb.Publish(context.Background(), relayChannel, relay)
	}
}

type relayEnvelope struct {
	TargetOwnerID string          `json:"target_owner_id"`
	Message       json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope relayEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Failed to parse relay message", map[string]interface{}{"error": err.Error()})
			continue
		}

		ownerID, err := uuid.Parse(envelope.TargetOwnerID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[ownerID]
		h.mu.RUnlock()

		if !ok {
			continue
		}
		for _, client := range clients {
			select {
			case client.Send <- envelope.Message:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}
