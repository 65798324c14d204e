package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
)

// Hub maps participant ids to their open connections and delivers events to them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "websocket_hub"),
		clients: make(map[string]*client),
	}
}

// Publish queues the event for every connected recipient. Unknown ids are skipped,
// and a client whose send buffer is full is dropped.
func (that *Hub) Publish(recipients []string, event usecase.Event) {
	log := that.logger.With("method", "Publish", "action", event.Action)

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, id := range recipients {
		c, ok := that.clients[id]
		if !ok {
			log.Debug("recipient is not connected", "playerID", id)
			continue
		}

		if !c.enqueue(data) {
			log.Warn("send buffer is full, dropping client", "playerID", id)
			c.close()
		}
	}
}

// Kick closes the participant's connection. Cleanup runs on the connection's own goroutine.
func (that *Hub) Kick(playerID string) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if ok {
		c.close()
	}
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[c.id]; ok && current == c {
		delete(that.clients, c.id)
	}
}
