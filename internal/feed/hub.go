package feed

import (
	"context"
	"log/slog"
	"sync"

	"holdpress/internal/logging"
)

// Hub tracks connected feed clients and fans frames out to them.
// Slow clients are disconnected when their send buffer fills.
type Hub struct {
	logger *slog.Logger

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.Mutex
	clients map[*Client]struct{}

	done     chan struct{}
	doneOnce sync.Once

	sendBuf int
}

// HubConfig sizes the hub queues. Zero values use defaults.
type HubConfig struct {
	SendBuf      int
	BroadcastBuf int
}

// NewHub constructs a hub. Call Run(ctx) to start it.
func NewHub(logger *slog.Logger, cfg HubConfig) *Hub {
	sendBuf := cfg.SendBuf
	if sendBuf <= 0 {
		sendBuf = 64
	}
	bcastBuf := cfg.BroadcastBuf
	if bcastBuf <= 0 {
		bcastBuf = 256
	}

	return &Hub{
		logger:     logging.OrDiscard(logger),
		broadcast:  make(chan []byte, bcastBuf),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
		sendBuf:    sendBuf,
	}
}

// Run processes hub events until ctx is canceled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Debug("feed hub starting")

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("feed hub stopping")
			h.doneOnce.Do(func() { close(h.done) })
			h.closeAllClients()
			h.closePending()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("feed client connected", "remote_addr", c.remoteAddr, "clients", n)

		case c := <-h.unregister:
			h.removeClient(c, "unregister")

		case msg := <-h.broadcast:
			var slow []*Client

			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.Unlock()

			for _, c := range slow {
				h.removeClient(c, "slow_client")
			}
		}
	}
}

// Done is closed once Run has returned. Connections arriving later are refused.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastBytes enqueues a serialized frame. It never blocks; frames are
// dropped when the hub queue is full.
func (h *Hub) BroadcastBytes(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("feed broadcast queue full, dropping frame", "bytes", len(msg))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		safeCloseChan(c.send)
		delete(h.clients, c)
	}
}

// closePending disconnects clients that were queued for registration when
// the hub stopped.
func (h *Hub) closePending() {
	for {
		select {
		case c := <-h.register:
			if c.conn != nil {
				_ = c.conn.Close()
			}
			safeCloseChan(c.send)
		default:
			return
		}
	}
}

func (h *Hub) removeClient(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		safeCloseChan(c.send)
		h.logger.Info("feed client disconnected", "remote_addr", c.remoteAddr, "reason", reason, "clients", n)
	}
}

func safeCloseChan(ch chan []byte) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}
