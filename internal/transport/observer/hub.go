// Package observer streams live session snapshots to read-only websocket
// spectators.
package observer

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"void-miner/internal/sim"

	"github.com/gorilla/websocket"
)

// Frame is one message on the wire.
type Frame struct {
	Session  string       `json:"session"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

type outbound struct {
	session string
	data    []byte
}

// client is a single connected spectator.
type client struct {
	hub     *Hub
	conn    *websocket.Conn
	session string // empty watches every session
	send    chan []byte
}

// Hub maintains the set of spectators and fans frames out to them. Publish
// never blocks the caller: frames are dropped when the hub or a spectator
// falls behind.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
	count      chan int
	done       chan struct{}
	logger     *slog.Logger
}

// NewHub returns a hub. Call Run before serving.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		count:      make(chan int),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is done, then disconnects everyone.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Info("observer connected", "session", c.session, "remote", c.conn.RemoteAddr().String())
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if c.session != "" && c.session != msg.session {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		case h.count <- len(h.clients):
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	select {
	case n := <-h.count:
		return n
	case <-h.done:
		return 0
	}
}

// Publish queues snap for every spectator of session.
func (h *Hub) Publish(session string, snap sim.Snapshot) {
	data, err := json.Marshal(Frame{Session: session, Snapshot: snap})
	if err != nil {
		h.logger.Error("observer: encode frame", "session", session, "error", err)
		return
	}
	select {
	case h.broadcast <- outbound{session: session, data: data}:
	default:
	}
}

// Session returns a publisher bound to one session name.
func (h *Hub) Session(name string) *Publisher {
	return &Publisher{hub: h, name: name}
}

// Publisher publishes one session's snapshots.
type Publisher struct {
	hub  *Hub
	name string
}

func (p *Publisher) Publish(snap sim.Snapshot) { p.hub.Publish(p.name, snap) }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler serves GET /v1/observe[?session=name].
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/observe", h.serveWs)
	return mux
}

func (h *Hub) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("observer: upgrade", "error", err)
		return
	}
	c := &client{hub: h, conn: conn, session: r.URL.Query().Get("session"), send: make(chan []byte, 16)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump only watches for the spectator going away; anything it sends is
// ignored.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	// Range stops when the hub closes c.send.
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
