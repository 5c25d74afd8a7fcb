package progress

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans out progress messages for one generation run to every connected
// client. Callers drive it through Stage/Degradation/Complete/Fail; it never
// reads generation state itself.
type Hub struct {
	log        *logrus.Entry
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	mu         sync.RWMutex
	done       chan struct{}
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub. Call Run in its own goroutine before accepting
// connections.
func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when Close is called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				c.conn.Close()
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close stops Run and drops every connected client.
func (h *Hub) Close() {
	close(h.done)
}

func (h *Hub) send(msgType MessageType, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.WithError(err).Error("progress: marshal payload")
		return
	}
	msg := WSMessage{Type: msgType, Payload: body}
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("progress: marshal envelope")
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("progress: broadcast buffer full, dropping message")
	}
}

// Stage broadcasts that a pipeline stage has started. It matches the
// worldgen.ProgressFunc signature when bound to a run ID via StageFunc.
func (h *Hub) Stage(runID, stage string) {
	h.send(MsgTypeStage, StageMessage{RunID: runID, Stage: stage})
}

// StageFunc returns a worldgen.ProgressFunc bound to runID.
func (h *Hub) StageFunc(runID string) func(stage string) {
	return func(stage string) { h.Stage(runID, stage) }
}

// Degradation broadcasts a non-fatal fallback a placement pass took.
func (h *Hub) Degradation(runID, stage, detail string) {
	h.send(MsgTypeDegradation, DegradationMessage{RunID: runID, Stage: stage, Detail: detail})
}

// Complete broadcasts that a run finished successfully.
func (h *Hub) Complete(runID string) {
	h.send(MsgTypeComplete, CompleteMessage{RunID: runID})
}

// Fail broadcasts that a run failed.
func (h *Hub) Fail(runID string, err error) {
	h.send(MsgTypeError, ErrorMessage{RunID: runID, Message: err.Error()})
}

// HandleWebSocket upgrades the request and registers the connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("progress: websocket upgrade failed")
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump only watches for client disconnects; this hub is output-only.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
