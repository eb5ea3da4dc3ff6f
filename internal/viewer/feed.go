// Package viewer streams world snapshots to websocket clients. Each client
// joins one room, usually named after the world it watches, and receives
// every snapshot broadcast to that room as a JSON frame.
package viewer

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/zeuphys/internal/core/observability/log"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

const (
	DefaultRoom  = "default"
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Frame is the message sent to clients.
type Frame struct {
	Room     string           `json:"room"`
	Snapshot physics.Snapshot `json:"snapshot"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(f *Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(f)
}

type room struct {
	clients map[*client]struct{}
	last    *Frame
}

type Feed struct {
	logger log.Log

	mu     sync.Mutex
	rooms  map[string]*room
	closed bool
}

func New(logger log.Log) *Feed {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Feed{
		logger: logger.With(log.String("component", "viewer")),
		rooms:  make(map[string]*room),
	}
}

func (f *Feed) roomLocked(name string) *room {
	r, ok := f.rooms[name]
	if !ok {
		r = &room{clients: make(map[*client]struct{})}
		f.rooms[name] = r
	}
	return r
}

// Handler upgrades requests to websocket connections. The room is taken from
// the "room" query parameter. A new client first receives the latest frame of
// its room, if any.
func (f *Feed) Handler() http.Handler {
	return http.HandlerFunc(f.handleWebSocket)
}

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("room")
	if name == "" {
		name = DefaultRoom
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = conn.Close()
		return
	}
	rm := f.roomLocked(name)
	rm.clients[c] = struct{}{}
	last := rm.last
	f.mu.Unlock()

	f.logger.Debug("viewer connected", log.String("room", name), log.String("remote", conn.RemoteAddr().String()))
	if last != nil {
		if err = c.send(last); err != nil {
			f.drop(name, c, err)
			return
		}
	}

	// Clients never send; reading only detects the close.
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			f.drop(name, c, err)
			return
		}
	}
}

func (f *Feed) drop(name string, c *client, cause error) {
	f.mu.Lock()
	if rm, ok := f.rooms[name]; ok {
		delete(rm.clients, c)
	}
	f.mu.Unlock()
	_ = c.conn.Close()
	f.logger.Debug("viewer disconnected", log.String("room", name), log.Error(cause))
}

// Broadcast sends snap to every client of the room and keeps it for clients
// that join later. Clients whose write fails are dropped.
func (f *Feed) Broadcast(name string, snap physics.Snapshot) error {
	frame := &Frame{Room: name, Snapshot: snap}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFeedClosed
	}
	rm := f.roomLocked(name)
	rm.last = frame
	targets := make([]*client, 0, len(rm.clients))
	for c := range rm.clients {
		targets = append(targets, c)
	}
	f.mu.Unlock()

	for _, c := range targets {
		if err := c.send(frame); err != nil {
			f.drop(name, c, err)
		}
	}
	return nil
}

// Clients returns the number of clients connected to the room.
func (f *Feed) Clients(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rm, ok := f.rooms[name]; ok {
		return len(rm.clients)
	}
	return 0
}

// Close disconnects every client. Later broadcasts fail with ErrFeedClosed.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	var conns []*client
	for _, rm := range f.rooms {
		for c := range rm.clients {
			conns = append(conns, c)
		}
	}
	f.rooms = make(map[string]*room)
	f.mu.Unlock()

	for _, c := range conns {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
			time.Now().Add(writeTimeout))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
	return nil
}
