// Package web serves a remote debugger over websockets. Clients send
// JSON requests and receive JSON responses, and are told whenever
// another client moves the machine.
package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/pkg/debugger"
	"github.com/thelolagemann/gbcore/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// message is sent to a single client if to is set, otherwise to
// every client but from.
type message struct {
	from, to *Client
	data     []byte
}

type hub struct {
	d   *debugger.Debugger
	log log.Logger

	clients              map[*Client]bool
	register, unregister chan *Client
	messages             chan message
	done                 chan struct{}
	currentID            uint32
	maxSteps             int

	mu sync.Mutex
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.log.Infof("web: client %d connected", c.ID)
		case c := <-h.unregister:
			// is this client still registered
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Infof("web: client %d disconnected", c.ID)
			}
		case msg := <-h.messages:
			if msg.to != nil {
				if h.clients[msg.to] {
					h.send(msg.to, msg.data)
				}
				continue
			}
			for c := range h.clients {
				if c != msg.from {
					h.send(c, msg.data)
				}
			}
		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

// send queues data for c, dropping c if it is not keeping up. Only
// the hub goroutine writes to or closes Send.
func (h *hub) send(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.log.Errorf("web: client %d is not keeping up, dropping", c.ID)
		h.drop(c)
	}
}

func (h *hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.Send)
}

// dispatch hands msg to the hub, returning false once the hub has stopped.
func (h *hub) dispatch(msg message) bool {
	select {
	case h.messages <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) registerClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *hub) newClient(conn *websocket.Conn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentID++
	return &Client{
		hub:  h,
		conn: conn,
		Send: make(chan []byte, 16),
		ID:   h.currentID,
	}
}

// DefaultMaxSteps is the step limit of a Server not given WithMaxSteps.
const DefaultMaxSteps = 1_000_000

// ServerOpt configures a Server.
type ServerOpt func(s *Server)

// WithMaxSteps sets the most instructions a single step or continue
// request may execute. A limit of 0 removes the bound, and a continue
// that never reaches a breakpoint then holds the debugger forever.
func WithMaxSteps(n int) ServerOpt {
	return func(s *Server) {
		s.hub.maxSteps = n
	}
}

// Server serves a Debugger to websocket clients.
type Server struct {
	hub       *hub
	closeOnce sync.Once
}

// NewServer returns a Server for d, and starts its hub.
func NewServer(d *debugger.Debugger, l log.Logger, opts ...ServerOpt) *Server {
	if l == nil {
		l = log.NewNullLogger()
	}
	h := &hub{
		d:          d,
		log:        l,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		messages:   make(chan message),
		done:       make(chan struct{}),
		maxSteps:   DefaultMaxSteps,
	}
	s := &Server{hub: h}
	for _, opt := range opts {
		opt(s)
	}
	go h.run()
	return s
}

// Handler returns the HTTP handler serving the /debug endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug", s.serveDebug)
	return mux
}

func (s *Server) serveDebug(w http.ResponseWriter, r *http.Request) {
	// upgrade the connection to a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.hub.log.Errorf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := s.hub.newClient(conn)
	if !s.hub.registerClient(c) {
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.WritePump()
	go c.ReadPump()
}

// ListenAndServe serves the debugger on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.hub.log.Infof("web: debugger listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close disconnects every client and stops the hub.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.hub.done)
	})
}
