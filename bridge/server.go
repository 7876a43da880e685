package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tracking clients are served from arbitrary local origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server accepts websocket connections and queues decoded commands for
// the game loop. The queue is bounded; when the loop falls behind, new
// commands are dropped rather than blocking the reader.
type Server struct {
	commands chan Command
	count    atomic.Int64 // particle count snapshot for status replies
}

// NewServer creates a bridge server with the given command queue depth.
func NewServer(queueDepth int) *Server {
	if queueDepth < 1 {
		queueDepth = 64
	}
	return &Server{commands: make(chan Command, queueDepth)}
}

// Commands returns the queue the game loop drains each tick.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// SetParticleCount publishes the current population for status replies.
// Called by the game loop; reads happen on connection goroutines.
func (s *Server) SetParticleCount(n int) {
	s.count.Store(int64(n))
}

// ListenAndServe serves the /ws endpoint on addr. Blocks until the
// listener fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	slog.Info("bridge listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

// handleWS upgrades the connection and pumps messages into the queue.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			slog.Error("bridge upgrade failed", "error", err)
		}
		return
	}
	go s.readConn(conn)
}

// status is the acknowledgment sent after each accepted command.
type status struct {
	Particles int64 `json:"particles"`
	Dropped   bool  `json:"dropped"`
}

func (s *Server) readConn(conn *websocket.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	slog.Info("bridge client connected", "remote", remote)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("bridge read failed", "remote", remote, "error", err)
			}
			return
		}

		cmd, err := ParseCommand(msg)
		if err != nil {
			slog.Warn("bridge rejected command", "remote", remote, "error", err)
			continue
		}

		dropped := false
		select {
		case s.commands <- cmd:
		default:
			dropped = true
		}

		reply, _ := json.Marshal(status{Particles: s.count.Load(), Dropped: dropped})
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			slog.Error("bridge write failed", "remote", remote, "error", err)
			return
		}
	}
}
