package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prajithkb/connect4js/internal/analytics"
	"github.com/prajithkb/connect4js/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server plays one self-play match at a time and streams it to spectators.
type Server struct {
	router      *gin.Engine
	cfg         Config
	analytics   *analytics.Producer
	matchMu     sync.RWMutex
	match       *game.Match
	connections map[*wsClient]struct{}
	connMu      sync.RWMutex
}

type Config struct {
	Rows         int
	Cols         int
	Level        int
	MoveDelay    time.Duration
	RestartDelay time.Duration
	Analytics    *analytics.Producer
	Logger       *log.Logger
}

func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s := &Server{
		router:      router,
		cfg:         cfg,
		analytics:   cfg.Analytics,
		connections: make(map[*wsClient]struct{}),
	}
	s.match = s.newMatch()

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/state", s.handleState)
	router.GET("/ws", s.handleWS)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) newMatch() *game.Match {
	return game.NewMatch(game.MatchConfig{
		Rows:   s.cfg.Rows,
		Cols:   s.cfg.Cols,
		Level:  s.cfg.Level,
		Logger: s.cfg.Logger,
	}, s.onFinish)
}

func (s *Server) currentMatch() *game.Match {
	s.matchMu.RLock()
	defer s.matchMu.RUnlock()
	return s.match
}

// Run plays matches back to back until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	delay := s.cfg.MoveDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if s.Advance(ctx) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.RestartDelay):
			}
			s.restart()
		}
	}
}

// Advance plays a single move of the current match and broadcasts it. It
// reports whether the match is over.
func (s *Server) Advance(ctx context.Context) bool {
	m := s.currentMatch()
	res, err := m.Step()
	if err != nil {
		log.Printf("match %s: %v", m.ID(), err)
		return true
	}
	s.analytics.MovePlayed(ctx, m.ID(), res)
	s.broadcast(stateMessage(m.Snapshot()))
	return res.Status.Finished()
}

func (s *Server) restart() {
	m := s.newMatch()
	s.matchMu.Lock()
	s.match = m
	s.matchMu.Unlock()
	log.Printf("match %s started", m.ID())
	s.broadcast(initMessage(m.Snapshot()))
}

func (s *Server) onFinish(snap game.Snapshot) {
	s.analytics.GameFinished(context.Background(), snap)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.currentMatch().Snapshot())
}

func initMessage(snap game.Snapshot) map[string]any {
	return map[string]any{
		"type":      "init",
		"gameId":    snap.ID,
		"rows":      snap.Rows,
		"cols":      snap.Cols,
		"board":     snap.Board,
		"turn":      snap.Turn.String(),
		"moves":     snap.Moves,
		"status":    snap.Status,
		"timestamp": time.Now().UTC(),
	}
}

func stateMessage(snap game.Snapshot) map[string]any {
	return map[string]any{
		"type":     "state",
		"gameId":   snap.ID,
		"board":    snap.Board,
		"turn":     snap.Turn.String(),
		"moves":    snap.Moves,
		"status":   snap.Status,
		"lastMove": snap.LastMove,
	}
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 8),
		server: s,
	}
	s.register(client)
	client.sendJSON(initMessage(s.currentMatch().Snapshot()))

	go client.writePump()
	go client.readPump()
}

func (s *Server) register(c *wsClient) {
	s.connMu.Lock()
	s.connections[c] = struct{}{}
	s.connMu.Unlock()
}

func (s *Server) unregister(c *wsClient) {
	s.connMu.Lock()
	if _, ok := s.connections[c]; ok {
		delete(s.connections, c)
		close(c.send)
	}
	s.connMu.Unlock()
	c.conn.Close()
}

func (s *Server) broadcast(payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("encode broadcast: %v", err)
		return
	}
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	for client := range s.connections {
		select {
		case client.send <- data:
		default:
		}
	}
}

func (c *wsClient) writePump() {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// readPump only watches for disconnects; spectators cannot move.
func (c *wsClient) readPump() {
	defer c.server.unregister(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg["type"] == "move" {
			c.sendJSON(map[string]any{"type": "error", "message": "spectators cannot move"})
		}
	}
}

func (c *wsClient) sendJSON(v any) {
	data, _ := json.Marshal(v)
	c.server.connMu.RLock()
	defer c.server.connMu.RUnlock()
	if _, ok := c.server.connections[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
