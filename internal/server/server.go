package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexciv/hexciv/internal/game"
	"github.com/hexciv/hexciv/internal/game/core"
)

const writeTimeout = 5 * time.Second

// Server exposes one engine over WebSocket: every connected client receives
// a fresh state snapshot after each accepted command, and any client may
// submit commands for the civilization whose turn it is. The engine is
// single-threaded, so command handling is serialized behind a mutex.
type Server struct {
	mu     sync.Mutex
	engine *game.Engine
	logger zerolog.Logger

	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]chan []byte
}

// New wraps an engine in a WebSocket server.
func New(engine *game.Engine) *Server {
	return &Server{
		engine: engine,
		logger: log.With().Str("component", "server").Str("game_id", engine.GameID()).Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Handler returns the HTTP handler for the /ws endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Upgrade failed")
			return
		}

		out := make(chan []byte, 16)
		s.addClient(conn, out)
		defer s.dropClient(conn)

		// Writer goroutine drains the client's send queue.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for b := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Greet with the current state.
		s.sendTo(conn, s.snapshot())

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				s.sendTo(conn, ErrorMsg{Type: MsgError, Reason: "malformed command"})
				continue
			}
			if reason := s.apply(cmd); reason != "" {
				s.sendTo(conn, ErrorMsg{Type: MsgError, Reason: reason})
				continue
			}
			s.Broadcast()
		}

		s.dropClient(conn)
		<-done
	}
}

// apply executes one command against the engine. It returns a human-readable
// reason when the command is rejected, or "" on success.
func (s *Server) apply(cmd Command) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Type {
	case CmdEndTurn:
		if err := s.engine.EndTurn(); err != nil {
			return err.Error()
		}
		return ""

	case CmdMove:
		u := s.engine.UnitByID(cmd.UnitID)
		if u == nil {
			return "unknown unit"
		}
		if err := s.engine.SelectUnit(u); err != nil {
			return err.Error()
		}
		if err := s.engine.MoveSelectedUnit(core.NewHex(cmd.Q, cmd.R)); err != nil {
			return err.Error()
		}
		return ""

	case CmdAttack:
		u := s.engine.UnitByID(cmd.UnitID)
		target := s.engine.UnitByID(cmd.TargetID)
		if u == nil || target == nil {
			return "unknown unit"
		}
		if err := s.engine.SelectUnit(u); err != nil {
			return err.Error()
		}
		result := s.engine.AttackWithSelected(target)
		if !result.Valid {
			return result.Reason
		}
		return ""

	case CmdFoundCity:
		u := s.engine.UnitByID(cmd.UnitID)
		if u == nil {
			return "unknown unit"
		}
		if _, err := s.engine.FoundCity(u); err != nil {
			return err.Error()
		}
		return ""

	case CmdProduce:
		t, ok := parseUnitType(cmd.UnitType)
		if !ok {
			return "unknown unit type"
		}
		city := s.cityByID(cmd.CityID)
		if city == nil {
			return "unknown city"
		}
		city.Enqueue(t)
		return ""

	default:
		return "unknown command type"
	}
}

func (s *Server) cityByID(id int) *game.City {
	for _, civ := range s.engine.Civilizations() {
		for _, city := range civ.Cities {
			if city.ID == id {
				return city
			}
		}
	}
	return nil
}

// snapshot marshals the current engine state.
func (s *Server) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildSnapshot(s.engine)
}

// Broadcast pushes a fresh snapshot to every connected client.
func (s *Server) Broadcast() {
	snap := s.snapshot()
	b, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error().Err(err).Msg("Snapshot marshal failed")
		return
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn, out := range s.clients {
		select {
		case out <- b:
		default:
			s.logger.Warn().Msg("Dropping slow client")
			delete(s.clients, conn)
			close(out)
			_ = conn.Close()
		}
	}
}

// sendTo queues a message for one client if it is still registered. Channel
// closing is owned by the registry, so sends always go through it.
func (s *Server) sendTo(conn *websocket.Conn, msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if out, ok := s.clients[conn]; ok {
		select {
		case out <- b:
		default:
		}
	}
}

func (s *Server) addClient(conn *websocket.Conn, out chan []byte) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[conn] = out
	s.logger.Info().Int("clients", len(s.clients)).Msg("Client connected")
}

// dropClient unregisters a connection. The send channel is closed exactly
// once, here or in the slow-client path of Broadcast, whichever runs first.
func (s *Server) dropClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if out, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		close(out)
		s.logger.Info().Int("clients", len(s.clients)).Msg("Client disconnected")
	}
	_ = conn.Close()
}

// ListenAndServe mounts the handler on /ws and serves until the listener
// fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	s.logger.Info().Str("addr", addr).Msg("Game server listening")
	return http.ListenAndServe(addr, mux)
}
