package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/command"
	"github.com/Cemonix/TerminalColony/internal/game"
	"github.com/Cemonix/TerminalColony/internal/planet"
	"github.com/Cemonix/TerminalColony/internal/telemetry"
)

type Options struct {
	Core      *game.Core
	Logger    *log.Logger
	Telemetry telemetry.Repository
}

// StatusSnapshot is the render-frame view of the whole game.
type StatusSnapshot struct {
	Turn    int             `json:"turn"`
	Player  string          `json:"player"`
	Running bool            `json:"running"`
	Planets []planet.Status `json:"planets"`
}

type commandRequest struct {
	Input string `json:"input"`
}

type commandResponse struct {
	Message string `json:"message"`
}

// Server adapts the single-threaded game core to HTTP. A mutex serializes
// every call into the core, per its ownership model.
type Server struct {
	mu        sync.Mutex
	core      *game.Core
	hub       *hub
	logger    *log.Logger
	telemetry telemetry.Repository
}

// NewHandler builds the HTTP surface over the game core.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Core == nil {
		return nil, errors.New("core is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepository()
	}

	s := &Server{
		core:      opts.Core,
		hub:       newHub(opts.Logger),
		logger:    opts.Logger,
		telemetry: opts.Telemetry,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "terminal-colony",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/commands", s.handleCommands)
	mux.HandleFunc("/api/command", s.handleCommand)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/ws", s.handleWS)

	return mux, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defs := s.core.Registry().Definitions()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	cmd, err := s.core.Registry().Parse(req.Input)
	var msg string
	if err == nil {
		msg, err = s.core.Dispatch(cmd)
	}
	turn := s.core.Turn()
	s.mu.Unlock()
	if err != nil {
		s.recordEvent(telemetry.EventCommandRejected, telemetry.EventMetadata{
			"input": req.Input,
			"error": err.Error(),
		})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.recordEvent(telemetry.EventCommandExecuted, telemetry.EventMetadata{"input": req.Input})
	switch cmd := cmd.(type) {
	case command.Build:
		// record the canonical type, not whatever spelling the user typed
		id, _ := building.ParseTypeID(cmd.Building)
		s.recordEvent(telemetry.EventBuildCompleted, telemetry.EventMetadata{
			"building": string(id),
			"planet":   cmd.Planet,
		})
	case command.EndTurn:
		// Turn already advanced; record the turn that ended.
		s.recordEvent(telemetry.EventTurnEnded, telemetry.EventMetadata{"turn": turn - 1})
	}

	s.broadcastStatus()
	writeJSON(w, http.StatusOK, commandResponse{Message: msg})
}

func (s *Server) recordEvent(t telemetry.EventType, meta telemetry.EventMetadata) {
	if err := s.telemetry.RecordEvent(t, meta); err != nil {
		s.logger.Printf("record telemetry event %s: %v", t, err)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	events, err := s.telemetry.GetEvents(time.Time{}, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := telemetry.CalculateStats(events, time.Time{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatusSnapshot{
		Turn:    s.core.Turn(),
		Player:  s.core.CurrentPlayerName(),
		Running: s.core.IsRunning(),
	}
	for _, name := range s.core.PlanetNames() {
		if st, ok := s.core.PlanetStatus(name); ok {
			snap.Planets = append(snap.Planets, st)
		}
	}
	return snap
}

func (s *Server) broadcastStatus() {
	raw, err := json.Marshal(s.snapshot())
	if err != nil {
		s.logger.Printf("marshal status broadcast: %v", err)
		return
	}
	s.hub.broadcast(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
