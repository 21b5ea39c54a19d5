// Package observe serves a read-only view of a running session over
// HTTP: a JSON snapshot for one-shot inspection and a websocket stream
// for watching a run live from a browser. It never participates in the
// game protocol; it only mirrors what the game loop publishes.
package observe

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/gatemaze/maze"
)

// Snapshot is one published frame of game state.
type Snapshot struct {
	SessionID string     `json:"session_id"`
	Role      string     `json:"role"`
	X         float64    `json:"x"`
	Z         float64    `json:"z"`
	Locked    bool       `json:"locked"`
	Won       bool       `json:"won"`
	Tint      [3]float64 `json:"tint"`
}

// stateResponse is the /state payload: the immutable grid plus the
// latest snapshot.
type stateResponse struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Goal   [2]int            `json:"goal"`
	Cells  [][]maze.CellState `json:"cells"`
	Snapshot
}

// Server publishes snapshots to any number of watchers. Publish is
// called from the game loop; handlers run on HTTP goroutines, so the
// latest snapshot sits behind a lock. This is the only data in the
// program that crosses goroutines.
type Server struct {
	mu   sync.RWMutex
	last Snapshot

	grid     *maze.Grid
	router   *way.Router
	upgrader websocket.Upgrader
}

// New builds a server mirroring the given grid.
func New(grid *maze.Grid) *Server {
	s := &Server{grid: grid}
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/health", s.handleHealth)
	s.router.HandleFunc("GET", "/state", s.handleState)
	s.router.HandleFunc("GET", "/watch", s.handleWatch)
	return s
}

// Publish records the latest frame for watchers to pick up.
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
}

func (s *Server) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Handler exposes the route table, mostly so tests can mount it on an
// httptest server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background. Failures are logged and the game
// plays on without an observer.
func (s *Server) Start(addr string) {
	go func() {
		log.Infof("observe: serving on %s", addr)
		if err := http.ListenAndServe(addr, s.router); err != nil {
			log.Warnf("observe: server stopped: %v", err)
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		Width:    s.grid.Width,
		Height:   s.grid.Height,
		Goal:     [2]int{s.grid.Goal.X, s.grid.Goal.Z},
		Cells:    s.grid.Cells,
		Snapshot: s.snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warnf("observe: encode state: %v", err)
	}
}

// handleWatch upgrades to a websocket and pushes the latest snapshot a
// few times a second until the watcher goes away.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("observe: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	log.Infof("observe: watcher %s connected", conn.RemoteAddr())

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteJSON(s.snapshot()); err != nil {
			log.Infof("observe: watcher %s gone: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
