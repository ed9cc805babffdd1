package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/engine"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
)

// ReplayHandler serves narration history and the character state over HTTP.
type ReplayHandler struct {
	eventLog *events.EventLog
	session  *engine.Session
	logger   *logger.Logger
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(el *events.EventLog, s *engine.Session, log *logger.Logger) *ReplayHandler {
	return &ReplayHandler{
		eventLog: el,
		session:  s,
		logger:   log,
	}
}

// LogResponse is the API response for narration replay.
type LogResponse struct {
	LastSeq     int64            `json:"last_seq"`
	GeneratedAt string           `json:"generated_at"`
	Lines       []events.LogLine `json:"lines"`
}

// StateResponse is the API response for the character state.
type StateResponse struct {
	Status    engine.Status      `json:"status"`
	Character character.Snapshot `json:"character"`
}

// HandleLog returns retained narration lines after a sequence number.
// GET /api/log?since=N
func (rh *ReplayHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var since int64
	if s := r.URL.Query().Get("since"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			rh.jsonError(w, "Invalid since", http.StatusBadRequest)
			return
		}
		since = n
	}

	lines := rh.eventLog.Since(since)
	if lines == nil {
		lines = []events.LogLine{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LogResponse{
		LastSeq:     rh.eventLog.Last(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Lines:       lines,
	})
}

// HandleState returns the status and a full character snapshot.
// GET /api/state
func (rh *ReplayHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StateResponse{
		Status:    rh.session.Status(),
		Character: rh.session.Snapshot(),
	})
}

// RegisterRoutes sets up the replay API routes.
func (rh *ReplayHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/log", rh.HandleLog)
	mux.HandleFunc("/api/state", rh.HandleState)
}

// jsonError sends an error response.
func (rh *ReplayHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
