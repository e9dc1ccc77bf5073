package restserver

import (
	"encoding/json"
	"net/http"

	"github.com/chrissnell/humifix/internal/status"
	"go.uber.org/zap"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	board  *status.Board
	logger *zap.SugaredLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(board *status.Board, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{board: board, logger: logger}
}

// GetStatus returns the run descriptor and progress
func (h *Handlers) GetStatus(w http.ResponseWriter, req *http.Request) {
	h.writeJSON(w, http.StatusOK, transformStatus(h.board.Snapshot()))
}

// GetLatestCycle returns the most recent cycle, kept or discarded
func (h *Handlers) GetLatestCycle(w http.ResponseWriter, req *http.Request) {
	s := h.board.Snapshot()
	if s.LastCycle == nil {
		h.writeError(w, http.StatusNotFound, "no cycle has been computed yet")
		return
	}
	h.writeJSON(w, http.StatusOK, transformCycle(s.Run, s.LastCycle))
}

// GetLatestSummary returns the most recent summary report
func (h *Handlers) GetLatestSummary(w http.ResponseWriter, req *http.Request) {
	s := h.board.Snapshot()
	if s.LastReport == nil {
		h.writeError(w, http.StatusNotFound, "no summary has been reported yet")
		return
	}
	h.writeJSON(w, http.StatusOK, transformSummary(s.Run, s.LastReport))
}

func (h *Handlers) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("error encoding JSON response: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}
