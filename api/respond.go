package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/basedlist/directory/internal/ens"
)

// errorResponse is the stable error payload: callers branch on the Error
// code, never on Message text.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// noStore disables caching so lookups always reflect current chain state.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// writeLookupError maps a classified lookup failure onto its response code
// and falls back to UNEXPECTED_ERROR for anything unclassified.
func writeLookupError(w http.ResponseWriter, err error) {
	var le *ens.LookupError
	if errors.As(err, &le) {
		writeJSON(w, errorResponse{Message: le.Message, Error: le.Code, Details: le.Details}, le.Status)
		return
	}

	logger.Error("unclassified lookup failure", slog.Any("err", err))
	writeUnexpectedError(w, err.Error())
}

func writeUnexpectedError(w http.ResponseWriter, message string) {
	writeJSON(w, errorResponse{
		Message: message,
		Error:   ens.CodeUnexpectedError,
		Details: "No further detail available",
	}, http.StatusInternalServerError)
}
