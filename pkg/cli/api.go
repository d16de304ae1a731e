package cli

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AAliKKhan/PassMeterX/pkg/meter"
	"github.com/AAliKKhan/PassMeterX/pkg/metrics"
)

type scoreRequest struct {
	Password *string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// scoreAPIHandler scores the password in the JSON body. An empty string is
// a valid password; a missing field is not.
func scoreAPIHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("invalid score request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == nil {
		writeError(w, http.StatusBadRequest, ErrPasswordRequired.Error())
		return
	}

	res := meter.Evaluate(*req.Password)
	metrics.ObserveEvaluation(metrics.SourceAPI, res)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, newReport(res))
}

func healthAPIHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
