package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amishk599/lexiroute/internal/model"
	"github.com/amishk599/lexiroute/internal/server/middleware"
)

// maxBodyBytes bounds the decoded request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// analyzeHandler serves the single analysis endpoint.
type analyzeHandler struct {
	analyzer model.Analyzer
	logger   *slog.Logger
}

func (h *analyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req model.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		msg := "Invalid JSON body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "Request body too large"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	result, err := h.analyzer.Dispatch(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		level := slog.LevelError
		if model.IsClientError(err) {
			status = http.StatusBadRequest
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "analysis failed",
			"request_id", middleware.RequestIDFromCtx(r.Context()),
			"provider", req.Provider,
			"model", req.Model,
			"kind", model.KindOf(err),
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if result.Keywords == nil {
		result.Keywords = []model.KeywordEntry{}
	}
	writeJSON(w, http.StatusOK, result)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func internalError(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
