package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

type errorResponse struct {
	Error string `json:"error"`
}

type clearResponse struct {
	Cleared int `json:"cleared"`
}

func (that *Server) handleClearGames(w http.ResponseWriter, _ *http.Request) {
	log := that.logger.With("method", "handleClearGames")

	count, err := that.games.ClearAll()
	if errors.Is(err, apperror.ErrNoActiveGames) {
		that.respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		log.Error("failed to clear games", "error", err)
		that.respondWithError(w, http.StatusInternalServerError, "failed to clear games")
		return
	}

	log.Info("games cleared", "count", count)

	that.respondWithJSON(w, http.StatusOK, clearResponse{Cleared: count})
}

func (that *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	that.respondWithJSON(w, http.StatusOK, that.games.ListGames())
}

func (that *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleListResults")

	if that.results == nil {
		that.respondWithError(w, http.StatusServiceUnavailable, "result storage is disabled")
		return
	}

	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			that.respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		limit = min(parsed, maxResultsLimit)
	}

	results, err := that.results.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error("failed to list results", "error", err)
		that.respondWithError(w, http.StatusInternalServerError, "failed to list results")
		return
	}

	that.respondWithJSON(w, http.StatusOK, results)
}

func (that *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	that.respondWithJSON(w, code, errorResponse{Error: message})
}

func (that *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err = w.Write(response); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
