package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type leaderboardReader interface {
	Leaderboard(ctx context.Context) (map[string]int, error)
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger      *slog.Logger
	leaderboard leaderboardReader
}

func NewHandlers(logger *slog.Logger, leaderboard leaderboardReader) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		leaderboard: leaderboard,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// LeaderboardHandler - returns wins per player name.
func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LeaderboardHandler")

	snapshot, err := that.leaderboard.Leaderboard(r.Context())
	if err != nil {
		log.Error("failed to read leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Error("failed to write leaderboard", "error", err)
	}
}
