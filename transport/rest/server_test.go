package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type leaderboardMock struct {
	mock.Mock
}

func (that *leaderboardMock) Leaderboard(ctx context.Context) (map[string]int, error) {
	args := that.Called(ctx)
	snapshot, _ := args.Get(0).(map[string]int)
	return snapshot, args.Error(1)
}

func newRouter(leaderboard leaderboardReader) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandlers(logger, leaderboard))
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&leaderboardMock{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestLeaderboard(t *testing.T) {
	t.Run("Returns wins per name", func(t *testing.T) {
		// Given: two players with wins
		leaderboard := &leaderboardMock{}
		leaderboard.On("Leaderboard", mock.Anything).Return(map[string]int{"alice": 2, "bob": 1}, nil)

		// When: the board is requested
		rec := httptest.NewRecorder()
		newRouter(leaderboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		// Then: it is served as a JSON object
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, got)
		leaderboard.AssertExpectations(t)
	})

	t.Run("Empty board is an empty object", func(t *testing.T) {
		leaderboard := &leaderboardMock{}
		leaderboard.On("Leaderboard", mock.Anything).Return(map[string]int{}, nil)

		rec := httptest.NewRecorder()
		newRouter(leaderboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "{}", rec.Body.String())
	})

	t.Run("Storage failure is a server error", func(t *testing.T) {
		leaderboard := &leaderboardMock{}
		leaderboard.On("Leaderboard", mock.Anything).Return(nil, errors.New("connection refused"))

		rec := httptest.NewRecorder()
		newRouter(leaderboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Writes are not routed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&leaderboardMock{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leaderboard", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
