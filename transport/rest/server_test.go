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

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/monitor"
	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
)

type gameServiceMock struct {
	mock.Mock
}

func (that *gameServiceMock) ClearAll() (int, error) {
	args := that.Called()
	return args.Int(0), args.Error(1)
}

func (that *gameServiceMock) ListGames() []usecase.GameSummary {
	args := that.Called()
	return args.Get(0).([]usecase.GameSummary)
}

type resultListerMock struct {
	mock.Mock
}

func (that *resultListerMock) ListRecent(ctx context.Context, limit int) ([]*entity.Result, error) {
	args := that.Called(ctx, limit)

	results, _ := args.Get(0).([]*entity.Result)
	return results, args.Error(1)
}

func newTestRouter(games gameService, results resultLister) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return New(logger, games, results, monitor.New().Handler()).Router()
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))

	return recorder
}

func TestServer_Ping(t *testing.T) {
	resp := serve(newTestRouter(&gameServiceMock{}, nil), http.MethodGet, "/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pong", resp.Body.String())
}

func TestServer_ClearGames(t *testing.T) {
	t.Run("Returns the number of cleared games", func(t *testing.T) {
		// Given: two live games
		games := &gameServiceMock{}
		games.On("ClearAll").Return(2, nil).Once()

		// When: DELETE /games is called
		resp := serve(newTestRouter(games, nil), http.MethodDelete, "/games")

		// Then: the count is returned
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"cleared":2}`, resp.Body.String())
		games.AssertExpectations(t)
	})

	t.Run("Returns 404 when nothing is live", func(t *testing.T) {
		games := &gameServiceMock{}
		games.On("ClearAll").Return(0, apperror.ErrNoActiveGames)

		resp := serve(newTestRouter(games, nil), http.MethodDelete, "/games")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"error":"no active games"}`, resp.Body.String())
	})

	t.Run("Returns 500 on unexpected errors", func(t *testing.T) {
		games := &gameServiceMock{}
		games.On("ClearAll").Return(0, errors.New("boom"))

		resp := serve(newTestRouter(games, nil), http.MethodDelete, "/games")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestServer_ListGames(t *testing.T) {
	// Given: one live game
	games := &gameServiceMock{}
	games.On("ListGames").Return([]usecase.GameSummary{{
		RoomID:  "ROOM01",
		Mode:    entity.ModeSolo,
		Status:  entity.StatusWaiting,
		Players: []string{"a"},
	}})

	// When: GET /games is called
	resp := serve(newTestRouter(games, nil), http.MethodGet, "/games")

	// Then: the summary is returned as JSON
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	var summaries []usecase.GameSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "ROOM01", summaries[0].RoomID)
}

func TestServer_ListResults(t *testing.T) {
	t.Run("Uses the default limit", func(t *testing.T) {
		// Given: a result store with one entry
		results := &resultListerMock{}
		results.On("ListRecent", mock.Anything, defaultResultsLimit).
			Return([]*entity.Result{{RoomID: "ROOM01", Reason: entity.ReasonWin, Winner: "a"}}, nil)

		// When: GET /results is called without a limit
		resp := serve(newTestRouter(&gameServiceMock{}, results), http.MethodGet, "/results")

		// Then: the stored results are returned
		require.Equal(t, http.StatusOK, resp.Code)

		var got []entity.Result
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Winner)
		results.AssertExpectations(t)
	})

	t.Run("Caps the requested limit", func(t *testing.T) {
		results := &resultListerMock{}
		results.On("ListRecent", mock.Anything, maxResultsLimit).Return([]*entity.Result{}, nil)

		resp := serve(newTestRouter(&gameServiceMock{}, results), http.MethodGet, "/results?limit=5000")

		assert.Equal(t, http.StatusOK, resp.Code)
		results.AssertExpectations(t)
	})

	t.Run("Rejects an invalid limit", func(t *testing.T) {
		resp := serve(newTestRouter(&gameServiceMock{}, &resultListerMock{}), http.MethodGet, "/results?limit=-1")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Returns 503 without result storage", func(t *testing.T) {
		resp := serve(newTestRouter(&gameServiceMock{}, nil), http.MethodGet, "/results")

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("Returns 500 when storage fails", func(t *testing.T) {
		results := &resultListerMock{}
		results.On("ListRecent", mock.Anything, defaultResultsLimit).Return(nil, errors.New("connection refused"))

		resp := serve(newTestRouter(&gameServiceMock{}, results), http.MethodGet, "/results")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestServer_Metrics(t *testing.T) {
	resp := serve(newTestRouter(&gameServiceMock{}, nil), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "fourinarow_active_sessions")
}
