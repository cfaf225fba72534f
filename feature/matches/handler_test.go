package matches

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"valortracker/core/storage/mocks"
	"valortracker/core/tasks"
	"valortracker/feature/matches/archive"
	"valortracker/feature/matches/matchsync"
	"valortracker/feature/matches/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newApp(t *testing.T, e *env) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, NewFeature(e.svc).Load(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_SyncThenHistory(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	e.src.set(history(3, "me", "opp"), nil)

	status, body := do(t, app, "GET", "/matches/me", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = do(t, app, "POST", "/matches/sync/eu/me", "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	var res matchsync.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, matchsync.ReasonExhausted, res.Reason)
	assert.Equal(t, 3, res.Inserted)

	// The empty listing cached before the sync is not served again.
	status, body = do(t, app, "GET", "/matches/me?limit=2", "")
	require.Equal(t, fiber.StatusOK, status)
	var cards []Card
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "m00", cards[0].MatchID)
	assert.Equal(t, "MVP", cards[0].PositionLabel)
	assert.Equal(t, "20/10/4", cards[0].KDA)

	status, body = do(t, app, "GET", "/matches/me", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &cards))
	assert.Len(t, cards, 3)
}

func TestHandler_HistoryInvalidatedAfterSync(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	all := history(4, "me", "opp")

	e.src.set(all[1:], nil)
	status, _ := do(t, app, "POST", "/matches/sync/eu/me", "")
	require.Equal(t, fiber.StatusOK, status)

	var cards []Card
	_, body := do(t, app, "GET", "/matches/me", "")
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 3)

	e.src.set(all, nil)
	status, _ = do(t, app, "POST", "/matches/sync/eu/me", "")
	require.Equal(t, fiber.StatusOK, status)

	_, body = do(t, app, "GET", "/matches/me", "")
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 4)
	assert.Equal(t, "m00", cards[0].MatchID)
}

func TestHandler_Scoreboard(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	e.src.set(history(1, "me", "opp"), nil)
	_, err := e.svc.SyncNow(context.Background(), "me", "eu")
	require.NoError(t, err)

	status, body := do(t, app, "GET", "/matches/detail/m00", "")
	require.Equal(t, fiber.StatusOK, status)
	var board Scoreboard
	require.NoError(t, json.Unmarshal(body, &board))
	assert.Equal(t, "m00", board.Match.ID)
	require.Len(t, board.Roster, 2)
	assert.Equal(t, "me", board.Roster[0].PlayerID)
	assert.Equal(t, "2nd", board.Roster[1].PositionLabel)

	status, _ = do(t, app, "GET", "/matches/detail/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_SyncErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"transient", &models.RemoteFetchError{Kind: models.KindRateLimit, Status: 429, Err: errors.New("slow down")}, fiber.StatusServiceUnavailable, true},
		{"auth", &models.RemoteFetchError{Kind: models.KindAuth, Status: 401, Err: errors.New("bad key")}, fiber.StatusBadGateway, false},
		{"remote not found", &models.RemoteFetchError{Kind: models.KindNotFound, Status: 404, Err: errors.New("no player")}, fiber.StatusNotFound, false},
		{"other", errors.New("boom"), fiber.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			app := newApp(t, e)
			e.src.set(nil, tt.err)

			status, body := do(t, app, "POST", "/matches/sync/eu/me", "")
			assert.Equal(t, tt.status, status)

			var out map[string]any
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.retryable, out["retryable"] == true)
		})
	}
}

func TestHandler_BackgroundTask(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	e.src.set(history(5, "me", "opp"), nil)

	status, body := do(t, app, "POST", "/matches/tasks", `{"puuid":"me","region":"eu"}`)
	require.Equal(t, fiber.StatusAccepted, status, string(body))
	var submitted map[string]string
	require.NoError(t, json.Unmarshal(body, &submitted))
	id := submitted["task_id"]
	require.NotEmpty(t, id)

	var task tasks.Task
	require.Eventually(t, func() bool {
		_, body := do(t, app, "GET", "/matches/tasks/"+id, "")
		return json.Unmarshal(body, &task) == nil && task.Done()
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, tasks.StateSucceeded, task.State)
	assert.Equal(t, 5, task.Progress["inserted"])
	var res matchsync.Result
	require.NoError(t, json.Unmarshal(task.Result, &res))
	assert.Equal(t, matchsync.ReasonExhausted, res.Reason)
	assert.Equal(t, 5, res.Inserted)
}

func TestHandler_BackgroundTaskRetriesTransientFailures(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	e.src.set(nil, &models.RemoteFetchError{Kind: models.KindUnavailable, Status: 503, Err: errors.New("down")})

	id, err := e.svc.SubmitSync(context.Background(), "me", "eu")
	require.NoError(t, err)

	var task tasks.Task
	require.Eventually(t, func() bool {
		_, body := do(t, app, "GET", "/matches/tasks/"+id, "")
		return json.Unmarshal(body, &task) == nil && task.Done()
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, tasks.StateFailed, task.State)
	assert.Equal(t, 2, task.Attempts)
	assert.True(t, task.Retryable)
}

func TestHandler_TaskValidation(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)

	status, _ := do(t, app, "POST", "/matches/tasks", `{"puuid":"me"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "POST", "/matches/tasks", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "GET", "/matches/tasks/unknown", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_Refresh(t *testing.T) {
	e := newEnv(t)
	app := newApp(t, e)
	e.src.set(history(2, "me", "opp"), nil)
	_, err := e.svc.SyncNow(context.Background(), "me", "eu")
	require.NoError(t, err)

	_, body := do(t, app, "GET", "/matches/me", "")
	var cards []Card
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 2)

	status, body := do(t, app, "POST", "/matches/refresh", "")
	require.Equal(t, fiber.StatusOK, status)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, float64(2), out["players"])

	_, body = do(t, app, "GET", "/matches/me", "")
	require.NoError(t, json.Unmarshal(body, &cards))
	assert.Empty(t, cards)
}

func TestHandler_RawMatchDisabled(t *testing.T) {
	e := newEnv(t)
	status, _ := do(t, newApp(t, e), "GET", "/matches/raw/eu/m00", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_RawMatchArchived(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "matches/eu/m00.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	client.On("GetObject", mock.Anything, "bucket", "matches/eu/m00.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(`{"metadata":{"matchid":"m00"}}`)), nil)

	e := newEnvWith(t, archive.New(client, "bucket"))
	app := newApp(t, e)
	e.src.set(history(1, "me", "opp"), nil)

	status, _ := do(t, app, "POST", "/matches/sync/eu/me", "")
	require.Equal(t, fiber.StatusOK, status)

	status, body := do(t, app, "GET", "/matches/raw/eu/m00", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"metadata":{"matchid":"m00"}}`, string(body))

	// A second archived read still routes after the mock recorded earlier calls.
	status, _ = do(t, app, "GET", "/matches/raw/eu/m00", "")
	assert.Equal(t, fiber.StatusOK, status)

	client.AssertNumberOfCalls(t, "PutObject", 1)
	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestHandler_CollaboratorsGetDetachedContext(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "matches/eu/m00.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	e := newEnvWith(t, archive.New(client, "bucket"))
	app := newApp(t, e)
	e.src.set(history(1, "me", "opp"), nil)

	status, _ := do(t, app, "POST", "/matches/sync/eu/me", "")
	require.Equal(t, fiber.StatusOK, status)

	require.Len(t, client.Calls, 1)
	_, pooled := client.Calls[0].Arguments.Get(0).(*fasthttp.RequestCtx)
	assert.False(t, pooled, "request context must not escape the handler")
}
