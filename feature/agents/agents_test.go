package agents

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"valortracker/core/database"
	"valortracker/feature/matches/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogBody = `{"status":200,"data":[
	{"uuid":"a1","displayName":"Sova","description":"Scout","displayIcon":"https://media/sova.png","isPlayableCharacter":true,"role":{"displayName":"Initiator"}},
	{"uuid":"a2","displayName":"Jett","description":"Dash","displayIcon":"https://media/jett.png","isPlayableCharacter":true,"role":{"displayName":"Duelist"}},
	{"uuid":"a3","displayName":"Sova","description":"","displayIcon":"","isPlayableCharacter":false,"role":null}
]}`

type catalogServer struct {
	*httptest.Server
	calls  atomic.Int32
	status atomic.Int32
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	s := &catalogServer{}
	s.status.Store(http.StatusOK)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		assert.Equal(t, "/agents", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("isPlayableCharacter"))
		if code := int(s.status.Load()); code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		_, _ = w.Write([]byte(catalogBody))
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return NewService(db, NewClient(Config{BaseURL: baseURL, Language: "en-US", TimeoutSeconds: 2}), zap.NewNop())
}

func TestClient_Agents(t *testing.T) {
	srv := newCatalogServer(t)

	agents, err := NewClient(Config{BaseURL: srv.URL}).Agents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Sova", agents[0].Name)
	assert.Equal(t, "Initiator", agents[0].Role)
	assert.Equal(t, "https://media/sova.png", agents[0].Icon)
}

func TestClient_Unavailable(t *testing.T) {
	srv := newCatalogServer(t)
	srv.status.Store(http.StatusServiceUnavailable)

	_, err := NewClient(Config{BaseURL: srv.URL}).Agents(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestList_FillsOnceThenServesStored(t *testing.T) {
	srv := newCatalogServer(t)
	svc := newTestService(t, srv.URL)

	agents, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Jett", agents[0].Name)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestList_ConcurrentReadersShareTable(t *testing.T) {
	srv := newCatalogServer(t)
	svc := newTestService(t, srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agents, err := svc.List(context.Background())
			assert.NoError(t, err)
			assert.Len(t, agents, 2)
		}()
	}
	wg.Wait()

	stored, err := svc.stored(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRefresh_ClearsAndRefills(t *testing.T) {
	srv := newCatalogServer(t)
	svc := newTestService(t, srv.URL)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	n, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	agents, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, agents, 2)
	assert.Equal(t, int32(2), srv.calls.Load())
}

func TestHandler(t *testing.T) {
	srv := newCatalogServer(t)
	app := fiber.New()
	require.NoError(t, NewFeature(newTestService(t, srv.URL)).Load(app))

	send := func(method, path string) (int, []byte) {
		resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, body
	}

	status, body := send("GET", "/agents")
	require.Equal(t, fiber.StatusOK, status)
	var agents []models.Agent
	require.NoError(t, json.Unmarshal(body, &agents))
	assert.Len(t, agents, 2)

	status, body = send("POST", "/agents/refresh")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"deleted":2`)

	srv.status.Store(http.StatusBadGateway)
	status, _ = send("GET", "/agents")
	assert.Equal(t, fiber.StatusBadGateway, status)
}
