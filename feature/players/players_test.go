package players

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"valortracker/core/database"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/models"
	"valortracker/feature/matches/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccounts struct {
	accounts map[string]henrik.Account
	err      error
	calls    int
}

func (f *fakeAccounts) Account(_ context.Context, name, tag string) (*henrik.Account, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	acc, ok := f.accounts[name+"#"+tag]
	if !ok {
		return nil, &models.RemoteFetchError{Kind: models.KindNotFound, Status: 404, Err: errors.New("account not found")}
	}
	return &acc, nil
}

func newTestService(t *testing.T, accounts *fakeAccounts) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return NewService(accounts, store.New(db), zap.NewNop())
}

func TestResolve(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]henrik.Account{
		"Jett#EUW": {PUUID: "p-1", Region: "EU", Name: "Jett", Tag: "EUW", AccountLevel: 120},
	}}
	svc := newTestService(t, accounts)

	p, err := svc.Resolve(context.Background(), " Jett ", "EUW")
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "eu", p.Region)
	assert.Equal(t, 120, p.AccountLevel)

	players, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
}

func TestResolve_RefreshesRenamedPlayer(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]henrik.Account{
		"Jett#EUW": {PUUID: "p-1", Region: "eu", Name: "Jett", Tag: "EUW", AccountLevel: 10},
	}}
	svc := newTestService(t, accounts)

	_, err := svc.Resolve(context.Background(), "Jett", "EUW")
	require.NoError(t, err)

	accounts.accounts["Reyna#NA1"] = henrik.Account{PUUID: "p-1", Region: "na", Name: "Reyna", Tag: "NA1", AccountLevel: 11}
	p, err := svc.Resolve(context.Background(), "Reyna", "NA1")
	require.NoError(t, err)
	assert.Equal(t, "Reyna", p.Name)
	assert.Equal(t, "NA1", p.Tag)
	assert.Equal(t, "na", p.Region)
	assert.Equal(t, 11, p.AccountLevel)

	players, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestResolve_Errors(t *testing.T) {
	accounts := &fakeAccounts{}
	svc := newTestService(t, accounts)

	_, err := svc.Resolve(context.Background(), "", "EUW")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Zero(t, accounts.calls)

	accounts.err = &models.RemoteFetchError{Kind: models.KindTimeout, Err: context.DeadlineExceeded}
	_, err = svc.Resolve(context.Background(), "Jett", "EUW")
	assert.True(t, models.IsRetryable(err))
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestHandler(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]henrik.Account{
		"Jett#EUW": {PUUID: "p-1", Region: "eu", Name: "Jett", Tag: "EUW"},
	}}
	svc := newTestService(t, accounts)
	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))

	status, body := get(t, app, "/players")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	status, body = get(t, app, "/players/Jett/EUW")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"puuid":"p-1"`)

	status, _ = get(t, app, "/players/Nobody/0000")
	assert.Equal(t, fiber.StatusNotFound, status)

	accounts.err = &models.RemoteFetchError{Kind: models.KindAuth, Status: 401, Err: errors.New("bad key")}
	status, _ = get(t, app, "/players/Jett/EUW")
	assert.Equal(t, fiber.StatusBadGateway, status)

	accounts.err = &models.RemoteFetchError{Kind: models.KindRateLimit, Status: 429, Err: errors.New("slow down")}
	status, body = get(t, app, "/players/Jett/EUW")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, body, `"retryable":true`)
}
