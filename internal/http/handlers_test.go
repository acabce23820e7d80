package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauv0809/league-scoreboard/internal/auth"
	"github.com/mauv0809/league-scoreboard/internal/config"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
	"github.com/mauv0809/league-scoreboard/internal/processor"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
	"github.com/mauv0809/league-scoreboard/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	testAdminKey           = "test-admin-key"
	testSlackSigningSecret = "test-signing-secret"
)

type testServer struct {
	*Server
	store    *store.FileStore
	pubsub   *pubsub.MockPubSubClient
	notifier *notifier.Mock
	metrics  *metrics.Mock
}

// setupTestServer wires a server against a file store in a temp dir and mock clients.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	public := filepath.Join(dir, "web")
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("<h1>League</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "app.js"), []byte("console.log('hi')"), 0o644))

	fileStore := store.NewFileStore(filepath.Join(dir, "data.json"))
	metr := metrics.NewMock()
	repo := league.NewRepository(fileStore, metr)
	notif := notifier.NewMock()
	ps := pubsub.NewMock("TEST")
	proc := processor.New(repo, notif)
	cfg := config.Config{
		PublicDir: public,
		AdminKey:  testAdminKey,
		Slack:     config.SlackConfig{SigningSecret: testSlackSigningSecret},
	}

	reg := prometheus.NewRegistry()
	metrics.NewService(reg)
	server := NewServer(repo, auth.NewStaticKey(testAdminKey), metr, metrics.NewMetricsHandler(reg), cfg, notif, proc, ps)

	return &testServer{Server: server, store: fileStore, pubsub: ps, notifier: notif, metrics: metr}
}

func (ts *testServer) do(t *testing.T, method, target, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(auth.HeaderName, testAdminKey)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	ts.Wait()
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, rr.Body.String())
	assert.Equal(t, message, decodeBody[errorResponse](t, rr).Error)
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/health", "", false)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestStateHandler_EmptyStore(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/api/state", "", false)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"teams":[],"games":[],"pointRules":{"win":2,"loss":1}}`, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestLeagueScenario(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"teams":["Falcons"]}`, rr.Body.String())

	rr = server.do(t, "POST", "/api/team", `{"name":"Hawks"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"teams":["Falcons","Hawks"]}`, rr.Body.String())

	rr = server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":3,"awayScore":1}`, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	created := decodeBody[gameResponse](t, rr)
	assert.True(t, created.OK)
	assert.NotEmpty(t, created.Game.ID)
	assert.Len(t, created.Game.Date, len("2006-01-02"))

	rr = server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":2,"awayScore":2}`, true)
	assertError(t, rr, http.StatusBadRequest, "draws not allowed")

	rr = server.do(t, "PUT", "/api/team/rename", `{"oldName":"Hawks","newName":"Eagles"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"teams":["Falcons","Eagles"]}`, rr.Body.String())

	rr = server.do(t, "DELETE", "/api/team", `{"name":"Falcons"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"teams":["Eagles"]}`, rr.Body.String())

	state := decodeBody[league.State](t, server.do(t, "GET", "/api/state", "", false))
	assert.Equal(t, []string{"Eagles"}, state.Teams)
	require.Len(t, state.Games, 1)
	assert.Equal(t, created.Game.ID, state.Games[0].ID)
	assert.Equal(t, "Falcons", state.Games[0].Home, "deleting a team leaves its games alone")
	assert.Equal(t, "Eagles", state.Games[0].Away)
	assert.NotNil(t, state.UpdatedAt)

	assert.Equal(t, []pubsub.EventType{
		pubsub.EventTeamCreated,
		pubsub.EventTeamCreated,
		pubsub.EventGameRecorded,
		pubsub.EventTeamRenamed,
		pubsub.EventTeamDeleted,
	}, server.pubsub.Topics())
}

func TestMutationsRequireAdmin(t *testing.T) {
	server := setupTestServer(t)

	cases := []struct {
		method, target, body string
	}{
		{"POST", "/api/team", `{"name":"Falcons"}`},
		{"PUT", "/api/team/rename", `{"oldName":"a","newName":"b"}`},
		{"DELETE", "/api/team", `{"name":"Falcons"}`},
		{"POST", "/api/game", `{"home":"a","away":"b","homeScore":1,"awayScore":0}`},
		{"PUT", "/api/game/g1", `{"home":"a","away":"b","homeScore":1,"awayScore":0}`},
		{"DELETE", "/api/game/g1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rr := server.do(t, tc.method, tc.target, tc.body, false)
			assertError(t, rr, http.StatusUnauthorized, "Unauthorized")

			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			req.Header.Set(auth.HeaderName, "wrong")
			rr = httptest.NewRecorder()
			server.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}

	_, saved := fileExists(server.store.Path())
	assert.False(t, saved, "rejected requests never write the store")
	assert.Empty(t, server.pubsub.Topics())
}

func TestAdminKeyFromQuery(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "POST", "/api/team?key="+testAdminKey, `{"name":"Falcons"}`, false)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTeamErrors(t *testing.T) {
	server := setupTestServer(t)
	require.Equal(t, http.StatusOK, server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true).Code)
	require.Equal(t, http.StatusOK, server.do(t, "POST", "/api/team", `{"name":"Hawks"}`, true).Code)

	assertError(t, server.do(t, "POST", "/api/team", `{"name":""}`, true), http.StatusBadRequest, "name required")
	assertError(t, server.do(t, "POST", "/api/team", ``, true), http.StatusBadRequest, "name required")
	assertError(t, server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true), http.StatusConflict, "team exists")
	assertError(t, server.do(t, "POST", "/api/team", `{"name":`, true), http.StatusBadRequest, "invalid JSON body")
	assertError(t, server.do(t, "POST", "/api/team", `{"name":"Owls"} junk`, true), http.StatusBadRequest, "invalid JSON body")
	assertError(t, server.do(t, "POST", "/api/team", `{"name":"Owls"}{"name":"Ravens"}`, true), http.StatusBadRequest, "invalid JSON body")
	assertError(t, server.do(t, "PUT", "/api/team/rename", `{"oldName":"Falcons","newName":"Owls"} []`, true), http.StatusBadRequest, "invalid JSON body")
	assertError(t, server.do(t, "PUT", "/api/team/rename", `{"oldName":"Owls","newName":"Eagles"}`, true), http.StatusNotFound, "old team not found")
	assertError(t, server.do(t, "PUT", "/api/team/rename", `{"oldName":"Falcons","newName":"Hawks"}`, true), http.StatusConflict, "new name exists")
	assertError(t, server.do(t, "PUT", "/api/team/rename", `{"oldName":"Falcons","newName":""}`, true), http.StatusBadRequest, "newName required")

	rr := server.do(t, "GET", "/api/state", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Falcons", "Hawks"}, decodeBody[league.State](t, rr).Teams, "rejected bodies are not saved")

	rr = server.do(t, "DELETE", "/api/team", `{"name":"Owls"}`, true)
	require.Equal(t, http.StatusOK, rr.Code, "deleting an unknown team succeeds")
	assert.JSONEq(t, `{"ok":true,"teams":["Falcons","Hawks"]}`, rr.Body.String())
}

func TestGameErrors(t *testing.T) {
	server := setupTestServer(t)

	assertError(t, server.do(t, "POST", "/api/game", `{"home":"Falcons","homeScore":1,"awayScore":0}`, true), http.StatusBadRequest, "home & away required")
	assertError(t, server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Falcons","homeScore":1,"awayScore":0}`, true), http.StatusBadRequest, "home and away must differ")
	assertError(t, server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":"x","awayScore":0}`, true), http.StatusBadRequest, "scores must be numbers")
	assertError(t, server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":null,"awayScore":0}`, true), http.StatusBadRequest, "scores must be numbers")
	assertError(t, server.do(t, "PUT", "/api/game/missing", `{"home":"Falcons","away":"Hawks","homeScore":1,"awayScore":0}`, true), http.StatusNotFound, "game not found")

	rr := server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":"4","awayScore":1,"date":"2024-05-01"}`, true)
	require.Equal(t, http.StatusOK, rr.Code, "numeric strings are accepted as scores")
	game := decodeBody[gameResponse](t, rr).Game
	assert.Equal(t, 4.0, game.HomeScore)
	assert.Equal(t, "2024-05-01", game.Date)
}

func TestUpdateAndDeleteGame(t *testing.T) {
	server := setupTestServer(t)
	rr := server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":3,"awayScore":1,"date":"2024-05-01"}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	id := decodeBody[gameResponse](t, rr).Game.ID

	rr = server.do(t, "PUT", "/api/game/"+id, `{"home":"Falcons","away":"Hawks","homeScore":0,"awayScore":2}`, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeBody[gameResponse](t, rr).Game
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "2024-05-01", updated.Date, "date is kept when omitted")
	assert.Equal(t, 2.0, updated.AwayScore)

	rr = server.do(t, "PUT", "/api/game/"+id, `{"home":"Falcons","away":"Hawks","homeScore":2,"awayScore":2}`, true)
	assertError(t, rr, http.StatusBadRequest, "draws not allowed")

	// Updates do not re-check home against away; creation does.
	rr = server.do(t, "PUT", "/api/game/"+id, `{"home":"Falcons","away":"Falcons","homeScore":2,"awayScore":1}`, true)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = server.do(t, "DELETE", "/api/game/"+id, "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"removed":1}`, rr.Body.String())

	rr = server.do(t, "DELETE", "/api/game/"+id, "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"removed":0}`, rr.Body.String())

	last := server.pubsub.SendMessageCalls[len(server.pubsub.SendMessageCalls)-1]
	assert.Equal(t, pubsub.EventGameDeleted, last.Topic)
	assert.Equal(t, pubsub.GameDeletedEvent{ID: id, Removed: 0}, last.Data)
}

func TestStandingsHandler(t *testing.T) {
	server := setupTestServer(t)
	server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true)
	server.do(t, "POST", "/api/team", `{"name":"Hawks"}`, true)
	server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":3,"awayScore":1}`, true)

	rr := server.do(t, "GET", "/api/standings", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[standingsResponse](t, rr)
	require.Len(t, resp.Standings, 2)
	assert.Equal(t, "Falcons", resp.Standings[0].Team)
	assert.Equal(t, 2.0, resp.Standings[0].Points)
	assert.Equal(t, 1.0, resp.Standings[1].Points)
	assert.Equal(t, league.DefaultPointRules, resp.PointRules)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	server := setupTestServer(t)
	// A directory where the document should be turns every read into an I/O error.
	require.NoError(t, os.MkdirAll(server.store.Path(), 0o755))

	rr := server.do(t, "GET", "/api/state", "", false)
	assertError(t, rr, http.StatusInternalServerError, "internal error")

	rr = server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true)
	assertError(t, rr, http.StatusInternalServerError, "internal error")
}

func TestGameRecordedHandler(t *testing.T) {
	server := setupTestServer(t)
	rr := server.do(t, "POST", "/api/game", `{"home":"Falcons","away":"Hawks","homeScore":3,"awayScore":1}`, true)
	require.Equal(t, http.StatusOK, rr.Code)
	game := decodeBody[gameResponse](t, rr).Game

	data, err := msgpack.Marshal(game)
	require.NoError(t, err)
	envelope := `{"subscription":"projects/p/subscriptions/game-recorded","message":{"data":"` + base64.StdEncoding.EncodeToString(data) + `"}}`

	rr = server.do(t, "POST", "/pubsub/game-recorded?dry_run=true", envelope, false)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "OK", rr.Body.String())

	calls := server.notifier.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, game.ID, calls[0].Game.ID)
	assert.True(t, calls[0].DryRun)
	require.Len(t, calls[0].Standings, 2)
}

func TestGameRecordedHandler_BadEnvelope(t *testing.T) {
	server := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, server.do(t, "POST", "/pubsub/game-recorded", `nope`, false).Code)
	assert.Equal(t, http.StatusBadRequest, server.do(t, "POST", "/pubsub/game-recorded", `{"message":{"data":"%%%"}}`, false).Code)
	assert.Equal(t, http.StatusBadRequest, server.do(t, "POST", "/pubsub/game-recorded", `{"message":{"data":"aGVsbG8="}}`, false).Code)
	assert.Empty(t, server.notifier.Calls())
}

func TestStaticHandler(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<h1>League</h1>", rr.Body.String())

	rr = server.do(t, "GET", "/app.js", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log('hi')", rr.Body.String())

	rr = server.do(t, "GET", "/standings/week-3", "", false)
	require.Equal(t, http.StatusOK, rr.Code, "unknown paths fall back to index.html")
	assert.Equal(t, "<h1>League</h1>", rr.Body.String())

	rr = server.do(t, "GET", "/api/nope", "", false)
	assertError(t, rr, http.StatusNotFound, "not found")
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t)

	rr := server.do(t, "GET", "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func fileExists(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	return info, err == nil
}

func TestCloseDropsLaterEvents(t *testing.T) {
	server := setupTestServer(t)
	require.Equal(t, http.StatusOK, server.do(t, "POST", "/api/team", `{"name":"Falcons"}`, true).Code)
	server.Close()

	rr := server.do(t, "POST", "/api/team", `{"name":"Hawks"}`, true)
	require.Equal(t, http.StatusOK, rr.Code, "mutations are still saved while closing")
	assert.JSONEq(t, `{"ok":true,"teams":["Falcons","Hawks"]}`, rr.Body.String())
	assert.Equal(t, []pubsub.EventType{pubsub.EventTeamCreated}, server.pubsub.Topics())
}
