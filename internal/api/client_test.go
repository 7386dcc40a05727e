package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palchi-cli/internal/model"
	"palchi-cli/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1", opts...), srv
}

func TestLoginInstallsTokenAndSendsBearer(t *testing.T) {
	var authz atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mario", body.Username)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		authz.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.User{ID: 1, Username: "mario", Role: model.RoleAdmin})
	})
	c, _ := newTestClient(t, mux)

	tok, err := c.Login(context.Background(), "mario", "segreta")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
	assert.Equal(t, "tok-123", c.Token())

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mario", u.Username)
	assert.Equal(t, "Bearer tok-123", authz.Load())
}

func TestUnauthorizedClearsSessionWithoutRetry(t *testing.T) {
	dir := t.TempDir()
	sess := session.Store{Dir: dir}
	require.NoError(t, sess.Save("stale-token"))

	var calls atomic.Int32
	expired := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _ := newTestClient(t, mux,
		WithSessionStore(&sess),
		WithAuthExpiredFunc(func() { expired = true }),
	)
	c.SetToken("stale-token")

	_, err := c.Events(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsAuthExpired(err))
	assert.Equal(t, "Sessione scaduta, effettua di nuovo l'accesso", err.Error())

	// One request, never retried.
	assert.Equal(t, int32(1), calls.Load())

	// Every trace of the session is gone: memory, disk, owner callback.
	assert.Empty(t, c.Token())
	persisted, err := sess.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted.AccessToken)
	assert.True(t, expired)
}

func TestServerErrorHidesBackendDetail(t *testing.T) {
	const leak = `{"detail": "Traceback (most recent call last): psycopg2.OperationalError"}`
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(leak))
	})
	c, _ := newTestClient(t, mux)

	_, err := c.Events(context.Background(), nil)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, "Errore del server, riprova più tardi", apiErr.Message)
	assert.NotContains(t, apiErr.Message, "Traceback")
	assert.NotContains(t, apiErr.Message, "psycopg2")
}

func TestTimeoutIsDistinct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c, _ := newTestClient(t, mux, WithTimeout(50*time.Millisecond))

	_, err := c.Events(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.False(t, IsAuthExpired(err))
	assert.Equal(t, "Richiesta scaduta, controlla la connessione e riprova", err.Error())
}

func TestForbiddenMapsToPermessiInsufficienti(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/events/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	c, _ := newTestClient(t, mux)
	c.SetToken("viewer-token")

	err := c.DeleteEvent(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
	// A 403 must not tear the session down.
	assert.Equal(t, "viewer-token", c.Token())
}

func TestSaveEventRoutesByIDPresence(t *testing.T) {
	var created, updated atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		created.Add(1)
		var ev model.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		ev.ID = 42
		json.NewEncoder(w).Encode(ev)
	})
	mux.HandleFunc("PUT /api/v1/events/42", func(w http.ResponseWriter, r *http.Request) {
		updated.Add(1)
		var ev model.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		json.NewEncoder(w).Encode(ev)
	})
	c, _ := newTestClient(t, mux)

	ev := model.Event{Title: "Sagra", Status: model.StatusToBeScheduled}
	saved, err := c.CreateEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, 42, saved.ID)

	saved.Title = "Sagra del paese"
	_, err = c.UpdateEvent(context.Background(), saved)
	require.NoError(t, err)

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(1), updated.Load())
}

func TestEventsStatusFilterQuery(t *testing.T) {
	var gotStatus atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		gotStatus.Store(r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]model.Event{})
	})
	c, _ := newTestClient(t, mux)

	st := model.StatusCompleted
	_, err := c.Events(context.Background(), &st)
	require.NoError(t, err)
	assert.Equal(t, "Completed", gotStatus.Load())

	_, err = c.Events(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", gotStatus.Load())
}

func TestValidationDetailSurfacesVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "title"], "msg": "field required", "type": "value_error.missing"}]}`))
	})
	c, _ := newTestClient(t, mux)

	_, err := c.CreateEvent(context.Background(), model.Event{})
	require.Error(t, err)
	assert.Equal(t, KindGeneric, KindOf(err))
	assert.Equal(t, "field required", err.Error())
}

func TestBusyHookSkipsBackgroundCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/reports/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Reports{})
	})
	var toggles atomic.Int32
	c, _ := newTestClient(t, mux, WithBusyFunc(func(delta int) { toggles.Add(1) }))

	_, err := c.Reports(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(0), toggles.Load())
}
