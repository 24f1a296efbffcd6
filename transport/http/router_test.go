package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academia-alliance/academia/adapters/events"
	"github.com/academia-alliance/academia/adapters/store"
	"github.com/academia-alliance/academia/adapters/tokenizer"
	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/ports"
	"github.com/academia-alliance/academia/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router      *gin.Engine
	sessions    *service.SessionService
	assignments ports.RecordStore
	submissions ports.RecordStore
}

func newTestEnv(t *testing.T, production bool) *testEnv {
	t.Helper()
	return newTestEnvWithStores(t, production, store.NewMemoryStore(), store.NewMemoryStore())
}

func newTestEnvWithStores(t *testing.T, production bool, assignmentStore, submissionStore ports.RecordStore) *testEnv {
	t.Helper()

	log := logger.Nop()
	m := metrics.New()
	pub := events.NewNoopPublisher()
	sessions := service.NewSessionService(tokenizer.NewJWTTokenizer([]byte("test-secret")), 0)

	router := SetupRouter(Dependencies{
		Sessions:    sessions,
		Assignments: service.NewAssignmentService(assignmentStore, pub, log, m),
		Submissions: service.NewSubmissionService(submissionStore, pub, log, m),
		Cookie:      CookieConfig{Name: "token", Production: production},
		CORSOrigins: []string{"http://localhost:5173"},
		Health:      []Pinger{assignmentStore, submissionStore},
		Logger:      log,
		Metrics:     m,
	})

	return &testEnv{
		router:      router,
		sessions:    sessions,
		assignments: assignmentStore,
		submissions: submissionStore,
	}
}

// token issues a credential for email directly through the session service
func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	token, _, err := e.sessions.Issue(core.Identity{Email: email})
	require.NoError(t, err)
	return token
}

// do performs a request; a non-empty token is sent as the session cookie
func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_Greeting(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, greeting, w.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	broken := newTestEnvWithStores(t, false, store.NewMemoryStore(), failingStore{store.NewMemoryStore()})
	w = broken.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, http.MethodGet, "/getCount", "", nil)

	w := env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `academia_http_requests_total{method="GET",route="/getCount",status="200"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	env := newTestEnv(t, false)

	req := httptest.NewRequest(http.MethodGet, "/assignments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/assignments", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_GuardedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t, false)
	id := core.NewID().Hex()

	guarded := []struct{ method, target string }{
		{http.MethodPost, "/add-assignment"},
		{http.MethodPut, "/update-assignment/" + id},
		{http.MethodPost, "/submit-assignment"},
		{http.MethodGet, "/mySubmitted?email=a@x.com"},
	}
	for _, r := range guarded {
		t.Run(r.method+" "+r.target, func(t *testing.T) {
			w := env.do(t, r.method, r.target, "", map[string]any{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, map[string]string{"message": "Unauthorized Access"}, decode[map[string]string](t, w))

			w = env.do(t, r.method, r.target, "not-a-jwt", map[string]any{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_PublicRoutesSkipSession(t *testing.T) {
	env := newTestEnv(t, false)
	id := core.NewID().Hex()

	public := []struct{ method, target string }{
		{http.MethodGet, "/assignments"},
		{http.MethodGet, "/getCount"},
		{http.MethodGet, "/assignment/" + id},
		{http.MethodDelete, "/assignment/" + id},
		{http.MethodGet, "/pending-assignments?status=pending"},
		{http.MethodPut, "/update-marks/" + id},
		{http.MethodGet, "/submitted-assignments"},
	}
	for _, r := range public {
		t.Run(r.method+" "+r.target, func(t *testing.T) {
			w := env.do(t, r.method, r.target, "", map[string]any{"status": "pending"})
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestRouter_LoginLogoutScenario(t *testing.T) {
	env := newTestEnv(t, false)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	post := func(path string, body any) *http.Response {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		resp, err := client.Post(srv.URL+path, "application/json", bytes.NewReader(raw))
		require.NoError(t, err)
		return resp
	}
	get := func(path string) *http.Response {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		return resp
	}

	resp := post("/jwt", map[string]any{"email": "a@x.com"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get("/mySubmitted?email=a@x.com")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post("/logout", map[string]any{"email": "a@x.com"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get("/mySubmitted?email=a@x.com")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_BearerFallback(t *testing.T) {
	env := newTestEnv(t, false)

	req := httptest.NewRequest(http.MethodGet, "/mySubmitted?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, "a@x.com"))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// failingStore fails every operation the way an unreachable database would
type failingStore struct {
	ports.RecordStore
}

func (failingStore) err(op string) error {
	return fmt.Errorf("failed to %s: %w: connection refused", op, core.ErrStoreOperationFailed)
}

func (f failingStore) Find(context.Context, core.Filter, core.Page) ([]core.Document, error) {
	return nil, f.err("find records")
}

func (f failingStore) Count(context.Context, core.Filter) (int64, error) {
	return 0, f.err("count records")
}

func (f failingStore) Ping(context.Context) error {
	return f.err("ping")
}

func TestRouter_StorageFailureIsInternalError(t *testing.T) {
	env := newTestEnvWithStores(t, false, failingStore{store.NewMemoryStore()}, failingStore{store.NewMemoryStore()})

	for _, target := range []string{"/assignments", "/getCount", "/submitted-assignments", "/pending-assignments?status=x"} {
		w := env.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
		assert.Equal(t, map[string]string{"message": "Internal Server Error"}, decode[map[string]string](t, w))
	}
}
