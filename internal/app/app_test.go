package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjunlab/authfront/internal/config"
)

// fakeGateway emulates the auth gateway behind the httptest server.
type fakeGateway struct {
	titanicHits atomic.Int64
}

func (f *fakeGateway) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/kakao/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"loginUrl": "https://kauth.kakao.com/oauth/authorize?x=1",
		})
	})
	mux.HandleFunc("POST /api/auth/naver", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok-naver",
			"user":    map[string]string{"id": "42", "email": "kim@naver.com", "nickname": "kim"},
		})
	})
	mux.HandleFunc("POST /api/auth/google", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "bad credentials",
		})
	})
	mux.HandleFunc("GET /api/titanic/top10", func(w http.ResponseWriter, r *http.Request) {
		f.titanicHits.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"rank": 1, "passengerId": 259, "name": "Ward, Miss. Anna", "survived": "생존", "pclass": "1등석", "sex": "여성", "age": 35.0, "fare": 512.3292, "cabin": nil},
			},
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestApp(t *testing.T, gatewayURL string) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Storage.Kind = "memory"
	cfg.Gateway.BaseURL = gatewayURL

	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

func do(a *App, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	return rec
}

func TestLoginRedirectProvider(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodPost, "/api/auth/kakao/login")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://kauth.kakao.com/oauth/authorize?x=1", rec.Header().Get("Location"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	// redirect path must not touch the session
	assert.False(t, a.Store.Authenticated())
}

func TestLoginTokenProviderPersistsSession(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodPost, "/api/auth/naver/login")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = do(a, http.MethodGet, "/api/session")
	require.Equal(t, http.StatusOK, rec.Code)

	var sess struct {
		Authenticated bool   `json:"authenticated"`
		Provider      string `json:"provider"`
		ProviderName  string `json:"providerName"`
		User          *struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Nickname string `json:"nickname"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "naver", sess.Provider)
	assert.Equal(t, "네이버", sess.ProviderName)
	require.NotNil(t, sess.User)
	assert.Equal(t, "kim@naver.com", sess.User.Email)
}

func TestLoginFailureSurfacesGatewayMessage(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodPost, "/api/auth/google/login")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "LOGIN_FAILED", body.Code)
	assert.Equal(t, "bad credentials", body.Message)
	assert.False(t, a.Store.Authenticated())

	// the failure is visible in the polled login state
	rec = do(a, http.MethodGet, "/api/login/state")
	require.Equal(t, http.StatusOK, rec.Code)
	var st struct {
		AnyLoading bool   `json:"anyLoading"`
		Error      string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.AnyLoading)
	assert.Equal(t, "bad credentials", st.Error)
}

func TestLoginUnknownProvider(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodPost, "/api/auth/facebook/login")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestRedirectLanding(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/auth/naver/success?token=abc123&id=42&nickname=kim")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	tok, ok := a.Store.Token()
	require.True(t, ok)
	assert.Equal(t, "abc123", tok)
	u := a.Store.User()
	require.NotNil(t, u)
	assert.Equal(t, "kim", u.Nickname)
	assert.Empty(t, u.Email)
}

func TestRedirectLandingWithoutToken(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/auth/naver/success")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_NOT_RECEIVED")
	assert.False(t, a.Store.Authenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	do(a, http.MethodPost, "/api/auth/naver/login")
	require.True(t, a.Store.Authenticated())

	rec := do(a, http.MethodPost, "/api/logout")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, a.Store.Authenticated())

	rec = do(a, http.MethodPost, "/api/logout")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionWithoutToken(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/api/session")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

func TestTitanicTop10IsCached(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/api/titanic/top10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ward, Miss. Anna")

	rec = do(a, http.MethodGet, "/api/titanic/top10")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1), fg.titanicHits.Load())
}

func TestUnreachableGateway(t *testing.T) {
	srv := httptest.NewServer((&fakeGateway{}).handler())
	srv.Close() // closed on purpose
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodPost, "/api/auth/kakao/login")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "서버 연결에 실패했습니다")
}

func TestRouterErrors(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROUTE_NOT_FOUND")

	rec = do(a, http.MethodDelete, "/api/session")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg.handler())
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	rec := do(a, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestNewBackendUnknownKind(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Kind = "etcd"
	_, err := NewBackend(cfg)
	assert.Error(t, err)
}
