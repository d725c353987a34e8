package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendlog-server/src/auth"
	"spendlog-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	users map[string]*models.User
	err   error
}

func (f fakeResolver) CurrentUser(_ context.Context, login string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[login]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(u.Username))
}

func TestJWTAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Minute, time.Hour)
	resolver := fakeResolver{users: map[string]*models.User{"alice": {ID: 1, Username: "alice"}}}
	h := JWTAuthMiddleware(issuer, resolver)(http.HandlerFunc(echoUser))

	access, _, err := issuer.Issue("alice", auth.AccessToken)
	require.NoError(t, err)
	refresh, _, err := issuer.Issue("alice", auth.RefreshToken)
	require.NoError(t, err)
	ghost, _, err := issuer.Issue("ghost", auth.AccessToken)
	require.NoError(t, err)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessCookie, Value: access}) }, http.StatusOK, "alice"},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+access) }, http.StatusOK, "alice"},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized, "missing token"},
		{"refresh token rejected", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+refresh) }, http.StatusUnauthorized, "invalid token"},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized, "invalid token"},
		{"unknown user", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+ghost) }, http.StatusUnauthorized, "user not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestJWTAuthMiddlewareResolverFailure(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Minute, time.Hour)
	h := JWTAuthMiddleware(issuer, fakeResolver{err: errors.New("db down")})(http.HandlerFunc(echoUser))

	access, _, err := issuer.Issue("alice", auth.AccessToken)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	h := CORSMiddleware(false, []string{"https://app.example"})(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	all := CORSMiddleware(true, nil)(ok)
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://any.example")
	rec = httptest.NewRecorder()
	all.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://any.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDemoModeMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		demo   bool
		method string
		path   string
		want   int
	}{
		{true, http.MethodGet, "/api/v1/expenses", http.StatusOK},
		{true, http.MethodPost, "/api/v1/login", http.StatusOK},
		{true, http.MethodPut, "/api/v1/refresh_token", http.StatusOK},
		{true, http.MethodPost, "/api/v1/add_expense", http.StatusForbidden},
		{true, http.MethodDelete, "/api/v1/delete_category", http.StatusForbidden},
		{false, http.MethodPost, "/api/v1/add_expense", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			DemoModeMiddleware(tt.demo)(ok).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/add_category", nil))
	out := buf.String()
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "path=/api/v1/add_category")
	assert.Contains(t, out, "status=201")
}
