package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/platform/logger"
	"cattle-records/internal/ports/auth"
)

type stubVerifier map[string]auth.Claims

func (s stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := s[token]
	if !ok {
		return auth.Claims{}, errors.New("unknown token")
	}
	return c, nil
}

func echoClaims(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) (auth.Claims, bool) {
	t.Helper()
	var got auth.Claims
	var ok bool
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "u-1")
	req.Header.Set(HeaderDebugUserRole, "admin")

	c, ok := echoClaims(t, AuthContext(nil), req)

	require.True(t, ok)
	assert.Equal(t, auth.Claims{UserID: "u-1", Role: auth.RoleAdmin}, c)
}

func TestAuthContext_DevWithoutHeaderIsAnonymous(t *testing.T) {
	_, ok := echoClaims(t, AuthContext(nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_BearerAndCookie(t *testing.T) {
	v := stubVerifier{
		"t-bearer": {UserID: "u-1", Role: auth.RoleWorker},
		"t-cookie": {UserID: "u-2", Role: auth.RoleAdmin},
	}

	bearer := httptest.NewRequest(http.MethodGet, "/", nil)
	bearer.Header.Set("Authorization", "bearer t-bearer")
	c, ok := echoClaims(t, AuthContext(v), bearer)
	require.True(t, ok)
	assert.Equal(t, "u-1", c.UserID)

	cookie := httptest.NewRequest(http.MethodGet, "/", nil)
	cookie.AddCookie(&http.Cookie{Name: "token", Value: "t-cookie"})
	c, ok = echoClaims(t, AuthContext(v), cookie)
	require.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, c.Role)

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Authorization", "Bearer forged")
	_, ok = echoClaims(t, AuthContext(v), bad)
	assert.False(t, ok, "invalid token continues anonymous")

	// el debug header no vale cuando hay verifier
	debug := httptest.NewRequest(http.MethodGet, "/", nil)
	debug.Header.Set(HeaderDebugUserID, "intruder")
	_, ok = echoClaims(t, AuthContext(v), debug)
	assert.False(t, ok)
}

func TestRequireIdentity(t *testing.T) {
	h := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	h.ServeHTTP(rec, req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u-1"})))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLog_WritesRouteAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLog(log))
	r.Get("/animals/{animalID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/animals/a-1", nil))

	out := buf.String()
	assert.Contains(t, out, "route=/animals/{animalID}")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "request_id=")
}
