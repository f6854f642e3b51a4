package credentials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cattle-records/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Farm-Key") != "secret" {
			http.Error(w, "bad api key", http.StatusInternalServerError)
			return
		}
		var in struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)

		switch in.Token {
		case "admin-token":
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "u-1", "email": "ana@farm.test", "role": "admin"})
		case "worker-token":
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "u-2", "name": "Luis"})
		case "broken":
			_ = json.NewEncoder(w).Encode(map[string]string{"email": "x@y"})
		default:
			http.Error(w, "invalid token", http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newVerifier(t *testing.T, baseURL string) *Verifier {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL, APIKey: "secret", APIKeyHeader: "X-Farm-Key"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerifier_Roles(t *testing.T) {
	v := newVerifier(t, fakeService(t).URL)

	admin, err := v.Verify(context.Background(), "admin-token")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u-1", Email: "ana@farm.test", Role: auth.RoleAdmin}, admin)

	worker, err := v.Verify(context.Background(), "worker-token")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleWorker, worker.Role, "missing role defaults to worker")
	assert.Equal(t, "Luis", worker.Name)
}

func TestVerifier_Errors(t *testing.T) {
	v := newVerifier(t, fakeService(t).URL)

	_, err := v.Verify(context.Background(), "stolen")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
