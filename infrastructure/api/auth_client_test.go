package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pom_automation/domain/entities"
	"pom_automation/infrastructure/security"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client, err := NewAuthClient(server.URL+"/api/", logger, security.NewRedactor(logger), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestLoginSendsCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "admin@admin.com", payload["email"])
		assert.Equal(t, "password", payload["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Successfully logged in.","data":{"access_token":"abc"}}`))
	})

	resp, err := client.Login(context.Background(), entities.Credential{Email: "admin@admin.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, true, resp.Body["success"])
	assert.Equal(t, "abc", resp.Body["data"].(map[string]any)["access_token"])
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
}

func TestLoginReturnsErrorStatuses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	resp, err := client.Login(context.Background(), entities.Credential{Email: "x@example.com", Password: "nope"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "Invalid credentials", resp.Body["message"])
}

func TestLoginNonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	resp, err := client.Login(context.Background(), entities.Credential{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.Status)
	assert.Nil(t, resp.Body)
	assert.Equal(t, "<html>bad gateway</html>", string(resp.Raw))
}

func TestLoginCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Login(ctx, entities.Credential{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAuthClientRequiresURL(t *testing.T) {
	_, err := NewAuthClient("", logrus.New(), security.NewRedactor(logrus.New()))
	assert.Error(t, err)
}

func TestDecodeResponseArrayBody(t *testing.T) {
	resp := DecodeResponse(http.StatusOK, nil, []byte(`[1,2,3]`))
	assert.Nil(t, resp.Body)
}
