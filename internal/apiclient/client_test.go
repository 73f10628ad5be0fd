package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"id":1,"name":"Ana","email":"ana@example.com"}`))
	}))
	defer server.Close()

	client := New(server.URL).WithToken("tok123")
	_, err := client.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	require.NoError(t, New(server.URL).Ping(context.Background()))
	assert.Empty(t, gotAuth)
}

func TestClientUnauthorizedHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer server.Close()

	called := 0
	client := New(server.URL).WithToken("stale").WithUnauthorizedHook(func() { called++ })

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, called)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Unauthenticated.", UserMessage(err))
}

func TestClientErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusUnprocessableEntity, `{"message":"El tag ya existe."}`, "El tag ya existe."},
		{"error field", http.StatusConflict, `{"error":"asset already assigned"}`, "asset already assigned"},
		{"non-json body", http.StatusBadGateway, `<html>upstream down</html>`, http.StatusText(http.StatusBadGateway)},
		{"empty body", http.StatusNotFound, ``, http.StatusText(http.StatusNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(server.URL).GetAsset(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestUserMessageTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := New(server.URL).GetAsset(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "No se pudo completar la operación.", UserMessage(err))
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.Write([]byte(`{"token":"tok123","user":{"id":1,"name":"Ana","email":"ana@example.com"}}`))
	}))
	defer server.Close()

	resp, err := New(server.URL).Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok123", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ana", resp.User.Name)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://host/api", New("https://host/api/").BaseURL())
}
