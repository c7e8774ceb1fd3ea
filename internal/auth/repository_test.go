package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-systems/crestline-cli/internal/client"
)

func TestRestRepository_Authenticate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		// The token endpoint is unauthenticated.
		_, present := r.Header["Authorization"]
		assert.False(t, present)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "client_id=my_id&client_secret=my_secret", string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc123","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh","scope":"read write"}`))
	}))
	defer server.Close()

	repo := NewRestRepository(client.New(server.URL), "/auth/token")

	token, err := repo.Authenticate(context.Background(), "my_id", "my_secret")

	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	require.NotNil(t, token.ExpiresIn)
	assert.Equal(t, int64(3600), *token.ExpiresIn)
	require.NotNil(t, token.RefreshToken)
	assert.Equal(t, "refresh", *token.RefreshToken)
	require.NotNil(t, token.Scope)
	assert.Equal(t, "read write", *token.Scope)
}

func TestRestRepository_Authenticate_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	repo := NewRestRepository(client.New(server.URL), "/auth/token")

	token, err := repo.Authenticate(context.Background(), "bad", "wrong")

	require.Error(t, err)
	assert.Nil(t, token)
	assert.True(t, client.IsRequestFailure(err))
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
}

func TestRestRepository_Authenticate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	repo := NewRestRepository(client.New(url), "/auth/token")

	token, err := repo.Authenticate(context.Background(), "id", "secret")

	require.Error(t, err)
	assert.Nil(t, token)
	assert.True(t, client.IsTransport(err))
}

func TestRestRepository_Authenticate_MissingRequiredFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "Bearer"})
	}))
	defer server.Close()

	repo := NewRestRepository(client.New(server.URL), "/auth/token")

	token, err := repo.Authenticate(context.Background(), "id", "secret")

	require.Error(t, err)
	assert.Nil(t, token)
	assert.True(t, client.IsDecode(err))
}

func TestRestRepository_Authenticate_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	repo := NewRestRepository(client.New(server.URL), "/auth/token")

	_, err := repo.Authenticate(context.Background(), "id", "secret")

	require.Error(t, err)
	assert.True(t, client.IsDecode(err))
}

func TestRestRepository_TrailingSlashAuthPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		w.Write([]byte(`{"access_token":"t","token_type":"Bearer"}`))
	}))
	defer server.Close()

	repo := NewRestRepository(client.New(server.URL+"/"), "oauth/token")

	_, err := repo.Authenticate(context.Background(), "id", "secret")
	require.NoError(t, err)
}
