package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

func TestClient_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": 50035, "message": "Invalid Form Body"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 3})
	_, err := client.ListRoles(context.Background(), "guild-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Form Body")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_PermissionNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code": 50013, "message": "Missing Permissions"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 3})
	err := client.AddRole(context.Background(), "guild-1", "user-1", "role-1")

	assert.Error(t, err)
	assert.True(t, shared.IsPermission(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"role-1","name":"🎬 Side Actor"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 3})
	roles, err := client.ListRoles(context.Background(), "guild-1")

	assert.NoError(t, err)
	assert.Len(t, roles, 1)
	assert.Equal(t, "🎬 Side Actor", roles[0].Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NotFoundMapsToDomainKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": 10011, "message": "Unknown Role"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 3})
	err := client.RemoveRole(context.Background(), "guild-1", "user-1", "role-1")

	assert.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
