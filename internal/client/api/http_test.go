package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/client/awaitx"
	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func await(t *testing.T, c *HTTPClient, call func(onSuccess func(*models.Blueprint), onFailure func(error))) (*models.Blueprint, error) {
	t.Helper()
	completion := awaitx.New[*models.Blueprint]()
	call(completion.Succeed, completion.Fail)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return completion.Wait(ctx, nil, time.Millisecond)
}

func TestHTTPClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/1/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "key-123", req["apiKey"])

		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok-1"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	tok, err := c.Login(context.Background(), "key-123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestHTTPClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/1/blueprints/wrld_1", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(blueprintDTO{
			ID: "wrld_1", Version: 3, Name: "My World",
			AuthorID: "usr_9", AuthorName: "dima",
			AssetURL: "https://files/asset/file_2a9c8d7e-1b34-4f5a-9c0d-8e7f6a5b4c3d/b",
			Kind:     "world",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	c.SetAccessToken("tok-1")

	b, err := await(t, c, func(ok func(*models.Blueprint), fail func(error)) {
		c.Fetch(context.Background(), "wrld_1", ok, fail)
	})
	require.NoError(t, err)
	assert.Equal(t, "wrld_1", b.ID)
	assert.Equal(t, 3, b.Version)
	assert.Equal(t, "usr_9", b.AuthorID)
	assert.Equal(t, models.KindWorld, b.Kind)
}

func TestHTTPClient_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such blueprint", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	_, err := await(t, c, func(ok func(*models.Blueprint), fail func(error)) {
		c.Fetch(context.Background(), "wrld_missing", ok, fail)
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "no such blueprint")
}

func TestHTTPClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/1/blueprints", r.URL.Path)

		var dto blueprintDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
		dto.Version = 1
		json.NewEncoder(w).Encode(dto)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	b, err := await(t, c, func(ok func(*models.Blueprint), fail func(error)) {
		c.Create(context.Background(), &models.Blueprint{ID: "wrld_new", Name: "New World"}, ok, fail)
	})
	require.NoError(t, err)
	assert.Equal(t, "wrld_new", b.ID)
	assert.Equal(t, 1, b.Version)
}

func TestHTTPClient_Save_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		http.Error(w, "capacity out of range", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	_, err := await(t, c, func(ok func(*models.Blueprint), fail func(error)) {
		c.Save(context.Background(), &models.Blueprint{ID: "wrld_1"}, ok, fail)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity out of range")
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	_, err := await(t, c, func(ok func(*models.Blueprint), fail func(error)) {
		c.Fetch(context.Background(), "wrld_1", ok, fail)
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestHTTPClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "k")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}
