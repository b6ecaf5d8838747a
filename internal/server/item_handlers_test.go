package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItems(t *testing.T) {
	env := newTestEnv(t)
	seedItem(t, env, "Dune")
	seedItem(t, env, "Dune: Part Two")

	t.Run("matching query", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/items/search?q=dune", nil)
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Len(t, body["items"].([]any), 2)
	})

	t.Run("blank query returns empty list", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/items/search", nil)
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Empty(t, body["items"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/items/search?q=dune", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("creates with default category", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest(t, http.MethodPost, "/api/items",
			map[string]string{"title": "Solaris"})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Solaris", body["title"])
		assert.Equal(t, "other", body["category"])
	})

	t.Run("rejects blank title", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest(t, http.MethodPost, "/api/items",
			map[string]string{"title": "   "})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
