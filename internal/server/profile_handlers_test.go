package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"tone/internal/models"
	"tone/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	env := newTestEnv(t)

	t.Run("null before first save", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Nil(t, body["profile"])
	})

	t.Run("returns saved profile", func(t *testing.T) {
		require.NoError(t, env.profiles.Upsert(context.Background(),
			&models.Profile{ID: 1, Username: "gopher", DisplayName: "Gopher"}))

		req := jsonRequest(t, http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, "gopher", profile["username"])
	})
}

func TestUpdateMyProfile(t *testing.T) {
	t.Run("creates on first save", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest(t, http.MethodPut, "/api/profile",
			map[string]string{"username": "GopherFan", "display_name": "Gopher Fan"})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, "gopherfan", profile["username"])
		assert.Equal(t, "Gopher Fan", profile["display_name"])
	})

	t.Run("rejects malformed username", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest(t, http.MethodPut, "/api/profile",
			map[string]string{"username": "no spaces allowed"})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.profiles.Upsert(context.Background(),
			&models.Profile{ID: 2, Username: "gopher"}))

		req := jsonRequest(t, http.MethodPut, "/api/profile",
			map[string]string{"username": "gopher"})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func avatarRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAvatar(t *testing.T) {
	t.Run("stores image and returns URL", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.profiles.Upsert(context.Background(),
			&models.Profile{ID: 1, Username: "gopher"}))

		req := avatarRequest(t, testutil.TinyPNG(t, 8, 8))
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Contains(t, body["avatar_url"], "https://blobs.test/avatars/1-")
		assert.Len(t, env.store.Objects, 1)
	})

	t.Run("rejects non-image payload", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.profiles.Upsert(context.Background(),
			&models.Profile{ID: 1, Username: "gopher"}))

		req := avatarRequest(t, []byte("not pixels"))
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest(t, http.MethodPost, "/api/profile/avatar", map[string]string{})
		req.Header.Set("Authorization", env.bearerToken(t, 1))
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
