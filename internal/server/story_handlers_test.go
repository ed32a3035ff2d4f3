package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"instaclone/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postStory(t *testing.T, app *fiber.App, auth string, timeSpan int) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "story.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("time_span", fmt.Sprintf("%d", timeSpan)))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/stories", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", auth)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestStoryLifecycle(t *testing.T) {
	srv, app := setupTestServer(t)
	_, aliceToken := createTestUser(t, srv, "alice")
	_, bobToken := createTestUser(t, srv, "bob")

	resp := postStory(t, app, aliceToken, models.StorySpan48)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var story models.Story
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&story))
	assert.Equal(t, models.StorySpan48, story.TimeSpan)
	assert.NotEmpty(t, story.File)

	listLen := func(auth string) int {
		resp := doJSON(t, app, http.MethodGet, "/api/stories", auth, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var stories []models.Story
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stories))
		return len(stories)
	}

	// Authors see their own stories; bob does not follow alice
	assert.Equal(t, 1, listLen(aliceToken))
	assert.Equal(t, 0, listLen(bobToken))

	t.Run("rejects invalid time span", func(t *testing.T) {
		resp := postStory(t, app, aliceToken, 13)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("only the author can delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/stories/%d", story.ID)

		resp := doJSON(t, app, http.MethodDelete, path, bobToken, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, path, aliceToken, "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, 0, listLen(aliceToken))
	})
}
