package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"instaclone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndFeedFlow(t *testing.T) {
	srv, app := setupTestServer(t)

	_, aliceToken := createTestUser(t, srv, "alice")
	bob, _ := createTestUser(t, srv, "bob")

	require.NoError(t, srv.db.Create(&models.Post{AuthorID: bob.ID, File: "b.png", Description: "bob's post"}).Error)

	feedLen := func() int {
		resp := doJSON(t, app, http.MethodGet, "/api/feed", aliceToken, "")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
		return len(posts)
	}

	assert.Equal(t, 0, feedLen())

	resp := doJSON(t, app, http.MethodPost, "/api/users/"+strconv.Itoa(int(bob.ID))+"/follow", aliceToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, feedLen())

	// Unfollow removes bob's posts from the feed again
	resp = doJSON(t, app, http.MethodPost, "/api/users/"+strconv.Itoa(int(bob.ID))+"/follow", aliceToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 0, feedLen())
}

func TestBlockSeversAndGuards(t *testing.T) {
	srv, app := setupTestServer(t)

	_, aliceToken := createTestUser(t, srv, "alice")
	bob, bobToken := createTestUser(t, srv, "bob")

	bobID := strconv.Itoa(int(bob.ID))

	resp := doJSON(t, app, http.MethodPost, "/api/users/"+bobID+"/follow", aliceToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/users/"+bobID+"/block", aliceToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The follow edge is gone
	var follows int64
	require.NoError(t, srv.db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Equal(t, int64(0), follows)

	// Neither side can follow while the block stands
	resp = doJSON(t, app, http.MethodPost, "/api/users/"+bobID+"/follow", aliceToken, "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var alice models.User
	require.NoError(t, srv.db.Where("username = ?", "alice").First(&alice).Error)
	resp = doJSON(t, app, http.MethodPost, "/api/users/"+strconv.Itoa(int(alice.ID))+"/follow", bobToken, "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Unblock restores normal interaction
	resp = doJSON(t, app, http.MethodPost, "/api/users/"+bobID+"/block", aliceToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/users/"+bobID+"/follow", aliceToken, "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetRecommendationsEndpoint(t *testing.T) {
	srv, app := setupTestServer(t)

	_, aliceToken := createTestUser(t, srv, "alice")
	_, bobToken := createTestUser(t, srv, "bob")

	var alice models.User
	require.NoError(t, srv.db.Where("username = ?", "alice").First(&alice).Error)

	// bob follows alice; alice does not follow back
	resp := doJSON(t, app, http.MethodPost, "/api/users/"+strconv.Itoa(int(alice.ID))+"/follow", bobToken, "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/recommendations?strategy=follows_you", aliceToken, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recs []models.Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "bob", recs[0].User.Username)

	resp = doJSON(t, app, http.MethodGet, "/api/recommendations?strategy=bogus", aliceToken, "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
