package repository

import (
	"context"
	"testing"
	"time"

	"instaclone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_FeedOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	p1 := &models.Post{AuthorID: alice.ID, File: "a1.jpg", Description: "first", CreatedAt: base}
	p2 := &models.Post{AuthorID: bob.ID, File: "b1.jpg", Description: "second", CreatedAt: base.Add(time.Hour)}
	// Same timestamp as p2: ID decides the order
	p3 := &models.Post{AuthorID: alice.ID, File: "a2.jpg", Description: "tied", CreatedAt: base.Add(time.Hour)}
	for _, p := range []*models.Post{p1, p2, p3} {
		require.NoError(t, db.Create(p).Error)
	}

	t.Run("newest first with ID tie-break", func(t *testing.T) {
		feed, err := repo.Feed(ctx, []uint{alice.ID, bob.ID}, alice.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, p3.ID, feed[0].ID)
		assert.Equal(t, p2.ID, feed[1].ID)
		assert.Equal(t, p1.ID, feed[2].ID)
	})

	t.Run("only listed authors appear", func(t *testing.T) {
		feed, err := repo.Feed(ctx, []uint{bob.ID}, alice.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, p2.ID, feed[0].ID)
	})

	t.Run("empty author set yields empty feed", func(t *testing.T) {
		feed, err := repo.Feed(ctx, nil, alice.ID, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	t.Run("pagination", func(t *testing.T) {
		feed, err := repo.Feed(ctx, []uint{alice.ID, bob.ID}, alice.ID, 1, 2)
		require.NoError(t, err)
		require.Len(t, feed, 2)

		feed, err = repo.Feed(ctx, []uint{alice.ID, bob.ID}, alice.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, p1.ID, feed[0].ID)
	})
}

func TestPostRepository_ComputedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := &models.Post{AuthorID: alice.ID, File: "p.jpg"}
	require.NoError(t, db.Create(post).Error)

	liked, err := repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, db.Create(&models.Comment{AuthorID: bob.ID, PostID: post.ID, Text: "nice"}).Error)
	require.NoError(t, db.Create(&models.Comment{AuthorID: alice.ID, PostID: post.ID, Text: "hidden", Deleted: true}).Error)

	t.Run("counts and liked flag for the liker", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.Equal(t, 1, got.CommentsCount, "hidden comments are not counted")
		assert.True(t, got.Liked)
	})

	t.Run("liked flag is per viewer", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})

	t.Run("toggle back off", func(t *testing.T) {
		liked, err := repo.ToggleLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		got, err := repo.GetByID(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.LikesCount)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999, bob.ID)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPostRepository_LikedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	post := &models.Post{AuthorID: author.ID, File: "p.jpg"}
	require.NoError(t, db.Create(post).Error)

	var likers []*models.User
	for _, name := range []string{"u1", "u2", "u3", "u4"} {
		u := createUser(t, db, name)
		likers = append(likers, u)
		_, err := repo.ToggleLike(ctx, u.ID, post.ID)
		require.NoError(t, err)
	}

	users, err := repo.LikedBy(ctx, post.ID, 3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	// Earliest likers first, insertion order preserved
	assert.Equal(t, likers[0].ID, users[0].ID)
	assert.Equal(t, likers[1].ID, users[1].ID)
	assert.Equal(t, likers[2].ID, users[2].ID)
}

func TestPostRepository_Bookmarks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	p1 := &models.Post{AuthorID: bob.ID, File: "1.jpg"}
	p2 := &models.Post{AuthorID: bob.ID, File: "2.jpg"}
	require.NoError(t, db.Create(p1).Error)
	require.NoError(t, db.Create(p2).Error)

	saved, err := repo.ToggleBookmark(ctx, alice.ID, p1.ID)
	require.NoError(t, err)
	assert.True(t, saved)
	saved, err = repo.ToggleBookmark(ctx, alice.ID, p2.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	t.Run("newest bookmark first", func(t *testing.T) {
		posts, err := repo.Bookmarks(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, p2.ID, posts[0].ID)
	})

	t.Run("toggle removes", func(t *testing.T) {
		saved, err := repo.ToggleBookmark(ctx, alice.ID, p1.ID)
		require.NoError(t, err)
		assert.False(t, saved)

		posts, err := repo.Bookmarks(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
	})
}

func TestPostRepository_PrivacyAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := &models.Post{AuthorID: alice.ID, File: "p.jpg"}
	require.NoError(t, db.Create(post).Error)

	t.Run("toggle privacy", func(t *testing.T) {
		private, err := repo.TogglePrivacy(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, private)

		private, err = repo.TogglePrivacy(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, private)
	})

	t.Run("delete cascades likes and bookmarks", func(t *testing.T) {
		_, err := repo.ToggleLike(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		_, err = repo.ToggleBookmark(ctx, alice.ID, post.ID)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err = repo.GetByID(ctx, post.ID, alice.ID)
		require.Error(t, err)

		var likeCount, bookmarkCount int64
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
		db.Model(&models.Bookmark{}).Where("post_id = ?", post.ID).Count(&bookmarkCount)
		assert.Zero(t, likeCount)
		assert.Zero(t, bookmarkCount)
	})
}

func TestPostRepository_DeleteByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	mine := &models.Post{AuthorID: alice.ID, File: "mine.jpg"}
	theirs := &models.Post{AuthorID: bob.ID, File: "theirs.jpg"}
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(theirs).Error)

	// Engagement on alice's post, and alice's engagement elsewhere
	_, err := repo.ToggleLike(ctx, bob.ID, mine.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{AuthorID: bob.ID, PostID: mine.ID, Text: "nice"}).Error)
	_, err = repo.ToggleLike(ctx, alice.ID, theirs.ID)
	require.NoError(t, err)
	_, err = repo.ToggleBookmark(ctx, alice.ID, theirs.ID)
	require.NoError(t, err)

	files, err := repo.DeleteByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine.jpg"}, files)

	var postCount, likeCount, commentCount, bookmarkCount int64
	db.Model(&models.Post{}).Where("author_id = ?", alice.ID).Count(&postCount)
	db.Model(&models.Like{}).Where("post_id = ? OR author_id = ?", mine.ID, alice.ID).Count(&likeCount)
	db.Model(&models.Comment{}).Where("post_id = ?", mine.ID).Count(&commentCount)
	db.Model(&models.Bookmark{}).Where("user_id = ?", alice.ID).Count(&bookmarkCount)
	assert.Zero(t, postCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, bookmarkCount)

	// Bob's post is untouched
	got, err := repo.GetByID(ctx, theirs.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, theirs.ID, got.ID)
}
