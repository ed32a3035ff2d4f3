package repository

import (
	"context"
	"testing"
	"time"

	"instaclone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	actor := createUser(t, db, "actor")

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	n1 := &models.Notification{SenderID: actor.ID, RecipientID: owner.ID, Kind: models.NotificationLike, Body: "actor liked your post", CreatedAt: base}
	n2 := &models.Notification{SenderID: actor.ID, RecipientID: owner.ID, Kind: models.NotificationFollow, Body: "actor started following you", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, n1))
	require.NoError(t, repo.Create(ctx, n2))

	t.Run("list newest first", func(t *testing.T) {
		list, err := repo.ListByRecipient(ctx, owner.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, n2.ID, list[0].ID)
	})

	t.Run("unread count without watermark counts all", func(t *testing.T) {
		count, err := repo.UnreadCount(ctx, owner.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("unread count respects watermark", func(t *testing.T) {
		watermark := base.Add(30 * time.Minute)
		count, err := repo.UnreadCount(ctx, owner.ID, &watermark)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("self-sent rows never count as unread", func(t *testing.T) {
		selfN := &models.Notification{SenderID: owner.ID, RecipientID: owner.ID, Kind: models.NotificationLike, Body: "x", CreatedAt: base.Add(2 * time.Hour)}
		require.NoError(t, repo.Create(ctx, selfN))

		count, err := repo.UnreadCount(ctx, owner.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("account deletion purges sent and received", func(t *testing.T) {
		received := &models.Notification{SenderID: owner.ID, RecipientID: actor.ID, Kind: models.NotificationFollow, Body: "owner started following you", CreatedAt: base.Add(3 * time.Hour)}
		require.NoError(t, repo.Create(ctx, received))

		require.NoError(t, repo.DeleteByUser(ctx, actor.ID))

		count, err := repo.UnreadCount(ctx, owner.ID, nil)
		require.NoError(t, err)
		assert.Zero(t, count)

		list, err := repo.ListByRecipient(ctx, actor.ID, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
