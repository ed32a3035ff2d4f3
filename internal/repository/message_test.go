package repository

import (
	"context"
	"testing"

	"instaclone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	send := func(from, to uint, body string) *models.Message {
		m := &models.Message{SenderID: from, RecipientID: to, Body: body}
		require.NoError(t, repo.Create(ctx, m))
		return m
	}

	send(alice.ID, bob.ID, "hi bob")
	send(bob.ID, alice.ID, "hey alice")
	lastAB := send(alice.ID, bob.ID, "how are you")
	lastAC := send(carol.ID, alice.ID, "ping")

	t.Run("conversation is ordered oldest first and covers both directions", func(t *testing.T) {
		msgs, err := repo.Conversation(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "hi bob", msgs[0].Body)
		assert.Equal(t, "how are you", msgs[2].Body)
	})

	t.Run("contacts ordered by latest exchange", func(t *testing.T) {
		contacts, err := repo.Contacts(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, carol.ID, contacts[0].User.ID)
		assert.Equal(t, lastAC.ID, contacts[0].LastMessageID)
		assert.Equal(t, bob.ID, contacts[1].User.ID)
		assert.Equal(t, lastAB.ID, contacts[1].LastMessageID)
	})

	t.Run("unseen count and mark seen", func(t *testing.T) {
		count, err := repo.UnseenCount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, repo.MarkSeen(ctx, alice.ID, bob.ID))

		count, err = repo.UnseenCount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "carol's message is still unseen")

		msgs, err := repo.Conversation(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		for _, m := range msgs {
			if m.RecipientID == alice.ID {
				assert.True(t, m.Seen)
			}
		}
	})

	t.Run("no contacts for a user with no messages", func(t *testing.T) {
		dave := createUser(t, db, "dave")
		contacts, err := repo.Contacts(ctx, dave.ID)
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})
}
