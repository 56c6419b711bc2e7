package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStoreAppend(t *testing.T) {
	t.Run("assigns id, timestamp and kind", func(t *testing.T) {
		store := NewMessageStore()

		stored := store.Append("channel:c1", Message{AuthorID: "a1", Body: "hi"})
		assert.NotEmpty(t, stored.ID)
		assert.False(t, stored.CreatedAt.IsZero())
		assert.Equal(t, TextMessage, stored.Kind)
		assert.Equal(t, "channel:c1", stored.ConversationKey)
	})

	t.Run("preserves populated fields", func(t *testing.T) {
		store := NewMessageStore()

		msg := Message{ID: "m1", AuthorID: "a1", Kind: ImageMessage, AttachmentRef: "data:image/png;base64,xxx", AttachmentName: "cat.png"}
		stored := store.Append("channel:c1", msg)
		assert.Equal(t, "m1", stored.ID)
		assert.Equal(t, ImageMessage, stored.Kind)
		assert.Equal(t, "cat.png", stored.AttachmentName)
	})

	t.Run("channel scenario keeps order", func(t *testing.T) {
		store := NewMessageStore()
		key := ChannelKey("c1")

		store.Append(key, Message{AuthorID: "a1", Body: "hi"})
		store.Append(key, Message{AuthorID: "a2", Body: "there"})

		messages := store.ListFor(key)
		require.Len(t, messages, 2)
		assert.Equal(t, "hi", messages[0].Body)
		assert.Equal(t, "there", messages[1].Body)
	})
}

func TestMessageStoreListFor(t *testing.T) {
	t.Run("unused key yields empty list, not an error", func(t *testing.T) {
		store := NewMessageStore()
		assert.Empty(t, store.ListFor("dm:a:b"))
	})

	t.Run("append-only ordering with no gaps or duplicates", func(t *testing.T) {
		store := NewMessageStore()
		key := "dm:a:b"

		for i := range 100 {
			store.Append(key, Message{AuthorID: "a", Body: fmt.Sprintf("msg-%d", i)})
		}

		messages := store.ListFor(key)
		require.Len(t, messages, 100)
		seen := make(map[string]bool)
		for i, msg := range messages {
			assert.Equal(t, fmt.Sprintf("msg-%d", i), msg.Body)
			require.False(t, seen[msg.ID], "duplicate message id %s", msg.ID)
			seen[msg.ID] = true
		}
	})

	t.Run("keys are isolated", func(t *testing.T) {
		store := NewMessageStore()

		store.Append("dm:a:b", Message{Body: "private"})
		store.Append("channel:c1", Message{Body: "public"})

		require.Len(t, store.ListFor("dm:a:b"), 1)
		require.Len(t, store.ListFor("channel:c1"), 1)
		assert.Equal(t, "private", store.ListFor("dm:a:b")[0].Body)
	})
}
