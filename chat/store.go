package chat

import (
	"time"

	"github.com/google/uuid"
)

// MessageStore keeps an append-only message log per conversation key.
type MessageStore struct {
	byKey map[string][]Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{byKey: make(map[string][]Message)}
}

// Append stores a message at the end of the log for the given key, creating
// the log on first use. ID and CreatedAt are assigned when absent; an
// already-populated message is stored unchanged.
func (store *MessageStore) Append(key string, msg Message) Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if msg.Kind == "" {
		msg.Kind = TextMessage
	}
	msg.ConversationKey = key
	store.byKey[key] = append(store.byKey[key], msg)
	return msg
}

// ListFor returns the messages for the key in append order. A key that has
// never been used yields an empty list, never an error.
func (store *MessageStore) ListFor(key string) []Message {
	return store.byKey[key]
}

// ByKey returns the full log map, keyed by conversation key.
func (store *MessageStore) ByKey() map[string][]Message {
	return store.byKey
}

func (store *MessageStore) restore(byKey map[string][]Message) {
	if byKey == nil {
		byKey = make(map[string][]Message)
	}
	store.byKey = byKey
}
