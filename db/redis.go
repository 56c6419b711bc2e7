package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/paperchat/paperchat/chat"
	"github.com/redis/go-redis/v9"
)

// Key-value layout mirrors the storage keys the product has always used.
const (
	usersKey    = "paperchat_users"
	messagesKey = "paperchat_messages"
	serversKey  = "paperchat_servers"
	requestsKey = "paperchat_friend_requests"
)

// RedisSnapshotStore persists the snapshot as four JSON blobs in Redis, one
// per collection.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(addr string) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (store *RedisSnapshotStore) Load(ctx context.Context) (chat.Snapshot, error) {
	snapshot := chat.EmptySnapshot()

	if err := loadKey(ctx, store.client, usersKey, &snapshot.Accounts); err != nil {
		return snapshot, err
	}
	if err := loadKey(ctx, store.client, requestsKey, &snapshot.Requests); err != nil {
		return snapshot, err
	}
	if err := loadKey(ctx, store.client, messagesKey, &snapshot.MessagesByKey); err != nil {
		return snapshot, err
	}
	if err := loadKey(ctx, store.client, serversKey, &snapshot.Servers); err != nil {
		return snapshot, err
	}
	if snapshot.MessagesByKey == nil {
		snapshot.MessagesByKey = make(map[string][]chat.Message)
	}
	return snapshot, nil
}

func (store *RedisSnapshotStore) Save(ctx context.Context, snapshot chat.Snapshot) error {
	users, err := json.Marshal(snapshot.Accounts)
	if err != nil {
		return err
	}
	requests, err := json.Marshal(snapshot.Requests)
	if err != nil {
		return err
	}
	messages, err := json.Marshal(snapshot.MessagesByKey)
	if err != nil {
		return err
	}
	servers, err := json.Marshal(snapshot.Servers)
	if err != nil {
		return err
	}

	// MSET is atomic, so readers never see a half-written snapshot
	return store.client.MSet(ctx,
		usersKey, users,
		requestsKey, requests,
		messagesKey, messages,
		serversKey, servers,
	).Err()
}

// loadKey reads one collection. A missing key is a valid empty state, never
// an error.
func loadKey(ctx context.Context, client *redis.Client, key string, dest any) error {
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
