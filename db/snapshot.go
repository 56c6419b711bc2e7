package db

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/paperchat/paperchat/chat"
	"gorm.io/gorm"
)

// SnapshotStore persists the whole chat snapshot in Postgres. Save replaces
// all rows inside one transaction, which is what makes the save atomic from
// the core's point of view.
type SnapshotStore struct {
	queries *Queries
}

func NewSnapshotStore(queries *Queries) *SnapshotStore {
	return &SnapshotStore{queries: queries}
}

func (store *SnapshotStore) Load(ctx context.Context) (chat.Snapshot, error) {
	snapshot := chat.EmptySnapshot()
	db := store.queries.DB.WithContext(ctx)

	var accountRows []AccountRow
	if err := db.Order("position").Find(&accountRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range accountRows {
		var account chat.Account
		if err := json.Unmarshal(row.Data, &account); err != nil {
			return snapshot, err
		}
		snapshot.Accounts = append(snapshot.Accounts, &account)
	}

	var requestRows []RequestRow
	if err := db.Order("position").Find(&requestRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range requestRows {
		var request chat.FriendRequest
		if err := json.Unmarshal(row.Data, &request); err != nil {
			return snapshot, err
		}
		snapshot.Requests = append(snapshot.Requests, &request)
	}

	var messageRows []MessageRow
	if err := db.Order("key, position").Find(&messageRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range messageRows {
		var message chat.Message
		if err := json.Unmarshal(row.Data, &message); err != nil {
			return snapshot, err
		}
		snapshot.MessagesByKey[row.Key] = append(snapshot.MessagesByKey[row.Key], message)
	}

	var serverRows []ServerRow
	if err := db.Order("position").Find(&serverRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range serverRows {
		var server chat.Server
		if err := json.Unmarshal(row.Data, &server); err != nil {
			return snapshot, err
		}
		snapshot.Servers = append(snapshot.Servers, &server)
	}

	return snapshot, nil
}

func (store *SnapshotStore) Save(ctx context.Context, snapshot chat.Snapshot) error {
	return store.queries.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&AccountRow{}, &RequestRow{}, &MessageRow{}, &ServerRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		for i, account := range snapshot.Accounts {
			data, err := json.Marshal(account)
			if err != nil {
				return err
			}
			if err := tx.Create(&AccountRow{ID: account.ID, Position: i, Data: data}).Error; err != nil {
				return err
			}
		}

		for i, request := range snapshot.Requests {
			data, err := json.Marshal(request)
			if err != nil {
				return err
			}
			if err := tx.Create(&RequestRow{ID: request.ID, Position: i, Data: data}).Error; err != nil {
				return err
			}
		}

		// Stable key order keeps the insert deterministic
		keys := make([]string, 0, len(snapshot.MessagesByKey))
		for key := range snapshot.MessagesByKey {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for i, message := range snapshot.MessagesByKey[key] {
				data, err := json.Marshal(message)
				if err != nil {
					return err
				}
				row := MessageRow{ID: message.ID, Key: key, Position: i, Data: data}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		for i, server := range snapshot.Servers {
			data, err := json.Marshal(server)
			if err != nil {
				return err
			}
			if err := tx.Create(&ServerRow{ID: server.ID, Position: i, Data: data}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
