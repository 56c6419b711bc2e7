package chat

import "context"

// Snapshot is the whole serialized state. Persistence is whole-snapshot on
// every write, so a store only ever observes complete states.
type Snapshot struct {
	Accounts      []*Account           `json:"accounts"`
	Requests      []*FriendRequest     `json:"requests"`
	MessagesByKey map[string][]Message `json:"messages_by_key"`
	Servers       []*Server            `json:"servers"`
}

// EmptySnapshot is the valid state of a store that has never been written.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Accounts:      []*Account{},
		Requests:      []*FriendRequest{},
		MessagesByKey: make(map[string][]Message),
		Servers:       []*Server{},
	}
}

// clone deep-copies the snapshot. The result shares no slices, maps or
// account pointers with the source, so it can be read or serialized while
// the live state keeps mutating.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Accounts:      make([]*Account, len(s.Accounts)),
		Requests:      make([]*FriendRequest, len(s.Requests)),
		MessagesByKey: make(map[string][]Message, len(s.MessagesByKey)),
		Servers:       make([]*Server, len(s.Servers)),
	}
	for i, account := range s.Accounts {
		copied := *account
		copied.FriendIDs = append([]string(nil), account.FriendIDs...)
		copied.ServerIDs = append([]string(nil), account.ServerIDs...)
		out.Accounts[i] = &copied
	}
	for i, request := range s.Requests {
		copied := *request
		out.Requests[i] = &copied
	}
	for key, messages := range s.MessagesByKey {
		out.MessagesByKey[key] = append([]Message(nil), messages...)
	}
	for i, server := range s.Servers {
		copied := *server
		copied.MemberIDs = append([]string(nil), server.MemberIDs...)
		copied.Channels = append([]Channel(nil), server.Channels...)
		out.Servers[i] = &copied
	}
	return out
}

// SnapshotStore is the persistence collaborator. Load must return an empty
// snapshot, not an error, when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// MemoryStore keeps the snapshot in memory. Used in tests and for ephemeral
// runs with no persistence backend configured.
type MemoryStore struct {
	snapshot Snapshot
	saved    bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (store *MemoryStore) Load(ctx context.Context) (Snapshot, error) {
	if !store.saved {
		return EmptySnapshot(), nil
	}
	return store.snapshot, nil
}

func (store *MemoryStore) Save(ctx context.Context, snapshot Snapshot) error {
	store.snapshot = snapshot
	store.saved = true
	return nil
}

// repairSymmetry restores the friend-graph invariant on loaded data: if A
// lists B, B must list A. Stored data may carry a half-inserted edge, so
// loads union both directions.
func repairSymmetry(accounts []*Account) {
	byID := make(map[string]*Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}
	for _, account := range accounts {
		for _, friendID := range account.FriendIDs {
			if friend, ok := byID[friendID]; ok {
				friend.addFriend(account.ID)
			}
		}
	}
}
