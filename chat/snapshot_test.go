package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load before any save is a valid empty state", func(t *testing.T) {
		store := NewMemoryStore()

		snapshot, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Accounts)
		assert.Empty(t, snapshot.Requests)
		assert.Empty(t, snapshot.MessagesByKey)
		assert.Empty(t, snapshot.Servers)
	})

	t.Run("round trip", func(t *testing.T) {
		store := NewMemoryStore()

		saved := EmptySnapshot()
		saved.Accounts = append(saved.Accounts, &Account{ID: "a1", Username: "alice", Discriminator: "4821"})
		saved.MessagesByKey["dm:a1:b1"] = []Message{{ID: "m1", Body: "hi"}}
		require.NoError(t, store.Save(ctx, saved))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded.Accounts, 1)
		assert.Equal(t, "alice", loaded.Accounts[0].Username)
		assert.Equal(t, "hi", loaded.MessagesByKey["dm:a1:b1"][0].Body)
	})
}

func TestRepairSymmetry(t *testing.T) {
	alice := &Account{ID: "a", Username: "alice", FriendIDs: []string{"b"}}
	bob := &Account{ID: "b", Username: "bob", FriendIDs: []string{}}
	carol := &Account{ID: "c", Username: "carol", FriendIDs: []string{"ghost"}}

	repairSymmetry([]*Account{alice, bob, carol})

	assert.True(t, bob.HasFriend("a"), "missing direction must be restored")
	assert.True(t, alice.HasFriend("b"))
	// Edges to unknown accounts are left alone rather than invented
	assert.Equal(t, []string{"ghost"}, carol.FriendIDs)
}

func TestCoreRestoresSymmetryOnLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	corrupted := EmptySnapshot()
	corrupted.Accounts = []*Account{
		{ID: "a", Username: "alice", Discriminator: "0001", FriendIDs: []string{"b"}},
		{ID: "b", Username: "bob", Discriminator: "0002", FriendIDs: []string{}},
	}
	require.NoError(t, store.Save(ctx, corrupted))

	core, err := NewCore(store, Options{}, testLogger())
	require.NoError(t, err)

	alice := core.Find("a")
	bob := core.Find("b")
	require.NotNil(t, alice)
	require.NotNil(t, bob)
	assert.True(t, alice.HasFriend("b"))
	assert.True(t, bob.HasFriend("a"))
}
