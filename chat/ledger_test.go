package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *Account, *Account) {
	t.Helper()
	dir := NewDirectory(6, nil)
	alice, err := dir.Register("alice", "", "hunter22")
	require.NoError(t, err)
	bob, err := dir.Register("bob", "", "hunter22")
	require.NoError(t, err)
	return NewLedger(dir), alice, bob
}

func TestLedgerRequestFriend(t *testing.T) {
	t.Run("request then accept", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		request, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, request.FromID)
		assert.Equal(t, bob.ID, request.ToID)

		// The graph is untouched until acceptance
		assert.Empty(t, alice.FriendIDs)
		assert.Empty(t, bob.FriendIDs)

		pending := ledger.PendingFor(bob.ID)
		require.Len(t, pending, 1)
		assert.Equal(t, request.ID, pending[0].ID)

		require.NoError(t, ledger.Accept(request.ID))
		assert.True(t, alice.HasFriend(bob.ID))
		assert.True(t, bob.HasFriend(alice.ID))
		assert.Empty(t, ledger.PendingFor(bob.ID))
	})

	t.Run("self request", func(t *testing.T) {
		ledger, alice, _ := newTestLedger(t)

		_, err := ledger.RequestFriend(alice.ID, alice.ID)
		require.ErrorIs(t, err, ErrSelfRequest)
		assert.Empty(t, ledger.All())
	})

	t.Run("unknown accounts", func(t *testing.T) {
		ledger, alice, _ := newTestLedger(t)

		_, err := ledger.RequestFriend(alice.ID, "ghost")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = ledger.RequestFriend("ghost", alice.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate pending request", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		_, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)

		_, err = ledger.RequestFriend(alice.ID, bob.ID)
		require.ErrorIs(t, err, ErrDuplicateRequest)

		// The reverse direction is a different ordered pair
		_, err = ledger.RequestFriend(bob.ID, alice.ID)
		require.NoError(t, err)
	})

	t.Run("already friends", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		request, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, ledger.Accept(request.ID))

		_, err = ledger.RequestFriend(alice.ID, bob.ID)
		require.ErrorIs(t, err, ErrAlreadyFriends)
	})
}

func TestLedgerAcceptReject(t *testing.T) {
	t.Run("accept is consumed exactly once", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		request, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, ledger.Accept(request.ID))
		require.ErrorIs(t, ledger.Accept(request.ID), ErrRequestNotFound)
		require.ErrorIs(t, ledger.Reject(request.ID), ErrRequestNotFound)
	})

	t.Run("reject is consumed exactly once", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		request, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, ledger.Reject(request.ID))
		require.ErrorIs(t, ledger.Reject(request.ID), ErrRequestNotFound)

		// Reject never touches the graph
		assert.Empty(t, alice.FriendIDs)
		assert.Empty(t, bob.FriendIDs)
	})

	t.Run("unknown request", func(t *testing.T) {
		ledger, _, _ := newTestLedger(t)

		require.ErrorIs(t, ledger.Accept("no-such-request"), ErrRequestNotFound)
		require.ErrorIs(t, ledger.Reject("no-such-request"), ErrRequestNotFound)
	})

	t.Run("accept recovers from a half-present edge", func(t *testing.T) {
		ledger, alice, bob := newTestLedger(t)

		request, err := ledger.RequestFriend(alice.ID, bob.ID)
		require.NoError(t, err)

		// Simulate corrupted prior state: one side already has the edge
		alice.FriendIDs = append(alice.FriendIDs, bob.ID)

		require.NoError(t, ledger.Accept(request.ID))
		assert.Equal(t, []string{bob.ID}, alice.FriendIDs)
		assert.Equal(t, []string{alice.ID}, bob.FriendIDs)
	})
}

func TestLedgerPendingFor(t *testing.T) {
	dir := NewDirectory(6, nil)
	ledger := NewLedger(dir)

	target, err := dir.Register("target", "", "hunter22")
	require.NoError(t, err)

	var wantIDs []string
	for _, name := range []string{"first", "second", "third"} {
		sender, err := dir.Register(name, "", "hunter22")
		require.NoError(t, err)
		request, err := ledger.RequestFriend(sender.ID, target.ID)
		require.NoError(t, err)
		wantIDs = append(wantIDs, request.ID)
	}

	pending := ledger.PendingFor(target.ID)
	require.Len(t, pending, 3)
	for i, req := range pending {
		assert.Equal(t, wantIDs[i], req.ID, "insertion order must be preserved")
	}
}

func TestFriendGraphSymmetry(t *testing.T) {
	dir := NewDirectory(6, nil)
	ledger := NewLedger(dir)

	var accounts []*Account
	for _, name := range []string{"a", "b", "c", "d"} {
		account, err := dir.Register(name, "", "hunter22")
		require.NoError(t, err)
		accounts = append(accounts, account)
	}

	// Mesh of accepted requests
	for i, from := range accounts {
		for _, to := range accounts[i+1:] {
			request, err := ledger.RequestFriend(from.ID, to.ID)
			require.NoError(t, err)
			require.NoError(t, ledger.Accept(request.ID))

			for _, x := range accounts {
				for _, y := range accounts {
					assert.Equal(t, x.HasFriend(y.ID), y.HasFriend(x.ID),
						"symmetry violated between %s and %s", x.Username, y.Username)
				}
			}
		}
	}
}
