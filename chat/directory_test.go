package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRegister(t *testing.T) {
	t.Run("auto-assigned discriminator", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		account, err := dir.Register("alice", "", "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Len(t, account.Discriminator, 4)
		assert.Equal(t, Online, account.Status)
		assert.Empty(t, account.FriendIDs)
	})

	t.Run("explicit discriminator", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		account, err := dir.Register("bob", "1193", "secret-pass")
		require.NoError(t, err)
		assert.Equal(t, "bob#1193", account.Tag())
	})

	t.Run("malformed explicit discriminator", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		for _, disc := range []string{"abcd", "12345", "123", "12a4", " 1234"} {
			_, err := dir.Register("bob", disc, "secret-pass")
			assert.ErrorIs(t, err, ErrBadDiscriminator, "discriminator %q", disc)
		}
	})

	t.Run("duplicate identity", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		_, err := dir.Register("alice", "4821", "hunter22")
		require.NoError(t, err)

		_, err = dir.Register("alice", "4821", "different")
		require.ErrorIs(t, err, ErrDuplicateIdentity)

		// Same username, different case: still the same identity
		_, err = dir.Register("ALICE", "4821", "different")
		require.ErrorIs(t, err, ErrDuplicateIdentity)

		// Same username, different discriminator is fine
		_, err = dir.Register("alice", "4822", "different")
		require.NoError(t, err)
	})

	t.Run("invalid username", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		for _, name := range []string{"", "has space", "emoji😀", "semi;colon", "dash-ed"} {
			_, err := dir.Register(name, "", "hunter22")
			assert.ErrorIs(t, err, ErrInvalidUsername, "username %q", name)
		}

		_, err := dir.Register("Under_score9", "", "hunter22")
		assert.NoError(t, err)
	})

	t.Run("weak secret", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		_, err := dir.Register("alice", "", "short")
		require.ErrorIs(t, err, ErrWeakSecret)
	})

	t.Run("generated discriminators stay unique per username", func(t *testing.T) {
		dir := NewDirectory(6, nil)

		seen := make(map[string]bool)
		for range 50 {
			account, err := dir.Register("clone", "", "hunter22")
			require.NoError(t, err)
			require.False(t, seen[account.Discriminator], "discriminator %s assigned twice", account.Discriminator)
			seen[account.Discriminator] = true
		}
	})
}

func TestDirectoryAuthenticate(t *testing.T) {
	dir := NewDirectory(6, nil)
	registered, err := dir.Register("alice", "4821", "hunter22")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		account, err := dir.Authenticate("alice", "4821", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
	})

	t.Run("case-insensitive username", func(t *testing.T) {
		account, err := dir.Authenticate("Alice", "4821", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := dir.Authenticate("alice", "4821", "wrongpass")
		require.ErrorIs(t, err, ErrWrongSecret)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := dir.Authenticate("nouser", "0000", "x")
		require.ErrorIs(t, err, ErrNotFound)

		// Right username, wrong discriminator is NotFound, not WrongSecret
		_, err = dir.Authenticate("alice", "0000", "hunter22")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDirectoryFind(t *testing.T) {
	dir := NewDirectory(6, nil)
	account, err := dir.Register("alice", "", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, account, dir.Find(account.ID))
	assert.Nil(t, dir.Find("no-such-id"))
}

func TestDirectoryUniquenessInvariant(t *testing.T) {
	dir := NewDirectory(6, nil)

	names := []string{"alice", "Alice", "bob", "alice", "BOB", "carol"}
	for _, name := range names {
		_, err := dir.Register(name, "", "hunter22")
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, account := range dir.All() {
		key := strings.ToLower(account.Username) + "#" + account.Discriminator
		require.False(t, seen[key], "identity %s registered twice", key)
		seen[key] = true
	}
}
