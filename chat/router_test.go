package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMKey(t *testing.T) {
	t.Run("canonical form", func(t *testing.T) {
		key, err := DMKey("u1", "u2")
		require.NoError(t, err)
		assert.Equal(t, "dm:u1:u2", key)
	})

	t.Run("commutative", func(t *testing.T) {
		forward, err := DMKey("u1", "u2")
		require.NoError(t, err)
		backward, err := DMKey("u2", "u1")
		require.NoError(t, err)
		assert.Equal(t, forward, backward)

		// Not just the toy case: arbitrary id pairs
		for i := range 20 {
			a := fmt.Sprintf("id-%02d", i)
			b := fmt.Sprintf("id-%02d", 19-i)
			if a == b {
				continue
			}
			ab, err := DMKey(a, b)
			require.NoError(t, err)
			ba, err := DMKey(b, a)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		}
	})

	t.Run("self conversation", func(t *testing.T) {
		_, err := DMKey("u1", "u1")
		require.ErrorIs(t, err, ErrSelfConversation)
	})
}

func TestChannelKey(t *testing.T) {
	assert.Equal(t, "channel:c1", ChannelKey("c1"))
}

func TestKeyNamespacesDisjoint(t *testing.T) {
	// A channel id crafted to look like a DM pair must still land in the
	// channel namespace.
	dm, err := DMKey("a", "b")
	require.NoError(t, err)
	assert.NotEqual(t, dm, ChannelKey("a:b"))
	assert.NotEqual(t, dm, ChannelKey(dm))

	ids := []string{"u1", "u2", "c1", "dm:u1:u2", "x"}
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			key, err := DMKey(a, b)
			require.NoError(t, err)
			for _, ch := range ids {
				assert.NotEqual(t, key, ChannelKey(ch))
			}
		}
	}
}
