package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubAccessors(t *testing.T) {
	hub := NewHub()

	_, ok := hub.Get("a1")
	require.False(t, ok)
	require.Empty(t, hub.All())

	first := NewClient("a1", nil)
	second := NewClient("a2", nil)
	hub.Subscribe(first)
	hub.Subscribe(second)

	got, ok := hub.Get("a1")
	require.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = hub.Get("ghost")
	assert.False(t, ok)

	all := hub.All()
	require.Len(t, all, 2)
	ids := map[string]bool{}
	for _, client := range all {
		ids[client.AccountID] = true
	}
	assert.True(t, ids["a1"] && ids["a2"])
}
