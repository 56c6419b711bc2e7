package chat

// Conversation key prefixes. They are distinct and non-overlapping, so a DM
// key can never collide with a channel key.
const (
	dmKeyPrefix      = "dm:"
	channelKeyPrefix = "channel:"
	keySeparator     = ":"
)

// DMKey computes the canonical storage key for a direct-message conversation
// between two accounts. The key is a pure function of the unordered pair:
// DMKey(a, b) == DMKey(b, a), byte for byte, so both participants resolve to
// the same store slot no matter who asks.
func DMKey(idA, idB string) (string, error) {
	if idA == idB {
		return "", ErrSelfConversation
	}
	lo, hi := idA, idB
	if lo > hi {
		lo, hi = hi, lo
	}
	return dmKeyPrefix + lo + keySeparator + hi, nil
}

// ChannelKey computes the canonical storage key for a server channel.
func ChannelKey(channelID string) string {
	return channelKeyPrefix + channelID
}
