package chat

import "time"

type Status string

type MessageKind string

type ChannelKind string

const (
	Online  Status = "online"
	Idle    Status = "idle"
	DND     Status = "dnd"
	Offline Status = "offline"

	TextMessage  MessageKind = "text"
	ImageMessage MessageKind = "image"
	FileMessage  MessageKind = "file"

	TextChannel  ChannelKind = "text"
	VoiceChannel ChannelKind = "voice"
)

// validMessageKind accepts the three known kinds plus the empty string,
// which Append later normalizes to text.
func validMessageKind(kind MessageKind) bool {
	switch kind {
	case "", TextMessage, ImageMessage, FileMessage:
		return true
	}
	return false
}

// Account is a registered identity. ID is assigned at creation and immutable.
// The (lowercased username, discriminator) pair is unique across the directory.
type Account struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Email         string    `json:"email,omitempty"`
	Secret        string    `json:"secret"`
	Status        Status    `json:"status"`
	CustomStatus  string    `json:"custom_status"`
	Avatar        string    `json:"avatar"`
	Banner        string    `json:"banner"`
	CustomBanner  string    `json:"custom_banner,omitempty"`
	FriendIDs     []string  `json:"friend_ids"`
	ServerIDs     []string  `json:"server_ids"`
	Pro           bool      `json:"pro"`
	ProExpiry     string    `json:"pro_expiry,omitempty"`
	DonationCode  string    `json:"donation_code,omitempty"`
	DonationDate  time.Time `json:"donation_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Tag is the full user-facing handle, e.g. "alice#4821".
func (a *Account) Tag() string {
	return a.Username + "#" + a.Discriminator
}

// HasFriend reports whether id is in the account's friend set.
func (a *Account) HasFriend(id string) bool {
	for _, f := range a.FriendIDs {
		if f == id {
			return true
		}
	}
	return false
}

// addFriend inserts id into the friend set. Inserting an id that is already
// present is a no-op, not an error.
func (a *Account) addFriend(id string) {
	if !a.HasFriend(id) {
		a.FriendIDs = append(a.FriendIDs, id)
	}
}

// FriendRequest is a pending, directed request. It is consumed exactly once,
// by Accept or Reject.
type FriendRequest struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is immutable once stored; ordering within a conversation is append
// order, which equals chronological order since CreatedAt is assigned
// monotonically in-process.
type Message struct {
	ID              string      `json:"id"`
	AuthorID        string      `json:"author_id"`
	ConversationKey string      `json:"conversation_key"`
	Kind            MessageKind `json:"kind"`
	Body            string      `json:"body"`
	AttachmentRef   string      `json:"attachment_ref,omitempty"`
	AttachmentName  string      `json:"attachment_name,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type Channel struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Kind ChannelKind `json:"kind"`
}

type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	OwnerID   string    `json:"owner_id"`
	MemberIDs []string  `json:"member_ids"`
	Channels  []Channel `json:"channels"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) hasMember(id string) bool {
	for _, m := range s.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}
