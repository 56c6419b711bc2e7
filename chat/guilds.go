package chat

import (
	"time"

	"github.com/google/uuid"
)

// Guilds owns the servers and their channels. Channel IDs feed ChannelKey,
// which keeps channel conversations in their own key namespace.
type Guilds struct {
	dir     *Directory
	servers []*Server
}

func NewGuilds(dir *Directory) *Guilds {
	return &Guilds{dir: dir}
}

// CreateServer creates a server owned by ownerID, with the default general
// text channel and General voice channel, and joins the owner.
func (guilds *Guilds) CreateServer(ownerID, name, icon string) (*Server, error) {
	if name == "" {
		return nil, ErrInvalidServerName
	}
	owner := guilds.dir.Find(ownerID)
	if owner == nil {
		return nil, ErrNotFound
	}
	if icon == "" {
		icon = "🎮"
	}

	server := &Server{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      icon,
		OwnerID:   ownerID,
		MemberIDs: []string{ownerID},
		Channels: []Channel{
			{ID: uuid.NewString(), Name: "general", Kind: TextChannel},
			{ID: uuid.NewString(), Name: "General", Kind: VoiceChannel},
		},
		CreatedAt: time.Now(),
	}
	guilds.servers = append(guilds.servers, server)
	owner.ServerIDs = append(owner.ServerIDs, server.ID)
	return server, nil
}

// CreateChannel adds a channel to an existing server.
func (guilds *Guilds) CreateChannel(serverID, name string, kind ChannelKind) (*Channel, error) {
	if name == "" || (kind != TextChannel && kind != VoiceChannel) {
		return nil, ErrInvalidChannel
	}
	server := guilds.FindServer(serverID)
	if server == nil {
		return nil, ErrNotFound
	}

	channel := Channel{ID: uuid.NewString(), Name: name, Kind: kind}
	server.Channels = append(server.Channels, channel)
	return &channel, nil
}

// Join adds the account to the server's member list. Joining twice is a
// no-op.
func (guilds *Guilds) Join(serverID, accountID string) error {
	server := guilds.FindServer(serverID)
	account := guilds.dir.Find(accountID)
	if server == nil || account == nil {
		return ErrNotFound
	}
	if !server.hasMember(accountID) {
		server.MemberIDs = append(server.MemberIDs, accountID)
		account.ServerIDs = append(account.ServerIDs, serverID)
	}
	return nil
}

// FindServer returns the server with the given ID, or nil.
func (guilds *Guilds) FindServer(serverID string) *Server {
	for _, server := range guilds.servers {
		if server.ID == serverID {
			return server
		}
	}
	return nil
}

// FindChannel returns the channel and its server, or nils.
func (guilds *Guilds) FindChannel(channelID string) (*Server, *Channel) {
	for _, server := range guilds.servers {
		for i := range server.Channels {
			if server.Channels[i].ID == channelID {
				return server, &server.Channels[i]
			}
		}
	}
	return nil, nil
}

// ServersFor returns the servers the account is a member of.
func (guilds *Guilds) ServersFor(accountID string) []*Server {
	var result []*Server
	for _, server := range guilds.servers {
		if server.hasMember(accountID) {
			result = append(result, server)
		}
	}
	return result
}

// All returns every server, in creation order.
func (guilds *Guilds) All() []*Server {
	return guilds.servers
}

func (guilds *Guilds) restore(servers []*Server) {
	guilds.servers = servers
}
