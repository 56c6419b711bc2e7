package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// sanitizeUsername coerces an external display name into the allowed
// username alphabet.
func sanitizeUsername(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// Options configure a Core.
type Options struct {
	MinSecretLen int
	Entitlement  Entitlement
	Scheme       SecretScheme
}

// Core aggregates the directory, ledger, router, message store and guilds
// behind one mutex. The components themselves are single-actor; the mutex is
// the mutual-exclusion boundary that makes them safe to drive from a
// concurrent HTTP mux. Every successful mutation is followed by a
// whole-snapshot save; save failures are logged, never surfaced to callers.
type Core struct {
	mu sync.Mutex

	directory *Directory
	ledger    *Ledger
	messages  *MessageStore
	guilds    *Guilds

	entitlement Entitlement
	store       SnapshotStore
	logger      *slog.Logger
}

func NewCore(store SnapshotStore, opts Options, logger *slog.Logger) (*Core, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	if opts.Entitlement == "" {
		opts.Entitlement = EntitlementNone
	}

	directory := NewDirectory(opts.MinSecretLen, opts.Scheme)
	core := &Core{
		directory:   directory,
		ledger:      NewLedger(directory),
		messages:    NewMessageStore(),
		guilds:      NewGuilds(directory),
		entitlement: opts.Entitlement,
		store:       store,
		logger:      logger,
	}

	snapshot, err := store.Load(context.Background())
	if err != nil {
		return nil, Wrap(CodeInternal, "failed to load snapshot", err)
	}
	core.restore(snapshot)
	return core, nil
}

func (core *Core) restore(snapshot Snapshot) {
	repairSymmetry(snapshot.Accounts)
	core.directory.restore(snapshot.Accounts)
	core.ledger.restore(snapshot.Requests)
	core.messages.restore(snapshot.MessagesByKey)
	core.guilds.restore(snapshot.Servers)
}

func (core *Core) snapshot() Snapshot {
	return Snapshot{
		Accounts:      core.directory.All(),
		Requests:      core.ledger.All(),
		MessagesByKey: core.messages.ByKey(),
		Servers:       core.guilds.All(),
	}
}

// save persists the current state. Persistence is fire-and-forget from the
// core's point of view: the mutation already happened.
func (core *Core) save(ctx context.Context) {
	if err := core.store.Save(ctx, core.snapshot()); err != nil {
		core.logger.Error("failed to save snapshot", "error", err)
	}
}

// Register creates an account. See Directory.Register.
func (core *Core) Register(ctx context.Context, username, discriminator, secret string) (*Account, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	account, err := core.directory.Register(username, discriminator, secret)
	if err != nil {
		return nil, err
	}
	core.save(ctx)
	return account, nil
}

// Authenticate checks credentials, marks the account online and applies the
// configured entitlement policy for the new session.
func (core *Core) Authenticate(ctx context.Context, username, discriminator, secret string) (*Account, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	account, err := core.directory.Authenticate(username, discriminator, secret)
	if err != nil {
		return nil, err
	}
	account.Status = Online
	applyEntitlement(account, core.entitlement)
	core.save(ctx)
	return account, nil
}

// Find returns the account with the given ID, or nil.
func (core *Core) Find(id string) *Account {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.directory.Find(id)
}

// FindOrCreateOAuth resolves an OAuth identity to an account, registering
// one on first login. The generated secret is unusable for password login;
// OAuth accounts authenticate through their provider.
func (core *Core) FindOrCreateOAuth(ctx context.Context, username, email string) (*Account, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	if account := core.directory.FindByEmail(email); account != nil {
		account.Status = Online
		applyEntitlement(account, core.entitlement)
		core.save(ctx)
		return account, nil
	}

	account, err := core.directory.Register(sanitizeUsername(username), "", uuid.NewString())
	if err != nil {
		return nil, err
	}
	account.Email = email
	applyEntitlement(account, core.entitlement)
	core.save(ctx)
	return account, nil
}

// SetStatus updates the presence status of an account.
func (core *Core) SetStatus(ctx context.Context, accountID string, status Status, customStatus string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	account := core.directory.Find(accountID)
	if account == nil {
		return ErrNotFound
	}
	account.Status = status
	account.CustomStatus = customStatus
	core.save(ctx)
	return nil
}

// UpdateProfile replaces the cosmetic profile fields of an account. Empty
// arguments leave the current value in place.
func (core *Core) UpdateProfile(ctx context.Context, accountID, avatar, banner, customBanner string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	account := core.directory.Find(accountID)
	if account == nil {
		return ErrNotFound
	}
	if avatar != "" {
		account.Avatar = avatar
	}
	if banner != "" {
		account.Banner = banner
	}
	if customBanner != "" {
		account.CustomBanner = customBanner
	}
	core.save(ctx)
	return nil
}

// RequestFriend appends a pending friend request. See Ledger.RequestFriend.
func (core *Core) RequestFriend(ctx context.Context, fromID, toID string) (*FriendRequest, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	request, err := core.ledger.RequestFriend(fromID, toID)
	if err != nil {
		return nil, err
	}
	core.save(ctx)
	return request, nil
}

// AcceptFriend consumes the request and creates the symmetric friend edge.
func (core *Core) AcceptFriend(ctx context.Context, requestID string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	if err := core.ledger.Accept(requestID); err != nil {
		return err
	}
	core.save(ctx)
	return nil
}

// RejectFriend consumes the request without creating an edge.
func (core *Core) RejectFriend(ctx context.Context, requestID string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	if err := core.ledger.Reject(requestID); err != nil {
		return err
	}
	core.save(ctx)
	return nil
}

// PendingFor lists the requests addressed to the account.
func (core *Core) PendingFor(userID string) []*FriendRequest {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.ledger.PendingFor(userID)
}

// SendDM appends a message to the DM conversation between author and peer.
func (core *Core) SendDM(ctx context.Context, authorID, peerID string, msg Message) (Message, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	key, err := DMKey(authorID, peerID)
	if err != nil {
		return Message{}, err
	}
	if !validMessageKind(msg.Kind) {
		return Message{}, ErrInvalidKind
	}
	if core.directory.Find(authorID) == nil || core.directory.Find(peerID) == nil {
		return Message{}, ErrNotFound
	}
	msg.AuthorID = authorID
	stored := core.messages.Append(key, msg)
	core.save(ctx)
	return stored, nil
}

// SendToChannel appends a message to a server channel conversation.
func (core *Core) SendToChannel(ctx context.Context, authorID, channelID string, msg Message) (Message, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	if !validMessageKind(msg.Kind) {
		return Message{}, ErrInvalidKind
	}
	if core.directory.Find(authorID) == nil {
		return Message{}, ErrNotFound
	}
	if _, channel := core.guilds.FindChannel(channelID); channel == nil {
		return Message{}, ErrNotFound
	}
	msg.AuthorID = authorID
	stored := core.messages.Append(ChannelKey(channelID), msg)
	core.save(ctx)
	return stored, nil
}

// ListDM returns the DM conversation between two accounts, oldest first.
func (core *Core) ListDM(idA, idB string) ([]Message, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	key, err := DMKey(idA, idB)
	if err != nil {
		return nil, err
	}
	return core.messages.ListFor(key), nil
}

// ListChannel returns a channel's messages, oldest first.
func (core *Core) ListChannel(channelID string) []Message {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.messages.ListFor(ChannelKey(channelID))
}

// CreateServer creates a server owned by ownerID. See Guilds.CreateServer.
func (core *Core) CreateServer(ctx context.Context, ownerID, name, icon string) (*Server, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	server, err := core.guilds.CreateServer(ownerID, name, icon)
	if err != nil {
		return nil, err
	}
	core.save(ctx)
	return server, nil
}

// CreateChannel adds a channel to a server.
func (core *Core) CreateChannel(ctx context.Context, serverID, name string, kind ChannelKind) (*Channel, error) {
	core.mu.Lock()
	defer core.mu.Unlock()

	channel, err := core.guilds.CreateChannel(serverID, name, kind)
	if err != nil {
		return nil, err
	}
	core.save(ctx)
	return channel, nil
}

// JoinServer adds the account to the server's member list.
func (core *Core) JoinServer(ctx context.Context, serverID, accountID string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	if err := core.guilds.Join(serverID, accountID); err != nil {
		return err
	}
	core.save(ctx)
	return nil
}

// ServersFor lists the servers the account is a member of.
func (core *Core) ServersFor(accountID string) []*Server {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.guilds.ServersFor(accountID)
}

// FindServer returns a server by ID, or nil.
func (core *Core) FindServer(serverID string) *Server {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.guilds.FindServer(serverID)
}

// ServerForChannel returns the server owning the channel, or nil.
func (core *Core) ServerForChannel(channelID string) *Server {
	core.mu.Lock()
	defer core.mu.Unlock()
	server, _ := core.guilds.FindChannel(channelID)
	return server
}

// ActivatePro unlocks Pro for the account with a donation confirmation code.
func (core *Core) ActivatePro(ctx context.Context, accountID, code string) error {
	core.mu.Lock()
	defer core.mu.Unlock()

	account := core.directory.Find(accountID)
	if account == nil {
		return ErrNotFound
	}
	if err := activatePro(account, code); err != nil {
		return err
	}
	core.save(ctx)
	return nil
}

// Export returns a deep copy of the full state for download. The copy is
// detached from the live structures, so the caller may serialize it after
// the lock is released.
func (core *Core) Export() Snapshot {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.snapshot().clone()
}
