package chat

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SecretScheme decides how account secrets are stored and checked. The
// default scheme stores the secret as-is and compares exactly; a hashing
// scheme can be plugged in from the security package.
type SecretScheme interface {
	Seal(secret string) (string, error)
	Compare(sealed, secret string) bool
}

// PlainScheme compares secrets byte for byte.
type PlainScheme struct{}

func (PlainScheme) Seal(secret string) (string, error) { return secret, nil }

func (PlainScheme) Compare(sealed, secret string) bool { return sealed == secret }

var (
	usernamePattern      = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	discriminatorPattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// Directory owns the set of accounts and enforces identity uniqueness.
// It is not safe for concurrent use; Core provides the locking boundary.
type Directory struct {
	accounts  []*Account
	byID      map[string]*Account
	minSecret int
	scheme    SecretScheme
}

func NewDirectory(minSecret int, scheme SecretScheme) *Directory {
	if minSecret <= 0 {
		minSecret = 6
	}
	if scheme == nil {
		scheme = PlainScheme{}
	}
	return &Directory{
		byID:      make(map[string]*Account),
		minSecret: minSecret,
		scheme:    scheme,
	}
}

// Register creates a new account. An empty discriminator asks the directory
// to assign a unique 4-digit one for the username.
func (dir *Directory) Register(username, discriminator, secret string) (*Account, error) {
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(secret) < dir.minSecret {
		return nil, ErrWeakSecret
	}

	if discriminator == "" {
		var err error
		discriminator, err = dir.generateDiscriminator(username)
		if err != nil {
			return nil, err
		}
	} else if !discriminatorPattern.MatchString(discriminator) {
		return nil, ErrBadDiscriminator
	} else if dir.lookup(username, discriminator) != nil {
		return nil, ErrDuplicateIdentity
	}

	sealed, err := dir.scheme.Seal(secret)
	if err != nil {
		return nil, Wrap(CodeInternal, "failed to seal secret", err)
	}

	account := &Account{
		ID:            uuid.NewString(),
		Username:      username,
		Discriminator: discriminator,
		Secret:        sealed,
		Status:        Online,
		Avatar:        "👤",
		Banner:        "none",
		FriendIDs:     []string{},
		ServerIDs:     []string{},
		CreatedAt:     time.Now(),
	}
	dir.insert(account)
	return account, nil
}

// Authenticate checks the (username, discriminator, secret) triple against
// the directory.
func (dir *Directory) Authenticate(username, discriminator, secret string) (*Account, error) {
	account := dir.lookup(username, discriminator)
	if account == nil {
		return nil, ErrNotFound
	}
	if !dir.scheme.Compare(account.Secret, secret) {
		return nil, ErrWrongSecret
	}
	return account, nil
}

// Find returns the account with the given ID, or nil.
func (dir *Directory) Find(id string) *Account {
	return dir.byID[id]
}

// FindByEmail returns the account linked to the email, or nil. Only accounts
// created through OAuth carry an email.
func (dir *Directory) FindByEmail(email string) *Account {
	if email == "" {
		return nil
	}
	for _, account := range dir.accounts {
		if account.Email == email {
			return account
		}
	}
	return nil
}

// All returns the accounts in registration order.
func (dir *Directory) All() []*Account {
	return dir.accounts
}

func (dir *Directory) lookup(username, discriminator string) *Account {
	lower := strings.ToLower(username)
	for _, account := range dir.accounts {
		if strings.ToLower(account.Username) == lower && account.Discriminator == discriminator {
			return account
		}
	}
	return nil
}

func (dir *Directory) restore(accounts []*Account) {
	dir.accounts = accounts
	dir.byID = make(map[string]*Account, len(accounts))
	for _, account := range accounts {
		dir.byID[account.ID] = account
	}
}

func (dir *Directory) insert(account *Account) {
	dir.accounts = append(dir.accounts, account)
	dir.byID[account.ID] = account
}

// generateDiscriminator picks a random 4-digit discriminator not yet taken
// for the username. 9000 candidates, so a free one always exists well before
// the retry cap in practice.
func (dir *Directory) generateDiscriminator(username string) (string, error) {
	for range 100 {
		candidate := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
		if dir.lookup(username, candidate) == nil {
			return candidate, nil
		}
	}
	// Random picks kept colliding, fall back to a linear scan
	for n := 1000; n <= 9999; n++ {
		candidate := fmt.Sprintf("%04d", n)
		if dir.lookup(username, candidate) == nil {
			return candidate, nil
		}
	}
	return "", ErrDuplicateIdentity
}
