package chat

import (
	"time"

	"github.com/google/uuid"
)

// Ledger manages the pending request queue and the symmetric friendship
// graph. The graph invariant: A is in B's friend set exactly when B is in
// A's. Accept restores it even from partially corrupted input.
type Ledger struct {
	dir      *Directory
	requests []*FriendRequest
}

func NewLedger(dir *Directory) *Ledger {
	return &Ledger{dir: dir}
}

// RequestFriend appends a pending request. The friendship graph is not
// touched until the request is accepted.
func (ledger *Ledger) RequestFriend(fromID, toID string) (*FriendRequest, error) {
	if fromID == toID {
		return nil, ErrSelfRequest
	}

	from := ledger.dir.Find(fromID)
	to := ledger.dir.Find(toID)
	if from == nil || to == nil {
		return nil, ErrNotFound
	}

	if from.HasFriend(toID) {
		return nil, ErrAlreadyFriends
	}

	for _, req := range ledger.requests {
		if req.FromID == fromID && req.ToID == toID {
			return nil, ErrDuplicateRequest
		}
	}

	request := &FriendRequest{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		CreatedAt: time.Now(),
	}
	ledger.requests = append(ledger.requests, request)
	return request, nil
}

// Accept creates the symmetric friend edge and consumes the request. The
// edge insert is idempotent on each side, so a half-present edge left by
// earlier corrupted data still resolves to a consistent graph.
func (ledger *Ledger) Accept(requestID string) error {
	request := ledger.take(requestID)
	if request == nil {
		return ErrRequestNotFound
	}

	from := ledger.dir.Find(request.FromID)
	to := ledger.dir.Find(request.ToID)
	if from != nil && to != nil {
		from.addFriend(to.ID)
		to.addFriend(from.ID)
	}
	return nil
}

// Reject consumes the request without touching the graph.
func (ledger *Ledger) Reject(requestID string) error {
	if ledger.take(requestID) == nil {
		return ErrRequestNotFound
	}
	return nil
}

// PendingFor returns the requests addressed to userID, in insertion order.
func (ledger *Ledger) PendingFor(userID string) []*FriendRequest {
	var pending []*FriendRequest
	for _, req := range ledger.requests {
		if req.ToID == userID {
			pending = append(pending, req)
		}
	}
	return pending
}

// All returns every pending request, in insertion order.
func (ledger *Ledger) All() []*FriendRequest {
	return ledger.requests
}

func (ledger *Ledger) restore(requests []*FriendRequest) {
	ledger.requests = requests
}

// take removes and returns the request with the given ID, or nil. A second
// take of the same ID returns nil, which is how stale double-submits are
// detected.
func (ledger *Ledger) take(requestID string) *FriendRequest {
	for i, req := range ledger.requests {
		if req.ID == requestID {
			ledger.requests = append(ledger.requests[:i], ledger.requests[i+1:]...)
			return req
		}
	}
	return nil
}
