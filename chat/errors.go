package chat

import "fmt"

// Code classifies a failure so callers (and the HTTP layer) can branch on the
// kind of error without string matching.
type Code string

const (
	CodeDuplicateIdentity Code = "DUPLICATE_IDENTITY"
	CodeInvalidUsername   Code = "INVALID_USERNAME"
	CodeWeakSecret        Code = "WEAK_SECRET"
	CodeNotFound          Code = "NOT_FOUND"
	CodeWrongSecret       Code = "WRONG_SECRET"
	CodeSelfRequest       Code = "SELF_REQUEST"
	CodeAlreadyFriends    Code = "ALREADY_FRIENDS"
	CodeDuplicateRequest  Code = "DUPLICATE_REQUEST"
	CodeRequestNotFound   Code = "REQUEST_NOT_FOUND"
	CodeSelfConversation  Code = "SELF_CONVERSATION"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeInternal          Code = "INTERNAL"
)

// AppError is the error type returned by every chat operation. Cause is kept
// for wrapping storage failures; domain errors have no cause.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is makes errors.Is match on the code, so sentinel values below work even
// when an error was created separately with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Sentinel errors for the full failure taxonomy. Every failure an operation
// can produce is one of these; none is retried and none crashes the process.
var (
	ErrDuplicateIdentity = New(CodeDuplicateIdentity, "username and discriminator already taken")
	ErrInvalidUsername   = New(CodeInvalidUsername, "username can only contain letters, numbers, and underscores")
	ErrWeakSecret        = New(CodeWeakSecret, "password is too short")
	ErrNotFound          = New(CodeNotFound, "account not found")
	ErrWrongSecret       = New(CodeWrongSecret, "incorrect password")
	ErrSelfRequest       = New(CodeSelfRequest, "cannot send a friend request to yourself")
	ErrAlreadyFriends    = New(CodeAlreadyFriends, "already friends")
	ErrDuplicateRequest  = New(CodeDuplicateRequest, "friend request already sent")
	ErrRequestNotFound   = New(CodeRequestNotFound, "no friend request with this ID")
	ErrSelfConversation  = New(CodeSelfConversation, "cannot open a conversation with yourself")
	ErrEmptyCode         = New(CodeInvalidArgument, "confirmation code is required")
	ErrInvalidKind       = New(CodeInvalidArgument, "message kind must be text, image or file")
	ErrBadDiscriminator  = New(CodeInvalidArgument, "discriminator must be exactly four digits")
	ErrInvalidServerName = New(CodeInvalidArgument, "server name is required")
	ErrInvalidChannel    = New(CodeInvalidArgument, "invalid channel name or kind")
)
