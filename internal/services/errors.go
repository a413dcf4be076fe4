package services

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map each category to one HTTP status.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInvalidCredential = errors.New("invalid nickname or password")
	ErrInvalidInput      = errors.New("invalid input")
)

var (
	ErrAlreadyThumbedUp = fmt.Errorf("%w: todo already has a thumbs-up from this user", ErrConflict)
	ErrNicknameTaken    = fmt.Errorf("%w: nickname already exists", ErrConflict)
	ErrThumbUpNotFound  = fmt.Errorf("%w: todo has no thumbs-up from this user", ErrInvalidOperation)
	ErrPasswordMismatch = fmt.Errorf("%w: password and confirmation do not match", ErrInvalidInput)
	ErrPasswordTooShort = fmt.Errorf("%w: password too short", ErrInvalidInput)
	ErrNicknameRequired = fmt.Errorf("%w: nickname is required", ErrInvalidInput)
)

// Entity kinds reported by NotFoundError.
const (
	KindUser    = "User"
	KindTodo    = "Todo"
	KindComment = "Comment"
)

// NotFoundError reports a missing entity together with the key it was looked up by.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Kind, e.ID)
}

// Is makes every NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind string, id any) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// isOwner reports whether callerID owns the resource owned by ownerID.
func isOwner(ownerID, callerID uint64) bool {
	return ownerID == callerID
}
