package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("not found")
	// ErrValidation will throw if the given request-body or params is not valid
	ErrValidation = errors.New("validation error")
	// ErrInvalidState will throw if the entity does not allow the operation in its current status
	ErrInvalidState = errors.New("invalid state")
	// ErrAuctionClosed will throw if a bid arrives outside the bidding window
	ErrAuctionClosed = errors.New("auction closed")
	// ErrInvalidBid will throw if a bid breaks a bidding rule
	ErrInvalidBid = errors.New("invalid bid")
	// ErrStorage will throw if the persistence layer fails
	ErrStorage = errors.New("storage error")
	// ErrConflict will throw if the item already exists or was modified concurrently
	ErrConflict = errors.New("conflict")
	// ErrForbidden will throw if the caller does not own the item
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized will throw if the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoTransaction will throw if the store cannot open a transaction
	ErrNoTransaction = errors.New("transaction unavailable")

	ErrInvalidJsonFormat = errors.New("invalid JSON format")
	ErrUnsupportedSchema = errors.New("unsupported schema")
)

// Error carries a kind sentinel plus a human readable message.
// errors.Is(err, ErrInvalidBid) holds for an Error of that kind.
type Error struct {
	Kind  error
	Msg   string
	Field string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func NewValidationError(field, msg string) error {
	return &Error{Kind: ErrValidation, Field: field, Msg: msg}
}

func NewInvalidStateError(msg string) error {
	return &Error{Kind: ErrInvalidState, Msg: msg}
}

func NewAuctionClosedError(msg string) error {
	return &Error{Kind: ErrAuctionClosed, Msg: msg}
}

func NewInvalidBidError(msg string) error {
	return &Error{Kind: ErrInvalidBid, Msg: msg}
}

// NewStorageError wraps err so both errors.Is(ErrStorage) and errors.Is(err) hold
func NewStorageError(err error) error {
	return &Error{Kind: ErrStorage, Err: err}
}

func NewForbiddenError(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

// FieldOf returns the offending field of a validation error, if any
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
