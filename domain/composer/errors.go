package composer

import (
	"errors"

	"github.com/prasetyowira/qrlogo/constant"
)

// Kind classifies a composer failure.
type Kind int

const (
	// KindValidation covers bad user input: empty text, non-numeric or out of range dimensions.
	KindValidation Kind = iota + 1
	// KindResource covers unreadable logos and unwritable destinations.
	KindResource
	// KindCapacity covers text the encoder cannot fit into the largest symbol.
	KindCapacity
)

// String returns the error type label used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return constant.ErrTypeValidation
	case KindResource:
		return constant.ErrTypeResource
	case KindCapacity:
		return constant.ErrTypeCapacity
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrEmptyText     = errors.New(constant.ErrEmptyText)
	ErrInvalidSize   = errors.New(constant.ErrInvalidSize)
	ErrInvalidBorder = errors.New(constant.ErrInvalidBorder)
	ErrImageTooLarge = errors.New(constant.ErrImageTooLarge)
	ErrNothingToSave = errors.New(constant.ErrNothingToSave)
	ErrEmptyPath     = errors.New(constant.ErrEmptyPath)
	ErrInvalidColor  = errors.New(constant.ErrInvalidColor)
	ErrLogoTooSmall  = errors.New(constant.ErrLogoTooSmall)
)

// Error is the error returned by every composer operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of err, or 0 if err was not produced by the composer.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}
