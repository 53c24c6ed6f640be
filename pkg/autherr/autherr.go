package autherr

import (
	"errors"
	"strings"
	"time"
)

// Kind tags a classified credential failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUserNotFound
	KindPasswordMismatch
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindUserNotFound:
		return "user_not_found"
	case KindPasswordMismatch:
		return "password_mismatch"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// DisplayWindow is how long a classified credential error stays visible
// before the UI auto-clears it.
const DisplayWindow = 4 * time.Second

// Provider rejection codes. The password adapter rejects with these; the
// federated flow passes through whatever text the provider returned.
var (
	ErrUserNotFound    = errors.New("auth/user-not-found")
	ErrWrongPassword   = errors.New("auth/wrong-password")
	ErrTooManyRequests = errors.New("auth/too-many-requests")
	ErrEmailInUse      = errors.New("auth/email-already-in-use")
)

// Markers matched against provider error text, in priority order.
const (
	markerUserNotFound  = "user-not-found"
	markerWrongPassword = "wrong-password"
)

// Fixed user-facing messages.
const (
	msgUserNotFound     = "Invalid Id: User Not Found"
	msgPasswordMismatch = "Password Mismatch"
	msgRateLimited      = "Temporarily disabled due to many failed logins"
)

// Error is a classified credential failure with its fixed display text.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// Classify maps a provider rejection onto a tagged error. The matching
// is total and priority-ordered: error text carrying the user-not-found
// marker classifies as UserNotFound even if it also carries the
// wrong-password marker; anything matching neither marker is treated as
// rate limiting and gets the generic lockout message.
func Classify(cause error) *Error {
	text := cause.Error()
	switch {
	case strings.Contains(text, markerUserNotFound):
		return &Error{Kind: KindUserNotFound, Message: msgUserNotFound, cause: cause}
	case strings.Contains(text, markerWrongPassword):
		return &Error{Kind: KindPasswordMismatch, Message: msgPasswordMismatch, cause: cause}
	default:
		return &Error{Kind: KindRateLimited, Message: msgRateLimited, cause: cause}
	}
}

// As unwraps err into a classified *Error if it is one.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
