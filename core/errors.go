package core

import "errors"

var (
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenRevoked      = errors.New("token has been revoked")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenTypeMismatch = errors.New("unexpected token type")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)

// Kind is the stable failure classification reported to clients.
// Every failure leaving the service carries exactly one Kind.
type Kind string

const (
	KindMissingField      Kind = "MissingField"
	KindTypeMismatch      Kind = "TypeMismatch"
	KindFormatViolation   Kind = "FormatViolation"
	KindUnknownField      Kind = "UnknownField"
	KindInvalidCredential Kind = "InvalidCredential"
	KindTokenExpired      Kind = "TokenExpired"
	KindTokenInvalid      Kind = "TokenInvalid"
	KindTokenTypeMismatch Kind = "TokenTypeMismatch"
	KindPermissionDenied  Kind = "PermissionDenied"
	KindNotFound          Kind = "NotFound"
	KindConflict          Kind = "Conflict"
	KindInternal          Kind = "InternalError"
)

// HTTPStatus maps a Kind to its HTTP status. The mapping is total: any Kind
// not listed is treated as an internal failure.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMissingField, KindTypeMismatch, KindFormatViolation, KindUnknownField:
		return 400
	case KindInvalidCredential, KindTokenExpired, KindTokenInvalid, KindTokenTypeMismatch:
		return 401
	case KindPermissionDenied:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}

// ClientError reports whether the failure is recoverable by the caller
// correcting its input or re-authenticating.
func (k Kind) ClientError() bool {
	return k.HTTPStatus() < 500
}

// FieldViolation is a single per-field validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error is the uniform error shape produced by the normalizer. It is
// identical regardless of which layer raised the failure.
type Error struct {
	Kind    Kind             `json:"kind"`
	Message string           `json:"message"`
	Details []FieldViolation `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError builds a normalized error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ValidationError builds a normalized error carrying per-field violations.
// The top-level kind is taken from the first violation.
func ValidationError(violations []FieldViolation) *Error {
	kind := KindInternal
	if len(violations) > 0 {
		kind = violations[0].Kind
	}
	return &Error{
		Kind:    kind,
		Message: "request validation failed",
		Details: violations,
	}
}

// Normalize converts any failure into a uniform *Error. Sentinel errors map
// to their taxonomy kind; anything unrecognized becomes an opaque internal
// error so stack detail never leaks to the caller.
func Normalize(err error) *Error {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr
	}

	switch {
	case errors.Is(err, ErrTokenExpired):
		return NewError(KindTokenExpired, "token has expired")
	case errors.Is(err, ErrTokenRevoked), errors.Is(err, ErrInvalidToken):
		// A revoked (rotated) token is indistinguishable from an invalid
		// one from the client's point of view.
		return NewError(KindTokenInvalid, "invalid token")
	case errors.Is(err, ErrTokenTypeMismatch):
		return NewError(KindTokenTypeMismatch, "unexpected token type")
	case errors.Is(err, ErrInvalidCredential):
		return NewError(KindInvalidCredential, "invalid credentials")
	case errors.Is(err, ErrPermissionDenied):
		return NewError(KindPermissionDenied, "insufficient privileges")
	case errors.Is(err, ErrNotFound):
		return NewError(KindNotFound, "resource not found")
	case errors.Is(err, ErrConflict):
		return NewError(KindConflict, "resource already exists")
	default:
		return NewError(KindInternal, "internal error")
	}
}
