package service

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidNonce     = errors.New("invalid or expired nonce")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrExhausted        = errors.New("vanity mint pool exhausted")
	ErrNotFound         = errors.New("not found")
	ErrUpstream         = errors.New("upstream service failed")
	ErrMisconfigured    = errors.New("service config invalid")
	ErrInternal         = errors.New("internal error")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// UserError pairs an error kind with the message the caller should see. The
// underlying cause, if any, is kept for logging.
type UserError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *UserError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
