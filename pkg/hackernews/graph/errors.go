package graph

import (
	"errors"

	"github.com/mikepea/hackernews/pkg/hackernews/auth"
	"github.com/mikepea/hackernews/pkg/hackernews/store"
)

// Error codes reported under "extensions.code"
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrNoRequestContext is returned when a resolver runs without a RequestContext
var ErrNoRequestContext = errors.New("request context missing")

// Error is a resolver error with a machine-readable code
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions implements gqlerrors.ExtendedError
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func badInput(err error) error {
	return &Error{Code: CodeBadUserInput, Err: err}
}

// classify attaches a code to errors the caller can act on. Anything else,
// including database failures, is returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var authErr *auth.Error
	var validationErr *store.ValidationError
	switch {
	case errors.As(err, &authErr):
		return &Error{Code: CodeUnauthenticated, Err: err}
	case errors.As(err, &validationErr),
		errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrAlreadyVoted):
		return badInput(err)
	case errors.Is(err, store.ErrNotFound):
		return &Error{Code: CodeNotFound, Err: err}
	case errors.Is(err, ErrNoRequestContext):
		return &Error{Code: CodeInternal, Err: err}
	}
	return err
}
