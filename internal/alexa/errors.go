package alexa

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponse reports a launch or intent handler that returned without
	// calling any terminal responder method.
	ErrNoResponse = errors.New("handler produced no response")

	// ErrResponseAlreadySent reports a second terminal call on a responder.
	// The first envelope stands; the second call has no effect.
	ErrResponseAlreadySent = errors.New("response already sent")
)

// AuthorizationError reports an application-id mismatch between the skill
// configuration and the incoming session. No handler runs for such requests.
type AuthorizationError struct {
	Want string
	Got  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("application id %q does not match configured %q", e.Got, e.Want)
}

// UnsupportedIntentError names an intent with no registered handler.
type UnsupportedIntentError struct {
	Intent string
}

func (e *UnsupportedIntentError) Error() string {
	return fmt.Sprintf("unsupported intent %q", e.Intent)
}

// UnsupportedRequestError names a request type the dispatcher cannot route.
type UnsupportedRequestError struct {
	Type string
}

func (e *UnsupportedRequestError) Error() string {
	return fmt.Sprintf("unsupported request type %q", e.Type)
}

// HandlerError wraps a failure raised inside a handler. It is the only form
// in which handler errors cross the dispatch boundary.
type HandlerError struct {
	Request string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler for %s failed: %v", e.Request, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
