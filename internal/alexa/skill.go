package alexa

import (
	"context"
	"fmt"

	"bitbucket.org/sotavant/alexa-tube-skill/internal/logger"
	"go.uber.org/zap"
)

// IntentHandlerFunc handles one named intent. It must call exactly one of the
// responder's terminal methods before returning.
type IntentHandlerFunc func(ctx context.Context, intent *Intent, session *Session, r *Responder) error

// Handlers supplies the per-skill behavior the dispatcher routes to.
// OnSessionStarted and OnSessionEnded are side-effect hooks; OnLaunch must
// respond through the responder like an intent handler.
type Handlers interface {
	OnSessionStarted(ctx context.Context, event *Event) error
	OnLaunch(ctx context.Context, event *Event, r *Responder) error
	OnSessionEnded(ctx context.Context, event *Event) error
}

type Config struct {
	// ApplicationID, when non-empty, must match the application id of every
	// incoming session. Empty disables the check.
	ApplicationID string
}

// Skill routes platform events to a Handlers implementation and an
// intent-handler table fixed at construction.
type Skill struct {
	cfg     Config
	h       Handlers
	intents map[string]IntentHandlerFunc
}

func NewSkill(cfg Config, h Handlers, intents map[string]IntentHandlerFunc) *Skill {
	m := make(map[string]IntentHandlerFunc, len(intents))
	for name, fn := range intents {
		m[name] = fn
	}

	return &Skill{cfg: cfg, h: h, intents: m}
}

// Execute drives one invocation to completion. It signals the invocation
// context exactly once on every path and returns the dispatch error, if any,
// so the host can log it. A panic inside a handler is recovered here and
// converted to a HandlerError; nothing crosses this boundary unconverted.
func (s *Skill) Execute(ctx context.Context, event *Event, lc InvocationContext) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &HandlerError{Request: event.Request.Type, Err: fmt.Errorf("panic: %v", p)}
			lc.Fail(err)
		}
	}()

	session := event.Session
	if session == nil {
		session = &Session{}
		event.Session = session
	}

	if s.cfg.ApplicationID != "" && s.cfg.ApplicationID != session.Application.ApplicationID {
		err = &AuthorizationError{Want: s.cfg.ApplicationID, Got: session.Application.ApplicationID}
		lc.Fail(err)
		return err
	}

	// handlers never see a nil attributes map
	if session.Attributes == nil {
		session.Attributes = make(map[string]any)
	}

	if session.New {
		logger.Log.Debug("starting new session", zap.String("session_id", session.SessionID))

		if herr := s.h.OnSessionStarted(ctx, event); herr != nil {
			err = &HandlerError{Request: event.Request.Type, Err: herr}
			lc.Fail(err)
			return err
		}
	}

	switch event.Request.Type {
	case TypeLaunchRequest:
		return s.respond(event, lc, func(r *Responder) error {
			return s.h.OnLaunch(ctx, event, r)
		})

	case TypeIntentRequest:
		intent := event.Request.Intent
		if intent == nil {
			err = &UnsupportedIntentError{}
			lc.Fail(err)
			return err
		}

		fn, ok := s.intents[intent.Name]
		if !ok {
			err = &UnsupportedIntentError{Intent: intent.Name}
			lc.Fail(err)
			return err
		}

		logger.Log.Debug("dispatching intent", zap.String("intent", intent.Name))

		return s.respond(event, lc, func(r *Responder) error {
			return fn(ctx, intent, session, r)
		})

	case TypeSessionEndedRequest:
		if herr := s.h.OnSessionEnded(ctx, event); herr != nil {
			err = &HandlerError{Request: event.Request.Type, Err: herr}
			lc.Fail(err)
			return err
		}

		lc.Succeed(nil)
		return nil

	default:
		err = &UnsupportedRequestError{Type: event.Request.Type}
		lc.Fail(err)
		return err
	}
}

// respond runs a responding handler and enforces its contract: exactly one
// terminal responder call. An error after the handler has already responded
// is returned for logging but cannot be failed, the success signal is out.
func (s *Skill) respond(event *Event, lc InvocationContext, run func(r *Responder) error) error {
	r := NewResponder(lc, event.Session)

	if herr := run(r); herr != nil {
		err := &HandlerError{Request: event.Request.Type, Err: herr}
		if !r.sent {
			lc.Fail(err)
		}
		return err
	}

	if !r.sent {
		err := &HandlerError{Request: event.Request.Type, Err: ErrNoResponse}
		lc.Fail(err)
		return err
	}

	return nil
}
