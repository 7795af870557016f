package alexa

// InvocationContext is the host callback contract. The dispatcher calls
// exactly one of Succeed or Fail per invocation; Succeed may carry a nil
// envelope when a session ends without a spoken reply.
type InvocationContext interface {
	Succeed(envelope *ResponseEnvelope)
	Fail(err error)
}

// Responder builds and sends the single response envelope of an invocation.
// Each of the four terminal methods signals the invocation context once and
// marks the responder spent; any later terminal call returns
// ErrResponseAlreadySent and leaves the first envelope in place.
type Responder struct {
	lc      InvocationContext
	session *Session
	sent    bool
}

// NewResponder wraps an invocation context and the session whose attributes
// will be echoed into the envelope. The dispatcher builds one per invocation;
// the constructor is exported so handler tests can drive handlers directly.
func NewResponder(lc InvocationContext, session *Session) *Responder {
	return &Responder{lc: lc, session: session}
}

// Tell speaks and ends the session.
func (r *Responder) Tell(speech Speech) error {
	return r.send(speech, nil, "", "", true)
}

// TellWithCard is Tell plus a card, emitted only when both title and content
// are non-empty.
func (r *Responder) TellWithCard(speech Speech, cardTitle, cardContent string) error {
	return r.send(speech, nil, cardTitle, cardContent, true)
}

// Ask speaks and keeps the session open; reprompt plays if the user stays
// silent.
func (r *Responder) Ask(speech, reprompt Speech) error {
	return r.send(speech, &reprompt, "", "", false)
}

// AskWithCard is Ask plus a card, emitted only when both title and content
// are non-empty.
func (r *Responder) AskWithCard(speech, reprompt Speech, cardTitle, cardContent string) error {
	return r.send(speech, &reprompt, cardTitle, cardContent, false)
}

func (r *Responder) send(speech Speech, reprompt *Speech, cardTitle, cardContent string, endSession bool) error {
	if r.sent {
		return ErrResponseAlreadySent
	}
	r.sent = true

	env := &ResponseEnvelope{
		Version: "1.0",
		Response: ResponseBody{
			OutputSpeech:     speech.outputSpeech(),
			ShouldEndSession: endSession,
		},
	}

	if reprompt != nil {
		env.Response.Reprompt = &Reprompt{OutputSpeech: reprompt.outputSpeech()}
	}

	if cardTitle != "" && cardContent != "" {
		env.Response.Card = &Card{Type: "Simple", Title: cardTitle, Content: cardContent}
	}

	if r.session != nil && len(r.session.Attributes) > 0 {
		env.SessionAttributes = r.session.Attributes
	}

	r.lc.Succeed(env)
	return nil
}
