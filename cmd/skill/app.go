package main

import (
	"encoding/json"
	"net/http"

	"bitbucket.org/sotavant/alexa-tube-skill/internal/alexa"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/logger"
	"go.uber.org/zap"
)

type app struct {
	skill *alexa.Skill
}

func newApp(skill *alexa.Skill) *app {
	return &app{skill: skill}
}

// httpContext adapts the HTTP response to the invocation contract: the first
// Succeed or Fail wins, later signals are dropped.
type httpContext struct {
	w    http.ResponseWriter
	done bool
}

func (c *httpContext) Succeed(envelope *alexa.ResponseEnvelope) {
	if c.done {
		return
	}
	c.done = true

	if envelope == nil {
		c.w.WriteHeader(http.StatusOK)
		return
	}

	c.w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(c.w)
	if err := enc.Encode(envelope); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
	}
}

func (c *httpContext) Fail(err error) {
	if c.done {
		return
	}
	c.done = true

	logger.Log.Debug("invocation failed", zap.Error(err))
	c.w.WriteHeader(http.StatusInternalServerError)
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding event")
	var event alexa.Event
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&event); err != nil {
		logger.Log.Debug("cannot decode event JSON body", zap.Error(err))

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := a.skill.Execute(ctx, &event, &httpContext{w: w}); err != nil {
		logger.Log.Debug("dispatch failed", zap.Error(err))
		return
	}

	logger.Log.Debug("sending HTTP 200 response")
}
