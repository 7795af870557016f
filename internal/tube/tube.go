package tube

import (
	"context"
	"fmt"
	"strings"

	"bitbucket.org/sotavant/alexa-tube-skill/internal/alexa"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/logger"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/status"
	"go.uber.org/zap"
)

const (
	goodService = "Good Service"

	// disruptions are read out pageSize at a time
	pageSize = 3

	attrDisruptions = "disruptions"
	attrCursor      = "cursor"
)

// Skill answers tube line-status questions from a status feed.
type Skill struct {
	fetcher status.Fetcher
}

func NewSkill(f status.Fetcher) *Skill {
	return &Skill{fetcher: f}
}

// IntentHandlers builds the intent routing table, fixed at startup.
func (s *Skill) IntentHandlers() map[string]alexa.IntentHandlerFunc {
	return map[string]alexa.IntentHandlerFunc{
		"TubeStatusIntent":      s.tubeStatus,
		"NextDisruptionsIntent": s.nextDisruptions,
		"AMAZON.HelpIntent":     s.help,
		"AMAZON.StopIntent":     s.goodbye,
		"AMAZON.CancelIntent":   s.goodbye,
	}
}

// OnSessionStarted drops any pagination state left over from a previous
// conversation.
func (s *Skill) OnSessionStarted(_ context.Context, event *alexa.Event) error {
	logger.Log.Debug("session started", zap.String("session_id", event.Session.SessionID))

	delete(event.Session.Attributes, attrDisruptions)
	delete(event.Session.Attributes, attrCursor)
	return nil
}

func (s *Skill) OnLaunch(_ context.Context, _ *alexa.Event, r *alexa.Responder) error {
	return r.AskWithCard(
		alexa.Plain("Welcome to Tube Status. Ask me about a line by name, or say status for a full report."),
		alexa.Plain("Try asking: what is the status of the Victoria line."),
		"Tube Status",
		"Ask about a line by name, for example \"what is the status of the Victoria line\", or say \"status\" for a report on all lines.",
	)
}

func (s *Skill) OnSessionEnded(_ context.Context, event *alexa.Event) error {
	logger.Log.Debug("session ended",
		zap.String("session_id", event.Session.SessionID),
		zap.String("reason", event.Request.Reason),
	)
	return nil
}

func (s *Skill) tubeStatus(ctx context.Context, intent *alexa.Intent, session *alexa.Session, r *alexa.Responder) error {
	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.Log.Debug("status fetch failed", zap.Error(err))
		return r.Tell(alexa.Plain("The tube status service is unavailable right now. Please try again later."))
	}

	if name := slotValue(intent, "Line"); name != "" {
		return s.lineStatus(r, records, name)
	}

	disrupted := disruptions(records)
	if len(disrupted) == 0 {
		return r.Tell(alexa.Plain("There is a good service on all lines."))
	}

	session.Attributes[attrDisruptions] = disrupted
	session.Attributes[attrCursor] = 0

	noun := "lines are"
	if len(disrupted) == 1 {
		noun = "line is"
	}

	return r.Ask(
		alexa.Plain(fmt.Sprintf("%d %s disrupted. Say next to hear them.", len(disrupted), noun)),
		alexa.Plain("Say next to hear the disrupted lines."),
	)
}

func (s *Skill) lineStatus(r *alexa.Responder, records []status.Record, name string) error {
	idx := lineIndex(name)
	if idx < 0 || idx >= len(records) {
		return r.Ask(
			alexa.Plain(fmt.Sprintf("I don't know a line called %s. Which line would you like?", name)),
			alexa.Plain("Which line would you like?"),
		)
	}

	line := Lines[idx]
	text := fmt.Sprintf("The %s line is reporting %s.", line.Name, records[idx].Status)

	return r.TellWithCard(alexa.Plain(text), line.Name+" line", text)
}

// nextDisruptions pages through the disruption list stashed by tubeStatus,
// advancing the cursor one page per call.
func (s *Skill) nextDisruptions(_ context.Context, _ *alexa.Intent, session *alexa.Session, r *alexa.Responder) error {
	disrupted := attrStrings(session, attrDisruptions)
	cursor := attrInt(session, attrCursor)

	if cursor >= len(disrupted) {
		return r.Tell(alexa.Plain("There are no more disruptions to report."))
	}

	end := cursor + pageSize
	if end > len(disrupted) {
		end = len(disrupted)
	}

	session.Attributes[attrCursor] = end
	text := strings.Join(disrupted[cursor:end], ". ")

	if end < len(disrupted) {
		return r.Ask(
			alexa.Plain(text+". Say next for more."),
			alexa.Plain("Say next for more disruptions."),
		)
	}

	return r.Ask(
		alexa.Plain(text+". That is all of them."),
		alexa.Plain("Say status to start over, or stop to finish."),
	)
}

func (s *Skill) help(_ context.Context, _ *alexa.Intent, _ *alexa.Session, r *alexa.Responder) error {
	return r.Ask(
		alexa.Plain("You can ask about a line by name, for example: what is the status of the Victoria line. Or say status for a report on all lines."),
		alexa.Plain("Which line would you like?"),
	)
}

func (s *Skill) goodbye(_ context.Context, _ *alexa.Intent, _ *alexa.Session, r *alexa.Responder) error {
	return r.Tell(alexa.Plain("Goodbye."))
}

// disruptions pairs every non-good record with its line name, positionally.
// Records past the end of the line table are ignored.
func disruptions(records []status.Record) []string {
	var out []string
	for i, rec := range records {
		if i >= len(Lines) {
			break
		}
		if rec.Status != goodService {
			out = append(out, fmt.Sprintf("%s line: %s", Lines[i].Name, rec.Status))
		}
	}

	return out
}

func lineIndex(name string) int {
	for i, l := range Lines {
		if strings.EqualFold(l.Name, name) {
			return i
		}
	}

	return -1
}

func slotValue(intent *alexa.Intent, name string) string {
	if slot, ok := intent.Slots[name]; ok {
		return slot.Value
	}

	return ""
}

// attrInt reads a numeric session attribute; the platform round-trips
// attributes through JSON, so numbers come back as float64.
func attrInt(session *alexa.Session, key string) int {
	switch v := session.Attributes[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}

	return 0
}

func attrStrings(session *alexa.Session, key string) []string {
	switch v := session.Attributes[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	return nil
}
