package alexa

// Output speech types understood by the platform.
const (
	SpeechPlainText = "PlainText"
	SpeechSSML      = "SSML"
)

// Speech is a spoken payload: plain text or SSML markup. Anything that is not
// explicitly SSML renders as PlainText, so a zero-typed value behaves like a
// plain string.
type Speech struct {
	Type string
	Text string
}

// Plain builds PlainText speech from a raw string.
func Plain(text string) Speech {
	return Speech{Type: SpeechPlainText, Text: text}
}

// SSML builds markup speech. The markup is forwarded as-is, never validated.
func SSML(markup string) Speech {
	return Speech{Type: SpeechSSML, Text: markup}
}

func (s Speech) outputSpeech() *OutputSpeech {
	if s.Type == SpeechSSML {
		return &OutputSpeech{Type: SpeechSSML, SSML: s.Text}
	}

	return &OutputSpeech{Type: SpeechPlainText, Text: s.Text}
}
