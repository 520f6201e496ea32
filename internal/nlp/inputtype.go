package nlp

import "strings"

// InputType labels input as a question, a command, or a statement.
type InputType string

// Input types, independent of intent.
const (
	InputQuestion  InputType = "question"
	InputCommand   InputType = "command"
	InputStatement InputType = "statement"
)

// Lexical cues for input-type detection. Question cues take precedence over
// command cues ("can you show me..." is a question).
var (
	questionWords = []string{
		"what", "where", "when", "why", "how", "who", "which",
		"can", "could", "would", "should", "is", "are", "do", "does", "did",
	}

	commandWords = []string{
		"find", "search", "look for", "show me", "tell me", "help me",
		"calculate", "convert", "open", "close", "start", "stop", "pause", "resume",
		"tell", "show", "give",
	}
)

// ClassifyType labels normalized text as question, command, or statement.
// Pure function: no shared state, deterministic for any input.
func ClassifyType(text NormalizedText) InputType {
	s := string(text)
	if s == "" {
		return InputStatement
	}

	if strings.HasSuffix(s, "?") {
		return InputQuestion
	}
	if startsWithAny(s, questionWords) {
		return InputQuestion
	}
	if startsWithAny(s, commandWords) {
		return InputCommand
	}
	return InputStatement
}

// startsWithAny reports whether s begins with one of the phrases as a whole
// word (so "iso" does not match "is").
func startsWithAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if !strings.HasPrefix(s, phrase) {
			continue
		}
		if len(s) == len(phrase) || !isWordByte(s[len(phrase)]) {
			return true
		}
	}
	return false
}
