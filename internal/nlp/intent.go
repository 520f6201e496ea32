package nlp

import "strings"

// Intent is the coarse-grained category of what the user is asking about.
type Intent string

// Known intents, in no particular order. Rule priority is carried by the
// classifier's rule list, not by these constants.
const (
	IntentGreeting Intent = "greeting"
	IntentHelp     Intent = "help_request"
	IntentLibrary  Intent = "library_inquiry"
	IntentAcademic Intent = "academic_inquiry"
	IntentDining   Intent = "dining_inquiry"
	IntentEvent    Intent = "event_inquiry"
	IntentGeneral  Intent = "general_inquiry"
)

// IntentResult is the outcome of classifying one input.
type IntentResult struct {
	Intent          Intent   `json:"intent"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Rule binds an intent to its keyword set and base confidence. Rules are
// evaluated in list order; the first rule with at least one keyword hit wins.
type Rule struct {
	Intent     Intent
	Keywords   []string
	Confidence float64
}

const (
	// DefaultFallbackConfidence is assigned when no rule matches.
	DefaultFallbackConfidence = 0.5

	// matchBonus is added per matched keyword beyond the first.
	matchBonus = 0.02

	// maxConfidence caps the classifier output below certainty.
	maxConfidence = 0.99
)

// Classifier matches normalized text against an ordered rule list.
// Classification is deterministic: identical input always yields an
// identical IntentResult.
type Classifier struct {
	rules              []Rule
	fallbackConfidence float64
}

// NewClassifier creates a classifier from an ordered rule list.
// fallbackConfidence is used for the general_inquiry catch-all; values
// outside (0,1] fall back to DefaultFallbackConfidence.
func NewClassifier(rules []Rule, fallbackConfidence float64) *Classifier {
	if fallbackConfidence <= 0 || fallbackConfidence > 1 {
		fallbackConfidence = DefaultFallbackConfidence
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Classifier{
		rules:              owned,
		fallbackConfidence: fallbackConfidence,
	}
}

// Classify returns the intent for the text. Total: every input, including
// the empty string, produces a valid result with confidence in [0,1].
func (c *Classifier) Classify(text NormalizedText) IntentResult {
	s := string(text)
	for _, rule := range c.rules {
		matched := matchKeywords(s, rule.Keywords)
		if len(matched) == 0 {
			continue
		}
		return IntentResult{
			Intent:          rule.Intent,
			Confidence:      scoreMatches(rule.Confidence, len(matched)),
			MatchedKeywords: matched,
		}
	}
	return IntentResult{
		Intent:     IntentGeneral,
		Confidence: c.fallbackConfidence,
	}
}

// matchKeywords returns the keywords contained in s, in rule order.
func matchKeywords(s string, keywords []string) []string {
	if s == "" {
		return nil
	}
	var matched []string
	for _, kw := range keywords {
		if containsWord(s, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// containsWord reports a whole-word (or whole-phrase) occurrence of kw in s.
func containsWord(s, kw string) bool {
	from := 0
	for {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if isWordBoundary(s, start, end) {
			return true
		}
		from = start + 1
	}
}

// scoreMatches derives confidence from the rule's base value and the number
// of matched keywords. More hits nudge the score up slightly; the base value
// dominates so per-intent tiers stay recognizable.
func scoreMatches(base float64, matches int) float64 {
	score := base + matchBonus*float64(matches-1)
	if score > maxConfidence {
		score = maxConfidence
	}
	return score
}

// DefaultRules returns the built-in rule list in priority order:
// greeting > help > library > academic > dining > event. The general_inquiry
// catch-all is implicit (no rule; the classifier falls back to it).
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent: IntentGreeting,
			Keywords: []string{
				"hello", "hi", "hey", "good morning", "good afternoon",
				"good evening", "greetings", "morning", "afternoon", "evening",
			},
			Confidence: 0.95,
		},
		{
			Intent:     IntentHelp,
			Keywords:   []string{"help", "assist", "support"},
			Confidence: 0.9,
		},
		{
			Intent:     IntentLibrary,
			Keywords:   []string{"library", "book", "study"},
			Confidence: 0.8,
		},
		{
			Intent:     IntentAcademic,
			Keywords:   []string{"class", "course", "lecture", "professor"},
			Confidence: 0.8,
		},
		{
			Intent:     IntentDining,
			Keywords:   []string{"food", "cafeteria", "dining"},
			Confidence: 0.7,
		},
		{
			Intent:     IntentEvent,
			Keywords:   []string{"event", "events", "club", "activity", "activities"},
			Confidence: 0.7,
		},
	}
}

// DefaultVocabulary returns the campus keyword set used by the entity
// extractor for KEYWORD entities.
func DefaultVocabulary() []string {
	return []string{
		"library", "classroom", "professor", "lecture", "exam", "assignment",
		"campus", "dorm", "cafeteria", "gym", "parking", "registration",
		"course", "schedule", "deadline", "grade", "tuition", "scholarship",
		"event", "club", "sports", "laboratory", "office", "department",
	}
}
