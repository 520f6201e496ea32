// Package assistant composes the text-understanding primitives from
// internal/nlp into the classify-and-respond pipeline: response template
// selection, follow-up prompts, campus-fact interpolation, and the
// per-request orchestration that produces a ResponseRecord.
package assistant

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/voicerag/campus-assistant-go/internal/nlp"
)

// Fact holds the static campus information interpolated into responses.
type Fact struct {
	Location string   `json:"location"`
	Hours    string   `json:"hours"`
	Services []string `json:"services,omitempty"`
	Contact  string   `json:"contact,omitempty"`
}

// Config is the immutable configuration for the assistant: classifier rules,
// entity vocabulary, response/follow-up pools, and campus facts. It is built
// once at process start and passed into constructors; nothing mutates it
// afterwards, which is what makes concurrent pipeline calls safe.
type Config struct {
	Rules              []nlp.Rule
	FallbackConfidence float64
	Vocabulary         []string
	ResponsePools      map[nlp.Intent]map[TimeOfDay][]string
	FollowUpPools      map[nlp.Intent]map[TimeOfDay][]string
	Facts              map[string]Fact
}

// configFile is the on-disk override shape for data-driven deployments.
type configFile struct {
	FallbackConfidence float64                               `json:"fallback_confidence"`
	Vocabulary         []string                              `json:"vocabulary"`
	IntentKeywords     map[nlp.Intent][]string               `json:"intent_keywords"`
	IntentConfidence   map[nlp.Intent]float64                `json:"intent_confidence"`
	ResponsePools      map[nlp.Intent]map[TimeOfDay][]string `json:"response_pools"`
	FollowUpPools      map[nlp.Intent]map[TimeOfDay][]string `json:"follow_up_pools"`
	Facts              map[string]Fact                       `json:"facts"`
}

// LoadConfig reads a JSON data file and overlays it on the defaults.
// Sections absent from the file keep their built-in values, so a deployment
// can override just the facts table or just one response pool.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assistant data file: %w", err)
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse assistant data file: %w", err)
	}

	if file.FallbackConfidence > 0 {
		cfg.FallbackConfidence = file.FallbackConfidence
	}
	if len(file.Vocabulary) > 0 {
		cfg.Vocabulary = file.Vocabulary
	}
	if len(file.ResponsePools) > 0 {
		for intent, pools := range file.ResponsePools {
			cfg.ResponsePools[intent] = pools
		}
	}
	if len(file.FollowUpPools) > 0 {
		for intent, pools := range file.FollowUpPools {
			cfg.FollowUpPools[intent] = pools
		}
	}
	if len(file.Facts) > 0 {
		for topic, fact := range file.Facts {
			cfg.Facts[topic] = fact
		}
	}
	if len(file.IntentKeywords) > 0 || len(file.IntentConfidence) > 0 {
		cfg.Rules = overlayRules(cfg.Rules, file.IntentKeywords, file.IntentConfidence)
	}

	return cfg, nil
}

// overlayRules rewrites keyword sets and confidences on the default rule
// list without disturbing its priority order.
func overlayRules(rules []nlp.Rule, keywords map[nlp.Intent][]string, confidence map[nlp.Intent]float64) []nlp.Rule {
	out := make([]nlp.Rule, len(rules))
	copy(out, rules)
	for i := range out {
		if kw, ok := keywords[out[i].Intent]; ok {
			out[i].Keywords = kw
		}
		if c, ok := confidence[out[i].Intent]; ok && c > 0 && c <= 1 {
			out[i].Confidence = c
		}
	}
	return out
}

// DefaultConfig returns the built-in assistant data: rule list, vocabulary,
// response and follow-up pools, and the campus facts table.
func DefaultConfig() *Config {
	return &Config{
		Rules:              nlp.DefaultRules(),
		FallbackConfidence: nlp.DefaultFallbackConfidence,
		Vocabulary:         nlp.DefaultVocabulary(),
		ResponsePools:      defaultResponsePools(),
		FollowUpPools:      defaultFollowUpPools(),
		Facts:              defaultFacts(),
	}
}

func defaultResponsePools() map[nlp.Intent]map[TimeOfDay][]string {
	return map[nlp.Intent]map[TimeOfDay][]string{
		nlp.IntentGreeting: {
			Morning: {
				"Good morning! I'm your campus assistant. How can I help you today?",
				"Morning! Ready to help with anything campus-related.",
				"Good morning! What can I do for you?",
			},
			Afternoon: {
				"Good afternoon! I'm your campus assistant. How can I help?",
				"Afternoon! What campus question can I answer for you?",
				"Good afternoon! What can I do for you today?",
			},
			Evening: {
				"Good evening! I'm your campus assistant. How can I help?",
				"Evening! What campus question can I answer for you?",
				"Good evening! Still here to help with campus questions.",
			},
			TimeAny: {
				"Hello! I'm your campus assistant. How can I help you today?",
				"Hi there! Welcome to the campus assistant. What can I do for you?",
				"Hey! I'm your virtual campus assistant. Ask me anything!",
			},
		},
		nlp.IntentLibrary: {
			TimeAny: {
				"I can help you with library information! The main library is located at the center of campus.",
				"For library services, you can visit the main campus library or use the online portal.",
				"The library offers various resources including books, study spaces, and computer labs.",
			},
		},
		nlp.IntentAcademic: {
			TimeAny: {
				"I can assist you with academic questions! What specific information do you need about classes or courses?",
				"For academic matters, I can help you find information about schedules, professors, or course requirements.",
				"Academic support is available! Let me know what you're looking for regarding your studies.",
			},
		},
		nlp.IntentEvent: {
			TimeAny: {
				"I can help you find information about campus events! What type of event are you interested in?",
				"Campus events are happening regularly! Let me help you find what's coming up.",
				"There's always something happening on campus! What kind of events interest you?",
			},
		},
		nlp.IntentDining: {
			TimeAny: {
				"I can help you with dining options on campus! The main cafeteria serves meals throughout the day.",
				"Campus dining offers various options including the cafeteria, coffee shops, and food courts.",
				"Hungry? I can help you find dining options and their hours on campus.",
			},
		},
		nlp.IntentHelp: {
			TimeAny: {
				"I'm here to help! What do you need assistance with?",
				"I can definitely help you! Let me know what you're looking for.",
				"Help is here! What can I assist you with today?",
				"I'm at your service! What do you need help with?",
			},
		},
		nlp.IntentGeneral: {
			TimeAny: {
				"I'm your campus assistant! I can help you with various campus-related questions.",
				"I'm here to assist you with campus information. What would you like to know?",
				"As your campus assistant, I can provide information about locations, events, and services.",
				"I'm here to help! Ask me anything about campus life and services.",
				"I'm not sure I understand. Could you please rephrase your question?",
				"I'm still learning! Could you try asking in a different way?",
				"I didn't quite catch that. Could you provide more details?",
				"I want to help, but I need more information. Could you be more specific?",
			},
		},
	}
}

func defaultFollowUpPools() map[nlp.Intent]map[TimeOfDay][]string {
	return map[nlp.Intent]map[TimeOfDay][]string{
		nlp.IntentGreeting: {
			Morning: {
				"Feel free to ask about today's classes, events, or anything else campus-related.",
				"Anything on your schedule this morning I can help with?",
			},
			Afternoon: {
				"Feel free to ask about locations, events, classes, or anything else campus-related.",
				"Anything this afternoon I can help you find?",
			},
			Evening: {
				"Feel free to ask about locations, events, or tomorrow's schedule.",
				"Looking for evening dining or study spots? Just ask.",
			},
			TimeAny: {
				"Feel free to ask about locations, events, classes, or anything else campus-related.",
			},
		},
		nlp.IntentLibrary: {
			TimeAny: {
				"Would you like to know about library hours, specific resources, or study spaces?",
			},
		},
		nlp.IntentAcademic: {
			TimeAny: {
				"Are you looking for class schedules, professor information, or course details?",
			},
		},
		nlp.IntentEvent: {
			TimeAny: {
				"Are you looking for club meetings, sports events, or academic workshops?",
			},
		},
		nlp.IntentDining: {
			TimeAny: {
				"Would you like to know about cafeteria hours, menu options, or other dining locations?",
			},
		},
		nlp.IntentHelp: {
			TimeAny: {
				"You can ask me about campus locations, events, academic information, or general assistance.",
			},
		},
		nlp.IntentGeneral: {
			TimeAny: {
				"Feel free to ask about specific campus locations, events, or services.",
			},
		},
	}
}

func defaultFacts() map[string]Fact {
	return map[string]Fact{
		"library": {
			Location: "Main Campus Building A",
			Hours:    "8:00 AM - 10:00 PM (Monday-Friday), 10:00 AM - 6:00 PM (Weekends)",
			Services: []string{"Book lending", "Study spaces", "Computer labs", "Research assistance"},
			Contact:  "library@campus.edu",
		},
		"cafeteria": {
			Location: "Student Center Building",
			Hours:    "7:00 AM - 8:00 PM (Daily)",
			Services: []string{"Breakfast", "Lunch", "Dinner", "Snacks", "Vegetarian options"},
			Contact:  "dining@campus.edu",
		},
		"gym": {
			Location: "Recreation Center",
			Hours:    "6:00 AM - 11:00 PM (Daily)",
			Services: []string{"Fitness equipment", "Sports courts", "Swimming pool", "Group classes"},
			Contact:  "recreation@campus.edu",
		},
		"parking": {
			Location: "Main Parking Lot A",
			Hours:    "24/7 access",
			Services: []string{"Student parking", "Faculty parking", "Visitor parking", "Electric vehicle charging"},
			Contact:  "parking@campus.edu",
		},
	}
}
