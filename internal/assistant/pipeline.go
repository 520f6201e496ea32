package assistant

import (
	"math/rand/v2"
	"time"

	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/nlp"
)

// Confidence boosts applied per input type, capped at 1.0. Questions signal
// clearer intent than commands, which signal clearer intent than statements.
const (
	questionBoost = 0.10
	commandBoost  = 0.05
)

// ResponseRecord is the pipeline output for one input. Its intent and
// confidence always equal the classifier result that produced it.
type ResponseRecord struct {
	ResponseText string           `json:"response"`
	FollowUp     string           `json:"follow_up"`
	Intent       nlp.Intent       `json:"intent"`
	Confidence   float64          `json:"confidence"`
	InputType    nlp.InputType    `json:"input_type"`
	Entities     []nlp.Entity     `json:"entities,omitempty"`
	TimeOfDay    TimeOfDay        `json:"time_of_day"`
	Timestamp    string           `json:"timestamp"`
}

// PipelineConfig holds the dependencies for creating a Pipeline.
type PipelineConfig struct {
	Config *Config
	Rand   *rand.Rand       // nil = fresh PCG source
	Logger *logger.Logger   // nil = stdout JSON logger at info
	Clock  func() time.Time // nil = time.Now; injectable for boundary tests
}

// Pipeline composes normalization, entity extraction, input-type and intent
// classification, and response selection into a single Process call.
// All state is immutable after construction, so one Pipeline serves
// concurrent requests without locking (the selector guards its own rng).
type Pipeline struct {
	extractor  *nlp.Extractor
	classifier *nlp.Classifier
	selector   *Selector
	clock      func() time.Time
	logger     *logger.Logger
}

// NewPipeline creates a pipeline from cfg, applying defaults for any nil
// dependency.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	conf := cfg.Config
	if conf == nil {
		conf = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}

	return &Pipeline{
		extractor:  nlp.NewExtractor(conf.Vocabulary),
		classifier: nlp.NewClassifier(conf.Rules, conf.FallbackConfidence),
		selector:   NewSelector(conf, cfg.Rand),
		clock:      clock,
		logger:     log.WithModule("pipeline"),
	}
}

// Process runs the full classify-and-respond pipeline on raw input.
// Total: it never returns an error. Unrecognized or empty input classifies
// as general_inquiry with the configured fallback confidence and still
// produces a response.
func (p *Pipeline) Process(rawText string) ResponseRecord {
	now := p.clock()
	text := nlp.Normalize(rawText)

	// Extraction and the two classifications are mutually independent.
	entities := p.extractor.ExtractAll(text)
	intent := p.classifier.Classify(text)
	inputType := nlp.ClassifyType(text)

	intent.Confidence = boostConfidence(intent.Confidence, inputType)

	tod := TimeOfDayAt(now)
	reply := p.selector.Respond(intent, tod)

	p.logger.WithFields(map[string]any{
		"intent":       intent.Intent,
		"confidence":   intent.Confidence,
		"input_type":   inputType,
		"entity_count": len(entities),
		"time_of_day":  tod,
	}).Debug("Input processed")

	return ResponseRecord{
		ResponseText: reply.ResponseText,
		FollowUp:     reply.FollowUp,
		Intent:       intent.Intent,
		Confidence:   intent.Confidence,
		InputType:    inputType,
		Entities:     entities,
		TimeOfDay:    tod,
		Timestamp:    now.Format(time.RFC3339),
	}
}

// boostConfidence nudges confidence up for questions and commands, mirroring
// the observation that explicit asks carry clearer intent. Capped at 1.0.
func boostConfidence(confidence float64, inputType nlp.InputType) float64 {
	switch inputType {
	case nlp.InputQuestion:
		confidence += questionBoost
	case nlp.InputCommand:
		confidence += commandBoost
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}
