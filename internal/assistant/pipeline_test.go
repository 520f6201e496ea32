package assistant

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicerag/campus-assistant-go/internal/nlp"
)

func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.March, 15, hour, minute, 0, 0, time.UTC)
	}
}

func newTestPipeline(clock func() time.Time) *Pipeline {
	return NewPipeline(PipelineConfig{
		Rand:  rand.New(rand.NewPCG(3, 9)),
		Clock: clock,
	})
}

func TestProcessScenarios(t *testing.T) {
	p := newTestPipeline(fixedClock(14, 0))

	tests := []struct {
		name          string
		input         string
		wantIntent    nlp.Intent
		wantType      nlp.InputType
		minConfidence float64
	}{
		{"library question", "Where is the library located?", nlp.IntentLibrary, nlp.InputQuestion, 0.85},
		{"dining command", "Tell me about dining hours", nlp.IntentDining, nlp.InputCommand, 0.7},
		{"greeting", "Good morning!", nlp.IntentGreeting, nlp.InputStatement, 0.9},
		{"academic question", "When does course registration open?", nlp.IntentAcademic, nlp.InputQuestion, 0.85},
		{"help request", "I need help with my account", nlp.IntentHelp, nlp.InputStatement, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := p.Process(tt.input)
			assert.Equal(t, tt.wantIntent, record.Intent)
			assert.Equal(t, tt.wantType, record.InputType)
			assert.GreaterOrEqual(t, record.Confidence, tt.minConfidence)
			assert.NotEmpty(t, record.ResponseText)
			assert.NotEmpty(t, record.FollowUp)
		})
	}
}

func TestProcessUnrecognizedInput(t *testing.T) {
	p := newTestPipeline(fixedClock(10, 0))

	record := p.Process("asdkfj random text")
	assert.Equal(t, nlp.IntentGeneral, record.Intent)
	assert.Equal(t, nlp.InputStatement, record.InputType)
	assert.InDelta(t, nlp.DefaultFallbackConfidence, record.Confidence, 1e-9)
	assert.NotEmpty(t, record.ResponseText)
}

func TestProcessTotality(t *testing.T) {
	p := newTestPipeline(fixedClock(10, 0))

	for _, input := range []string{"", "   ", "!!!???", "🎉🎉🎉", "北大圖書館在哪裡"} {
		record := p.Process(input)
		assert.NotEmpty(t, record.ResponseText, "input %q must still produce a response", input)
		assert.NotEmpty(t, record.Intent)
		assert.NotEmpty(t, record.Timestamp)
	}
}

func TestProcessEntities(t *testing.T) {
	p := newTestPipeline(fixedClock(9, 30))

	record := p.Process("My class starts at 3:30 pm in the library")
	var times []nlp.Entity
	for _, e := range record.Entities {
		if e.Kind == nlp.EntityTime {
			times = append(times, e)
		}
	}
	require.Len(t, times, 1)
	assert.Equal(t, "3:30 pm", times[0].Value)
}

func TestProcessGreetingFollowsClock(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		hour int
		tod  TimeOfDay
	}{
		{9, Morning},
		{14, Afternoon},
		{20, Evening},
	}
	for _, tt := range tests {
		p := NewPipeline(PipelineConfig{
			Config: cfg,
			Rand:   rand.New(rand.NewPCG(5, 5)),
			Clock:  fixedClock(tt.hour, 0),
		})
		pool := poolSet(cfg.ResponsePools[nlp.IntentGreeting][tt.tod])
		for range 10 {
			record := p.Process("hello")
			assert.Equal(t, tt.tod, record.TimeOfDay)
			assert.True(t, pool[record.ResponseText], "hour %d: greeting %q not in %s pool", tt.hour, record.ResponseText, tt.tod)
		}
	}
}

func TestProcessConfidenceBoostCapped(t *testing.T) {
	rules := []nlp.Rule{{Intent: nlp.IntentGreeting, Keywords: []string{"hello"}, Confidence: 0.95}}
	p := NewPipeline(PipelineConfig{
		Config: &Config{
			Rules:              rules,
			FallbackConfidence: 0.5,
			ResponsePools:      DefaultConfig().ResponsePools,
			FollowUpPools:      DefaultConfig().FollowUpPools,
		},
		Clock: fixedClock(10, 0),
	})

	record := p.Process("hello?")
	assert.Equal(t, nlp.IntentGreeting, record.Intent)
	assert.LessOrEqual(t, record.Confidence, 1.0)
}

func TestProcessClassificationStable(t *testing.T) {
	p := newTestPipeline(fixedClock(11, 0))

	first := p.Process("What books does the library have?")
	for range 20 {
		record := p.Process("What books does the library have?")
		assert.Equal(t, first.Intent, record.Intent)
		assert.Equal(t, first.Confidence, record.Confidence)
		assert.Equal(t, first.InputType, record.InputType)
	}
}

func TestProcessTimestampFromClock(t *testing.T) {
	p := newTestPipeline(fixedClock(8, 45))

	record := p.Process("hi")
	ts, err := time.Parse(time.RFC3339, record.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
}
