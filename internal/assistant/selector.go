package assistant

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/voicerag/campus-assistant-go/internal/nlp"
)

// Reply is the selector output: a response template (with facts
// interpolated) and an independent follow-up prompt.
type Reply struct {
	ResponseText string
	FollowUp     string
}

// Selector picks response and follow-up templates from the configured pools.
// Selection is uniform-random over the applicable pool on every call; there
// is no cross-request memory, so repetition across consecutive calls is
// possible by design of the pools, not prevented by state.
type Selector struct {
	cfg *Config

	// rng is guarded: rand.Rand is not safe for concurrent use, and the
	// pipeline promises concurrency safety.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector over cfg using the provided random source.
// A nil rng gets a fresh PCG-seeded one; tests pass a seeded source to make
// distribution assertions deterministic.
func NewSelector(cfg *Config, rng *rand.Rand) *Selector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{cfg: cfg, rng: rng}
}

// Respond selects a response and follow-up for the classified intent at the
// given time of day. The reply always comes from the pool configured for
// result.Intent; a missing pool falls back to the general_inquiry pool.
func (s *Selector) Respond(result nlp.IntentResult, tod TimeOfDay) Reply {
	response := s.pick(s.cfg.ResponsePools, result.Intent, tod)
	if detail := s.factDetail(result.Intent); detail != "" {
		response = response + " " + detail
	}

	return Reply{
		ResponseText: response,
		FollowUp:     s.pick(s.cfg.FollowUpPools, result.Intent, tod),
	}
}

// pick resolves the pool for (intent, tod) and draws one entry uniformly.
// Resolution order: exact time-of-day pool, the intent's any-time pool, then
// the general_inquiry pool. An empty configuration yields "".
func (s *Selector) pick(pools map[nlp.Intent]map[TimeOfDay][]string, intent nlp.Intent, tod TimeOfDay) string {
	pool := lookupPool(pools, intent, tod)
	if len(pool) == 0 {
		pool = lookupPool(pools, nlp.IntentGeneral, tod)
	}
	if len(pool) == 0 {
		return ""
	}
	if len(pool) == 1 {
		return pool[0]
	}

	s.mu.Lock()
	i := s.rng.IntN(len(pool))
	s.mu.Unlock()
	return pool[i]
}

func lookupPool(pools map[nlp.Intent]map[TimeOfDay][]string, intent nlp.Intent, tod TimeOfDay) []string {
	byTime, ok := pools[intent]
	if !ok {
		return nil
	}
	if pool := byTime[tod]; len(pool) > 0 {
		return pool
	}
	return byTime[TimeAny]
}

// factDetail builds the campus-fact sentence appended to responses for
// intents with a known topic.
func (s *Selector) factDetail(intent nlp.Intent) string {
	switch intent {
	case nlp.IntentLibrary:
		if fact, ok := s.cfg.Facts["library"]; ok {
			return fmt.Sprintf("It's located at %s and is open %s.", fact.Location, fact.Hours)
		}
	case nlp.IntentDining:
		if fact, ok := s.cfg.Facts["cafeteria"]; ok {
			return fmt.Sprintf("The main cafeteria is at %s and serves meals %s.", fact.Location, fact.Hours)
		}
	}
	return ""
}
