// Package knowledge stores campus information (buildings, events, clubs,
// services, FAQs) and answers search queries over it. FAQ lookup uses BM25
// keyword ranking; the structured categories use SQL matching.
package knowledge

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/crawlab-team/bm25"

	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

// FAQResult is one ranked FAQ match.
// Confidence is derived from BM25 rank position, not semantic similarity.
type FAQResult struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   string  `json:"category,omitempty"`
	Score      float64 `json:"-"`
	Rank       int     `json:"-"`
	Confidence float32 `json:"confidence"`
}

// FAQIndex provides keyword-based FAQ search using the BM25 algorithm.
// One document per FAQ, built from the question and answer text.
type FAQIndex struct {
	bm25Okapi   *bm25.BM25Okapi
	corpus      []string
	docIDToFAQ  map[int]*storage.FAQ
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewFAQIndex creates an empty FAQ index
func NewFAQIndex(log *logger.Logger) *FAQIndex {
	return &FAQIndex{
		docIDToFAQ: make(map[int]*storage.FAQ),
		logger:     log,
	}
}

// Initialize builds the BM25 index from the FAQ set. It replaces any
// previous index; BM25 needs the whole corpus for IDF, so updates rebuild.
func (idx *FAQIndex) Initialize(faqs []*storage.FAQ) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.corpus = nil
	idx.docIDToFAQ = make(map[int]*storage.FAQ)
	idx.bm25Okapi = nil

	var corpus []string
	docIndex := 0
	for _, f := range faqs {
		content := strings.TrimSpace(f.Question + " " + f.Answer)
		if content == "" {
			continue
		}
		corpus = append(corpus, content)
		idx.docIDToFAQ[docIndex] = f
		docIndex++
	}

	if len(corpus) == 0 {
		idx.initialized = true
		return nil
	}

	// k1=1.5, b=0.75 are standard BM25 parameters
	bm25Okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}
	idx.corpus = corpus
	idx.bm25Okapi = bm25Okapi
	idx.initialized = true

	idx.logger.WithField("docs", len(corpus)).Info("FAQ index initialized")
	return nil
}

// Search performs BM25 keyword search over the FAQs.
// Returns results sorted by score (descending), at most topN.
func (idx *FAQIndex) Search(query string, topN int) ([]FAQResult, error) {
	if idx == nil || !idx.IsEnabled() {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.bm25Okapi == nil {
		return nil, nil
	}

	tokenizedQuery := tokenize(query)
	if len(tokenizedQuery) == 0 {
		return nil, nil
	}

	scores, err := idx.bm25Okapi.GetScores(tokenizedQuery)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	var results []FAQResult
	for docID, score := range scores {
		if score <= 0 {
			continue
		}
		f := idx.docIDToFAQ[docID]
		if f == nil {
			continue
		}
		results = append(results, FAQResult{
			ID:       f.ID,
			Question: f.Question,
			Answer:   f.Answer,
			Category: f.Category,
			Score:    score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	for i := range results {
		results[i].Rank = i + 1
		results[i].Confidence = computeRankConfidence(i + 1)
	}

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// IsEnabled returns true if the index is initialized
func (idx *FAQIndex) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized
}

// Count returns the number of documents in the index
func (idx *FAQIndex) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.corpus)
}

// computeRankConfidence calculates confidence score from BM25 rank.
// BM25 scores are unbounded and query-dependent, so we use rank as a proxy.
//
// Formula: 1 / (1 + 0.05 * rank)
//   - rank 1 → 0.95
//   - rank 5 → 0.80
//   - rank 10 → 0.67
func computeRankConfidence(rank int) float32 {
	if rank <= 0 {
		return 0
	}
	return float32(1.0 / (1.0 + 0.05*float64(rank)))
}

// tokenize lowercases and splits on non-alphanumeric runes, emitting
// character bigrams for CJK text so no-space languages still match.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var currentWord strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if isCJK(r) {
				if currentWord.Len() > 0 {
					tokens = append(tokens, currentWord.String())
					currentWord.Reset()
				}
				tokens = append(tokens, string(r))
				if i+1 < len(runes) && isCJK(runes[i+1]) {
					tokens = append(tokens, string(r)+string(runes[i+1]))
				}
			} else {
				currentWord.WriteRune(r)
			}
		} else {
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}

// isCJK returns true if the rune is a CJK character
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
