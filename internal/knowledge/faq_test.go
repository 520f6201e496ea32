package knowledge

import (
	"testing"

	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

func testFAQs() []*storage.FAQ {
	return []*storage.FAQ{
		{ID: "wifi", Question: "How do I connect to campus wifi?", Answer: "Use the CampusNet network with your student credentials.", Category: "it"},
		{ID: "parking", Question: "Where can I park on campus?", Answer: "Student parking is available in Lots B and C with a permit.", Category: "facilities"},
		{ID: "library", Question: "What are the library hours?", Answer: "The library is open 8 AM to 10 PM on weekdays.", Category: "facilities"},
	}
}

func newTestIndex(t *testing.T) *FAQIndex {
	t.Helper()
	idx := NewFAQIndex(logger.New("error"))
	if err := idx.Initialize(testFAQs()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return idx
}

func TestFAQSearchRanksRelevantFirst(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("wifi network connection", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].ID != "wifi" {
		t.Errorf("top result = %s, want wifi", results[0].ID)
	}
	if results[0].Rank != 1 {
		t.Errorf("top result rank = %d, want 1", results[0].Rank)
	}
	if results[0].Confidence <= results[len(results)-1].Confidence && len(results) > 1 {
		t.Error("confidence should decrease with rank")
	}
}

func TestFAQSearchTopN(t *testing.T) {
	idx := newTestIndex(t)

	// "campus" appears in several documents
	results, err := idx.Search("campus", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) > 1 {
		t.Errorf("Search(topN=1) = %d results, want at most 1", len(results))
	}
}

func TestFAQSearchNoMatch(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("zxqwv", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(nonsense) = %d results, want 0", len(results))
	}
}

func TestFAQSearchEmptyQuery(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("   ", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results != nil {
		t.Errorf("Search(blank) = %v, want nil", results)
	}
}

func TestFAQIndexEmptyCorpus(t *testing.T) {
	idx := NewFAQIndex(logger.New("error"))
	if err := idx.Initialize(nil); err != nil {
		t.Fatalf("Initialize(nil) error = %v", err)
	}
	if !idx.IsEnabled() {
		t.Error("empty index should still report enabled")
	}

	results, err := idx.Search("anything", 5)
	if err != nil {
		t.Fatalf("Search() on empty index error = %v", err)
	}
	if results != nil {
		t.Errorf("Search() on empty index = %v, want nil", results)
	}
}

func TestComputeRankConfidence(t *testing.T) {
	tests := []struct {
		rank int
		want float64
	}{
		{1, 1.0 / 1.05},
		{5, 0.8},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		got := float64(computeRankConfidence(tt.rank))
		if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("computeRankConfidence(%d) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}

func TestTokenizeCJKBigrams(t *testing.T) {
	tokens := tokenize("圖書館 library")
	want := map[string]bool{"圖": true, "圖書": true, "書": true, "書館": true, "館": true, "library": true}
	for _, tok := range tokens {
		if !want[tok] {
			t.Errorf("unexpected token %q", tok)
		}
	}
	if len(tokens) != len(want) {
		t.Errorf("tokenize() = %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
}
