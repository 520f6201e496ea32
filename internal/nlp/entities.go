package nlp

import (
	"iter"
	"regexp"
	"sort"
	"strings"
)

// EntityKind labels the category of an extracted entity.
type EntityKind string

// Entity kinds produced by the extractor.
const (
	EntityNumber  EntityKind = "number"
	EntityDate    EntityKind = "date"
	EntityTime    EntityKind = "time"
	EntityKeyword EntityKind = "keyword"
)

// Entity is a span of interest found in normalized text.
// Span offsets are byte positions into the normalized text.
type Entity struct {
	Kind  EntityKind
	Value string
	Start int
	End   int
}

// Extraction patterns. Times are matched before numbers so "3:30" is not
// reported as two separate numbers; overlaps are resolved by position with
// the earlier (and for ties, more specific) match winning.
var (
	dateRegex   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	timeRegex   = regexp.MustCompile(`\b\d{1,2}:\d{2}(?:\s*(?:am|pm))?\b`)
	numberRegex = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// Extractor scans normalized text for numeric, date/time, and campus-keyword
// entities. The vocabulary is injected at construction and never mutated, so
// a single Extractor is safe for concurrent use.
type Extractor struct {
	vocabulary []string
}

// NewExtractor creates an extractor with the given campus vocabulary.
// Keywords are matched as whole words against normalized text.
func NewExtractor(vocabulary []string) *Extractor {
	vocab := make([]string, len(vocabulary))
	copy(vocab, vocabulary)
	return &Extractor{vocabulary: vocab}
}

// Extract returns a lazy, restartable sequence of entities ordered by
// position in the text. It never fails; text without matches yields an
// empty sequence.
func (e *Extractor) Extract(text NormalizedText) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, ent := range e.collect(text) {
			if !yield(ent) {
				return
			}
		}
	}
}

// ExtractAll materializes the full entity sequence.
func (e *Extractor) ExtractAll(text NormalizedText) []Entity {
	return e.collect(text)
}

func (e *Extractor) collect(text NormalizedText) []Entity {
	s := string(text)
	if s == "" {
		return nil
	}

	var found []Entity
	claimed := make([]bool, len(s))

	claim := func(kind EntityKind, spans [][]int) {
		for _, span := range spans {
			start, end := span[0], span[1]
			if overlaps(claimed, start, end) {
				continue
			}
			markClaimed(claimed, start, end)
			found = append(found, Entity{
				Kind:  kind,
				Value: s[start:end],
				Start: start,
				End:   end,
			})
		}
	}

	// Date and time first: their digit runs must not leak into numbers.
	claim(EntityDate, dateRegex.FindAllStringIndex(s, -1))
	claim(EntityTime, timeRegex.FindAllStringIndex(s, -1))
	claim(EntityNumber, numberRegex.FindAllStringIndex(s, -1))
	claim(EntityKeyword, e.keywordSpans(s))

	sortEntities(found)
	return found
}

// keywordSpans finds whole-word occurrences of each vocabulary entry.
func (e *Extractor) keywordSpans(s string) [][]int {
	var spans [][]int
	for _, kw := range e.vocabulary {
		from := 0
		for {
			i := strings.Index(s[from:], kw)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(kw)
			if isWordBoundary(s, start, end) {
				spans = append(spans, []int{start, end})
			}
			from = end
		}
	}
	return spans
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end && i < len(claimed); i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func markClaimed(claimed []bool, start, end int) {
	for i := start; i < end && i < len(claimed); i++ {
		claimed[i] = true
	}
}

// sortEntities orders by start offset, then longer span first.
func sortEntities(entities []Entity) {
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Start != entities[j].Start {
			return entities[i].Start < entities[j].Start
		}
		return entities[i].End > entities[j].End
	})
}
