package knowledge

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

// Known search categories. An empty or "all" category searches everything.
const (
	CategoryBuilding = "building"
	CategoryEvent    = "event"
	CategoryClub     = "club"
	CategoryService  = "service"
	CategoryFAQ      = "faq"
)

// DefaultFAQLimit bounds FAQ results per search.
const DefaultFAQLimit = 5

// Results groups search hits by category. Empty categories are omitted
// from the JSON payload.
type Results struct {
	Buildings []*storage.Building `json:"buildings,omitempty"`
	Events    []*storage.Event    `json:"events,omitempty"`
	Clubs     []*storage.Club     `json:"clubs,omitempty"`
	Services  []*storage.Service  `json:"services,omitempty"`
	FAQs      []FAQResult         `json:"faqs,omitempty"`
}

// Empty reports whether the search produced no hits in any category.
func (r *Results) Empty() bool {
	return len(r.Buildings) == 0 && len(r.Events) == 0 && len(r.Clubs) == 0 &&
		len(r.Services) == 0 && len(r.FAQs) == 0
}

// Snapshot is the full knowledge base content, used by the snapshot
// exporter.
type Snapshot struct {
	Buildings  []*storage.Building `json:"buildings"`
	Events     []*storage.Event    `json:"events"`
	Clubs      []*storage.Club     `json:"clubs"`
	Services   []*storage.Service  `json:"services"`
	FAQs       []*storage.FAQ      `json:"faqs"`
	ExportedAt string              `json:"exported_at"`
}

// KB is the campus knowledge base: structured records in SQLite plus a
// BM25 index over the FAQs.
type KB struct {
	db      *storage.DB
	faq     *FAQIndex
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// New creates a knowledge base over db. metrics may be nil.
func New(db *storage.DB, log *logger.Logger, m *metrics.Metrics) *KB {
	return &KB{
		db:      db,
		faq:     NewFAQIndex(log),
		logger:  log.WithModule("knowledge"),
		metrics: m,
	}
}

// Initialize seeds the database with the built-in campus data when it is
// empty and builds the FAQ index. Call once at startup.
func (kb *KB) Initialize(ctx context.Context) error {
	faqs, err := kb.db.ListFAQs(ctx)
	if err != nil {
		return fmt.Errorf("load faqs: %w", err)
	}
	if len(faqs) == 0 {
		if err := kb.seed(ctx); err != nil {
			return fmt.Errorf("seed knowledge base: %w", err)
		}
		if faqs, err = kb.db.ListFAQs(ctx); err != nil {
			return fmt.Errorf("reload faqs: %w", err)
		}
		kb.logger.Info("Knowledge base seeded with built-in campus data")
	}
	return kb.faq.Initialize(faqs)
}

// Search runs a query against one category, or all of them when category
// is empty or "all". Unknown categories return ErrInvalidInput via the
// caller's validation; here they just produce empty results.
func (kb *KB) Search(ctx context.Context, category, query string, faqLimit int) (*Results, error) {
	if faqLimit <= 0 {
		faqLimit = DefaultFAQLimit
	}

	start := time.Now()
	results := &Results{}
	all := category == "" || category == "all"

	var err error
	if all || category == CategoryBuilding {
		if results.Buildings, err = kb.db.SearchBuildings(ctx, query); err != nil {
			kb.record(category, "error", start)
			return nil, err
		}
	}
	if all || category == CategoryEvent {
		if results.Events, err = kb.db.SearchEvents(ctx, query); err != nil {
			kb.record(category, "error", start)
			return nil, err
		}
	}
	if all || category == CategoryClub {
		if results.Clubs, err = kb.db.SearchClubs(ctx, query); err != nil {
			kb.record(category, "error", start)
			return nil, err
		}
	}
	if all || category == CategoryService {
		if results.Services, err = kb.db.SearchServices(ctx, query); err != nil {
			kb.record(category, "error", start)
			return nil, err
		}
	}
	if all || category == CategoryFAQ {
		if results.FAQs, err = kb.faq.Search(query, faqLimit); err != nil {
			kb.record(category, "error", start)
			return nil, err
		}
	}

	kb.record(category, "success", start)
	return results, nil
}

// Export collects the full knowledge base content for the snapshot
// exporter. Category fetches run concurrently.
func (kb *KB) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Buildings, err = kb.db.SearchBuildings(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.Events, err = kb.db.SearchEvents(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.Clubs, err = kb.db.SearchClubs(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.Services, err = kb.db.SearchServices(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.FAQs, err = kb.db.ListFAQs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.ExportedAt = time.Now().UTC().Format(time.RFC3339)
	return snap, nil
}

// FAQCount returns the number of indexed FAQ documents.
func (kb *KB) FAQCount() int {
	return kb.faq.Count()
}

func (kb *KB) record(category, status string, start time.Time) {
	if kb.metrics == nil {
		return
	}
	if category == "" {
		category = "all"
	}
	kb.metrics.RecordKnowledgeSearch(category, status, time.Since(start).Seconds())
}
