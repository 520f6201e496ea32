package knowledge

import (
	"context"
	"testing"

	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

func newTestKB(t *testing.T) *KB {
	t.Helper()
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kb := New(db, logger.New("error"), nil)
	if err := kb.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return kb
}

func TestInitializeSeedsEmptyDatabase(t *testing.T) {
	kb := newTestKB(t)

	if kb.FAQCount() == 0 {
		t.Error("Initialize() should seed and index FAQs")
	}

	results, err := kb.Search(context.Background(), CategoryBuilding, "library", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Buildings) == 0 {
		t.Error("seeded data should contain the library building")
	}
}

func TestInitializeIdempotent(t *testing.T) {
	kb := newTestKB(t)

	before := kb.FAQCount()
	if err := kb.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if kb.FAQCount() != before {
		t.Errorf("second Initialize() changed FAQ count from %d to %d", before, kb.FAQCount())
	}
}

func TestSearchSingleCategory(t *testing.T) {
	kb := newTestKB(t)
	ctx := context.Background()

	results, err := kb.Search(ctx, CategoryClub, "basketball", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Clubs) != 1 {
		t.Fatalf("Search(club, basketball) = %d clubs, want 1", len(results.Clubs))
	}
	if results.Buildings != nil || results.Events != nil || results.Services != nil || results.FAQs != nil {
		t.Error("single-category search should not populate other categories")
	}
}

func TestSearchAllCategories(t *testing.T) {
	kb := newTestKB(t)

	results, err := kb.Search(context.Background(), "all", "library", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Buildings) == 0 {
		t.Error("all-category search should find the library building")
	}
	if len(results.Services) == 0 {
		t.Error("all-category search should find library services")
	}
	if len(results.FAQs) == 0 {
		t.Error("all-category search should find the library hours FAQ")
	}
}

func TestSearchNoHits(t *testing.T) {
	kb := newTestKB(t)

	results, err := kb.Search(context.Background(), "", "qqqzzz", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !results.Empty() {
		t.Error("nonsense query should produce empty results")
	}
}

func TestExport(t *testing.T) {
	kb := newTestKB(t)

	snap, err := kb.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(snap.Buildings) == 0 || len(snap.Events) == 0 || len(snap.Clubs) == 0 ||
		len(snap.Services) == 0 || len(snap.FAQs) == 0 {
		t.Error("Export() should include every seeded category")
	}
	if snap.ExportedAt == "" {
		t.Error("Export() should stamp the export time")
	}
}
