package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgard/civilkabot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })
	return database.NewStore(db, nil)
}

func saveQuote(t *testing.T, store database.Store, userID int64, category string, price int) *database.Quote {
	t.Helper()
	q := &database.Quote{
		ChatID:         userID,
		UserID:         userID,
		Brand:          "BMW",
		Model:          "X3",
		Year:           2015,
		EngineVolumeCC: 1998,
		FuelType:       "gasoline",
		Category:       category,
		Price:          price,
	}
	if err := store.SaveQuote(context.Background(), q); err != nil {
		t.Fatalf("SaveQuote() error = %v", err)
	}
	return q
}

func TestSaveAndGetRecentQuotes(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	first := saveQuote(t, store, 100, "B2", 1500)
	saveQuote(t, store, 200, "B1", 1300)
	last := saveQuote(t, store, 100, "B3", 1700)

	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("SaveQuote() left ID=%d CreatedAt=%v unset", first.ID, first.CreatedAt)
	}
	if first.Source != database.SourceText {
		t.Errorf("Source = %q, want default %q", first.Source, database.SourceText)
	}

	quotes, err := store.GetRecentQuotes(ctx, 100, 5)
	if err != nil {
		t.Fatalf("GetRecentQuotes() error = %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("GetRecentQuotes() returned %d quotes, want 2", len(quotes))
	}
	if quotes[0].ID != last.ID || quotes[1].ID != first.ID {
		t.Errorf("GetRecentQuotes() order = [%d %d], want [%d %d]", quotes[0].ID, quotes[1].ID, last.ID, first.ID)
	}
	if quotes[0].Category != "B3" || quotes[0].Price != 1700 || quotes[0].Brand != "BMW" {
		t.Errorf("GetRecentQuotes()[0] = %+v", quotes[0])
	}

	limited, err := store.GetRecentQuotes(ctx, 100, 1)
	if err != nil {
		t.Fatalf("GetRecentQuotes() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("GetRecentQuotes(limit=1) returned %d quotes", len(limited))
	}

	none, err := store.GetRecentQuotes(ctx, 300, 5)
	if err != nil {
		t.Fatalf("GetRecentQuotes() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("GetRecentQuotes() for unknown user returned %d quotes", len(none))
	}
}

func TestSaveQuoteValidation(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	testCases := map[string]*database.Quote{
		"nil":         nil,
		"no user":     {Category: "B2", Price: 1500},
		"no category": {UserID: 1, Price: 1500},
		"no price":    {UserID: 1, Category: "B2"},
	}
	for name, q := range testCases {
		if err := store.SaveQuote(context.Background(), q); err == nil {
			t.Errorf("SaveQuote(%s) error = nil, want error", name)
		}
	}
}

func TestGetQuoteStats(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	stats, err := store.GetQuoteStats(context.Background())
	if err != nil {
		t.Fatalf("GetQuoteStats() error = %v", err)
	}
	if stats.Total != 0 || len(stats.ByCategory) != 0 {
		t.Errorf("GetQuoteStats() on empty journal = %+v", stats)
	}

	saveQuote(t, store, 1, "B2", 1500)
	saveQuote(t, store, 2, "B2", 1500)
	saveQuote(t, store, 2, "A1", 700)

	stats, err = store.GetQuoteStats(context.Background())
	if err != nil {
		t.Fatalf("GetQuoteStats() error = %v", err)
	}
	if stats.Total != 3 || stats.Users != 2 {
		t.Errorf("GetQuoteStats() total=%d users=%d, want 3 and 2", stats.Total, stats.Users)
	}
	want := []database.CategoryCount{{Category: "B2", Count: 2}, {Category: "A1", Count: 1}}
	if len(stats.ByCategory) != len(want) {
		t.Fatalf("ByCategory = %+v, want %+v", stats.ByCategory, want)
	}
	for i := range want {
		if stats.ByCategory[i] != want[i] {
			t.Errorf("ByCategory[%d] = %+v, want %+v", i, stats.ByCategory[i], want[i])
		}
	}
}

func TestDeleteQuotesBefore(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	saveQuote(t, store, 1, "B2", 1500)
	saveQuote(t, store, 1, "B3", 1700)

	deleted, err := store.DeleteQuotesBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteQuotesBefore() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("DeleteQuotesBefore(past) = %d, want 0", deleted)
	}

	deleted, err = store.DeleteQuotesBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteQuotesBefore() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteQuotesBefore(future) = %d, want 2", deleted)
	}

	if _, err := store.DeleteQuotesBefore(ctx, time.Time{}); err == nil {
		t.Error("DeleteQuotesBefore(zero) error = nil, want error")
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Errorf("RunSQLMaintenance() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.RunSQLMaintenance(ctx); err == nil {
		t.Error("RunSQLMaintenance(cancelled) error = nil, want error")
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()
	testCases := map[string]string{
		"storage.db":                         "storage.db",
		"file:storage.db":                    "storage.db",
		"file:storage.db?_pragma=foreign(1)": "storage.db",
		"data/my%20bot.db":                   "data/my bot.db",
	}
	for in, want := range testCases {
		if got := database.ExtractDBNameFromPath(in); got != want {
			t.Errorf("ExtractDBNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
