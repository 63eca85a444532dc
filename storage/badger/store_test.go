package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/addrect/core"
	"github.com/poiesic/addrect/storage"
)

func newTestStore(t *testing.T) storage.ReferenceStore {
	t.Helper()

	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func testRecords() []*core.ReferenceRecord {
	return []*core.ReferenceRecord{
		{VendorName: "Starbucks", Address: "1912 Pike Pl", City: "Seattle", Postcode: "98101", Country: "US"},
		{VendorName: "Apple Store", Address: "189 The Grove Dr", City: "Los Angeles", Postcode: "90036", Country: "US"},
		{VendorName: "Whole Foods Market", Address: "1701 Wewatta St", City: "Denver", Postcode: "80202", Country: "US"},
	}
}

func TestInsertAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}

	added, err := store.InsertReferences(ctx, testRecords(), embeddings)
	if err != nil {
		t.Fatalf("Failed to insert references: %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(added))
	}
	for _, rec := range added {
		if rec.Id == 0 {
			t.Fatal("Expected non-zero ID")
		}
	}

	results, err := store.SearchSimilar(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(results))
	}

	// Ordered by descending cosine similarity.
	if results[0].Record.VendorName != "Starbucks" {
		t.Fatalf("Expected Starbucks first, got %s", results[0].Record.VendorName)
	}
	if results[1].Record.VendorName != "Whole Foods Market" {
		t.Fatalf("Expected Whole Foods Market second, got %s", results[1].Record.VendorName)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Fatalf("Candidates out of order at %d: %f > %f", i, results[i].Similarity, results[i-1].Similarity)
		}
	}
}

func TestSearchTopKLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if _, err := store.InsertReferences(ctx, testRecords(), embeddings); err != nil {
		t.Fatalf("Failed to insert references: %v", err)
	}

	results, err := store.SearchSimilar(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(results))
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := newTestStore(t)

	results, err := store.SearchSimilar(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search on empty store failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no candidates, got %d", len(results))
	}
}

func TestSearchInvalidTopK(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SearchSimilar(context.Background(), []float32{1, 0, 0}, 0)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}
}

func TestDimensionEnforcement(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := testRecords()
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if _, err := store.InsertReferences(ctx, records, embeddings); err != nil {
		t.Fatalf("Failed to insert references: %v", err)
	}

	dims, err := store.Dimensions(ctx)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if dims != 3 {
		t.Fatalf("Expected 3 dimensions, got %d", dims)
	}

	// Mismatched insert.
	_, err = store.InsertReferences(ctx,
		[]*core.ReferenceRecord{{VendorName: "Tesco", Address: "22 High St"}},
		[][]float32{{1, 0}})
	if !errors.Is(err, storage.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch on insert, got %v", err)
	}

	// Mismatched query.
	_, err = store.SearchSimilar(ctx, []float32{1, 0}, 5)
	if !errors.Is(err, storage.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch on search, got %v", err)
	}
}

func TestCountMismatch(t *testing.T) {
	store := newTestStore(t)

	_, err := store.InsertReferences(context.Background(), testRecords(), [][]float32{{1, 0, 0}})
	if !errors.Is(err, storage.ErrCountMismatch) {
		t.Fatalf("Expected ErrCountMismatch, got %v", err)
	}
}

func TestReplaceAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if _, err := store.InsertReferences(ctx, testRecords(), embeddings); err != nil {
		t.Fatalf("Failed to insert references: %v", err)
	}

	// Replace with a smaller set in a different dimensionality.
	replacement := []*core.ReferenceRecord{
		{VendorName: "Carrefour City", Address: "31 Rue de Rivoli", City: "Paris", Country: "FR"},
	}
	err := store.ReplaceAll(ctx, replacement, [][]float32{{0.5, 0.5}})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	dims, err := store.Dimensions(ctx)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if dims != 2 {
		t.Fatalf("Expected 2 dimensions after replace, got %d", dims)
	}

	results, err := store.SearchSimilar(ctx, []float32{0.5, 0.5}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 candidate after replace, got %d", len(results))
	}
	if results[0].Record.VendorName != "Carrefour City" {
		t.Fatalf("Expected Carrefour City, got %s", results[0].Record.VendorName)
	}
}

func TestInsertValidation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.InsertReferences(context.Background(),
		[]*core.ReferenceRecord{{VendorName: "", Address: "1 Main St"}},
		[][]float32{{1, 0}})
	if !errors.Is(err, core.ErrEmptyVendorName) {
		t.Fatalf("Expected ErrEmptyVendorName, got %v", err)
	}
}

func TestClosedStore(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	store.Close()
	backend.Close()

	_, err = store.SearchSimilar(context.Background(), []float32{1}, 1)
	if !errors.Is(err, storage.ErrStorageClosed) {
		t.Fatalf("Expected ErrStorageClosed, got %v", err)
	}
}
