package keyword

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/unisearch/internal/db"
	"github.com/kailas-cloud/unisearch/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	rows      []db.KeywordRow
	err       error
	gotTokens []string
}

func (m *mockStore) LookupKeywords(_ context.Context, tokens []string) ([]db.KeywordRow, error) {
	m.gotTokens = tokens
	return m.rows, m.err
}

func TestLookup_MapsRows(t *testing.T) {
	ms := &mockStore{rows: []db.KeywordRow{
		{Term: "모드", Synonyms: []string{"mod", " ", "addon"}, Category: "RESOURCE"},
	}}
	entries, err := New(ms).Lookup(context.Background(), []string{"mod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Term() != "모드" || e.Category() != "RESOURCE" {
		t.Errorf("unexpected entry %q/%q", e.Term(), e.Category())
	}
	if !slices.Equal(e.Synonyms(), []string{"mod", "addon"}) {
		t.Errorf("synonyms = %v", e.Synonyms())
	}
	if !slices.Equal(ms.gotTokens, []string{"mod"}) {
		t.Errorf("tokens = %v", ms.gotTokens)
	}
}

func TestLookup_Error(t *testing.T) {
	ms := &mockStore{err: errors.New("timeout")}
	_, err := New(ms).Lookup(context.Background(), []string{"mod"})
	if !errors.Is(err, domain.ErrKeywordLookup) {
		t.Errorf("expected ErrKeywordLookup, got %v", err)
	}
}
