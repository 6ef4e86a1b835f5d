package selection

import (
	"testing"
	"time"

	"github.com/PhilSing24/finreport/internal/model"
)

func TestDeduplicateKeepsLatest(t *testing.T) {
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	a := model.ArticleRecord{ID: 1, Title: "Nvidia beats estimates", Source: "finance.yahoo.com", PublishedAt: base}
	b := model.ArticleRecord{ID: 2, Title: "Tesla deliveries rise", Source: "finance.yahoo.com", PublishedAt: base.Add(time.Hour)}
	aLater := model.ArticleRecord{ID: 3, Title: "Nvidia beats estimates", Source: "finance.yahoo.com", PublishedAt: base.Add(2 * time.Hour)}

	orders := [][]model.ArticleRecord{
		{a, b, aLater},
		{aLater, b, a},
		{b, a, aLater},
		{aLater, a, b},
	}

	for _, input := range orders {
		got := Deduplicate(input)
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		if got[0].ID != 2 || got[1].ID != 3 {
			t.Errorf("got IDs [%d, %d], want [2, 3]", got[0].ID, got[1].ID)
		}
	}
}

func TestDeduplicateCaseInsensitiveTitle(t *testing.T) {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	input := []model.ArticleRecord{
		{ID: 1, Title: "NVIDIA Beats Estimates", Source: "reuters.com", PublishedAt: base},
		{ID: 2, Title: "nvidia beats estimates", Source: "reuters.com", PublishedAt: base.Add(time.Minute)},
	}

	got := Deduplicate(input)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("got %+v, want single record with ID 2", got)
	}
}

func TestDeduplicateDistinctSources(t *testing.T) {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	input := []model.ArticleRecord{
		{ID: 1, Title: "Nvidia beats estimates", Source: "reuters.com", PublishedAt: base},
		{ID: 2, Title: "Nvidia beats estimates", Source: "finance.yahoo.com", PublishedAt: base.Add(time.Minute)},
	}

	got := Deduplicate(input)
	if len(got) != 2 {
		t.Errorf("same title from different sources collapsed: got %d records", len(got))
	}
}

func TestDeduplicateStableForNonDuplicates(t *testing.T) {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	input := []model.ArticleRecord{
		{ID: 1, Title: "First", Source: "a", PublishedAt: base},
		{ID: 2, Title: "Second", Source: "a", PublishedAt: base},
		{ID: 3, Title: "Third", Source: "a", PublishedAt: base},
	}

	got := Deduplicate(input)
	for i, want := range []int64{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("position %d: got ID %d, want %d", i, got[i].ID, want)
		}
	}
}
