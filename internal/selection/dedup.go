package selection

import (
	"sort"
	"strings"

	"github.com/PhilSing24/finreport/internal/model"
)

// Deduplicate collapses records sharing a (title, source) identity key,
// keeping the latest published version of each. The same story shows up
// more than once when a source reissues it with corrections or updates.
//
// Records are sorted ascending by publish time (stable, so non-duplicates
// keep their relative order) and the surviving record sits at the position
// of its last occurrence.
func Deduplicate(articles []model.ArticleRecord) []model.ArticleRecord {
	if len(articles) <= 1 {
		return articles
	}

	sorted := make([]model.ArticleRecord, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	out := make([]model.ArticleRecord, 0, len(sorted))
	pos := make(map[string]int)
	for _, a := range sorted {
		key := dedupKey(a)
		if i, seen := pos[key]; seen {
			// Later version wins and moves to its later position.
			out = append(out[:i], out[i+1:]...)
			for k, v := range pos {
				if v > i {
					pos[k] = v - 1
				}
			}
		}
		pos[key] = len(out)
		out = append(out, a)
	}
	return out
}

func dedupKey(a model.ArticleRecord) string {
	return strings.ToLower(a.Title) + "||" + a.Source
}
