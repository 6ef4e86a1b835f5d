package selection

import (
	"math"
	"strings"
	"unicode"

	"github.com/PhilSing24/finreport/internal/model"
)

// ScoredArticle pairs a record with its relevance score for one selection
// call. The score never leaves this package.
type ScoredArticle struct {
	Article model.ArticleRecord
	Score   float64
}

// DefaultLambda balances relevance and diversity equally.
const DefaultLambda = 0.5

// ApplyMMR selects up to maxArticles using Maximum Marginal Relevance:
// the highest-scoring article seeds the selection, then each round picks
// the candidate maximizing lambda*score - (1-lambda)*maxSimilarityToSelected.
// Ties go to the earliest input index, so identical inputs always produce
// identical output. Inputs of size <= maxArticles are returned unchanged.
func ApplyMMR(articles []ScoredArticle, maxArticles int, lambda float64) []ScoredArticle {
	if len(articles) <= maxArticles {
		return articles
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.Article.Title + " " + a.Article.Summary
	}
	sim := similarityMatrix(texts)

	selected := make([]int, 0, maxArticles)
	remaining := make([]bool, len(articles))
	for i := range remaining {
		remaining[i] = true
	}

	best := 0
	for i := 1; i < len(articles); i++ {
		if articles[i].Score > articles[best].Score {
			best = i
		}
	}
	selected = append(selected, best)
	remaining[best] = false

	for len(selected) < maxArticles {
		bestMMR := math.Inf(-1)
		bestIdx := -1
		for cand := range articles {
			if !remaining[cand] {
				continue
			}
			maxSim := 0.0
			for _, sel := range selected {
				if s := sim[cand][sel]; s > maxSim {
					maxSim = s
				}
			}
			mmr := lambda*articles[cand].Score - (1-lambda)*maxSim
			if mmr > bestMMR {
				bestMMR = mmr
				bestIdx = cand
			}
		}
		if bestIdx < 0 {
			break
		}
		selected = append(selected, bestIdx)
		remaining[bestIdx] = false
	}

	out := make([]ScoredArticle, len(selected))
	for i, idx := range selected {
		out[i] = articles[idx]
	}
	return out
}

// similarityMatrix builds TF-IDF vectors over the texts and returns their
// pairwise cosine similarities. Smoothed IDF and L2 normalization keep the
// values in [0,1].
func similarityMatrix(texts []string) [][]float64 {
	n := len(texts)
	tokenized := make([][]string, n)
	df := make(map[string]int)
	for i, t := range texts {
		tokens := tokenize(t)
		tokenized[i] = tokens
		seen := make(map[string]bool)
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(float64(1+n)/float64(1+count)) + 1
	}

	vectors := make([]map[string]float64, n)
	for i, tokens := range tokenized {
		tf := make(map[string]float64)
		for _, tok := range tokens {
			tf[tok]++
		}
		norm := 0.0
		for term, count := range tf {
			w := count * idf[term]
			tf[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range tf {
				tf[term] /= norm
			}
		}
		vectors[i] = tf
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := dot(vectors[i], vectors[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	sum := 0.0
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "been": true, "but": true, "by": true,
	"can": true, "could": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "may": true, "more": true, "most": true, "new": true,
	"no": true, "not": true, "of": true, "on": true,
	"or": true, "other": true, "our": true, "out": true, "over": true,
	"said": true, "she": true, "so": true, "some": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"up": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "which": true, "while": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}
