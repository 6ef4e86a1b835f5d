package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/PhilSing24/finreport/internal/selection"
)

// maxInputChars trims very long bodies to keep extraction snappy.
const maxInputChars = 3000

// Extractor produces ranked keywords for an article body. Implementations
// are constructed explicitly and injected; there is no package-global
// model behind a first-call latency cliff.
type Extractor interface {
	Extract(text, ticker string, topN int) []string
}

// TermExtractor ranks terms by frequency, boosting terms from the ticker's
// finance-hint vocabulary so domain terms surface ahead of generic ones.
type TermExtractor struct {
	hintBoost float64
}

func NewTermExtractor() *TermExtractor {
	return &TermExtractor{hintBoost: 2.0}
}

func (e *TermExtractor) Extract(text, ticker string, topN int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	hints := make(map[string]bool)
	for _, h := range selection.HintVocabulary(ticker) {
		hints[strings.ToLower(h)] = true
	}

	freq := make(map[string]float64)
	order := make(map[string]int)
	for i, tok := range tokenize(text) {
		freq[tok]++
		if _, seen := order[tok]; !seen {
			order[tok] = i
		}
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		if hints[term] {
			freq[term] *= e.hintBoost
		}
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return order[terms[i]] < order[terms[j]]
	})

	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

var stopwords = map[string]bool{
	"about": true, "after": true, "all": true, "also": true, "and": true,
	"any": true, "are": true, "been": true, "but": true, "can": true,
	"could": true, "for": true, "from": true, "had": true, "has": true,
	"have": true, "her": true, "his": true, "into": true, "its": true,
	"may": true, "more": true, "most": true, "new": true, "not": true,
	"other": true, "our": true, "out": true, "over": true, "said": true,
	"she": true, "some": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "was": true, "were": true, "what": true,
	"when": true, "which": true, "while": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}
