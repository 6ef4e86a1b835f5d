package keywords

import "strings"

// minSummaryParagraphChars filters navigation fragments and bylines out of
// scraped article bodies before extractive summarization.
const minSummaryParagraphChars = 100

// ExtractiveSummary returns the two highest-weight paragraphs of an
// article body, joined by a blank line. Paragraph weight is the summed
// term frequency of its tokens over the whole body, so paragraphs dense in
// the article's own vocabulary win. Returns "" when no paragraph is
// substantial enough.
func ExtractiveSummary(text string) string {
	var paras []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > minSummaryParagraphChars {
			paras = append(paras, line)
		}
	}
	if len(paras) == 0 {
		return ""
	}
	if len(paras) == 1 {
		return paras[0]
	}

	freq := make(map[string]float64)
	tokenized := make([][]string, len(paras))
	for i, p := range paras {
		tokens := tokenize(p)
		tokenized[i] = tokens
		for _, tok := range tokens {
			freq[tok]++
		}
	}

	type ranked struct {
		index int
		score float64
	}
	scores := make([]ranked, len(paras))
	for i, tokens := range tokenized {
		s := 0.0
		for _, tok := range tokens {
			s += freq[tok]
		}
		scores[i] = ranked{index: i, score: s}
	}

	best := scores[0]
	second := ranked{index: -1}
	for _, r := range scores[1:] {
		if r.score > best.score {
			second = best
			best = r
		} else if second.index < 0 || r.score > second.score {
			second = r
		}
	}

	return strings.TrimSpace(paras[best.index] + "\n\n" + paras[second.index])
}
