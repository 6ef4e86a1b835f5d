package summarize

import (
	"regexp"
	"strings"
)

const (
	// minParagraphChars filters boilerplate lines out of article bodies.
	minParagraphChars = 60
	// maxChunkChars bounds the text sent per map-stage completion call.
	maxChunkChars = 1800

	maxArticleBullets      = 12
	maxConsolidatedBullets = 18
)

var (
	blankLines  = regexp.MustCompile(`\n\s*\n`)
	nonWordRuns = regexp.MustCompile(`\W+`)
)

// splitParagraphs splits text on blank lines and keeps substantial
// paragraphs only.
func splitParagraphs(text string) []string {
	parts := blankLines.Split(strings.TrimSpace(text), -1)
	paras := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minParagraphChars {
			paras = append(paras, p)
		}
	}
	return paras
}

// groupParagraphs packs paragraphs into chunks of at most maxChars without
// splitting any paragraph. A single paragraph longer than maxChars becomes
// its own chunk.
func groupParagraphs(paras []string, maxChars int) []string {
	var chunks []string
	var cur []string
	curLen := 0
	for _, p := range paras {
		if curLen+len(p)+2 > maxChars && len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, "\n\n"))
			cur, curLen = nil, 0
		}
		cur = append(cur, p)
		curLen += len(p) + 2
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, "\n\n"))
	}
	return chunks
}

// parseBullets extracts bullet lines from completion output: strips bullet
// markers and whitespace, drops near-empty lines.
func parseBullets(out string) []string {
	var bullets []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.Trim(line, " -•\t*\r")
		if len(line) > 3 {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// dedupeBullets removes near-duplicate bullets via a normalized key
// (lowercased, non-word runs collapsed), preserving first-seen order and
// capping the result.
func dedupeBullets(bullets []string, limit int) []string {
	seen := make(map[string]bool)
	var uniq []string
	for _, b := range bullets {
		k := strings.TrimSpace(nonWordRuns.ReplaceAllString(strings.ToLower(b), " "))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		uniq = append(uniq, b)
		if len(uniq) >= limit {
			break
		}
	}
	return uniq
}
