package selection

import "strings"

// financeHints maps a ticker to the vocabulary used for the hint-overlap
// scoring signal. The "*" entry is the fallback for unlisted tickers.
var financeHints = map[string][]string{
	"NVDA": {
		"revenue", "earnings", "eps", "guidance", "margin", "beat", "miss", "analyst",
		"upgrade", "downgrade", "china", "competition", "valuation",
		"ai", "datacenter", "gpu", "blackwell", "h100", "h20", "export", "semiconductor",
	},
	"TSLA": {
		"revenue", "earnings", "eps", "guidance", "margin", "beat", "miss", "analyst",
		"upgrade", "downgrade", "china", "competition", "valuation",
		"delivery", "production", "fsd", "full self-driving", "robotaxi",
		"musk", "ev", "autonomy", "cybertruck",
	},
	"*": {
		"revenue", "earnings", "eps", "guidance", "margin", "beat", "miss", "analyst",
		"upgrade", "downgrade", "china", "competition", "valuation",
	},
}

// HintVocabulary returns the lowercase hint terms for a ticker, falling back
// to the universal set when the ticker has no dedicated entry.
func HintVocabulary(ticker string) []string {
	if hints, ok := financeHints[strings.ToUpper(ticker)]; ok {
		return hints
	}
	return financeHints["*"]
}
