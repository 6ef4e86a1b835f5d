package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// minExtractedChars guards against consent walls and stub pages that parse
// to almost no text.
const minExtractedChars = 200

type BodyFetcher struct {
	httpClient *http.Client
}

func NewBodyFetcher() *BodyFetcher {
	return &BodyFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchArticleBody downloads an article page and extracts its paragraph
// text, one paragraph per line.
func (f *BodyFetcher) FetchArticleBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("body request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finreport/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("body fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("body fetch: unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("body parse: %w", err)
	}

	paragraphs := extractParagraphs(doc)
	body := strings.Join(paragraphs, "\n")
	if len(body) < minExtractedChars {
		return "", fmt.Errorf("body fetch: extracted only %d chars", len(body))
	}

	return body, nil
}

var skipElements = map[string]bool{
	"script": true, "style": true, "nav": true,
	"header": true, "footer": true, "aside": true,
}

func extractParagraphs(doc *html.Node) []string {
	var paragraphs []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipElements[n.Data] {
				return
			}
			if n.Data == "p" {
				if text := nodeText(n); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return paragraphs
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
