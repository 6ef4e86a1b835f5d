package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const testArticleHTML = `<!DOCTYPE html>
<html>
<head><title>Nvidia Surges</title><style>p { color: red }</style></head>
<body>
<nav><p>Home | Markets | Tech</p></nav>
<article>
<p>Nvidia shares jumped after the company reported record datacenter revenue,
beating analyst expectations for the third consecutive quarter this year.</p>
<p>Management raised full-year guidance, citing sustained demand for AI
accelerators from hyperscale cloud customers across every major region.</p>
<script>trackPageView();</script>
</article>
<footer><p>Copyright 2025</p></footer>
</body>
</html>`

func TestFetchArticleBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testArticleHTML))
	}))
	defer srv.Close()

	f := NewBodyFetcher()
	body, err := f.FetchArticleBody(context.Background(), srv.URL)

	assert.Equal(t, nil, err)

	if !strings.Contains(body, "record datacenter revenue") {
		t.Errorf("body missing first paragraph: %q", body)
	}
	if !strings.Contains(body, "raised full-year guidance") {
		t.Errorf("body missing second paragraph: %q", body)
	}
	if strings.Contains(body, "trackPageView") {
		t.Errorf("script content leaked into body")
	}
	if strings.Contains(body, "Home | Markets") {
		t.Errorf("navigation content leaked into body")
	}
	if strings.Contains(body, "Copyright") {
		t.Errorf("footer content leaked into body")
	}
	assert.Equal(t, 2, len(strings.Split(body, "\n")))
}

func TestFetchArticleBodyTooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Stub page.</p></body></html>"))
	}))
	defer srv.Close()

	f := NewBodyFetcher()
	_, err := f.FetchArticleBody(context.Background(), srv.URL)

	assert.NotEqual(t, nil, err)
}

func TestFetchArticleBodyStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewBodyFetcher()
	_, err := f.FetchArticleBody(context.Background(), srv.URL)

	assert.NotEqual(t, nil, err)
}
