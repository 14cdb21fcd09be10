package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

// hiddenElements never contribute visible text.
const hiddenElements = "script, style, noscript, template"

type PageFetcher struct {
	client *resty.Client
}

// NewPageFetcher sends userAgent on every request. timeout zero leaves the
// client without a deadline.
func NewPageFetcher(userAgent string, timeout time.Duration) *PageFetcher {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &PageFetcher{client: client}
}

// Fetch implements analysis.Fetcher
func (f *PageFetcher) Fetch(ctx context.Context, url string) (domain.PageContent, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &domain.FetchError{URL: url, Err: fmt.Errorf("%s for url: %s", resp.Status(), url)}
	}

	text, err := ExtractText(resp.Body())
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	return domain.PageContent(text), nil
}

// ExtractText joins every visible text node of an HTML document with single
// spaces. Each node is trimmed and blank nodes are skipped.
func ExtractText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(hiddenElements).Remove()

	var parts []string
	collectText(doc.Selection, &parts)
	return strings.Join(parts, " "), nil
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			if text := strings.TrimSpace(s.Text()); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		collectText(s, parts)
	})
}
