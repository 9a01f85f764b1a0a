package jtac

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// DefaultURL is the JTAC suggested-releases support article.
const DefaultURL = "https://supportportal.juniper.net/s/article/Junos-Software-Versions-Suggested-Releases-to-Consider-and-Evaluate?language=en_US"

// ErrTableNotFound reports a family table missing from the fetched page.
var ErrTableNotFound = errors.New("table not found on page")

// Fetcher loads the JTAC page and locates each family's table by its
// summary attribute. The tables are injected client-side, so the page is
// polled until the EX table (the canary for the rest) appears.
type Fetcher struct {
	URL      string
	Client   *http.Client
	Interval time.Duration // wait between poll attempts
	Attempts int           // bounded: give up after this many fetches
}

// NewFetcher returns a Fetcher with the retry behaviour the page needs in
// practice: ten attempts two seconds apart.
func NewFetcher(url string) *Fetcher {
	return &Fetcher{
		URL:      url,
		Client:   &http.Client{Timeout: 30 * time.Second},
		Interval: 2 * time.Second,
		Attempts: 10,
	}
}

// Tables fetches the page and returns every family table as a grid of cell
// strings, keyed by table summary. Rows holding no td elements (headers)
// come back as empty rows; the extractor skips them.
func (f *Fetcher) Tables(ctx context.Context, families []Family) (map[string][][]string, error) {
	if len(families) == 0 {
		return nil, errors.New("no families to fetch")
	}
	canary := families[0].Summary

	var doc *html.Node
	for attempt := 1; ; attempt++ {
		log.Debugf("fetching %s (attempt %d/%d)", f.URL, attempt, f.Attempts)

		fetched, err := f.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if findTable(fetched, canary) != nil {
			doc = fetched
			break
		}

		if attempt >= f.Attempts {
			return nil, fmt.Errorf("%q after %d attempts: %w", canary, f.Attempts, ErrTableNotFound)
		}
		select {
		case <-time.After(f.Interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Once the canary rendered, the rest of the tables are present too
	tables := make(map[string][][]string, len(families))
	for _, fam := range families {
		if _, ok := tables[fam.Summary]; ok {
			continue
		}
		table := findTable(doc, fam.Summary)
		if table == nil {
			return nil, fmt.Errorf("%q: %w", fam.Summary, ErrTableNotFound)
		}
		tables[fam.Summary] = tableRows(table)
	}
	return tables, nil
}

func (f *Fetcher) fetch(ctx context.Context) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching releases page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching releases page: unexpected status %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing releases page: %w", err)
	}
	return doc, nil
}

// findTable walks the document for a table element whose summary attribute
// matches.
func findTable(n *html.Node, summary string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, attr := range n.Attr {
			if attr.Key == "summary" && attr.Val == summary {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTable(c, summary); found != nil {
			return found
		}
	}
	return nil
}

// tableRows flattens a table element into rows of td text, one string per
// cell, whitespace-trimmed.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	walk(table, "tr", func(tr *html.Node) {
		var cells []string
		walk(tr, "td", func(td *html.Node) {
			cells = append(cells, strings.TrimSpace(textContent(td)))
		})
		rows = append(rows, cells)
	})
	return rows
}

// walk calls fn for each descendant element with the given tag, without
// descending into matches (nested tables stay with their own row).
func walk(n *html.Node, tag string, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			fn(c)
			continue
		}
		walk(c, tag, fn)
	}
}

// textContent concatenates every text node under n, the way a browser's
// element.text reads.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
