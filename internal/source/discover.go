package source

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// feedMIMETypes are the link types accepted by autodiscovery.
var feedMIMETypes = map[string]bool{
	"application/rss+xml":  true,
	"application/atom+xml": true,
	"application/rdf+xml":  true,
	"application/xml":      true,
	"text/xml":             true,
}

// discoverFeeds fetches the page at target and returns the feeds it
// advertises with <link rel="alternate">, in document order.
func (r *Resolver) discoverFeeds(ctx context.Context, target string) ([]FeedSource, error) {
	page, err := r.client.GetPage(ctx, target)
	if err != nil {
		return nil, err
	}
	links, err := ExtractFeedLinks(page, target)
	if err != nil {
		return nil, err
	}

	sources := make([]FeedSource, 0, len(links))
	for _, l := range links {
		sources = append(sources, Remote(l))
	}
	return sources, nil
}

// ExtractFeedLinks returns the absolute, de-duplicated URLs of the RSS and
// Atom alternates declared by an HTML page located at pageURL.
func ExtractFeedLinks(page []byte, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing page URL %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if !hasToken(s.AttrOr("rel", ""), "alternate") {
			return
		}
		mime := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if i := strings.IndexByte(mime, ';'); i >= 0 {
			mime = strings.TrimSpace(mime[:i])
		}
		if !feedMIMETypes[mime] {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}

		u := abs.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, u)
	})

	return links, nil
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
