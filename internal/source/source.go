package source

import (
	"strings"
)

// Kind distinguishes local files from remote URLs.
type Kind int

const (
	// LocalFile is a path on the local filesystem.
	LocalFile Kind = iota
	// RemoteURL is an http or https URL.
	RemoteURL
)

func (k Kind) String() string {
	switch k {
	case LocalFile:
		return "file"
	case RemoteURL:
		return "url"
	default:
		return "unknown"
	}
}

// FeedSource identifies one feed document to validate.
type FeedSource struct {
	Kind     Kind
	Location string
}

// Local returns a LocalFile source for path.
func Local(path string) FeedSource {
	return FeedSource{Kind: LocalFile, Location: path}
}

// Remote returns a RemoteURL source for url.
func Remote(url string) FeedSource {
	return FeedSource{Kind: RemoteURL, Location: url}
}

// String returns the location. It is also the sort key of a run.
func (s FeedSource) String() string {
	return s.Location
}

// IsURL reports whether target uses the http or https scheme.
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// IsDirectFeedURL reports whether a URL target names a feed document
// rather than a site.
func IsDirectFeedURL(target string) bool {
	for _, ext := range []string{".xml", ".rss", ".atom"} {
		if strings.HasSuffix(target, ext) {
			return true
		}
	}
	return false
}
