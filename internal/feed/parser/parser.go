// Package parser turns raw feed text into a ParsedFeed.
//
// Parsing is delegated to github.com/mmcdole/gofeed. The package adds what
// the validation rules need on top of it: a well-formedness check that marks
// broken markup as malformed instead of failing, feedparser-style version
// identifiers, and explicit optional fields.
package parser

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// ErrEmptyDocument indicates the content has no root element.
var ErrEmptyDocument = errors.New("document has no root element")

// Parser parses feed documents.
type Parser struct {
	gofeedParser *gofeed.Parser
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Parse parses text. It never returns an error: content that cannot be
// parsed yields a ParsedFeed with Malformed set.
func (p *Parser) Parse(text string) *ParsedFeed {
	feedType := gofeed.DetectFeedType(strings.NewReader(text))

	if feedType != gofeed.FeedTypeJSON {
		if err := checkWellFormed(text); err != nil {
			return malformed(err)
		}
	}

	feed, err := p.gofeedParser.ParseString(text)
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			// Well-formed markup that is not a feed: nothing to read a
			// version from.
			return &ParsedFeed{}
		}
		return malformed(err)
	}

	return convert(feed)
}

func malformed(err error) *ParsedFeed {
	return &ParsedFeed{
		Malformed:  true,
		ParseError: err,
	}
}

func convert(feed *gofeed.Feed) *ParsedFeed {
	parsed := &ParsedFeed{
		Version: VersionID(feed.FeedType, feed.FeedVersion),
		Channel: Channel{
			Title:       fieldOf(feed.Title),
			Link:        fieldOf(feed.Link),
			Description: fieldOf(feed.Description),
			Language:    fieldOf(feed.Language),
			Generator:   fieldOf(feed.Generator),
		},
		Items: make([]Item, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		parsed.Items = append(parsed.Items, Item{
			Title:       fieldOf(item.Title),
			Description: fieldOf(item.Description),
			GUID:        fieldOf(item.GUID),
			Published:   fieldOf(item.Published),
			Link:        fieldOf(item.Link),
		})
	}

	return parsed
}

// VersionID builds a feedparser-style version identifier from a feed type
// and version, e.g. ("rss", "2.0") -> "rss20" and ("atom", "1.0") -> "atom10".
// It returns "" when either part is unknown.
func VersionID(feedType, feedVersion string) string {
	version := strings.ReplaceAll(strings.TrimSpace(feedVersion), ".", "")
	if version == "" {
		return ""
	}
	switch feedType {
	case "rss", "atom", "json":
		return feedType + version
	default:
		return ""
	}
}

// Well-formedness errors found outside the syntax checks of encoding/xml.
var (
	ErrJunkAfterRoot  = errors.New("junk after document element")
	ErrJunkBeforeRoot = errors.New("text before document element")
)

// entityDecl matches internal general entity declarations of a DOCTYPE
// subset: <!ENTITY name "value"> or with single quotes.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][-A-Za-z0-9._:]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// checkWellFormed walks every token of text and reports the first
// well-formedness error. Only the predefined XML entities and entities
// declared in the document's own DOCTYPE are accepted. The declared
// encoding is ignored because text is already decoded.
func checkWellFormed(text string) error {
	d := xml.NewDecoder(strings.NewReader(text))
	d.Strict = true
	d.Entity = map[string]string{}
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	depth := 0
	sawRoot := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			if !sawRoot {
				return ErrEmptyDocument
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if sawRoot && depth == 0 {
				line, _ := d.InputPos()
				return errors.Wrapf(ErrJunkAfterRoot, "line %d", line)
			}
			sawRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth > 0 || len(strings.TrimSpace(string(t))) == 0 {
				continue
			}
			line, _ := d.InputPos()
			if sawRoot {
				return errors.Wrapf(ErrJunkAfterRoot, "line %d", line)
			}
			return errors.Wrapf(ErrJunkBeforeRoot, "line %d", line)
		case xml.Directive:
			if !sawRoot {
				declareEntities(d.Entity, string(t))
			}
		}
	}
}

func declareEntities(entities map[string]string, directive string) {
	if !strings.HasPrefix(strings.TrimSpace(directive), "DOCTYPE") {
		return
	}
	for _, m := range entityDecl.FindAllStringSubmatch(directive, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if _, exists := entities[m[1]]; !exists {
			entities[m[1]] = value
		}
	}
}
