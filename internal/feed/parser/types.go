package parser

// Field is an optional string value taken from a feed element.
//
// The zero value is an absent field. A field is Present only when it was
// found and its value is not empty, which is how every rule treats it: an
// empty element counts as missing.
type Field struct {
	Value string
	Valid bool
}

// Some returns a set field holding s.
func Some(s string) Field {
	return Field{Value: s, Valid: true}
}

// None returns an absent field.
func None() Field {
	return Field{}
}

// fieldOf maps the parser's empty-string convention onto Field.
func fieldOf(s string) Field {
	if s == "" {
		return None()
	}
	return Some(s)
}

// Present reports whether the field is set and non-empty.
func (f Field) Present() bool {
	return f.Valid && f.Value != ""
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.Value, f.Present()
}

// Channel holds the feed-level metadata.
type Channel struct {
	Title       Field
	Link        Field
	Description Field
	Language    Field
	Generator   Field
}

// Item is one entry of the feed.
type Item struct {
	Title       Field
	Description Field
	GUID        Field
	Published   Field
	Link        Field
}

// ParsedFeed is the parser's view of a feed document.
type ParsedFeed struct {
	// Malformed is set when the content is not well-formed feed markup.
	// ParseError then describes the problem and the other fields are empty.
	Malformed  bool
	ParseError error

	// Version identifies the detected format, e.g. "rss20" or "atom10".
	// It is empty when no version could be detected.
	Version string

	Channel Channel

	// Items are kept in document order.
	Items []Item
}
