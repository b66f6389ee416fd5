package validator

import (
	"context"
	"strings"

	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/feed/parser"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/source"
	report "github.com/thoreinstein/rsscheck/internal/validator"
)

// RSS20 is the version identifier prefix of RSS 2.0 feeds.
const RSS20 = "rss20"

// Acquirer loads the text of a feed source.
type Acquirer interface {
	ReadFile(path string) (string, error)
	FetchURL(ctx context.Context, url string) (string, error)
}

// FeedParser turns feed text into a ParsedFeed.
type FeedParser interface {
	Parse(text string) *parser.ParsedFeed
}

// Option configures a Validator.
type Option func(*Validator)

// WithParser replaces the default gofeed-backed parser.
func WithParser(p FeedParser) Option {
	return func(v *Validator) {
		v.parser = p
	}
}

// Validator applies the RSS 2.0 rules to feed sources.
type Validator struct {
	acquirer Acquirer
	parser   FeedParser
}

// New creates a new Validator that loads sources through acquirer.
func New(acquirer Acquirer, opts ...Option) *Validator {
	v := &Validator{
		acquirer: acquirer,
		parser:   parser.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate acquires, parses and checks src. Every problem, including an
// unreadable source, is reported as a diagnostic of the returned result.
func (v *Validator) Validate(ctx context.Context, src source.FeedSource) *report.Result {
	logger := logging.FromContext(ctx).With("source", logging.MaskURL(src.Location))
	logger.Debug("validating")

	var text string
	var err error
	switch src.Kind {
	case source.RemoteURL:
		text, err = v.acquirer.FetchURL(ctx, src.Location)
	default:
		text, err = v.acquirer.ReadFile(src.Location)
	}
	if err != nil {
		logger.Debug("acquisition failed", "error", err)
		res := report.NewResult(src.String())
		res.AddError("source", acquisitionMessage(src.Kind, err))
		return res
	}

	res := v.ValidateContent(src.String(), text)
	logger.Debug("validated", "passed", res.Passed(), "diagnostics", len(res.Issues))
	return res
}

func acquisitionMessage(kind source.Kind, err error) string {
	if kind != source.RemoteURL {
		return msgCannotRead(err)
	}
	if errors.Is(err, errors.ErrInvalidUTF8) {
		return msgCannotDecodeURL(err)
	}
	return msgCannotFetch(err)
}

// ValidateContent parses text and checks it, naming the result name.
func (v *Validator) ValidateContent(name, text string) *report.Result {
	return Check(name, v.parser.Parse(text))
}

// Check applies the rules to an already parsed feed.
func Check(name string, feed *parser.ParsedFeed) *report.Result {
	res := report.NewResult(name)

	if feed.Malformed {
		res.AddError("feed", msgParseFailed(parseError(feed)))
		return res
	}

	if feed.Version == "" {
		res.AddError("version", MsgNoVersion)
		return res
	}
	if !strings.HasPrefix(feed.Version, RSS20) {
		res.Add(report.Issue{
			Severity: report.SeverityWarning,
			Field:    "version",
			Message:  msgWrongVersion(feed.Version),
			Context:  map[string]string{"version": feed.Version},
		})
	}

	if missing := missingChannelElements(feed.Channel); len(missing) > 0 {
		res.AddError("channel", msgMissingChannel(missing))
		return res
	}

	if !checkItems(res, feed.Items) {
		return res
	}

	res.AddInfo("items", msgFoundItems(len(feed.Items)))
	if lang, ok := feed.Channel.Language.Get(); ok {
		res.AddInfo("language", "Language: "+lang)
	}
	if gen, ok := feed.Channel.Generator.Get(); ok {
		res.AddInfo("generator", "Generator: "+gen)
	}

	res.AddPass(MsgPassed)
	return res
}

func parseError(feed *parser.ParsedFeed) error {
	if feed.ParseError != nil {
		return feed.ParseError
	}
	return errors.New("unknown parse error")
}

// missingChannelElements lists the absent required elements in the order
// title, link, description.
func missingChannelElements(ch parser.Channel) []string {
	var missing []string
	if !ch.Title.Present() {
		missing = append(missing, "title")
	}
	if !ch.Link.Present() {
		missing = append(missing, "link")
	}
	if !ch.Description.Present() {
		missing = append(missing, "description")
	}
	return missing
}

// checkItems adds the item diagnostics, errors first, and reports whether
// validation may continue.
func checkItems(res *report.Result, items []parser.Item) bool {
	if len(items) == 0 {
		res.AddWarning("items", MsgNoItems)
		return true
	}

	var errs, warnings []report.Issue
	for i, item := range items {
		if !item.Title.Present() && !item.Description.Present() {
			errs = append(errs, report.ItemIssue(report.SeverityError, i, "title", msgItemNoContent(i)))
		}
		if !item.GUID.Present() {
			warnings = append(warnings, report.ItemIssue(report.SeverityWarning, i, "guid", msgItemMissing(i, "guid")))
		}
		if !item.Published.Present() {
			warnings = append(warnings, report.ItemIssue(report.SeverityWarning, i, "pubDate", msgItemMissing(i, "pubDate")))
		}
		if !item.Link.Present() {
			warnings = append(warnings, report.ItemIssue(report.SeverityWarning, i, "link", msgItemMissing(i, "link")))
		}
	}

	for _, issue := range errs {
		res.Add(issue)
	}
	for _, issue := range warnings {
		res.Add(issue)
	}
	return len(errs) == 0
}
