package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/rsscheck/internal/cli/prompt"
	"github.com/thoreinstein/rsscheck/internal/config"
	"github.com/thoreinstein/rsscheck/internal/errors"
	feedvalidator "github.com/thoreinstein/rsscheck/internal/feed/validator"
	"github.com/thoreinstein/rsscheck/internal/fetch"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/runner"
	"github.com/thoreinstein/rsscheck/internal/source"
	"github.com/thoreinstein/rsscheck/internal/validator"
	"github.com/thoreinstein/rsscheck/pkg/fileutil"
)

var (
	outputPath  string
	selectFeeds bool
	newSelector = prompt.NewSelector
)

func registerValidateFlags(c *cobra.Command) {
	c.Flags().String("format", config.DefaultFormat,
		"report format: "+strings.Join(config.Formats, ", "))

	c.Flags().StringVarP(&outputPath, "output", "o", "",
		"write the report to a file instead of stdout")
	c.Flags().BoolVar(&selectFeeds, "select", false,
		"interactively choose which of the found feeds to validate")
}

// newFetcher builds the HTTP and file client from the effective config.
func newFetcher(c *config.Config) *fetch.Client {
	return fetch.New(
		fetch.WithHTTPClient(fetch.NewHTTPClient(c.Timeout)),
		fetch.WithUserAgent(c.UserAgent),
		fetch.WithMaxSize(c.MaxSize),
	)
}

// runValidate resolves target, validates every feed found and writes the
// report. It returns an error carrying the exit code.
func runValidate(cmd *cobra.Command, target string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	fetcher := newFetcher(cfg)
	resolver := source.NewResolver(fetcher, source.WithDiscovery(cfg.Discover))

	sources, err := resolver.Resolve(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewUserError(errors.Wrap(err, "interrupted"), "")
		}
		return errors.NewSystemError(errors.Wrapf(err, "resolving %s", target), "check that the directory is readable")
	}
	logger.Info("resolved target", "target", logging.MaskURL(target), "sources", len(sources))

	if len(sources) == 0 {
		fmt.Fprintln(out, noSourcesMessage(target))
		return errors.NewExitError(errors.ErrNoSources, errors.ExitUser)
	}

	if selectFeeds {
		sources, err = newSelector().SelectSources(sources)
		if err != nil {
			return errors.NewUserError(err, "")
		}
	}

	opts := []runner.Option{runner.WithWorkers(cfg.Workers)}

	// Text reports on stdout are printed while the run progresses.
	var live *validator.Reporter
	if outputPath == "" && validator.Format(cfg.Format) == validator.FormatText {
		live = validator.NewReporter(out, validator.FormatText)
		live.Header(len(sources))
		opts = append(opts, runner.WithProgress(live.Result))
	}

	v := feedvalidator.New(fetcher)
	summary, err := runner.New(v, opts...).Run(ctx, sources)
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "interrupted"), "")
	}

	if live != nil {
		live.Footer(summary)
	} else if err := writeReport(out, summary); err != nil {
		return err
	}

	if !summary.Success() {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}

func noSourcesMessage(target string) string {
	if source.IsURL(target) {
		return "No RSS feeds found at common paths for: " + target
	}
	return "No RSS files found in: " + target
}

// writeReport renders summary to out, or atomically to --output.
func writeReport(out io.Writer, summary *validator.Summary) error {
	format := validator.Format(cfg.Format)

	if outputPath == "" {
		if err := validator.NewReporter(out, format).Report(summary); err != nil {
			return errors.NewSystemError(err, "")
		}
		return nil
	}

	err := fileutil.WriteAtomic(outputPath, 0o644, func(w io.Writer) error {
		return validator.NewReporter(w, format).Report(summary)
	})
	if err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing report to %s", outputPath), "check that the output directory exists and is writable")
	}
	return nil
}
