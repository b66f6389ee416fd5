package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/rsscheck/internal/errors"
	feedvalidator "github.com/thoreinstein/rsscheck/internal/feed/validator"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/runner"
	"github.com/thoreinstein/rsscheck/internal/server"
	"github.com/thoreinstein/rsscheck/internal/source"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultConfig().Addr,
		"address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve feed validation over HTTP",
	Long: `Run an HTTP service exposing the same validation as the CLI.

Endpoints:
  GET  /healthz             liveness check
  POST /validate            validate the feed document sent as the body
  GET  /validate?url=<url>  resolve a feed or site URL and validate it

Validation responses are JSON. The status is 200 when every feed passed,
422 when some failed and 404 when no feed was found.`,
	Example: `  # Listen on the default port
  rsscheck serve

  # Validate a document
  curl --data-binary @public/index.xml http://localhost:8080/validate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := logging.FromContext(ctx)

		fetcher := newFetcher(cfg)
		v := feedvalidator.New(fetcher)
		handler := server.NewHandler(
			v,
			source.NewResolver(fetcher, source.WithDiscovery(cfg.Discover)),
			runner.New(v, runner.WithWorkers(cfg.Workers)),
			cfg.MaxSize,
		)

		scfg := server.DefaultConfig()
		scfg.Addr = serveAddr
		if err := server.Serve(ctx, scfg, server.NewEngine(handler, logger)); err != nil {
			return errors.NewSystemError(err, "check that the address is free")
		}
		return nil
	},
}
