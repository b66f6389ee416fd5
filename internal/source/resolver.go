package source

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/logging"
)

// FeedFilenames are the basenames collected from a directory tree.
var FeedFilenames = []string{"index.xml", "rss.xml", "feed.xml", "atom.xml"}

// CommonPaths are probed, in order, below a site base URL.
var CommonPaths = []string{"/index.xml", "/feed.xml", "/rss.xml", "/atom.xml"}

// Client performs the HTTP requests needed to resolve URL targets.
type Client interface {
	// Probe reports whether url answers 200 OK. Failures report false.
	Probe(ctx context.Context, url string) bool
	// GetPage returns the body of url.
	GetPage(ctx context.Context, url string) ([]byte, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDiscovery enables HTML autodiscovery when no common path answers.
func WithDiscovery(enabled bool) Option {
	return func(r *Resolver) {
		r.discover = enabled
	}
}

// Resolver expands targets into feed sources.
type Resolver struct {
	client   Client
	discover bool
}

// NewResolver creates a Resolver. client may be nil when only local
// targets will be resolved.
func NewResolver(client Client, opts ...Option) *Resolver {
	r := &Resolver{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the feed sources for target. An empty result is not an
// error; only cancellation or an unreadable directory tree fail.
func (r *Resolver) Resolve(ctx context.Context, target string) ([]FeedSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if IsURL(target) {
		if IsDirectFeedURL(target) {
			return []FeedSource{Remote(target)}, nil
		}
		return r.resolveBaseURL(ctx, target)
	}

	info, err := os.Stat(target)
	if err != nil {
		logging.FromContext(ctx).Debug("target is neither a URL nor an existing path", "target", target, "error", err)
		return nil, nil
	}

	if info.Mode().IsRegular() {
		return []FeedSource{Local(target)}, nil
	}
	if info.IsDir() {
		return r.resolveDir(ctx, target)
	}
	return nil, nil
}

// resolveDir walks root and collects files named like feeds at any depth.
// Hidden directories below root are skipped and symlinked directories are
// followed. Only an unreadable root is an error; anything below it that
// cannot be read is skipped.
func (r *Resolver) resolveDir(ctx context.Context, root string) ([]FeedSource, error) {
	logger := logging.FromContext(ctx)
	w := &dirWalker{
		ctx:       ctx,
		logger:    logger,
		seen:      make(map[string]struct{}),
		ancestors: make(map[string]struct{}),
	}

	if err := w.walk(root, true); err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	paths := make([]string, 0, len(w.seen))
	for p := range w.seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	sources := make([]FeedSource, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, Local(p))
	}
	logger.Debug("resolved directory", "root", root, "count", len(sources))
	return sources, nil
}

type dirWalker struct {
	ctx    context.Context
	logger *slog.Logger
	seen   map[string]struct{}
	// ancestors holds the real paths of the directories on the current
	// branch, so symlink cycles end instead of recursing forever.
	ancestors map[string]struct{}
}

func (w *dirWalker) walk(dir string, isRoot bool) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return w.skip(dir, isRoot, err)
	}
	if _, ok := w.ancestors[realPath]; ok {
		w.logger.Debug("skipping directory cycle", "path", dir)
		return nil
	}
	w.ancestors[realPath] = struct{}{}
	defer delete(w.ancestors, realPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if skipErr := w.skip(dir, isRoot, err); skipErr != nil {
			return skipErr
		}
		// ReadDir returns what it read before failing.
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				w.logger.Debug("skipping broken symlink", "path", path, "error", err)
				continue
			}
			isDir = info.IsDir()
			if !isDir && !info.Mode().IsRegular() {
				continue
			}
		}

		if isDir {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if err := w.walk(path, false); err != nil {
				return err
			}
			continue
		}

		if !isFeedFilename(e.Name()) {
			continue
		}
		w.seen[filepath.Clean(path)] = struct{}{}
		w.logger.Log(w.ctx, logging.LevelTrace, "found feed file", "path", path)
	}
	return nil
}

func (w *dirWalker) skip(dir string, isRoot bool, err error) error {
	if isRoot {
		return err
	}
	w.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
	return nil
}

func isFeedFilename(name string) bool {
	for _, n := range FeedFilenames {
		if name == n {
			return true
		}
	}
	return false
}

// resolveBaseURL probes the common feed paths below target, one at a time.
func (r *Resolver) resolveBaseURL(ctx context.Context, target string) ([]FeedSource, error) {
	if r.client == nil {
		return nil, nil
	}

	logger := logging.FromContext(ctx)
	base := strings.TrimRight(target, "/")

	var sources []FeedSource
	for _, p := range CommonPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate := base + p
		if r.client.Probe(ctx, candidate) {
			logger.Debug("feed found", "url", logging.MaskURL(candidate))
			sources = append(sources, Remote(candidate))
		}
	}

	if len(sources) == 0 && r.discover {
		found, err := r.discoverFeeds(ctx, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Debug("autodiscovery failed", "url", logging.MaskURL(target), "error", err)
			return nil, nil
		}
		sources = found
	}

	return sources, nil
}
