package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/rsscheck/internal/fetch"
	"github.com/thoreinstein/rsscheck/internal/logging"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "index.xml"), "<rss/>")
	writeFile(t, filepath.Join(root, "b", "rss.xml"), "<rss/>")
	writeFile(t, filepath.Join(root, "c", "notes.txt"), "notes")

	sources, err := NewResolver(nil).Resolve(testContext(t), root)
	require.NoError(t, err)

	assert.Equal(t, []FeedSource{
		Local(filepath.Join(root, "a", "index.xml")),
		Local(filepath.Join(root, "b", "rss.xml")),
	}, sources)
}

func TestResolve_DirectoryAllNamesAnyDepth(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"atom.xml",
		"feed.xml",
		filepath.Join("posts", "index.xml"),
		filepath.Join("posts", "2024", "05", "rss.xml"),
		filepath.Join("posts", "sitemap.xml"),
		filepath.Join("posts", "Index.xml"),
		filepath.Join(".git", "index.xml"),
	} {
		writeFile(t, filepath.Join(root, p), "x")
	}

	sources, err := NewResolver(nil).Resolve(testContext(t), root)
	require.NoError(t, err)

	var got []string
	for _, s := range sources {
		assert.Equal(t, LocalFile, s.Kind)
		got = append(got, s.String())
	}
	assert.Equal(t, []string{
		filepath.Join(root, "atom.xml"),
		filepath.Join(root, "feed.xml"),
		filepath.Join(root, "posts", "2024", "05", "rss.xml"),
		filepath.Join(root, "posts", "index.xml"),
	}, got)
}

func TestResolve_DirectorySkipsUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "public", "index.xml"), "x")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "rss.xml"), "x")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	sources, err := NewResolver(nil).Resolve(testContext(t), root)
	require.NoError(t, err)
	assert.Equal(t, []FeedSource{Local(filepath.Join(root, "public", "index.xml"))}, sources)
}

func TestResolve_DirectoryUnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.xml"), "x")
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	_, err := NewResolver(nil).Resolve(testContext(t), root)
	assert.Error(t, err)
}

func TestResolve_DirectoryFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "index.xml"), "x")
	require.NoError(t, os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "link")))
	// A cycle back to the root must not recurse forever.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "a", "loop")))

	sources, err := NewResolver(nil).Resolve(testContext(t), root)
	require.NoError(t, err)

	var got []string
	for _, s := range sources {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{
		filepath.Join(root, "a", "index.xml"),
		filepath.Join(root, "link", "index.xml"),
	}, got)
}

func TestResolve_EmptyDirectory(t *testing.T) {
	sources, err := NewResolver(nil).Resolve(testContext(t), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestResolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom-name.txt")
	writeFile(t, path, "anything")

	sources, err := NewResolver(nil).Resolve(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, []FeedSource{Local(path)}, sources)
}

func TestResolve_Nonexistent(t *testing.T) {
	sources, err := NewResolver(nil).Resolve(testContext(t), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestResolve_DirectFeedURL(t *testing.T) {
	tests := []string{
		"https://example.com/index.xml",
		"http://example.com/feed.rss",
		"https://example.com/blog/posts.atom",
	}
	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			sources, err := NewResolver(nil).Resolve(testContext(t), target)
			require.NoError(t, err)
			assert.Equal(t, []FeedSource{Remote(target)}, sources)
		})
	}
}

func TestResolve_BaseURLProbing(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if r.URL.Path == "/feed.xml" {
			_, _ = w.Write([]byte("<rss/>"))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := fetch.New(fetch.WithHTTPClient(srv.Client()))
	sources, err := NewResolver(client).Resolve(testContext(t), srv.URL+"///")
	require.NoError(t, err)

	assert.Equal(t, []FeedSource{Remote(srv.URL + "/feed.xml")}, sources)
	assert.Equal(t, []string{"/index.xml", "/feed.xml", "/rss.xml", "/atom.xml"}, requested)
}

func TestResolve_BaseURLMultipleFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.xml", "/atom.xml":
			_, _ = w.Write([]byte("<rss/>"))
		case "/rss.xml":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := fetch.New(fetch.WithHTTPClient(srv.Client()))
	sources, err := NewResolver(client).Resolve(testContext(t), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []FeedSource{
		Remote(srv.URL + "/index.xml"),
		Remote(srv.URL + "/atom.xml"),
	}, sources)
}

func TestResolve_BaseURLUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	client := fetch.New(fetch.WithHTTPClient(fetch.NewHTTPClient(0)))
	sources, err := NewResolver(client).Resolve(testContext(t), target)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestResolve_Discovery(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head>
<link rel="alternate" type="application/rss+xml" title="Posts" href="/posts/feed">
<link rel="alternate" type="application/atom+xml" href="https://other.example/atom">
<link rel="alternate" type="text/html" hreflang="de" href="/de/">
<link rel="stylesheet" type="text/css" href="/style.css">
</head><body></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(page))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client := fetch.New(fetch.WithHTTPClient(srv.Client()))

	t.Run("disabled", func(t *testing.T) {
		sources, err := NewResolver(client).Resolve(testContext(t), srv.URL+"/")
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("enabled", func(t *testing.T) {
		sources, err := NewResolver(client, WithDiscovery(true)).Resolve(testContext(t), srv.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, []FeedSource{
			Remote(srv.URL + "/posts/feed"),
			Remote("https://other.example/atom"),
		}, sources)
	})
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := NewResolver(nil).Resolve(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"z", "m", "a"} {
		writeFile(t, filepath.Join(root, d, "feed.xml"), "x")
	}

	r := NewResolver(nil)
	first, err := r.Resolve(testContext(t), root)
	require.NoError(t, err)
	second, err := r.Resolve(testContext(t), root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractFeedLinks(t *testing.T) {
	page := []byte(`<html><head>
<link rel="Alternate feed" type="application/rss+xml; charset=utf-8" href="rss.xml">
<link rel="alternate" type="application/rss+xml" href="rss.xml">
<link rel="alternate" type="application/rss+xml" href="javascript:void(0)">
<link rel="alternate" href="/untyped.xml">
</head></html>`)

	links, err := ExtractFeedLinks(page, "https://example.com/blog/")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/blog/rss.xml"}, links)
}

func TestFeedSource(t *testing.T) {
	assert.Equal(t, "feed.xml", Local("feed.xml").String())
	assert.Equal(t, "file", LocalFile.String())
	assert.Equal(t, "url", RemoteURL.String())
	assert.True(t, IsURL("https://x"))
	assert.False(t, IsURL("ftp://x"))
	assert.True(t, IsDirectFeedURL("https://x/a.atom"))
	assert.False(t, IsDirectFeedURL("https://x/blog"))
}
