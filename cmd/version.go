// Package cmd holds build metadata injected via ldflags, e.g.
//
//	go build -ldflags "-X github.com/thoreinstein/rsscheck/cmd.Version=v1.2.0"
package cmd

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// UserAgent is the default User-Agent header of HTTP requests.
func UserAgent() string {
	return "rsscheck/" + Version + " (+https://github.com/thoreinstein/rsscheck)"
}
