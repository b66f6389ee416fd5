// Package paths resolves the directories rsscheck reads its own
// configuration from.
//
// It wraps github.com/adrg/xdg for XDG Base Directory compliance, so the
// config directory is ~/.config/rsscheck on Linux and the platform
// equivalent elsewhere.
package paths
