package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "rsscheck"

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the rsscheck configuration directory.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigSearchPaths returns the directories searched for a config file,
// in order of precedence.
func ConfigSearchPaths() []string {
	return []string{".", ConfigDir()}
}
