package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under XDG base directories.
const AppName = "airules"

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the airules config directory: <ConfigHome>/airules.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}
