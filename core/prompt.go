package core

import (
	"path/filepath"
	"strings"
)

// DefaultPromptIndicator is shown after the working directory.
const DefaultPromptIndicator = "〉"

// FormatPrompt renders the working directory with the home directory
// abbreviated to ~, followed by the indicator.
func FormatPrompt(wd, home, indicator string) string {
	if indicator == "" {
		indicator = DefaultPromptIndicator
	}
	return AbbreviateHome(wd, home) + indicator
}

// AbbreviateHome replaces a leading home directory in path with ~.
func AbbreviateHome(path, home string) string {
	home = strings.TrimSuffix(home, string(filepath.Separator))
	switch {
	case home == "":
		return path
	case path == home:
		return "~"
	case strings.HasPrefix(path, home+string(filepath.Separator)):
		return "~" + strings.TrimPrefix(path, home)
	default:
		return path
	}
}
