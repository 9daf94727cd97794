// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-katexpdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// LookPathBrowser reports whether a system Chrome/Chromium is installed.
var LookPathBrowser = func() bool {
	_, found := launcher.LookPath()
	return found
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		if LookPathBrowser() {
			hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
		} else {
			hints = append(hints, "no Chrome found: install Chromium or allow the first-run download to ~/.cache/rod")
		}
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the export timeout.
func ForTimeout() string {
	return format("for large documents or slow networks, raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or creating the file in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-katexpdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputWithDirectory explains where directory runs write their PDFs.
func ForOutputWithDirectory() string {
	return format("directory runs write each PDF next to its source; drop --output or pass a single file")
}

// ForKeepGoing suggests continuing past a failed file.
func ForKeepGoing() string {
	return format("use --keep-going to convert the remaining files anyway")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
