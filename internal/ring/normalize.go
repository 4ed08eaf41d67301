package ring

import "strings"

// Substring families used to fold raw WM_CLASS values into one hub per app.
var (
	browserFamily  = []string{"chrome", "chromium", "brave", "firefox", "edge"}
	editorFamily   = []string{"code", "vscode", "vscodium"}
	terminalFamily = []string{"terminal", "konsole", "qterminal", "gnome-terminal"}
)

// Normalize maps a raw application class name to its canonical grouping key.
// Matching is case-insensitive substring matching; unrecognized names pass
// through unchanged. The function is pure and idempotent, which keeps hub
// placement deterministic across refreshes.
func Normalize(raw string) string {
	lower := strings.ToLower(raw)

	if containsAny(lower, browserFamily) {
		switch {
		case strings.Contains(lower, "brave"):
			return "Brave"
		case strings.Contains(lower, "firefox"):
			return "Firefox"
		case strings.Contains(lower, "chrome"):
			return "Chrome"
		}
	}

	if containsAny(lower, editorFamily) {
		return "Code"
	}

	if containsAny(lower, terminalFamily) {
		return "Terminal"
	}

	return raw
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
