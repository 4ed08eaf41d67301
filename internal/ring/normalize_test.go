package ring

import "testing"

func TestNormalize_BrowserFamilies(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"firefox", "Firefox"},
		{"Firefox-esr", "Firefox"},
		{"Brave-browser", "Brave"},
		{"Google-chrome", "Chrome"},
		{"google-chrome-stable", "Chrome"},
	}
	for _, c := range cases {
		if got := Normalize(c.raw); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalize_BrowserGateWithoutCanonicalMatch(t *testing.T) {
	// Chromium and Edge enter the browser family but match none of the
	// canonical names, so they pass through unchanged.
	if got := Normalize("Chromium"); got != "Chromium" {
		t.Errorf("Normalize(Chromium) = %q, want Chromium", got)
	}
	if got := Normalize("microsoft-edge"); got != "microsoft-edge" {
		t.Errorf("Normalize(microsoft-edge) = %q, want microsoft-edge", got)
	}
}

func TestNormalize_EditorAndTerminalFamilies(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Code", "Code"},
		{"code-oss", "Code"},
		{"VSCodium", "Code"},
		{"gnome-terminal-server", "Terminal"},
		{"Qterminal", "Terminal"},
		{"konsole", "Terminal"},
		{"xfce4-terminal", "Terminal"},
	}
	for _, c := range cases {
		if got := Normalize(c.raw); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalize_UnrecognizedPassesThrough(t *testing.T) {
	for _, raw := range []string{"Gimp", "mpv", "", "Thunderbird"} {
		if got := Normalize(raw); got != raw {
			t.Errorf("Normalize(%q) = %q, want unchanged", raw, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"firefox", "Brave-browser", "code-oss", "konsole", "Gimp"} {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)): %q then %q", raw, once, twice)
		}
	}
}
