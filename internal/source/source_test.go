package source

import (
	"errors"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/winring/winring/internal/x11"
)

type fakeClient struct {
	infos    []x11.WindowInfo
	listErr  error
	focused  []xproto.Window
	focusErr error
	delay    time.Duration
}

func (f *fakeClient) ListClientWindows() ([]x11.WindowInfo, error) {
	return f.infos, f.listErr
}

func (f *fakeClient) FocusWindow(windowID xproto.Window) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.focused = append(f.focused, windowID)
	return f.focusErr
}

func TestFilterWindows_DropsStickyUntitledAndDenied(t *testing.T) {
	deny := Denylist{
		Classes: []string{"plank"},
		Titles:  []string{"winring"},
	}
	infos := []x11.WindowInfo{
		{ID: 1, Class: "firefox", Title: "Docs", Desktop: 0},
		{ID: 2, Class: "xfdesktop", Title: "Desktop", Desktop: -1},
		{ID: 3, Class: "mpv", Title: "   ", Desktop: 0},
		{ID: 4, Class: "Plank", Title: "Dock", Desktop: 0},
		{ID: 5, Class: "Gimp", Title: "Winring settings", Desktop: 1},
		{ID: 6, Class: "konsole", Title: "shell", Desktop: 1},
	}

	got := filterWindows(infos, deny)

	if len(got) != 2 {
		t.Fatalf("expected 2 windows, got %d: %v", len(got), got)
	}
	if got[0].App != "firefox" || got[1].App != "konsole" {
		t.Fatalf("wrong survivors: %v", got)
	}
}

func TestFilterWindows_EmptyClassBecomesUnknown(t *testing.T) {
	infos := []x11.WindowInfo{
		{ID: 7, Class: "", Title: "mystery", Desktop: 0},
	}

	got := filterWindows(infos, Denylist{})
	if len(got) != 1 || got[0].App != "Unknown" {
		t.Fatalf("expected Unknown app, got %v", got)
	}
}

func TestFilterWindows_TrimsTitles(t *testing.T) {
	infos := []x11.WindowInfo{
		{ID: 8, Class: "mpv", Title: "  movie  ", Desktop: 0},
	}

	got := filterWindows(infos, Denylist{})
	if len(got) != 1 || got[0].Title != "movie" {
		t.Fatalf("expected trimmed title, got %v", got)
	}
}

func TestListWindows_ListingFailureYieldsEmptySnapshot(t *testing.T) {
	s := &Source{
		conn:    &fakeClient{listErr: errors.New("connection reset")},
		timeout: ActivateTimeout,
	}

	if got := s.ListWindows(); len(got) != 0 {
		t.Fatalf("expected empty snapshot on listing failure, got %v", got)
	}
}

func TestActivate_FocusesParsedWindow(t *testing.T) {
	fake := &fakeClient{}
	s := &Source{conn: fake, timeout: ActivateTimeout}

	if err := s.Activate("0x00000a2b"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(fake.focused) != 1 || fake.focused[0] != 0xa2b {
		t.Fatalf("focused %v, want [0xa2b]", fake.focused)
	}
}

func TestActivate_InvalidID(t *testing.T) {
	s := &Source{conn: &fakeClient{}, timeout: ActivateTimeout}
	if err := s.Activate("not-a-window"); err == nil {
		t.Fatalf("expected error for unparseable id")
	}
}

func TestActivate_PropagatesFocusError(t *testing.T) {
	s := &Source{
		conn:    &fakeClient{focusErr: errors.New("BadWindow")},
		timeout: ActivateTimeout,
	}
	if err := s.Activate("0x00000001"); err == nil {
		t.Fatalf("expected focus error to propagate")
	}
}

func TestActivate_TimesOut(t *testing.T) {
	s := &Source{
		conn:    &fakeClient{delay: 50 * time.Millisecond},
		timeout: 5 * time.Millisecond,
	}
	if err := s.Activate("0x00000001"); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestWindowIDRoundTrip(t *testing.T) {
	for _, id := range []xproto.Window{0, 1, 0xa2b, 0xffffffff} {
		formatted := FormatWindowID(id)
		parsed, err := ParseWindowID(formatted)
		if err != nil {
			t.Fatalf("parse %q: %v", formatted, err)
		}
		if parsed != id {
			t.Fatalf("round trip %v via %q gave %v", id, formatted, parsed)
		}
	}
	if got := FormatWindowID(0xa2b); got != "0x00000a2b" {
		t.Fatalf("FormatWindowID = %q", got)
	}
}
