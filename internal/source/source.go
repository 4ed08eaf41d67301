// Package source adapts the X11 connection into the window snapshot and
// activation contract the ring consumes: filtered listings of real
// application windows, and best-effort focus requests bounded by a short
// timeout.
package source

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/winring/winring/internal/ring"
	"github.com/winring/winring/internal/x11"
)

// ActivateTimeout bounds how long a focus request may block the caller.
// Activation happens on the interaction path, so a hanging window manager
// must not stall the ring for longer than this.
const ActivateTimeout = 500 * time.Millisecond

// Denylist filters shell furniture out of the snapshot. Matching is
// case-insensitive substring matching, mirroring how desktop panels and docks
// name themselves inconsistently.
type Denylist struct {
	Classes []string
	Titles  []string
}

// client is the slice of x11.Connection the source needs; tests substitute a
// fake.
type client interface {
	ListClientWindows() ([]x11.WindowInfo, error)
	FocusWindow(windowID xproto.Window) error
}

// Source lists and activates windows on behalf of the ring.
type Source struct {
	conn    client
	deny    Denylist
	timeout time.Duration
}

// New creates a source over an established X11 connection.
func New(conn *x11.Connection, deny Denylist) *Source {
	return &Source{conn: conn, deny: deny, timeout: ActivateTimeout}
}

// ListWindows returns the current snapshot of switchable windows. Sticky and
// untitled windows, and anything on the denylist, are dropped; a failed
// listing yields an empty snapshot so the ring simply does not open.
func (s *Source) ListWindows() []ring.Window {
	infos, err := s.conn.ListClientWindows()
	if err != nil {
		log.Printf("Source: window listing failed: %v", err)
		return nil
	}
	return filterWindows(infos, s.deny)
}

// Activate asks the window manager to focus and raise the window. The call is
// bounded by the source timeout; a timeout is reported as an error and the
// request is left to finish (or fail) on its own.
func (s *Source) Activate(id string) error {
	windowID, err := ParseWindowID(id)
	if err != nil {
		return err
	}

	result := make(chan error, 1)
	go func() {
		result <- s.conn.FocusWindow(windowID)
	}()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("failed to activate window %s: %w", id, err)
		}
		return nil
	case <-time.After(s.timeout):
		return fmt.Errorf("activate window %s timed out after %v", id, s.timeout)
	}
}

// Peek raises a window without any further ceremony; it is the same focus
// request as Activate, the ring just stays open and restacks itself above.
func (s *Source) Peek(id string) error {
	return s.Activate(id)
}

// FormatWindowID renders an X11 window ID as the opaque string the ring
// carries around.
func FormatWindowID(id xproto.Window) string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// ParseWindowID reverses FormatWindowID.
func ParseWindowID(id string) (xproto.Window, error) {
	raw := strings.TrimPrefix(strings.ToLower(id), "0x")
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", id, err)
	}
	return xproto.Window(v), nil
}

func filterWindows(infos []x11.WindowInfo, deny Denylist) []ring.Window {
	windows := make([]ring.Window, 0, len(infos))
	for _, info := range infos {
		// Sticky windows are desktops, panels, and docks.
		if info.Desktop == -1 {
			continue
		}
		title := strings.TrimSpace(info.Title)
		if title == "" {
			continue
		}
		if matchesAny(info.Class, deny.Classes) || matchesAny(title, deny.Titles) {
			continue
		}

		app := info.Class
		if app == "" {
			app = "Unknown"
		}

		windows = append(windows, ring.Window{
			ID:    FormatWindowID(info.ID),
			App:   app,
			Title: title,
		})
	}
	return windows
}

func matchesAny(value string, patterns []string) bool {
	lower := strings.ToLower(value)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
