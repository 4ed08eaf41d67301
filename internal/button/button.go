// Package button implements the draggable floating button that summons the
// ring. The button is a small override-redirect window: the window manager
// never decorates or tiles it, dragging is implemented from raw pointer
// events, and its position is persisted on every drag release.
package button

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/winring/winring/internal/config"
	"github.com/winring/winring/internal/state"
	"github.com/winring/winring/internal/x11"
)

const (
	colorIdle  = 0x3c50c8
	colorHover = 0x78b4ff

	// A release this close (Manhattan distance) to the press point is a
	// click, not a drag.
	clickThreshold = 10

	// Snapped positions sit this far inside the work-area edge.
	snapInset = 5

	defaultX = 300
	defaultY = 300
)

// Rect is a work-area rectangle in root coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Button is the floating launcher. All event handling runs on the X event
// loop; the button owns no goroutines.
type Button struct {
	conn  *x11.Connection
	xu    *xgbutil.XUtil
	cfg   config.ButtonConfig
	store *state.Store

	win  xproto.Window
	x    int
	y    int
	size int

	dragging bool
	pressX   int
	pressY   int
	startX   int
	startY   int
	work     Rect

	// OnClick fires on a press-release pair that did not move far enough to
	// count as a drag.
	OnClick func()
}

// New creates and maps the button, restoring its saved position when smart
// positioning is enabled.
func New(conn *x11.Connection, cfg config.ButtonConfig, store *state.Store) (*Button, error) {
	b := &Button{
		conn:  conn,
		xu:    conn.XUtil,
		cfg:   cfg,
		store: store,
		x:     defaultX,
		y:     defaultY,
		size:  cfg.Size,
	}

	if cfg.SmartPosition {
		if pos, ok, err := store.LoadPosition(); err != nil {
			log.Printf("Button: failed to restore position: %v", err)
		} else if ok {
			b.x, b.y = pos.X, pos.Y
		}
	}

	if err := b.createWindow(); err != nil {
		return nil, err
	}
	return b, nil
}

// Center returns the button's center in root coordinates.
func (b *Button) Center() (int, int) {
	return b.x + b.size/2, b.y + b.size/2
}

// Destroy unmaps and destroys the button window.
func (b *Button) Destroy() {
	if b.win == 0 {
		return
	}
	xevent.Detach(b.xu, b.win)
	xproto.DestroyWindow(b.xu.Conn(), b.win)
	b.win = 0
}

func (b *Button) createWindow() error {
	conn := b.xu.Conn()
	screen := b.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		b.conn.Root,
		int16(b.x), int16(b.y),
		uint16(b.size), uint16(b.size),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		// Value list order follows the bit positions of the mask (low → high).
		[]uint32{
			colorIdle,
			1,
			uint32(xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease |
				xproto.EventMaskButton1Motion |
				xproto.EventMaskEnterWindow |
				xproto.EventMaskLeaveWindow),
		},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to create button window: %w", err)
	}

	b.win = wid

	xevent.ButtonPressFun(b.handlePress).Connect(b.xu, wid)
	xevent.ButtonReleaseFun(b.handleRelease).Connect(b.xu, wid)
	xevent.MotionNotifyFun(b.handleMotion).Connect(b.xu, wid)
	xevent.EnterNotifyFun(b.handleEnter).Connect(b.xu, wid)
	xevent.LeaveNotifyFun(b.handleLeave).Connect(b.xu, wid)

	xproto.MapWindow(conn, wid)
	b.raise()
	return nil
}

func (b *Button) raise() {
	xproto.ConfigureWindow(b.xu.Conn(), b.win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

func (b *Button) setColor(color uint32) {
	conn := b.xu.Conn()
	xproto.ChangeWindowAttributes(conn, b.win, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, b.win, 0, 0, 0, 0)
}

func (b *Button) handlePress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	if ev.Detail != xproto.ButtonIndex1 {
		return
	}

	b.dragging = true
	b.pressX, b.pressY = int(ev.RootX), int(ev.RootY)
	b.startX, b.startY = b.x, b.y

	// Resolve the work area once per drag; snapping during motion reuses it.
	b.work = Rect{}
	if mon, err := b.conn.MonitorAt(b.pressX, b.pressY); err == nil {
		b.work = Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height}
	}
}

func (b *Button) handleMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	if !b.dragging {
		return
	}

	x := b.startX + int(ev.RootX) - b.pressX
	y := b.startY + int(ev.RootY) - b.pressY

	if b.cfg.SnapToEdges && b.work.Width > 0 {
		x, y = SnapToEdges(x, y, b.size, b.work, b.cfg.SnapThreshold)
	}

	b.moveTo(x, y)
}

func (b *Button) handleRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	if ev.Detail != xproto.ButtonIndex1 || !b.dragging {
		return
	}
	b.dragging = false

	if b.cfg.SmartPosition {
		if err := b.store.SavePosition(state.Position{X: b.x, Y: b.y}); err != nil {
			log.Printf("Button: failed to save position: %v", err)
		}
	}

	if IsClick(int(ev.RootX)-b.pressX, int(ev.RootY)-b.pressY) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) handleEnter(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
	b.setColor(colorHover)
}

func (b *Button) handleLeave(xu *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
	b.setColor(colorIdle)
}

func (b *Button) moveTo(x, y int) {
	b.x, b.y = x, y
	xproto.ConfigureWindow(b.xu.Conn(), b.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)})
}

// IsClick reports whether a press-release displacement counts as a click
// rather than a drag.
func IsClick(dx, dy int) bool {
	return abs(dx)+abs(dy) < clickThreshold
}

// SnapToEdges pulls a button position onto a work-area edge when it comes
// within threshold pixels of it. Horizontal and vertical snapping are
// independent so corners work.
func SnapToEdges(x, y, size int, work Rect, threshold int) (int, int) {
	if abs(x-work.X) < threshold {
		x = work.X + snapInset
	} else if abs(x+size-(work.X+work.Width)) < threshold {
		x = work.X + work.Width - size - snapInset
	}

	if abs(y-work.Y) < threshold {
		y = work.Y + snapInset
	} else if abs(y+size-(work.Y+work.Height)) < threshold {
		y = work.Y + work.Height - size - snapInset
	}

	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
