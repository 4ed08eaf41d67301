// Package app wires the winring daemon together: X connection, window
// source, floating button, optional hotkey, and the ring lifecycle.
package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/winring/winring/internal/button"
	"github.com/winring/winring/internal/config"
	"github.com/winring/winring/internal/hotkeys"
	"github.com/winring/winring/internal/ring"
	"github.com/winring/winring/internal/source"
	"github.com/winring/winring/internal/state"
	"github.com/winring/winring/internal/x11"
)

// App owns the daemon's long-lived components. Everything interactive runs
// on the X event loop; only the ring's internal timers run elsewhere.
type App struct {
	cfg  *config.Config
	conn *x11.Connection
	src  *source.Source
	btn  *button.Button
	ring *ring.Ring
}

// Run starts the daemon and blocks until the process is signalled.
func Run(cfg *config.Config) error {
	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	a := &App{
		cfg:  cfg,
		conn: conn,
		src: source.New(conn, source.Denylist{
			Classes: cfg.Denylist.Classes,
			Titles:  cfg.Denylist.Titles,
		}),
	}

	r, err := ring.NewRing(conn.XUtil, conn.Root, ringOptions(cfg), a.src)
	if err != nil {
		return fmt.Errorf("failed to set up ring: %w", err)
	}
	a.ring = r

	store := &state.Store{}
	btn, err := button.New(conn, cfg.Button, store)
	if err != nil {
		return fmt.Errorf("failed to create button: %w", err)
	}
	a.btn = btn
	btn.OnClick = a.toggleRing

	if cfg.Hotkey != "" {
		if err := hotkeys.NewHandler(conn).Register(cfg.Hotkey, a.toggleRing); err != nil {
			log.Printf("Hotkey registration failed: %v", err)
		} else {
			log.Printf("Hotkey registered: %s", cfg.Hotkey)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received %v, shutting down", sig)
		a.ring.Close()
		a.btn.Destroy()
		a.conn.Quit()
	}()

	log.Println("winring daemon started")
	conn.EventLoop()
	log.Println("winring daemon stopped")
	return nil
}

// toggleRing opens the ring centered on the button, or closes it when it is
// already up. An empty window snapshot makes the click a no-op.
func (a *App) toggleRing() {
	if a.ring.IsOpen() {
		a.ring.Close()
		return
	}

	windows := a.src.ListWindows()
	if len(windows) == 0 {
		log.Println("Ring: no windows to show")
		return
	}

	cx, cy := a.btn.Center()
	mon, err := a.conn.MonitorAt(cx, cy)
	if err != nil {
		log.Printf("Ring: failed to resolve monitor: %v", err)
		return
	}

	err = a.ring.Open(windows, cx, cy, ring.Bounds{
		X:      mon.X,
		Y:      mon.Y,
		Width:  mon.Width,
		Height: mon.Height,
	})
	if err != nil {
		log.Printf("Ring: failed to open: %v", err)
	}
}

func ringOptions(cfg *config.Config) ring.Options {
	return ring.Options{
		Size:         cfg.RingSize,
		HubRadius:    float64(cfg.HubRadius),
		SpokeLength:  float64(cfg.SpokeLength),
		HubIconSize:  cfg.HubIconSize,
		NodeRadius:   cfg.NodeRadius,
		NodeBorder:   int(cfg.NodeBorderWidth + 0.5),
		AnimDuration: time.Duration(cfg.Animation.DurationMs) * time.Millisecond,
		TickInterval: time.Duration(cfg.Animation.TickMs) * time.Millisecond,
		Machine: ring.MachineConfig{
			PeekEnabled: cfg.Peek.Enabled,
			PeekDelay:   time.Duration(cfg.Peek.DelayMs) * time.Millisecond,
			KeyboardNav: cfg.KeyboardNav,
		},
	}
}
