package ring

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

const (
	keysymTab     = 0xff09
	keysymBacktab = 0xfe20
	keysymUp      = 0xff52
	keysymDown    = 0xff54
	keysymLeft    = 0xff51
	keysymRight   = 0xff53
	keysymReturn  = 0xff0d
	keysymKPEnter = 0xff8d
	keysymSpace   = 0x0020
	keysymEscape  = 0xff1b
)

// clampPadding keeps the ring off monitor edges.
const clampPadding = 15

// Bounds is a rectangular screen region in root coordinates.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Options carries the geometry and timing knobs for one ring.
type Options struct {
	Size         int // ring window edge length
	HubRadius    float64
	SpokeLength  float64
	HubIconSize  int
	NodeRadius   float64
	NodeBorder   int
	AnimDuration time.Duration
	TickInterval time.Duration
	Machine      MachineConfig
}

// Ring is one opening of the window ring: it owns the interaction machine,
// the entrance animator, the overlay windows, and the keyboard/pointer grabs,
// and it destroys all of them when it closes. Events arrive on the X event
// loop while the animation ticker and peek timer fire on their own
// goroutines; the mutex serializes all of it onto one effective event thread.
type Ring struct {
	mu        sync.Mutex
	xu        *xgbutil.XUtil
	root      xproto.Window
	opts      Options
	activator Activator

	overlay *OverlayManager
	machine *Machine
	anim    *Animator
	groups  Groups
	metrics Metrics

	originX int
	originY int
	center  Point

	grabWindow         xproto.Window
	keyHandlerAttached bool
	ticker             *time.Ticker
	tickerDone         chan struct{}
	open               bool

	// OnClose runs once, off the lock, after the ring has torn down.
	OnClose func()
}

// NewRing creates an unopened ring bound to an X connection and a window
// activator.
func NewRing(xu *xgbutil.XUtil, root xproto.Window, opts Options, activator Activator) (*Ring, error) {
	overlay, err := NewOverlayManager(xu, root)
	if err != nil {
		return nil, err
	}
	overlay.NodeBorder = opts.NodeBorder
	return &Ring{
		xu:        xu,
		root:      root,
		opts:      opts,
		activator: activator,
		overlay:   overlay,
	}, nil
}

// IsOpen reports whether the ring is currently showing.
func (r *Ring) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

// Open shows the ring for the given snapshot, centered on (centerX, centerY)
// in root coordinates and clamped into work. An empty snapshot is refused;
// the caller treats that as a no-op click.
func (r *Ring) Open(windows []Window, centerX, centerY int, work Bounds) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.open {
		return nil
	}
	groups := GroupWindows(windows)
	if len(groups) == 0 {
		return fmt.Errorf("no windows to show")
	}

	r.groups = groups
	r.metrics = Metrics{
		HubRadius:   r.opts.HubRadius,
		SpokeLength: r.opts.SpokeLength,
		NodeRadius:  r.opts.NodeRadius,
	}
	r.originX, r.originY = clampOrigin(centerX, centerY, r.opts.Size, work)
	r.center = Point{X: float64(r.opts.Size) / 2, Y: float64(r.opts.Size) / 2}

	r.machine = NewMachine(r.opts.Machine, r.activator, NewTimerScheduler(r.withLock))
	r.machine.SetRaise(r.overlay.Raise)
	r.anim = NewAnimator(time.Now(), r.opts.AnimDuration)

	if err := r.grabInput(); err != nil {
		return fmt.Errorf("failed to grab input: %w", err)
	}

	r.open = true
	r.renderLocked()
	r.startTicker()

	log.Printf("Ring: opened with %d windows in %d groups", groups.WindowCount(), len(groups))
	return nil
}

// Close tears the ring down without activation. Safe to call when already
// closed.
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

// withLock runs f under the ring lock, dropping it when the ring has closed
// in the meantime. Used to serialize timer fires with event handling.
func (r *Ring) withLock(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return
	}
	f()
}

func clampOrigin(centerX, centerY, size int, work Bounds) (int, int) {
	x := centerX - size/2
	y := centerY - size/2

	maxX := work.X + work.Width - size - clampPadding
	maxY := work.Y + work.Height - size - clampPadding
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	if x < work.X+clampPadding {
		x = work.X + clampPadding
	}
	if y < work.Y+clampPadding {
		y = work.Y + clampPadding
	}
	return x, y
}

func (r *Ring) startTicker() {
	r.ticker = time.NewTicker(r.opts.TickInterval)
	done := make(chan struct{})
	r.tickerDone = done
	ticker := r.ticker

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.tick()
			}
		}
	}()
}

func (r *Ring) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return
	}

	r.renderLocked()

	// Once the entrance animation saturates the geometry is static; further
	// redraws happen on interaction events only.
	if r.anim.Done(time.Now()) {
		r.stopTickerLocked()
	}
}

func (r *Ring) renderLocked() {
	progress := r.anim.Progress(time.Now())
	layout := Compute(r.groups, progress, r.center, r.metrics)
	r.machine.SetLayout(layout)

	err := r.overlay.Render(
		r.originX, r.originY, r.opts.Size, r.opts.HubIconSize,
		layout, r.machine.HoveredID(), r.machine.SelectedIndex(), progress,
	)
	if err != nil {
		log.Printf("Ring: overlay render failed: %v", err)
	}
}

func (r *Ring) closeLocked() {
	if !r.open {
		return
	}
	r.open = false

	r.stopTickerLocked()
	r.machine.Close()
	r.ungrabInput()
	r.overlay.Cleanup()

	log.Println("Ring: closed")

	if r.OnClose != nil {
		go r.OnClose()
	}
}

func (r *Ring) stopTickerLocked() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.tickerDone)
	r.ticker = nil
	r.tickerDone = nil
}

// grabInput grabs the keyboard and pointer so every key, motion, and press
// reaches the ring regardless of where the pointer sits.
func (r *Ring) grabInput() error {
	xu := r.xu
	if err := r.ensureGrabWindow(); err != nil {
		return err
	}

	grabKeyboard := func() (*xproto.GrabKeyboardReply, error) {
		cookie := xproto.GrabKeyboard(
			xu.Conn(),
			false,
			r.root,
			xproto.TimeCurrentTime,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		)
		return cookie.Reply()
	}

	reply, err := grabKeyboard()
	if err != nil {
		return err
	}
	// A global hotkey may have the keyboard grabbed by this client already;
	// release and retry once.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		reply, err = grabKeyboard()
		if err != nil {
			return err
		}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	pReply, err := xproto.GrabPointer(
		xu.Conn(),
		false,
		r.grabWindow,
		uint16(xproto.EventMaskPointerMotion|xproto.EventMaskButtonPress),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		return err
	}
	if pReply.Status != xproto.GrabStatusSuccess {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		return fmt.Errorf("pointer grab failed with status %d", pReply.Status)
	}

	xevent.RedirectKeyEvents(xu, r.grabWindow)

	if !r.keyHandlerAttached {
		xevent.KeyPressFun(r.handleKeyPress).Connect(xu, r.grabWindow)
		xevent.MotionNotifyFun(r.handleMotion).Connect(xu, r.grabWindow)
		xevent.ButtonPressFun(r.handleButtonPress).Connect(xu, r.grabWindow)
		r.keyHandlerAttached = true
	}

	return nil
}

func (r *Ring) ungrabInput() {
	xu := r.xu

	xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
	xproto.UngrabPointer(xu.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(xu, 0)

	if r.keyHandlerAttached && r.grabWindow != 0 {
		xevent.Detach(xu, r.grabWindow)
		r.keyHandlerAttached = false
	}
}

func (r *Ring) ensureGrabWindow() error {
	if r.grabWindow != 0 {
		return nil
	}

	conn := r.xu.Conn()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	// InputOnly window that never draws anything; it exists solely to receive
	// the grabbed key and pointer events.
	err = xproto.CreateWindowChecked(
		conn,
		0,
		wid,
		r.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOnly,
		xproto.Visualid(0),
		xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskKeyPress | xproto.EventMaskPointerMotion | xproto.EventMaskButtonPress)},
	).Check()
	if err != nil {
		return err
	}

	xproto.MapWindow(conn, wid)

	r.grabWindow = wid
	return nil
}

func (r *Ring) handleKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	keysym := keybind.KeysymGet(xu, ev.Detail, 0)

	var key Key
	switch keysym {
	case keysymEscape:
		key = KeyEscape
	case keysymTab, keysymRight, keysymDown:
		key = KeyNext
	case keysymBacktab, keysymLeft, keysymUp:
		key = KeyPrev
	case keysymReturn, keysymKPEnter, keysymSpace:
		key = KeyConfirm
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return
	}
	r.applyOutcome(r.machine.HandleKey(key))
}

func (r *Ring) handleMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return
	}

	p := Point{
		X: float64(int(ev.RootX) - r.originX),
		Y: float64(int(ev.RootY) - r.originY),
	}
	r.applyOutcome(r.machine.PointerMove(p))
}

func (r *Ring) handleButtonPress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	if ev.Detail != xproto.ButtonIndex1 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return
	}
	r.applyOutcome(r.machine.PointerPress())
}

func (r *Ring) applyOutcome(outcome Outcome) {
	switch outcome {
	case OutcomeRedraw:
		r.renderLocked()
	case OutcomeClosed:
		r.closeLocked()
	}
}
