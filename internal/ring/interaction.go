package ring

import (
	"log"
	"time"
)

// Key is a toolkit-independent key event consumed by the machine.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyNext
	KeyPrev
	KeyConfirm
)

// Outcome tells the caller what a transition changed.
type Outcome int

const (
	// OutcomeNone means the event changed nothing.
	OutcomeNone Outcome = iota
	// OutcomeRedraw means hover/selection moved and the ring needs repainting.
	OutcomeRedraw
	// OutcomeClosed means the ring reached a terminal state and must be torn down.
	OutcomeClosed
)

// Activator issues focus requests to the window source. Both calls are
// best-effort: errors are logged by the machine and never stop interaction.
type Activator interface {
	// Activate raises and focuses a window.
	Activate(id string) error
	// Peek raises a window without the ring closing.
	Peek(id string) error
}

// PeekScheduler arms the one-shot hover-dwell timer. Schedule replaces any
// armed timer; Cancel disarms. The real implementation wraps time.AfterFunc;
// tests capture the fire func and call it directly.
type PeekScheduler interface {
	Schedule(delay time.Duration, fire func())
	Cancel()
}

// TimerScheduler is the production PeekScheduler. The optional wrap func lets
// the owner serialize timer fires with its own event handling.
type TimerScheduler struct {
	wrap  func(func())
	timer *time.Timer
}

// NewTimerScheduler returns a scheduler whose fires run through wrap, or
// directly when wrap is nil.
func NewTimerScheduler(wrap func(func())) *TimerScheduler {
	return &TimerScheduler{wrap: wrap}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fire func()) {
	s.Cancel()
	if s.wrap != nil {
		inner := fire
		fire = func() { s.wrap(inner) }
	}
	s.timer = time.AfterFunc(delay, fire)
}

func (s *TimerScheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// HitSlop is the fixed tolerance added to a node's base radius during
// hit-testing, independent of any hover-enlarged visual radius.
const HitSlop = 20.0

// MachineConfig carries the interaction options.
type MachineConfig struct {
	PeekEnabled bool
	PeekDelay   time.Duration
	KeyboardNav bool
}

// Machine owns hover and selection state for one ring lifetime. It consumes
// pointer and key events synchronously, hit-tests them against the layout it
// was last given, and turns confirmations into activation requests. The
// machine itself is not goroutine-safe; its owner serializes events and timer
// fires, matching the single event thread the design assumes.
type Machine struct {
	cfg       MachineConfig
	activator Activator
	scheduler PeekScheduler
	raise     func()

	layout        *Layout
	hoveredID     string
	selectedIndex int
	pendingPeekID string
	closed        bool
}

// NewMachine creates an idle machine with no hover and no selection.
func NewMachine(cfg MachineConfig, activator Activator, scheduler PeekScheduler) *Machine {
	return &Machine{
		cfg:           cfg,
		activator:     activator,
		scheduler:     scheduler,
		selectedIndex: -1,
	}
}

// SetRaise installs the callback used to lift the ring back above a peeked
// window.
func (m *Machine) SetRaise(raise func()) {
	m.raise = raise
}

// SetLayout swaps in freshly computed geometry. Hover and selection carry
// over: for a fixed snapshot the flattened order is identical across layout
// passes, so indices keep meaning the same window.
func (m *Machine) SetLayout(l *Layout) {
	m.layout = l
	if l == nil || m.selectedIndex >= len(l.Flattened) {
		m.selectedIndex = -1
		m.hoveredID = ""
	}
}

func (m *Machine) HoveredID() string  { return m.hoveredID }
func (m *Machine) SelectedIndex() int { return m.selectedIndex }
func (m *Machine) Closed() bool       { return m.closed }

// PointerMove hit-tests the pointer against the current nodes. Nodes are
// checked in render order so the first node wins when hit regions overlap.
// A hover change cancels any pending peek and, for a non-empty hover, arms a
// fresh one.
func (m *Machine) PointerMove(p Point) Outcome {
	if m.closed || m.layout == nil {
		return OutcomeNone
	}

	hitID := ""
	hitIndex := -1
	for i, node := range m.layout.Nodes {
		if p.Dist(node.Center) < node.Radius+HitSlop {
			hitID = node.Window.ID
			hitIndex = i
			break
		}
	}

	if hitID == m.hoveredID {
		return OutcomeNone
	}

	m.hoveredID = hitID
	m.selectedIndex = hitIndex
	m.disarmPeek()

	if hitID != "" && m.cfg.PeekEnabled {
		m.pendingPeekID = hitID
		id := hitID
		m.scheduler.Schedule(m.cfg.PeekDelay, func() { m.peekExpired(id) })
	}

	return OutcomeRedraw
}

// PointerPress activates the hovered window and closes, or just closes when
// nothing is hovered. Either way the press is terminal.
func (m *Machine) PointerPress() Outcome {
	if m.closed {
		return OutcomeNone
	}
	if m.hoveredID != "" {
		return m.activateAndClose(m.hoveredID)
	}
	m.close()
	return OutcomeClosed
}

// HandleKey applies a key transition. Navigation wraps over the flattened
// order in both directions and never arms a peek; Escape is terminal from any
// state and issues no activation.
func (m *Machine) HandleKey(k Key) Outcome {
	if m.closed {
		return OutcomeNone
	}

	switch k {
	case KeyEscape:
		m.close()
		return OutcomeClosed

	case KeyNext, KeyPrev:
		if !m.cfg.KeyboardNav || m.layout == nil {
			return OutcomeNone
		}
		count := len(m.layout.Flattened)
		if count == 0 {
			return OutcomeNone
		}
		delta := 1
		if k == KeyPrev {
			delta = -1
		}
		m.selectedIndex = ((m.selectedIndex+delta)%count + count) % count
		m.hoveredID = m.layout.Flattened[m.selectedIndex].ID
		m.disarmPeek()
		return OutcomeRedraw

	case KeyConfirm:
		if m.hoveredID == "" {
			return OutcomeNone
		}
		return m.activateAndClose(m.hoveredID)
	}

	return OutcomeNone
}

// Close tears the machine down without activation. Safe to call repeatedly.
func (m *Machine) Close() {
	m.close()
}

func (m *Machine) activateAndClose(id string) Outcome {
	if err := m.activator.Activate(id); err != nil {
		log.Printf("Ring: activate %s failed: %v", id, err)
	}
	m.close()
	return OutcomeClosed
}

func (m *Machine) close() {
	if m.closed {
		return
	}
	m.closed = true
	m.disarmPeek()
}

func (m *Machine) disarmPeek() {
	m.pendingPeekID = ""
	m.scheduler.Cancel()
}

// peekExpired runs when the hover-dwell timer fires. A stale fire, where the
// hover moved on or the ring closed since arming, is a no-op.
func (m *Machine) peekExpired(id string) {
	if m.closed || id != m.pendingPeekID {
		return
	}
	if err := m.activator.Peek(id); err != nil {
		log.Printf("Ring: peek %s failed: %v", id, err)
		return
	}
	if m.raise != nil {
		m.raise()
	}
}
