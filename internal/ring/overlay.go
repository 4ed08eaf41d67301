package ring

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Presentation colors. The per-app node colors come from AppColor.
const (
	colorBackdrop  = 0x141423 // dark ring backdrop
	colorHighlight = 0xffffff // hovered/selected node border
	colorLabelText = 0xf5f7fa
	colorLabelBg   = 0x1f2933
)

const (
	labelPaddingX   = 8
	labelLineHeight = 16
	labelCharWidth  = 7
	maxTitleLen     = 55
	hoverScale      = 1.6
	colorCacheSize  = 64
)

// marker is one override-redirect window approximating a filled circle.
type marker struct {
	win     xproto.Window
	created bool
	mapped  bool
}

// textPanel is a single window carrying one line of core-font text, used for
// hub labels and the hovered-title banner.
type textPanel struct {
	win      xproto.Window
	gc       xproto.Gcontext
	font     xproto.Font
	created  bool
	mapped   bool
	disabled bool
}

// OverlayManager owns the X windows that present the ring: a backdrop, one
// marker per hub, one per node, a label per hub, and a banner for the hovered
// window title. Everything is override-redirect and restacked above, so no
// window manager cooperation is needed. The rendering is a deliberate
// approximation; hit-testing never consults it.
type OverlayManager struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	backdrop    *marker
	hubMarkers  []*marker
	nodeMarkers []*marker
	hubLabels   []*textPanel
	titleBanner *textPanel

	// NodeBorder is the node outline width in pixels; zero disables it.
	NodeBorder int

	// Hue derivation hashes on every lookup; the cache keeps one color per
	// app for the lifetime of the process.
	colors *lru.Cache[string, uint32]
}

// NewOverlayManager creates a manager with no windows yet; windows are
// created lazily on first render and reused across frames.
func NewOverlayManager(xu *xgbutil.XUtil, root xproto.Window) (*OverlayManager, error) {
	colors, err := lru.New[string, uint32](colorCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create color cache: %w", err)
	}
	return &OverlayManager{
		xu:          xu,
		root:        root,
		backdrop:    &marker{},
		titleBanner: &textPanel{},
		colors:      colors,
	}, nil
}

func (m *OverlayManager) appColor(app string) uint32 {
	if c, ok := m.colors.Get(app); ok {
		return c
	}
	c := AppColor(app)
	m.colors.Add(app, c)
	return c
}

// Render draws one frame. originX/originY is the ring's top-left in root
// coordinates; the layout is in ring-local coordinates. size is the ring
// window edge length, hubSize the hub marker edge length.
func (m *OverlayManager) Render(originX, originY, size, hubSize int, l *Layout, hoveredID string, selectedIndex int, progress float64) error {
	if l == nil || len(l.Hubs) == 0 {
		m.HideAll()
		return nil
	}

	// Backdrop square behind the whole ring, grown with progress.
	back := int(float64(size) * progress)
	if back > 0 {
		if err := m.showMarker(m.backdrop,
			originX+size/2-back/2, originY+size/2-back/2, back, colorBackdrop); err != nil {
			return err
		}
	}

	if err := m.ensureMarkers(&m.hubMarkers, len(l.Hubs)); err != nil {
		return err
	}
	if err := m.ensureMarkers(&m.nodeMarkers, len(l.Nodes)); err != nil {
		return err
	}
	m.ensureLabels(len(l.Hubs))

	hub := int(float64(hubSize) * progress)
	for i, h := range l.Hubs {
		if err := m.showMarker(m.hubMarkers[i],
			originX+int(h.Center.X)-hub/2, originY+int(h.Center.Y)-hub/2, hub, m.appColor(h.App)); err != nil {
			return err
		}
		m.showLabel(m.hubLabels[i],
			originX+int(h.Center.X), originY+int(h.Center.Y)-hub/2-labelLineHeight-6, h.App)
	}

	for i, node := range l.Nodes {
		radius := node.Radius
		color := m.appColor(l.Hubs[node.HubIndex].App)
		if node.Window.ID == hoveredID || i == selectedIndex {
			radius *= hoverScale
			color = colorHighlight
		}
		edge := int(2 * radius)
		if err := m.showMarker(m.nodeMarkers[i],
			originX+int(node.Center.X)-edge/2, originY+int(node.Center.Y)-edge/2, edge, color); err != nil {
			return err
		}
		m.setBorder(m.nodeMarkers[i].win, m.NodeBorder)
	}

	if hoveredID != "" {
		for _, node := range l.Nodes {
			if node.Window.ID == hoveredID {
				title := node.Window.Title
				if len(title) > maxTitleLen {
					title = title[:maxTitleLen]
				}
				m.showLabel(m.titleBanner,
					originX+size/2, originY+size-labelLineHeight*2, title)
				break
			}
		}
	} else {
		m.hidePanel(m.titleBanner)
	}

	return nil
}

// HideAll unmaps every overlay window without destroying it.
func (m *OverlayManager) HideAll() {
	m.hideMarker(m.backdrop)
	for _, mk := range m.hubMarkers {
		m.hideMarker(mk)
	}
	for _, mk := range m.nodeMarkers {
		m.hideMarker(mk)
	}
	for _, p := range m.hubLabels {
		m.hidePanel(p)
	}
	m.hidePanel(m.titleBanner)
}

// Cleanup destroys all overlay windows.
func (m *OverlayManager) Cleanup() {
	m.destroyMarker(m.backdrop)
	for _, mk := range m.hubMarkers {
		m.destroyMarker(mk)
	}
	for _, mk := range m.nodeMarkers {
		m.destroyMarker(mk)
	}
	for _, p := range m.hubLabels {
		m.destroyPanel(p)
	}
	m.destroyPanel(m.titleBanner)

	m.hubMarkers = nil
	m.nodeMarkers = nil
	m.hubLabels = nil
}

func (m *OverlayManager) ensureMarkers(markers *[]*marker, count int) error {
	for i := count; i < len(*markers); i++ {
		m.hideMarker((*markers)[i])
	}
	for len(*markers) < count {
		mk := &marker{}
		win, err := m.createOverrideRedirectWindow()
		if err != nil {
			return err
		}
		mk.win = win
		mk.created = true
		*markers = append(*markers, mk)
	}
	return nil
}

func (m *OverlayManager) ensureLabels(count int) {
	for i := count; i < len(m.hubLabels); i++ {
		m.hidePanel(m.hubLabels[i])
	}
	for len(m.hubLabels) < count {
		m.hubLabels = append(m.hubLabels, &textPanel{})
	}
}

func (m *OverlayManager) showMarker(mk *marker, x, y, edge int, color uint32) error {
	if !mk.created {
		win, err := m.createOverrideRedirectWindow()
		if err != nil {
			return err
		}
		mk.win = win
		mk.created = true
	}

	m.updateWindow(mk.win, x, y, edge, edge, color)
	xproto.MapWindow(m.xu.Conn(), mk.win)
	mk.mapped = true
	return nil
}

func (m *OverlayManager) hideMarker(mk *marker) {
	if mk == nil || !mk.mapped {
		return
	}
	xproto.UnmapWindow(m.xu.Conn(), mk.win)
	mk.mapped = false
}

func (m *OverlayManager) destroyMarker(mk *marker) {
	if mk == nil || !mk.created {
		return
	}
	xproto.DestroyWindow(m.xu.Conn(), mk.win)
	mk.win = 0
	mk.created = false
	mk.mapped = false
}

// showLabel renders one line of text centered on x. Text panels degrade to
// nothing when no core font can be opened.
func (m *OverlayManager) showLabel(p *textPanel, x, y int, text string) {
	if text == "" || !m.ensurePanel(p) {
		m.hidePanel(p)
		return
	}
	if len(text) > 255 {
		text = text[:255]
	}

	conn := m.xu.Conn()
	width := len(text)*labelCharWidth + 2*labelPaddingX
	height := labelLineHeight + 6

	xproto.ConfigureWindow(
		conn,
		p.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x - width/2),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, p.win, xproto.CwBackPixel, []uint32{colorLabelBg})
	xproto.ClearArea(conn, false, p.win, 0, 0, 0, 0)
	xproto.MapWindow(conn, p.win)
	xproto.ImageText8(
		conn,
		byte(len(text)),
		xproto.Drawable(p.win),
		p.gc,
		int16(labelPaddingX),
		int16(labelLineHeight),
		text,
	)
	p.mapped = true
}

func (m *OverlayManager) hidePanel(p *textPanel) {
	if p == nil || !p.mapped {
		return
	}
	xproto.UnmapWindow(m.xu.Conn(), p.win)
	p.mapped = false
}

func (m *OverlayManager) destroyPanel(p *textPanel) {
	if p == nil || !p.created {
		return
	}
	conn := m.xu.Conn()
	xproto.FreeGC(conn, p.gc)
	xproto.CloseFont(conn, p.font)
	xproto.DestroyWindow(conn, p.win)
	p.win = 0
	p.created = false
	p.mapped = false
}

func (m *OverlayManager) ensurePanel(p *textPanel) bool {
	if p.disabled {
		return false
	}
	if p.created {
		return true
	}

	conn := m.xu.Conn()

	win, err := m.createOverrideRedirectWindow()
	if err != nil {
		p.disabled = true
		return false
	}

	font, err := xproto.NewFontId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		p.disabled = true
		return false
	}

	opened := false
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		xproto.DestroyWindow(conn, win)
		p.disabled = true
		return false
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, win)
		p.disabled = true
		return false
	}

	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{colorLabelText, colorLabelBg, uint32(font), 0},
	).Check()
	if err != nil {
		xproto.FreeGC(conn, gc)
		xproto.CloseFont(conn, font)
		xproto.DestroyWindow(conn, win)
		p.disabled = true
		return false
	}

	p.win = win
	p.gc = gc
	p.font = font
	p.created = true
	return true
}

func (m *OverlayManager) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := m.xu.Conn()
	screen := m.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		m.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		// Value list order follows the bit positions of the mask (low → high).
		// CwBackPixel comes before CwOverrideRedirect, so it must be first.
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, err
	}

	return wid, nil
}

func (m *OverlayManager) updateWindow(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := m.xu.Conn()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)

	xproto.ChangeWindowAttributes(
		conn,
		wid,
		xproto.CwBackPixel,
		[]uint32{color},
	)

	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

// setBorder gives a marker window a white outline of the given width.
func (m *OverlayManager) setBorder(wid xproto.Window, width int) {
	if width <= 0 {
		return
	}
	conn := m.xu.Conn()
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBorderPixel, []uint32{colorHighlight})
	xproto.ConfigureWindow(conn, wid, xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

// Raise restacks every mapped overlay window above, used after a peek lifts
// another window over the ring.
func (m *OverlayManager) Raise() {
	conn := m.xu.Conn()
	raise := func(win xproto.Window, mapped bool) {
		if !mapped {
			return
		}
		xproto.ConfigureWindow(conn, win, xproto.ConfigWindowStackMode,
			[]uint32{xproto.StackModeAbove})
	}

	raise(m.backdrop.win, m.backdrop.mapped)
	for _, mk := range m.hubMarkers {
		raise(mk.win, mk.mapped)
	}
	for _, mk := range m.nodeMarkers {
		raise(mk.win, mk.mapped)
	}
	for _, p := range m.hubLabels {
		raise(p.win, p.mapped)
	}
	raise(m.titleBanner.win, m.titleBanner.mapped)
}
