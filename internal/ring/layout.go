package ring

import (
	"hash/fnv"
	"math"
)

// Point is a position in ring-local coordinates (pixels, origin top-left).
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Metrics holds the geometry inputs for a layout pass.
type Metrics struct {
	HubRadius   float64 // distance from ring center to each app hub
	SpokeLength float64 // distance from a hub to its window nodes
	NodeRadius  float64 // base hit radius of a window node
}

// Hub anchors one app group on the ring.
type Hub struct {
	App     string
	Center  Point
	Windows int
}

// Node is the hit target for a single window, spoked off its hub.
type Node struct {
	Center   Point
	Radius   float64
	HubIndex int
	Window   Window
}

// Layout is the full derived geometry for one animation frame. Nodes are in
// app-major, then-window order; Flattened is the same sequence reshaped for
// index-based keyboard traversal.
type Layout struct {
	Center    Point
	Hubs      []Hub
	Nodes     []Node
	Flattened []Window
}

// Angular gap between sibling window spokes.
const spokeStep = math.Pi / 11

// Compute derives hub and node positions for the given groups at the given
// animation progress. Hubs are evenly spaced on a circle starting at
// 12 o'clock and going clockwise; all distances and the node radius scale
// with progress so the ring grows out of its center. For a fixed group
// snapshot, center, and progress the output is identical on every call.
func Compute(groups Groups, progress float64, center Point, m Metrics) *Layout {
	layout := &Layout{Center: center}

	appNames := groups.SortedKeys()
	if len(appNames) == 0 {
		return layout
	}

	progress = clamp01(progress)
	n := float64(len(appNames))

	for i, app := range appNames {
		angle := 2*math.Pi*float64(i)/n - math.Pi/2
		hubDist := m.HubRadius * progress
		hub := Point{
			X: center.X + hubDist*math.Cos(angle),
			Y: center.Y + hubDist*math.Sin(angle),
		}

		wins := groups[app]
		layout.Hubs = append(layout.Hubs, Hub{
			App:     app,
			Center:  hub,
			Windows: len(wins),
		})

		for j, win := range wins {
			offset := 0.0
			if len(wins) > 1 {
				offset = (float64(j) - float64(len(wins)-1)/2) * spokeStep
			}
			spokeAngle := angle + offset

			node := Node{
				Center: Point{
					X: hub.X + m.SpokeLength*progress*math.Cos(spokeAngle),
					Y: hub.Y + m.SpokeLength*progress*math.Sin(spokeAngle),
				},
				Radius:   m.NodeRadius * progress,
				HubIndex: i,
				Window:   win,
			}
			layout.Nodes = append(layout.Nodes, node)
			layout.Flattened = append(layout.Flattened, win)
		}
	}

	return layout
}

// AppColor derives a stable 0xRRGGBB color for an app name. The hue comes
// from an FNV-1a hash, so the same app renders the same color on every
// opening; lightness and saturation are fixed to keep nodes vivid against
// the dark backdrop.
func AppColor(app string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(app))
	hue := float64(h.Sum32()%360) / 360.0
	r, g, b := hlsToRGB(hue, 0.6, 0.85)
	return uint32(r*255)<<16 | uint32(g*255)<<8 | uint32(b*255)
}

// hlsToRGB converts hue/lightness/saturation (all in [0,1]) to RGB in [0,1].
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueValue(m1, m2, h+1.0/3.0), hueValue(m1, m2, h), hueValue(m1, m2, h-1.0/3.0)
}

func hueValue(m1, m2, h float64) float64 {
	h = math.Mod(h+1, 1)
	switch {
	case h < 1.0/6.0:
		return m1 + (m2-m1)*6*h
	case h < 0.5:
		return m2
	case h < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-h)*6
	default:
		return m1
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
