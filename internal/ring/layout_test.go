package ring

import (
	"math"
	"testing"
)

var testMetrics = Metrics{HubRadius: 190, SpokeLength: 70, NodeRadius: 16}

func TestCompute_FirstHubAtTwelveOClock(t *testing.T) {
	groups := Groups{
		"Brave":    {{ID: "0x01"}},
		"Firefox":  {{ID: "0x02"}},
		"Terminal": {{ID: "0x03"}},
	}
	center := Point{X: 400, Y: 400}

	l := Compute(groups, 1.0, center, testMetrics)

	if len(l.Hubs) != 3 {
		t.Fatalf("expected 3 hubs, got %d", len(l.Hubs))
	}
	first := l.Hubs[0]
	if first.App != "Brave" {
		t.Fatalf("expected first hub to be Brave, got %s", first.App)
	}
	if math.Abs(first.Center.X-center.X) > 1e-9 {
		t.Fatalf("first hub should sit straight up from center, got X=%f", first.Center.X)
	}
	if math.Abs(first.Center.Y-(center.Y-testMetrics.HubRadius)) > 1e-9 {
		t.Fatalf("first hub Y = %f, want %f", first.Center.Y, center.Y-testMetrics.HubRadius)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	groups := GroupWindows([]Window{
		{ID: "0x01", App: "firefox"},
		{ID: "0x02", App: "Brave-browser"},
		{ID: "0x03", App: "firefox"},
	})
	center := Point{X: 300, Y: 300}

	a := Compute(groups, 0.7, center, testMetrics)
	b := Compute(groups, 0.7, center, testMetrics)

	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i].Center != b.Nodes[i].Center || a.Nodes[i].Window.ID != b.Nodes[i].Window.ID {
			t.Fatalf("node %d differs between identical passes", i)
		}
	}
}

func TestCompute_FlattenedIsAppMajorSnapshotOrder(t *testing.T) {
	groups := GroupWindows([]Window{
		{ID: "0x01", App: "firefox"},
		{ID: "0x02", App: "Brave-browser"},
		{ID: "0x03", App: "firefox"},
	})

	l := Compute(groups, 1.0, Point{X: 100, Y: 100}, testMetrics)

	// Brave sorts before Firefox; inside Firefox the snapshot order holds.
	want := []string{"0x02", "0x01", "0x03"}
	if len(l.Flattened) != len(want) {
		t.Fatalf("expected %d flattened windows, got %d", len(want), len(l.Flattened))
	}
	for i, id := range want {
		if l.Flattened[i].ID != id {
			t.Fatalf("flattened[%d] = %s, want %s", i, l.Flattened[i].ID, id)
		}
	}
	for i := range l.Nodes {
		if l.Nodes[i].Window.ID != l.Flattened[i].ID {
			t.Fatalf("nodes and flattened disagree at index %d", i)
		}
	}
}

func TestCompute_ProgressScalesDistances(t *testing.T) {
	groups := Groups{"Gimp": {{ID: "0x01"}}}
	center := Point{X: 0, Y: 0}

	half := Compute(groups, 0.5, center, testMetrics)
	full := Compute(groups, 1.0, center, testMetrics)

	dHalf := half.Hubs[0].Center.Dist(center)
	dFull := full.Hubs[0].Center.Dist(center)
	if math.Abs(dHalf-dFull/2) > 1e-9 {
		t.Fatalf("hub distance at 0.5 = %f, want half of %f", dHalf, dFull)
	}
	if half.Nodes[0].Radius >= full.Nodes[0].Radius {
		t.Fatalf("node radius should grow with progress: %f vs %f", half.Nodes[0].Radius, full.Nodes[0].Radius)
	}
}

func TestCompute_ProgressClamped(t *testing.T) {
	groups := Groups{"Gimp": {{ID: "0x01"}}}
	over := Compute(groups, 1.5, Point{}, testMetrics)
	at := Compute(groups, 1.0, Point{}, testMetrics)
	if over.Hubs[0].Center != at.Hubs[0].Center {
		t.Fatalf("progress beyond 1 should saturate: %v vs %v", over.Hubs[0].Center, at.Hubs[0].Center)
	}
}

func TestCompute_SpokesSymmetricAroundHub(t *testing.T) {
	groups := Groups{"Terminal": {{ID: "0x01"}, {ID: "0x02"}, {ID: "0x03"}}}
	center := Point{X: 500, Y: 500}

	l := Compute(groups, 1.0, center, testMetrics)

	if len(l.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(l.Nodes))
	}
	hub := l.Hubs[0].Center
	// The middle window of an odd-sized group sits on the hub's own angle.
	mid := l.Nodes[1].Center
	hubAngle := math.Atan2(hub.Y-center.Y, hub.X-center.X)
	midAngle := math.Atan2(mid.Y-hub.Y, mid.X-hub.X)
	if math.Abs(hubAngle-midAngle) > 1e-9 {
		t.Fatalf("middle spoke angle %f, want hub angle %f", midAngle, hubAngle)
	}
	// Outer siblings sit at equal distance from the hub.
	d0 := l.Nodes[0].Center.Dist(hub)
	d2 := l.Nodes[2].Center.Dist(hub)
	if math.Abs(d0-d2) > 1e-9 {
		t.Fatalf("sibling spoke lengths differ: %f vs %f", d0, d2)
	}
}

func TestCompute_SingleWindowSpokeHasNoOffset(t *testing.T) {
	groups := Groups{"Gimp": {{ID: "0x01"}}}
	center := Point{X: 200, Y: 200}

	l := Compute(groups, 1.0, center, testMetrics)

	node := l.Nodes[0].Center
	wantY := center.Y - testMetrics.HubRadius - testMetrics.SpokeLength
	if math.Abs(node.X-center.X) > 1e-9 || math.Abs(node.Y-wantY) > 1e-9 {
		t.Fatalf("single node at (%f,%f), want (%f,%f)", node.X, node.Y, center.X, wantY)
	}
}

func TestCompute_EmptyGroups(t *testing.T) {
	l := Compute(Groups{}, 1.0, Point{X: 10, Y: 10}, testMetrics)
	if len(l.Hubs) != 0 || len(l.Nodes) != 0 || len(l.Flattened) != 0 {
		t.Fatalf("expected empty layout, got %d hubs %d nodes", len(l.Hubs), len(l.Nodes))
	}
}

func TestAppColor_StablePerApp(t *testing.T) {
	a := AppColor("Firefox")
	b := AppColor("Firefox")
	if a != b {
		t.Fatalf("AppColor not stable: %06x vs %06x", a, b)
	}
	if AppColor("Firefox") == AppColor("Terminal") && AppColor("Firefox") == AppColor("Gimp") {
		t.Fatalf("distinct apps all mapped to the same color")
	}
	if a > 0xffffff {
		t.Fatalf("color out of RGB range: %x", a)
	}
}
