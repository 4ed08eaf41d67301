package ring

import "sort"

// Window is one entry from the window source snapshot. ID is an opaque
// identifier understood by the source (an X11 window ID in hex); the ring
// never interprets it.
type Window struct {
	ID    string
	App   string
	Title string
}

// Groups buckets a window snapshot by normalized app name. Within a bucket
// windows keep snapshot order.
type Groups map[string][]Window

// GroupWindows partitions a snapshot into app groups using Normalize on each
// window's class. Every window lands in exactly one bucket; an empty snapshot
// yields empty groups, which the layout treats as nothing to render.
func GroupWindows(windows []Window) Groups {
	groups := make(Groups, len(windows))
	for _, w := range windows {
		key := Normalize(w.App)
		groups[key] = append(groups[key], w)
	}
	return groups
}

// SortedKeys returns the group keys in lexicographic order. Hub placement
// iterates this, so the same window set always produces the same ring.
func (g Groups) SortedKeys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WindowCount returns the total number of windows across all groups.
func (g Groups) WindowCount() int {
	n := 0
	for _, wins := range g {
		n += len(wins)
	}
	return n
}
