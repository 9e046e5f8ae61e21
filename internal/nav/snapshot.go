package nav

import "github.com/atomicstack/marquee/internal/geom"

// candidate is one eligible element with its geometry frozen for a single
// navigation decision.
type candidate struct {
	handle    Handle
	group     string
	kind      Kind
	priority  int
	container string
	rect      geom.Rect
}

// groupRun is an ordered run of candidates sharing a navigation row.
type groupRun struct {
	id      string
	members []int
}

// snapshot is the immutable result of one discovery pass: candidates in scan
// order plus the row partition. Geometry inside a snapshot is never re-read;
// the next decision builds a fresh one.
type snapshot struct {
	items      []candidate
	groups     []groupRun
	byHandle   map[Handle]int
	groupOf    []int
	posInGroup []int
}

// scan walks the registry in registration order and collects eligible
// candidates. Excluded: skip-flagged elements, members of declared
// skip-navigation zones, disabled or hidden elements, and elements with no
// rendered size. Viewport visibility is deliberately not checked; off-screen
// elements that can scroll into view stay eligible.
func (e *Engine) scan() *snapshot {
	snap := &snapshot{byHandle: make(map[Handle]int, len(e.order))}
	for _, h := range e.order {
		ent := e.regs[h]
		if ent == nil {
			continue
		}
		r := ent.reg
		if r.Skip {
			continue
		}
		if r.Zone != "" && e.zones[r.Zone] {
			continue
		}
		if r.Disabled != nil && r.Disabled() {
			continue
		}
		if r.Hidden != nil && r.Hidden() {
			continue
		}
		var rect geom.Rect
		if r.Geometry != nil {
			rect = r.Geometry()
		}
		if rect.Empty() {
			continue
		}
		snap.byHandle[h] = len(snap.items)
		snap.items = append(snap.items, candidate{
			handle:    h,
			group:     r.Group,
			kind:      r.Kind,
			priority:  r.Priority,
			container: r.Container,
			rect:      rect,
		})
	}
	snap.groups, snap.groupOf, snap.posInGroup = partition(snap.items)
	return snap
}

// partition groups candidates into rows in a single pass. A candidate joins
// the run matching its explicit group id, created on first sight; ungrouped
// candidates become singleton runs. Run order is first-seen order.
func partition(items []candidate) ([]groupRun, []int, []int) {
	groups := make([]groupRun, 0, len(items))
	groupOf := make([]int, len(items))
	posInGroup := make([]int, len(items))
	seen := make(map[string]int)

	for i, c := range items {
		gi := -1
		if c.group != "" {
			if idx, ok := seen[c.group]; ok {
				gi = idx
			}
		}
		if gi == -1 {
			gi = len(groups)
			groups = append(groups, groupRun{id: c.group})
			if c.group != "" {
				seen[c.group] = gi
			}
		}
		groupOf[i] = gi
		posInGroup[i] = len(groups[gi].members)
		groups[gi].members = append(groups[gi].members, i)
	}
	return groups, groupOf, posInGroup
}

// indexOf resolves a handle to its candidate index, or -1 when the element
// is no longer discoverable.
func (s *snapshot) indexOf(h Handle) int {
	if h == None {
		return -1
	}
	if idx, ok := s.byHandle[h]; ok {
		return idx
	}
	return -1
}

// firstInView returns the index of the first candidate fully inside the
// viewport, falling back to the first candidate in scan order.
func (s *snapshot) firstInView(viewport geom.Rect, haveViewport bool) int {
	if len(s.items) == 0 {
		return -1
	}
	if haveViewport {
		for i, c := range s.items {
			if viewport.Contains(c.rect) {
				return i
			}
		}
	}
	return 0
}
