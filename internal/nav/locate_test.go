package nav

import (
	"testing"

	"github.com/atomicstack/marquee/internal/geom"
)

func TestNavigateWithNoFocusLandsOnFirstCandidate(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 2, 3)

	e.Navigate(Down)
	if got := e.State().Current; got != handles[0][0] {
		t.Fatalf("expected entry focus on first candidate %d, got %d", handles[0][0], got)
	}
}

func TestLeftRightStepSequentiallyWithinRow(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 1, 3)

	e.FocusElement(handles[0][1])
	e.Navigate(Right)
	if got := e.State().Current; got != handles[0][2] {
		t.Fatalf("expected right step to %d, got %d", handles[0][2], got)
	}
	e.Navigate(Left)
	e.Navigate(Left)
	if got := e.State().Current; got != handles[0][0] {
		t.Fatalf("expected two left steps to %d, got %d", handles[0][0], got)
	}
}

func TestLeftRightStopAtRowEnds(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 1, 3)

	e.FocusElement(handles[0][0])
	e.Navigate(Left)
	if got := e.State().Current; got != handles[0][0] {
		t.Fatalf("left at index 0 must not move, got %d", got)
	}

	e.FocusElement(handles[0][2])
	e.Navigate(Right)
	if got := e.State().Current; got != handles[0][2] {
		t.Fatalf("right at last index must not move, got %d", got)
	}
}

func TestLeftRightIgnoreGeometry(t *testing.T) {
	e := newTestEngine()
	// Registration order deliberately disagrees with x positions; the step
	// must follow registration order, not geometry.
	first := regRect(e, "row", geom.Rect{Left: 100, Top: 0, Width: 10, Height: 4})
	second := regRect(e, "row", geom.Rect{Left: 0, Top: 0, Width: 10, Height: 4})

	e.FocusElement(first)
	e.Navigate(Right)
	if got := e.State().Current; got != second {
		t.Fatalf("expected index step to %d despite reversed geometry, got %d", second, got)
	}
}

func TestDownFallsBackToAdjacentRowNearestCenter(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 3, 5)

	e.FocusElement(handles[0][2])
	e.Navigate(Down)
	if got := e.State().Current; got != handles[1][2] {
		t.Fatalf("expected down to land on row 2 index 2, got %d", got)
	}
	e.Navigate(Down)
	if got := e.State().Current; got != handles[2][2] {
		t.Fatalf("expected down to land on row 3 index 2, got %d", got)
	}
}

func TestAdjacentRowPicksNearestHorizontalCenter(t *testing.T) {
	e := newTestEngine()
	top := regRect(e, "top", geom.Rect{Left: 40, Top: 0, Width: 10, Height: 4})
	regRect(e, "bottom", geom.Rect{Left: 0, Top: 10, Width: 10, Height: 4})
	near := regRect(e, "bottom", geom.Rect{Left: 36, Top: 10, Width: 10, Height: 4})
	regRect(e, "bottom", geom.Rect{Left: 70, Top: 10, Width: 10, Height: 4})

	e.FocusElement(top)
	e.Navigate(Down)
	if got := e.State().Current; got != near {
		t.Fatalf("expected nearest-center candidate %d, got %d", near, got)
	}
}

func TestUpDownScoreVerticalNeighborsInsideGroup(t *testing.T) {
	e := newTestEngine()
	// One shared group shaped as a 2x2 grid: vertical movement must stay
	// column-stable via the weighted score.
	topLeft := regRect(e, "results", geom.Rect{Left: 0, Top: 0, Width: 100, Height: 40})
	topRight := regRect(e, "results", geom.Rect{Left: 120, Top: 0, Width: 100, Height: 40})
	bottomLeft := regRect(e, "results", geom.Rect{Left: 0, Top: 60, Width: 100, Height: 40})
	bottomRight := regRect(e, "results", geom.Rect{Left: 120, Top: 60, Width: 100, Height: 40})

	e.FocusElement(topRight)
	e.Navigate(Down)
	if got := e.State().Current; got != bottomRight {
		t.Fatalf("expected column-stable descent to %d, got %d", bottomRight, got)
	}
	e.Navigate(Up)
	if got := e.State().Current; got != topRight {
		t.Fatalf("expected column-stable ascent to %d, got %d", topRight, got)
	}

	e.FocusElement(bottomLeft)
	e.Navigate(Up)
	if got := e.State().Current; got != topLeft {
		t.Fatalf("expected ascent to %d, got %d", topLeft, got)
	}
}

func TestEdgeToleranceAdmitsSlightOverlap(t *testing.T) {
	opts := testOptions()
	opts.EdgeTolerance = 2
	e := New(opts, DefaultKeyMap())

	cur := regRect(e, "g", geom.Rect{Left: 0, Top: 10, Width: 10, Height: 4})
	// Bottom edge at 12, one unit past cur's top: inside tolerance.
	above := regRect(e, "g", geom.Rect{Left: 0, Top: 8, Width: 10, Height: 4})

	e.FocusElement(cur)
	e.Navigate(Up)
	if got := e.State().Current; got != above {
		t.Fatalf("expected tolerance to admit neighbor %d, got %d", above, got)
	}
}

func TestNoWraparoundAtGridBoundaries(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 2, 2)

	e.FocusElement(handles[0][0])
	e.Navigate(Up)
	if got := e.State().Current; got != handles[0][0] {
		t.Fatalf("up from topmost row must not move, got %d", got)
	}

	e.FocusElement(handles[1][1])
	e.Navigate(Down)
	if got := e.State().Current; got != handles[1][1] {
		t.Fatalf("down from bottommost row must not move, got %d", got)
	}
}

func TestLocatorNeverReturnsCurrent(t *testing.T) {
	e := newTestEngine()
	grid(e, 3, 3)
	snap := e.scan()

	for cur := range snap.items {
		for _, dir := range []Direction{Up, Down, Left, Right} {
			if got := snap.locate(dir, cur, e.opts); got == cur {
				t.Fatalf("locate(%v, %d) returned the current candidate", dir, cur)
			}
		}
	}
}

func TestVerticalMoveSatisfiesDirectionalPredicate(t *testing.T) {
	e := newTestEngine()
	grid(e, 3, 3)
	snap := e.scan()

	for cur := range snap.items {
		from := snap.items[cur].rect
		if got := snap.locate(Down, cur, e.opts); got != -1 {
			if snap.items[got].rect.Top < from.Top {
				t.Fatalf("down from %d moved upward to %d", cur, got)
			}
		}
		if got := snap.locate(Up, cur, e.opts); got != -1 {
			if snap.items[got].rect.Top > from.Top {
				t.Fatalf("up from %d moved downward to %d", cur, got)
			}
		}
	}
}

func TestScoreTieResolvesToEarliestCandidate(t *testing.T) {
	e := newTestEngine()
	top := regRect(e, "top", geom.Rect{Left: 20, Top: 0, Width: 10, Height: 4})
	left := regRect(e, "bottom", geom.Rect{Left: 10, Top: 10, Width: 10, Height: 4})
	regRect(e, "bottom", geom.Rect{Left: 30, Top: 10, Width: 10, Height: 4})

	e.FocusElement(top)
	e.Navigate(Down)
	if got := e.State().Current; got != left {
		t.Fatalf("equidistant centers must resolve to the earliest candidate %d, got %d", left, got)
	}
}

func TestRemovedFocusedElementFallsBackToFirst(t *testing.T) {
	e := newTestEngine()
	handles := grid(e, 2, 2)

	e.FocusElement(handles[1][1])
	e.Deregister(handles[1][1])

	e.Navigate(Up)
	if got := e.State().Current; got != handles[0][0] {
		t.Fatalf("expected fallback to first candidate %d, got %d", handles[0][0], got)
	}
}

func TestNavigateWithEmptyRegistryIsNoOp(t *testing.T) {
	e := newTestEngine()
	e.Navigate(Down)
	if got := e.State().Current; got != None {
		t.Fatalf("expected no focus with empty registry, got %d", got)
	}

	h := regRect(e, "", geom.Rect{Width: 10, Height: 4})
	e.FocusElement(h)
	e.Deregister(h)
	e.Navigate(Down)
	if got := e.State().Current; got != h {
		t.Fatalf("empty scan must leave the stale focus untouched, got %d", got)
	}
}
