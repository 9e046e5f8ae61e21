package geom

import "testing"

func TestRectEdgesAndCenters(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 30, Height: 8}
	if r.Right() != 40 {
		t.Fatalf("expected right 40, got %d", r.Right())
	}
	if r.Bottom() != 28 {
		t.Fatalf("expected bottom 28, got %d", r.Bottom())
	}
	if r.HCenter() != 25 {
		t.Fatalf("expected hcenter 25, got %d", r.HCenter())
	}
	if r.VCenter() != 24 {
		t.Fatalf("expected vcenter 24, got %d", r.VCenter())
	}
}

func TestEmptyRect(t *testing.T) {
	cases := []Rect{
		{},
		{Left: 5, Top: 5, Width: 0, Height: 10},
		{Left: 5, Top: 5, Width: 10, Height: 0},
		{Width: -1, Height: 4},
	}
	for _, r := range cases {
		if !r.Empty() {
			t.Fatalf("expected %+v to be empty", r)
		}
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Fatalf("1x1 rect reported empty")
	}
}

func TestContains(t *testing.T) {
	outer := Rect{Left: 0, Top: 0, Width: 100, Height: 50}
	if !outer.Contains(Rect{Left: 10, Top: 10, Width: 20, Height: 5}) {
		t.Fatalf("expected inner rect to be contained")
	}
	if outer.Contains(Rect{Left: 90, Top: 10, Width: 20, Height: 5}) {
		t.Fatalf("rect overhanging the right edge must not be contained")
	}
	if outer.Contains(Rect{Left: 10, Top: 48, Width: 5, Height: 5}) {
		t.Fatalf("rect overhanging the bottom edge must not be contained")
	}
	if outer.Contains(Rect{Left: 10, Top: 10}) {
		t.Fatalf("empty rect must not be contained")
	}
}

func TestIntersects(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{Left: 5, Top: 5, Width: 10, Height: 10}) {
		t.Fatalf("expected overlap")
	}
	if a.Intersects(Rect{Left: 10, Top: 0, Width: 5, Height: 5}) {
		t.Fatalf("edge-adjacent rects must not intersect")
	}
	if a.Intersects(Rect{Left: 20, Top: 20, Width: 5, Height: 5}) {
		t.Fatalf("disjoint rects must not intersect")
	}
}
