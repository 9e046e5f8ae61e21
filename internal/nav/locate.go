package nav

import "github.com/atomicstack/marquee/internal/geom"

// locate computes the best next candidate for a directional step, or -1 when
// no candidate qualifies. cur == -1 means nothing is focused, which resolves
// to the first candidate in scan order.
//
// Left/Right step sequentially through the current row with no wraparound.
// Up/Down first score geometric neighbors inside the current row, then fall
// back to the adjacent row. Moving down and back up is not guaranteed to
// restore the origin in irregular layouts; that asymmetry is accepted.
func (s *snapshot) locate(dir Direction, cur int, opts Options) int {
	if len(s.items) == 0 {
		return -1
	}
	if cur < 0 || cur >= len(s.items) {
		return 0
	}
	switch dir {
	case Left, Right:
		return s.stepInRow(dir, cur)
	case Up, Down:
		if t := s.nearestInRow(dir, cur, opts); t != -1 {
			return t
		}
		return s.nearestInAdjacentRow(dir, cur)
	}
	return -1
}

// stepInRow moves one index through the candidate's own row. This is a pure
// sequential step, never geometric.
func (s *snapshot) stepInRow(dir Direction, cur int) int {
	run := s.groups[s.groupOf[cur]]
	pos := s.posInGroup[cur]
	if dir == Left {
		pos--
	} else {
		pos++
	}
	if pos < 0 || pos >= len(run.members) {
		return -1
	}
	return run.members[pos]
}

// nearestInRow scores candidates in the current row that lie strictly beyond
// the current element's edge in the requested direction, with a tolerance
// absorbing layout noise. Score is the vertical center distance plus the
// weighted horizontal center distance; the minimum wins, earliest candidate
// on ties.
func (s *snapshot) nearestInRow(dir Direction, cur int, opts Options) int {
	run := s.groups[s.groupOf[cur]]
	from := s.items[cur].rect
	best := -1
	bestScore := 0
	for _, m := range run.members {
		if m == cur {
			continue
		}
		to := s.items[m].rect
		if !beyondEdge(dir, from, to, opts.EdgeTolerance) {
			continue
		}
		score := geom.Abs(to.VCenter()-from.VCenter()) +
			opts.HorizontalWeight*geom.Abs(to.HCenter()-from.HCenter())
		if best == -1 || score < bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}

// beyondEdge reports whether to lies past from's edge in the travel
// direction. Only Up and Down use geometry.
func beyondEdge(dir Direction, from, to geom.Rect, tolerance int) bool {
	switch dir {
	case Up:
		return to.Bottom() <= from.Top+tolerance
	case Down:
		return to.Top >= from.Bottom()-tolerance
	}
	return false
}

// nearestInAdjacentRow falls back to the neighboring row by partition index,
// picking the member whose horizontal center lands closest to the current
// one. Returns -1 past the top or bottom row; there is no wraparound.
func (s *snapshot) nearestInAdjacentRow(dir Direction, cur int) int {
	gi := s.groupOf[cur]
	if dir == Up {
		gi--
	} else {
		gi++
	}
	if gi < 0 || gi >= len(s.groups) {
		return -1
	}
	center := s.items[cur].rect.HCenter()
	best := -1
	bestDist := 0
	for _, m := range s.groups[gi].members {
		dist := geom.Abs(s.items[m].rect.HCenter() - center)
		if best == -1 || dist < bestDist {
			best = m
			bestDist = dist
		}
	}
	return best
}
