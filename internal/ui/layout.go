package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/geom"
	"github.com/atomicstack/marquee/internal/logging/events"
)

// Page geometry, in cells. The catalog is a virtual page laid out top to
// bottom: the hero block, then one shelf per section. The terminal shows a
// vertical slice of it between the fixed header row and the two status rows
// at the bottom.
const (
	chromeRows = 3 // header + status + hint

	cardWidth  = 20
	cardInner  = cardWidth - 4 // label cell between borders and padding
	cardHeight = 3
	cardGap    = 1
	cardStride = cardWidth + cardGap

	cardLeft  = 2 // first card column; column 0 holds the ‹ indicator
	heroLines = 4 // name, tagline, buttons, separator
	rowLines  = 5 // section title, three box lines, separator
)

// The header bar occupies its own terminal row above the page origin, so
// header element rects sit at Top -1: reachable by row adjacency, never
// picked up as "first fully visible" by the settle auto-focus.
const (
	searchFieldWidth = 34
	scopeSelWidth    = 10
)

// Search page lines: result count, suggestion, table header, then one line
// per result.
const resultTop = 3

// indicatorDelay is how long after a wheel burst the row edge indicators
// are re-evaluated.
const indicatorDelay = 300 * time.Millisecond

type scrollCheckMsg struct {
	seq int
}

// rowState is the live layout record for one section shelf. Card geometry
// closures read it, so mutating offset here moves every registered card of
// the row in page space.
type rowState struct {
	section catalog.Section
	top     int // page line of the section title
	offset  int // horizontal scroll, in cells

	canLeft  bool
	canRight bool
}

// contentWidth returns the total width of the row's cards including gaps.
func (r *rowState) contentWidth() int {
	n := len(r.section.Titles)
	if n == 0 {
		return 0
	}
	return n*cardStride - cardGap
}

func (r *rowState) maxOffset(areaWidth int) int {
	max := r.contentWidth() - areaWidth
	if max < 0 {
		return 0
	}
	return max
}

func (r *rowState) clampOffset(areaWidth int) {
	if max := r.maxOffset(areaWidth); r.offset > max {
		r.offset = max
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r *rowState) refreshIndicators(areaWidth int) {
	r.canLeft = r.offset > 0
	r.canRight = r.offset < r.maxOffset(areaWidth)
}

// layoutRows rebuilds the shelf records for a fresh section list, carrying
// horizontal scroll positions over by section id so a background refresh
// does not snap shelves back to their left edge.
func (m *Model) layoutRows(sections []catalog.Section) []*rowState {
	prev := make(map[string]int, len(m.rows))
	for _, row := range m.rows {
		prev[row.section.ID] = row.offset
	}
	top := m.heroHeight()
	rows := make([]*rowState, 0, len(sections))
	for _, section := range sections {
		row := &rowState{section: section, top: top}
		if off, ok := prev[section.ID]; ok {
			row.offset = off
		}
		row.clampOffset(m.cardAreaWidth())
		row.refreshIndicators(m.cardAreaWidth())
		rows = append(rows, row)
		top += rowLines
	}
	return rows
}

// heroHeight returns the page lines taken by the hero block, zero when no
// featured title is known yet.
func (m *Model) heroHeight() int {
	if m.featured.Featured() == nil {
		return 0
	}
	return heroLines
}

func (m *Model) browsePageHeight() int {
	return m.heroHeight() + len(m.rows)*rowLines
}

func (m *Model) searchPageHeight() int {
	return resultTop + len(m.search.results)
}

func (m *Model) pageHeight() int {
	if m.searchOpen() {
		return m.searchPageHeight()
	}
	return m.browsePageHeight()
}

// viewHeight is the number of page lines visible between the chrome rows.
// With no known terminal height the whole page is visible.
func (m *Model) viewHeight() int {
	if m.height <= 0 {
		return m.pageHeight()
	}
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

// cardAreaWidth is the width of the card strip between the two indicator
// columns.
func (m *Model) cardAreaWidth() int {
	w := m.width - cardLeft - 2
	if w < cardWidth {
		w = cardWidth
	}
	return w
}

func (m *Model) maxPageOffset() int {
	max := m.pageHeight() - m.viewHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) clampPageOffset() {
	if max := m.maxPageOffset(); m.pageOffset > max {
		m.pageOffset = max
	}
	if m.pageOffset < 0 {
		m.pageOffset = 0
	}
}

// cardRect returns the page-space rectangle of one card in a shelf,
// reflecting the shelf's current horizontal scroll. Cards pushed past the
// strip edges keep their true off-strip coordinates; the engine scrolls
// them back into view on focus.
func (m *Model) cardRect(row *rowState, idx int) geom.Rect {
	return geom.Rect{
		Left:   cardLeft + idx*cardStride - row.offset,
		Top:    row.top + 1,
		Width:  cardWidth,
		Height: cardHeight,
	}
}

func (m *Model) heroPlayRect() geom.Rect {
	return geom.Rect{Left: cardLeft, Top: 2, Width: len([]rune(heroPlayLabel)) + 2, Height: 1}
}

func (m *Model) heroListRect() geom.Rect {
	play := m.heroPlayRect()
	return geom.Rect{Left: play.Right() + 2, Top: 2, Width: len([]rune(heroListLabel)) + 2, Height: 1}
}

func (m *Model) searchFieldRect() geom.Rect {
	return geom.Rect{Left: 0, Top: -1, Width: searchFieldWidth, Height: 1}
}

func (m *Model) scopeRect() geom.Rect {
	left := m.width - scopeSelWidth
	if left < searchFieldWidth {
		left = searchFieldWidth
	}
	return geom.Rect{Left: left, Top: -1, Width: scopeSelWidth, Height: 1}
}

func (m *Model) resultRect(idx int) geom.Rect {
	return geom.Rect{Left: 0, Top: resultTop + idx, Width: m.search.tableWidth + 2, Height: 1}
}

// rowAt hit-tests a page line against the shelf card strips, for routing
// horizontal wheel events.
func (m *Model) rowAt(pageY int) *rowState {
	for _, row := range m.rows {
		if pageY >= row.top+1 && pageY < row.top+1+cardHeight {
			return row
		}
	}
	return nil
}

// pagerView adapts the model's vertical page scroll to the engine's pager
// surface.
type pagerView struct {
	m *Model
}

func (p pagerView) Viewport() geom.Rect {
	return geom.Rect{Left: 0, Top: p.m.pageOffset, Width: p.m.width, Height: p.m.viewHeight()}
}

func (p pagerView) ScrollTo(top int) tea.Cmd {
	p.m.pageOffset = top
	p.m.clampPageOffset()
	events.UI.PageScroll(p.m.pageOffset)
	return nil
}

// rowContainer adapts one shelf to the engine's scroll container surface.
// Scrolls land synchronously; the command is always nil.
type rowContainer struct {
	m   *Model
	row *rowState
}

func (c rowContainer) Viewport() geom.Rect {
	return geom.Rect{Left: cardLeft, Top: c.row.top + 1, Width: c.m.cardAreaWidth(), Height: cardHeight}
}

func (c rowContainer) ScrollBy(delta int) tea.Cmd {
	c.row.offset += delta
	c.row.clampOffset(c.m.cardAreaWidth())
	c.row.refreshIndicators(c.m.cardAreaWidth())
	events.UI.RowScroll(c.row.section.ID, c.row.offset)
	return nil
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
