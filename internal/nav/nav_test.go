package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/geom"
)

// testOptions disables the throttle and keeps the stock distances so tests
// can fire commands back to back.
func testOptions() Options {
	opts := DefaultOptions()
	opts.Throttle = 0
	return opts
}

func newTestEngine() *Engine {
	return New(testOptions(), DefaultKeyMap())
}

func regRect(e *Engine, group string, r geom.Rect) Handle {
	h, _ := e.Register(Registration{
		Group:    group,
		Geometry: func() geom.Rect { return r },
	})
	return h
}

// grid registers rows*cols cards, one group per row, at pixel scale so the
// stock edge tolerance stays well below the row spacing. Cards are 100x40
// on a 120x60 pitch. Returns handles indexed [row][col].
func grid(e *Engine, rows, cols int) [][]Handle {
	handles := make([][]Handle, rows)
	for r := 0; r < rows; r++ {
		handles[r] = make([]Handle, cols)
		for c := 0; c < cols; c++ {
			rect := geom.Rect{Left: c * 120, Top: r * 60, Width: 100, Height: 40}
			handles[r][c] = regRect(e, rowID(r), rect)
		}
	}
	return handles
}

func rowID(r int) string {
	return string(rune('a' + r))
}

type fakeContainer struct {
	view     geom.Rect
	scrolled []int
}

func (f *fakeContainer) Viewport() geom.Rect { return f.view }

func (f *fakeContainer) ScrollBy(delta int) tea.Cmd {
	f.scrolled = append(f.scrolled, delta)
	return nil
}

type fakePager struct {
	view    geom.Rect
	offsets []int
}

func (f *fakePager) Viewport() geom.Rect { return f.view }

func (f *fakePager) ScrollTo(top int) tea.Cmd {
	f.offsets = append(f.offsets, top)
	return nil
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func altKeyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t, Alt: true}
}
