package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/geom"
)

// ScrollContainer is a horizontally scrollable region hosting registered
// elements. Viewport returns its fixed visible bounds in page space;
// ScrollBy shifts its content by a signed horizontal delta.
type ScrollContainer interface {
	Viewport() geom.Rect
	ScrollBy(delta int) tea.Cmd
}

// Pager is the page-level vertical scroller. Viewport returns the currently
// visible page region; ScrollTo sets the absolute top offset.
type Pager interface {
	Viewport() geom.Rect
	ScrollTo(top int) tea.Cmd
}

// containerDelta computes the signed horizontal scroll needed to reveal
// target inside view, with margin extra space past the revealed edge. ok is
// false when the target is already horizontally visible.
func containerDelta(target, view geom.Rect, margin int) (delta int, ok bool) {
	if target.Left < view.Left {
		return target.Left - view.Left - margin, true
	}
	if target.Right() > view.Right() {
		return target.Right() - view.Right() + margin, true
	}
	return 0, false
}

// pageOffset computes the page top offset that vertically centers target,
// when target sits above the viewport within topMargin or below it within
// bottomMargin. ok is false when no page scroll is needed. The top margin is
// wider to clear fixed chrome at the top of the page.
func pageOffset(target, view geom.Rect, topMargin, bottomMargin int) (top int, ok bool) {
	above := target.Top < view.Top+topMargin
	below := target.Bottom() > view.Bottom()-bottomMargin
	if !above && !below {
		return 0, false
	}
	top = target.VCenter() - view.Height/2
	if top < 0 {
		top = 0
	}
	return top, true
}

// reveal scrolls the target's owning container and then the page so the
// target is visible before the focus marker lands on it. Missing containers
// and a missing pager degrade to no scrolling. Reveal never changes the
// current focus.
func (e *Engine) reveal(target candidate) []tea.Cmd {
	var cmds []tea.Cmd
	if target.container != "" {
		if c := e.containers[target.container]; c != nil {
			if delta, ok := containerDelta(target.rect, c.Viewport(), e.opts.ContainerMargin); ok {
				if cmd := c.ScrollBy(delta); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		}
	}
	if e.pager != nil {
		if top, ok := pageOffset(target.rect, e.pager.Viewport(), e.opts.PageTopMargin, e.opts.PageBottomMargin); ok {
			if cmd := e.pager.ScrollTo(top); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}
