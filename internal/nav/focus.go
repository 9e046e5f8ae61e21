package nav

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/geom"
	"github.com/atomicstack/marquee/internal/logging/events"
)

// Navigate performs one directional step: discover, partition, locate,
// reveal, focus. Commands inside the throttle window are dropped. With
// nothing discoverable it is a no-op and the current focus is untouched. A
// current focus that no longer resolves is treated as no focus at all, so
// the step lands on the first candidate in scan order.
func (e *Engine) Navigate(dir Direction) tea.Cmd {
	if !e.gateOpen() {
		events.Nav.Blocked(dir.String(), "throttle")
		return nil
	}
	return e.step(dir)
}

// gateOpen advances the throttle gate. At most one directional command per
// Throttle interval passes; the rest are dropped, not queued.
func (e *Engine) gateOpen() bool {
	now := time.Now()
	if now.Sub(e.gate) < e.opts.Throttle {
		return false
	}
	e.gate = now
	return true
}

func (e *Engine) step(dir Direction) tea.Cmd {
	snap := e.scan()
	if len(snap.items) == 0 {
		events.Nav.Blocked(dir.String(), "empty")
		return nil
	}
	cur := snap.indexOf(e.state.Current)
	target := snap.locate(dir, cur, e.opts)
	if target == -1 {
		events.Nav.Blocked(dir.String(), "boundary")
		return nil
	}
	from := e.state.Current
	cmd := e.focusCandidate(snap.items[target])
	events.Nav.Move(dir.String(), int(from), int(e.state.Current))
	return cmd
}

// FocusElement imperatively focuses a registered element, e.g. a dialog
// landing focus on its confirm button. Works on zone members too, which
// plain navigation never reaches.
func (e *Engine) FocusElement(h Handle) tea.Cmd {
	if h == None {
		return e.clearFocus()
	}
	ent := e.regs[h]
	if ent == nil {
		return nil
	}
	c := candidate{
		handle:    h,
		group:     ent.reg.Group,
		kind:      ent.reg.Kind,
		priority:  ent.reg.Priority,
		container: ent.reg.Container,
	}
	if ent.reg.Geometry != nil {
		c.rect = ent.reg.Geometry()
	}
	return e.focusCandidate(c)
}

// focusCandidate is the focus controller. It sweeps stale markers, reveals
// the target (container first, then page) before any marker is applied,
// marks the target, hands platform focus over via the blur/focus callbacks,
// and finally records the new current focus. Afterwards at most one element
// outside declared skip zones is marked.
func (e *Engine) focusCandidate(c candidate) tea.Cmd {
	e.sweep()

	var cmds []tea.Cmd
	cmds = append(cmds, e.reveal(c)...)

	e.marked[c.handle] = true

	prev := e.state.Current
	if prev != None && prev != c.handle {
		if ent := e.regs[prev]; ent != nil && ent.reg.OnBlur != nil {
			if cmd := ent.reg.OnBlur(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if ent := e.regs[c.handle]; ent != nil && ent.reg.OnFocus != nil {
		if cmd := ent.reg.OnFocus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	e.state.Current = c.handle
	events.Nav.Focus(int(c.handle), c.group)
	return batch(cmds)
}

// clearFocus drops every marker outside declared zones and forgets the
// current focus.
func (e *Engine) clearFocus() tea.Cmd {
	e.sweep()
	prev := e.state.Current
	e.state.Current = None
	if prev == None {
		return nil
	}
	if ent := e.regs[prev]; ent != nil && ent.reg.OnBlur != nil {
		return ent.reg.OnBlur()
	}
	return nil
}

// sweep clears the focus marker from every marked element except members of
// declared skip-navigation zones, whose overlays manage their own highlight.
func (e *Engine) sweep() {
	for h := range e.marked {
		ent := e.regs[h]
		if ent != nil && ent.reg.Zone != "" && e.zones[ent.reg.Zone] {
			continue
		}
		delete(e.marked, h)
	}
}

// autoFocus is the settle-delay entry: focus the first candidate fully
// inside the page viewport, falling back to the first candidate in scan
// order. A handle that took focus in the meantime wins; auto-entry never
// steals.
func (e *Engine) autoFocus() tea.Cmd {
	if e.state.Current != None {
		return nil
	}
	snap := e.scan()
	var viewport geom.Rect
	haveViewport := false
	if e.pager != nil {
		viewport = e.pager.Viewport()
		haveViewport = true
	}
	target := snap.firstInView(viewport, haveViewport)
	if target == -1 {
		return nil
	}
	cmd := e.focusCandidate(snap.items[target])
	events.Nav.AutoFocus(int(e.state.Current))
	return cmd
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
