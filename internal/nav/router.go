package nav

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/logging/events"
)

// HandleKey routes one key event through the navigation state machine. The
// boolean reports whether the engine consumed the key; on false the host
// (or the focused widget) should process it instead. The router reads
// enabled/navigating/focus from the engine's live state at event time, never
// from values captured earlier.
func (e *Engine) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if dir, forced, ok := e.directionFor(msg); ok {
		return e.handleDirectional(dir, forced)
	}
	if key.Matches(msg, e.keys.Activate) {
		return e.handleActivate()
	}
	return nil, false
}

func (e *Engine) directionFor(msg tea.KeyMsg) (Direction, bool, bool) {
	switch {
	case key.Matches(msg, e.keys.Up):
		return Up, false, true
	case key.Matches(msg, e.keys.Down):
		return Down, false, true
	case key.Matches(msg, e.keys.Left):
		return Left, false, true
	case key.Matches(msg, e.keys.Right):
		return Right, false, true
	case key.Matches(msg, e.keys.ForceUp):
		return Up, true, true
	case key.Matches(msg, e.keys.ForceDown):
		return Down, true, true
	case key.Matches(msg, e.keys.ForceLeft):
		return Left, true, true
	case key.Matches(msg, e.keys.ForceRight):
		return Right, true, true
	}
	return 0, false, false
}

func (e *Engine) handleDirectional(dir Direction, forced bool) (tea.Cmd, bool) {
	// An active skip-navigation zone owns its keys entirely.
	if e.activeZone != "" {
		events.Nav.ZoneIgnored(dir.String(), e.activeZone)
		return nil, false
	}

	// First directional key anywhere: flip Enabled for good, and let the
	// settle delay pick the entry focus once layout has finished.
	if !e.state.Enabled {
		e.state.Enabled = true
		e.state.Navigating = true
		events.Nav.Enter(dir.String())
		e.settleSeq++
		return tick(e.opts.SettleDelay, settleMsg{seq: e.settleSeq}), true
	}

	if !forced {
		if cmd, handled, done := e.arbitrate(dir); done {
			return cmd, handled
		}
	}

	if !e.gateOpen() {
		events.Nav.Blocked(dir.String(), "throttle")
		return nil, true
	}
	return e.step(dir), true
}

// arbitrate decides whether the focused widget keeps a directional key.
// done=false means no widget claimed arbitration and plain navigation
// proceeds.
func (e *Engine) arbitrate(dir Direction) (tea.Cmd, bool, bool) {
	cur := e.state.Current
	ent := e.regs[cur]
	if cur == None || ent == nil {
		return nil, false, false
	}
	switch ent.reg.Kind {
	case KindTextField:
		if ent.reg.Text == nil {
			return nil, false, false
		}
		ts := ent.reg.Text()
		if !ts.Focused {
			return nil, false, false
		}
		if dir == Left || dir == Right {
			atEdge := (dir == Left && ts.AtStart) || (dir == Right && ts.AtEnd)
			if !ts.Empty && !(atEdge && !ts.Selecting) {
				// The caret keeps horizontal keys mid-text.
				return nil, false, true
			}
		}
		return e.exitTextField(dir, cur), true, true
	case KindInput:
		// Other input widgets keep their arrows; alt+arrow overrides.
		return nil, false, true
	}
	return nil, false, false
}

// exitTextField navigates away using the field as the reference point and
// blurs it, even when no neighbor exists in that direction.
func (e *Engine) exitTextField(dir Direction, field Handle) tea.Cmd {
	if !e.gateOpen() {
		events.Nav.Blocked(dir.String(), "throttle")
		return nil
	}
	events.Nav.TextExit(dir.String())
	var cmds []tea.Cmd
	if cmd := e.step(dir); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if e.state.Current == field {
		if ent := e.regs[field]; ent != nil && ent.reg.OnBlur != nil {
			if cmd := ent.reg.OnBlur(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return batch(cmds)
}

func (e *Engine) handleActivate() (tea.Cmd, bool) {
	if e.activeZone != "" {
		return nil, false
	}
	ent := e.regs[e.state.Current]
	if ent == nil || ent.reg.Kind != KindElement || ent.reg.Activate == nil {
		return nil, false
	}
	events.Nav.Activate(int(e.state.Current))
	return ent.reg.Activate(), true
}

// PointerActive records pointer movement: while navigation mode is enabled
// it raises the navigating flag and restarts the idle window that lowers it
// again.
func (e *Engine) PointerActive() tea.Cmd {
	if !e.state.Enabled {
		return nil
	}
	e.state.Navigating = true
	e.idleSeq++
	return tick(e.opts.PointerIdle, pointerIdleMsg{seq: e.idleSeq})
}

// Update consumes the engine's internal timer messages. The boolean reports
// whether the message belonged to the engine. Stale sequence numbers are
// swallowed; a superseded or closed timer must not act.
func (e *Engine) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch m := msg.(type) {
	case settleMsg:
		if m.seq != e.settleSeq {
			return nil, true
		}
		if m.target != None {
			if e.state.Current == None {
				return e.FocusElement(m.target), true
			}
			return nil, true
		}
		return e.autoFocus(), true
	case pointerIdleMsg:
		if m.seq != e.idleSeq {
			return nil, true
		}
		e.state.Navigating = false
		events.Nav.PointerIdle()
		return nil, true
	}
	return nil, false
}
