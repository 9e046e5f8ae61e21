package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/geom"
	"github.com/atomicstack/marquee/internal/logging/events"
	"github.com/atomicstack/marquee/internal/nav"
	"github.com/atomicstack/marquee/internal/ui/command"
)

// playerZone is the skip-navigation zone id the overlay claims while open.
const playerZone = "player"

const seekStep = 10 // seconds per left/right seek

type playerState struct {
	open     bool
	title    catalog.Title
	position int // seconds
	paused   bool

	dialog bool // resume prompt showing
	choice int  // 0 resume, 1 restart

	tickSeq  int
	returnTo nav.Handle

	back    nav.Handle
	toggle  nav.Handle
	forward nav.Handle
	resume  nav.Handle
	restart nav.Handle
	handles []nav.Handle
}

type playTickMsg struct {
	seq int
}

// handleOpenPlayerMsg opens the overlay for an activated title. The zone
// claims input, the transport registers inside it, and a saved position
// raises the resume prompt with focus landed imperatively on its Resume
// button.
func (m *Model) handleOpenPlayerMsg(msg tea.Msg) tea.Cmd {
	open, ok := msg.(openPlayerMsg)
	if !ok {
		return nil
	}
	if m.player.open {
		return nil
	}
	t := open.title
	m.player = playerState{
		open:     true,
		title:    t,
		paused:   true,
		tickSeq:  m.player.tickSeq,
		returnTo: m.engine.State().Current,
	}
	m.engine.SetActiveZone(playerZone)
	m.registerTransport()
	events.Player.Open(t.ID, t.Resume)
	if t.Resume > 0 && t.Resume < t.Runtime {
		m.player.dialog = true
		m.registerResumeDialog()
		return m.engine.FocusElement(m.player.resume)
	}
	return m.startPlayback(0)
}

// registerTransport registers the seek and pause buttons as zone members:
// invisible to discovery, spared by the focus sweep, reachable only through
// FocusElement.
func (m *Model) registerTransport() {
	buttons := []struct {
		handle *nav.Handle
		slot   int
	}{
		{&m.player.back, 0},
		{&m.player.toggle, 1},
		{&m.player.forward, 2},
	}
	for _, b := range buttons {
		slot := b.slot
		h, _ := m.engine.Register(nav.Registration{
			Zone:     playerZone,
			Kind:     nav.KindElement,
			Geometry: func() geom.Rect { return m.playerButtonRect(slot) },
		})
		*b.handle = h
		m.player.handles = append(m.player.handles, h)
	}
}

func (m *Model) registerResumeDialog() {
	for _, b := range []struct {
		handle *nav.Handle
		slot   int
	}{
		{&m.player.resume, 0},
		{&m.player.restart, 1},
	} {
		slot := b.slot
		h, _ := m.engine.Register(nav.Registration{
			Zone:     playerZone,
			Kind:     nav.KindElement,
			Geometry: func() geom.Rect { return m.playerButtonRect(slot) },
		})
		*b.handle = h
		m.player.handles = append(m.player.handles, h)
	}
}

// playerButtonRect floats zone buttons in the middle of the current
// viewport, so an imperative focus on them never drags the page around.
func (m *Model) playerButtonRect(slot int) geom.Rect {
	return geom.Rect{
		Left:   cardLeft + slot*12,
		Top:    m.pageOffset + m.viewHeight()/2,
		Width:  10,
		Height: 1,
	}
}

// startPlayback begins ticking from the given position and parks focus on
// the pause button, the zone's resting element.
func (m *Model) startPlayback(from int) tea.Cmd {
	m.player.position = clampSeconds(from, m.player.title.Runtime)
	m.player.paused = false
	m.player.tickSeq++
	return batch([]tea.Cmd{
		m.engine.FocusElement(m.player.toggle),
		m.schedule(time.Second, playTickMsg{seq: m.player.tickSeq}),
	})
}

func (m *Model) handlePlayTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(playTickMsg)
	if !ok {
		return nil
	}
	p := &m.player
	if tick.seq != p.tickSeq || !p.open || p.paused || p.dialog {
		return nil
	}
	p.position++
	if p.position >= p.title.Runtime {
		p.position = p.title.Runtime
		p.paused = true
		m.setInfo(fmt.Sprintf("Finished %s", p.title.Name))
		return nil
	}
	return m.schedule(time.Second, playTickMsg{seq: tick.seq})
}

// handlePlayerKey owns every key while the overlay is open. The engine has
// already declined them because the zone is active.
func (m *Model) handlePlayerKey(key tea.KeyMsg) tea.Cmd {
	p := &m.player
	if p.dialog {
		return m.handleResumeDialogKey(key)
	}
	switch key.String() {
	case "esc":
		return m.closePlayer(true)
	case " ", "enter":
		p.paused = !p.paused
		events.Player.Pause(p.title.ID, p.paused)
		p.tickSeq++
		if p.paused {
			return nil
		}
		return m.schedule(time.Second, playTickMsg{seq: p.tickSeq})
	case "left":
		m.seekBy(-seekStep)
	case "right":
		m.seekBy(seekStep)
	}
	return nil
}

func (m *Model) handleResumeDialogKey(key tea.KeyMsg) tea.Cmd {
	p := &m.player
	switch key.String() {
	case "esc":
		return m.closePlayer(false)
	case "left", "right":
		// The overlay renders its own highlight from choice; the engine
		// marker stays where the open left it.
		p.choice = 1 - p.choice
		return nil
	case " ", "enter":
		from := 0
		if p.choice == 0 {
			from = p.title.Resume
			m.setInfo(fmt.Sprintf("Resumed %s at %s", p.title.Name, formatClock(from)))
		}
		p.dialog = false
		return m.startPlayback(from)
	}
	return nil
}

func (m *Model) seekBy(delta int) {
	p := &m.player
	p.position = clampSeconds(p.position+delta, p.title.Runtime)
	events.Player.Seek(p.title.ID, p.position)
}

// closePlayer releases the zone, drops the overlay registrations, restores
// focus to the element that opened it, and optionally persists the watch
// position through the command bus.
func (m *Model) closePlayer(save bool) tea.Cmd {
	p := &m.player
	if !p.open {
		return nil
	}
	title := p.title
	position := p.position
	events.Player.Close(title.ID, position)
	for _, h := range p.handles {
		m.engine.Deregister(h)
	}
	returnTo := p.returnTo
	*p = playerState{tickSeq: p.tickSeq + 1}
	m.engine.SetActiveZone("")
	var cmds []tea.Cmd
	if returnTo != nav.None {
		if cmd := m.engine.FocusElement(returnTo); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if save && m.store != nil {
		cmds = append(cmds, m.saveProgressCmd(title, position))
	}
	return batch(cmds)
}

func (m *Model) saveProgressCmd(t catalog.Title, seconds int) tea.Cmd {
	store := m.store
	return m.bus.Execute(command.Request{
		ID:    "progress:save:" + t.ID,
		Label: t.Name,
		Run: func() (string, error) {
			if err := store.SaveProgress(t.ID, seconds); err != nil {
				return "", err
			}
			return fmt.Sprintf("Saved %s at %s", t.Name, formatClock(seconds)), nil
		},
	})
}

func clampSeconds(v, max int) int {
	if v < 0 {
		return 0
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// formatClock renders seconds as m:ss, or h:mm:ss from an hour up.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	min := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, s)
	}
	return fmt.Sprintf("%d:%02d", min, s)
}
