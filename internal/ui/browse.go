package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/geom"
	"github.com/atomicstack/marquee/internal/nav"
	"github.com/atomicstack/marquee/internal/ui/command"
)

const (
	heroPlayLabel = "▶ Play"
	heroListLabel = "+ My List"
)

type openPlayerMsg struct {
	title catalog.Title
}

func openPlayer(t catalog.Title) tea.Cmd {
	return func() tea.Msg {
		return openPlayerMsg{title: t}
	}
}

// rebuildBrowse tears down the catalog registrations and rebuilds them from
// the current stores. Focus follows the element key across the rebuild; an
// element that disappeared leaves the engine's current handle stale, which
// the next navigation command recovers from.
func (m *Model) rebuildBrowse() tea.Cmd {
	focusedKey := m.handleKeys[m.engine.State().Current]
	m.deregisterBrowse()
	m.rows = m.layoutRows(m.sections.Sections())
	cmds := m.registerBrowse()
	if focusedKey != "" {
		if h, ok := m.browseKeys[focusedKey]; ok {
			cmds = append(cmds, m.engine.FocusElement(h))
		}
	}
	m.clampPageOffset()
	return batch(cmds)
}

// registerBrowse registers the hero buttons and every shelf card, top to
// bottom and left to right so scan order matches the page. The hero Play
// button carries the primary flag; its settle command is returned along
// with any focus side effects.
func (m *Model) registerBrowse() []tea.Cmd {
	var cmds []tea.Cmd
	if hero := m.featured.Featured(); hero != nil {
		t := *hero
		play, settle := m.engine.Register(nav.Registration{
			Group:    "hero",
			Primary:  true,
			Kind:     nav.KindElement,
			Geometry: func() geom.Rect { return m.heroPlayRect() },
			Hidden:   func() bool { return m.searchOpen() },
			Activate: func() tea.Cmd { return openPlayer(t) },
		})
		if settle != nil {
			cmds = append(cmds, settle)
		}
		m.noteBrowseHandle(play, "hero:play", t)
		list, _ := m.engine.Register(nav.Registration{
			Group:    "hero",
			Kind:     nav.KindElement,
			Geometry: func() geom.Rect { return m.heroListRect() },
			Hidden:   func() bool { return m.searchOpen() },
			Activate: func() tea.Cmd { return m.toggleListCmd(t) },
		})
		m.noteBrowseHandle(list, "hero:list", t)
	}
	for _, row := range m.rows {
		row := row
		m.engine.RegisterContainer(row.section.ID, rowContainer{m: m, row: row})
		for idx, title := range row.section.Titles {
			idx := idx
			t := title
			h, _ := m.engine.Register(nav.Registration{
				Group:     row.section.ID,
				Container: row.section.ID,
				Kind:      nav.KindElement,
				Geometry:  func() geom.Rect { return m.cardRect(row, idx) },
				Hidden:    func() bool { return m.searchOpen() },
				Disabled:  func() bool { return !t.Released },
				Activate:  func() tea.Cmd { return openPlayer(t) },
			})
			m.noteBrowseHandle(h, "card:"+row.section.ID+":"+t.ID, t)
		}
	}
	return cmds
}

func (m *Model) noteBrowseHandle(h nav.Handle, key string, t catalog.Title) {
	m.browseHandles = append(m.browseHandles, h)
	m.browseKeys[key] = h
	m.handleKeys[h] = key
	m.handleTitle[h] = t
}

func (m *Model) deregisterBrowse() {
	for _, h := range m.browseHandles {
		delete(m.handleKeys, h)
		delete(m.handleTitle, h)
		m.engine.Deregister(h)
	}
	m.browseHandles = nil
	m.browseKeys = make(map[string]nav.Handle)
}

// toggleListCmd flips a title's saved-list membership through the command
// bus. The watcher picks the change up on its next poll and the My List
// shelf follows.
func (m *Model) toggleListCmd(t catalog.Title) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    "list:toggle:" + t.ID,
		Label: t.Name,
		Run: func() (string, error) {
			added, err := store.ToggleMyList(t.ID)
			if err != nil {
				return "", err
			}
			if added {
				return fmt.Sprintf("Added %s to My List", t.Name), nil
			}
			return fmt.Sprintf("Removed %s from My List", t.Name), nil
		},
	})
}

// toggleFocusedList handles the list shortcut for whichever title currently
// holds the focus.
func (m *Model) toggleFocusedList() tea.Cmd {
	t, ok := m.handleTitle[m.engine.State().Current]
	if !ok {
		return nil
	}
	return m.toggleListCmd(t)
}
