package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
)

type catalogEventMsg struct {
	event catalog.Event
}

type catalogDoneMsg struct{}

// waitForCatalogEvent blocks on the watcher channel and converts the next
// poll result into a message. The handler re-arms it, keeping exactly one
// reader alive for the lifetime of the watcher.
func waitForCatalogEvent(w *catalog.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return catalogDoneMsg{}
		}
		return catalogEventMsg{event: evt}
	}
}

func (m *Model) handleCatalogEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(catalogEventMsg)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{m.applyCatalogEvent(evtMsg.event)}
	if m.watcher != nil {
		cmds = append(cmds, waitForCatalogEvent(m.watcher))
	}
	return batch(cmds)
}

func (m *Model) handleCatalogDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyCatalogEvent folds one poll into the stores and rebuilds the browse
// registrations when the shelves or the hero actually changed. Errors stay
// on the status line until every poll kind recovers.
func (m *Model) applyCatalogEvent(evt catalog.Event) tea.Cmd {
	m.catalogState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		return nil
	}
	if !m.hasCatalogIssue() {
		m.errMsg = ""
	}
	res := m.dispatcher.Handle(evt)
	if !res.SectionsUpdated && !res.FeaturedUpdated {
		return nil
	}
	if res.SectionsUpdated && m.verbose {
		m.setInfo(fmt.Sprintf("Catalog: %d sections", len(m.sections.Sections())))
	}
	return m.rebuildBrowse()
}

func (m *Model) hasCatalogIssue() bool {
	for _, err := range m.catalogState {
		if err != nil {
			return true
		}
	}
	return false
}
