package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/format/table"
	"github.com/atomicstack/marquee/internal/geom"
	"github.com/atomicstack/marquee/internal/logging/events"
	"github.com/atomicstack/marquee/internal/nav"
)

// scopeLabels are the kinds a query matches, cycled by the scope selector.
var scopeLabels = []string{"All", "Films", "Series"}

type searchState struct {
	input    textinput.Model
	field    nav.Handle
	scope    nav.Handle
	scopeIdx int

	results    []catalog.Title
	handles    []nav.Handle
	tableLines []string
	tableWidth int
	suggestion string
}

// searchOpen reports whether the results page replaces the catalog page. A
// focused but empty field keeps the catalog visible; typing opens search,
// clearing the query closes it.
func (m *Model) searchOpen() bool {
	return strings.TrimSpace(m.search.input.Value()) != ""
}

// registerHeader registers the search field and the scope selector. Both
// live in the header row above the page origin. The field only edits while
// its textinput holds focus; navigation can rest on it without typing.
func (m *Model) registerHeader() {
	field, _ := m.engine.Register(nav.Registration{
		Group:    "header",
		Kind:     nav.KindTextField,
		Geometry: func() geom.Rect { return m.searchFieldRect() },
		Text: func() nav.TextState {
			value := m.search.input.Value()
			pos := m.search.input.Position()
			return nav.TextState{
				Focused: m.search.input.Focused(),
				Empty:   value == "",
				AtStart: pos <= 0,
				AtEnd:   pos >= len([]rune(value)),
			}
		},
		OnBlur: func() tea.Cmd {
			m.search.input.Blur()
			return nil
		},
	})
	m.search.field = field
	scope, _ := m.engine.Register(nav.Registration{
		Group:    "header",
		Kind:     nav.KindInput,
		Geometry: func() geom.Rect { return m.scopeRect() },
	})
	m.search.scope = scope
}

// focusSearch lands navigation focus on the field and starts editing.
func (m *Model) focusSearch() tea.Cmd {
	cmds := []tea.Cmd{m.engine.FocusElement(m.search.field)}
	if cmd := m.search.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return batch(cmds)
}

// closeSearch clears the query, drops the result registrations, and parks
// focus back on the field so the next directional step starts from the
// header.
func (m *Model) closeSearch() tea.Cmd {
	m.search.input.Reset()
	m.search.input.Blur()
	m.setSearchResults(nil, "")
	m.pageOffset = 0
	return m.engine.FocusElement(m.search.field)
}

// handleSearchEditKey owns keys while the field is editing. Directional
// arbitration already happened in the engine; whatever arrives here belongs
// to the caret or to the search flow.
func (m *Model) handleSearchEditKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		return m.closeSearch()
	case "enter":
		// Land on the first result that can actually play.
		for i, handle := range m.search.handles {
			if m.search.results[i].Released {
				return m.engine.FocusElement(handle)
			}
		}
		return nil
	}
	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(key)
	if m.search.input.Value() != before {
		m.runSearch()
	}
	return cmd
}

// cycleScope advances the scope selector and replays the query against the
// narrowed universe.
func (m *Model) cycleScope(delta int) {
	n := len(scopeLabels)
	m.search.scopeIdx = (m.search.scopeIdx + delta + n) % n
	if m.searchOpen() {
		m.runSearch()
	}
}

// runSearch ranks the catalog against the current query. Matches order by
// edit distance so tighter names surface first; an empty result set falls
// back to a nearest-name suggestion.
func (m *Model) runSearch() {
	query := strings.TrimSpace(m.search.input.Value())
	if query == "" {
		m.setSearchResults(nil, "")
		return
	}
	universe := m.searchUniverse()
	names := make([]string, len(universe))
	for i, t := range universe {
		names[i] = t.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	matched := make([]catalog.Title, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, universe[rank.OriginalIndex])
	}
	suggestion := ""
	if len(matched) == 0 {
		suggestion = nearestName(query, names)
	}
	events.UI.Search(query, len(matched))
	m.setSearchResults(matched, suggestion)
}

// searchUniverse collects the titles a query runs against: every section
// except the synthesized list shelf, narrowed by the scope selector.
func (m *Model) searchUniverse() []catalog.Title {
	var kind string
	switch m.search.scopeIdx {
	case 1:
		kind = catalog.KindFilm
	case 2:
		kind = catalog.KindSeries
	}
	var out []catalog.Title
	for _, section := range m.sections.Sections() {
		if section.ID == catalog.MyListSectionID {
			continue
		}
		for _, t := range section.Titles {
			if kind != "" && t.Kind != kind {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// nearestName picks the title name closest to the query by edit distance,
// for the "did you mean" hint.
func nearestName(query string, names []string) string {
	best := ""
	bestDist := -1
	lower := strings.ToLower(query)
	for _, name := range names {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(name))
		if bestDist == -1 || d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// setSearchResults swaps the result set: old result registrations drop,
// the aligned table re-renders, and each result registers as a focusable
// line in the shared "results" row.
func (m *Model) setSearchResults(results []catalog.Title, suggestion string) {
	for _, h := range m.search.handles {
		delete(m.handleTitle, h)
		m.engine.Deregister(h)
	}
	m.search.handles = nil
	m.search.results = results
	m.search.suggestion = suggestion
	m.search.tableLines = nil
	m.search.tableWidth = 0
	m.clampPageOffset()
	if len(results) == 0 {
		return
	}
	sectionNames := m.sectionNames()
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, []string{"TITLE", "YEAR", "KIND", "SECTION"})
	for _, t := range results {
		rows = append(rows, []string{t.Name, strconv.Itoa(t.Year), t.Kind, sectionNames[t.Section]})
	}
	m.search.tableLines = table.Format(rows, []table.Alignment{
		table.AlignLeft, table.AlignRight, table.AlignLeft, table.AlignLeft,
	})
	for _, line := range m.search.tableLines {
		if w := lipgloss.Width(line); w > m.search.tableWidth {
			m.search.tableWidth = w
		}
	}
	for i, title := range results {
		i := i
		t := title
		h, _ := m.engine.Register(nav.Registration{
			Group:    "results",
			Kind:     nav.KindElement,
			Geometry: func() geom.Rect { return m.resultRect(i) },
			Hidden:   func() bool { return !m.searchOpen() },
			Disabled: func() bool { return !t.Released },
			Activate: func() tea.Cmd { return openPlayer(t) },
		})
		m.search.handles = append(m.search.handles, h)
		m.handleTitle[h] = t
	}
}

func (m *Model) sectionNames() map[string]string {
	names := make(map[string]string)
	for _, section := range m.sections.Sections() {
		names[section.ID] = section.Name
	}
	return names
}

func newSearchInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search titles"
	in.CharLimit = 64
	in.Width = 28
	return in
}
