package ui

import (
	"fmt"
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/data/dispatcher"
	"github.com/atomicstack/marquee/internal/logging/events"
	"github.com/atomicstack/marquee/internal/nav"
	"github.com/atomicstack/marquee/internal/state"
	"github.com/atomicstack/marquee/internal/theme"
	"github.com/atomicstack/marquee/internal/ui/command"
)

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the catalog browser.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	pageOffset  int
	scrollSeq   int

	engine *nav.Engine
	rows   []*rowState

	store        *catalog.Store
	watcher      *catalog.Watcher
	catalogState map[catalog.Kind]error

	sections   state.SectionStore
	featured   state.FeaturedStore
	dispatcher *dispatcher.Dispatcher

	bus    *command.Bus
	styles *theme.Styles

	// schedule issues delayed messages. Tests swap it out and feed timer
	// messages by hand instead.
	schedule func(time.Duration, tea.Msg) tea.Cmd

	showHints bool
	verbose   bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	search searchState
	player playerState

	browseHandles []nav.Handle
	browseKeys    map[string]nav.Handle
	handleKeys    map[nav.Handle]string
	handleTitle   map[nav.Handle]catalog.Title

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the catalog stores, the navigation engine, and the header
// widgets together. A nil watcher leaves the model driven purely by
// injected events, which is how the tests run it.
func NewModel(store *catalog.Store, watcher *catalog.Watcher, width, height int, showHints, verbose bool, styles *theme.Styles, opts nav.Options) *Model {
	if styles == nil {
		styles = theme.Default()
	}
	sections := state.NewSectionStore()
	featured := state.NewFeaturedStore()
	m := &Model{
		engine:       nav.New(opts, nav.DefaultKeyMap()),
		store:        store,
		watcher:      watcher,
		catalogState: map[catalog.Kind]error{},
		sections:     sections,
		featured:     featured,
		dispatcher:   dispatcher.New(sections, featured),
		bus:          command.New(),
		styles:       styles,
		schedule:     after,
		showHints:    showHints,
		verbose:      verbose,
		browseKeys:   map[string]nav.Handle{},
		handleKeys:   map[nav.Handle]string{},
		handleTitle:  map[nav.Handle]catalog.Title{},
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	in := newSearchInput()
	if styles.SearchPrompt != nil {
		in.PromptStyle = *styles.SearchPrompt
	}
	if styles.SearchPlaceholder != nil {
		in.PlaceholderStyle = *styles.SearchPlaceholder
	}
	if styles.Cursor != nil {
		in.Cursor.Style = *styles.Cursor
	}
	m.search.input = in
	m.engine.SetPager(pagerView{m: m})
	m.engine.DeclareZone(playerZone)
	m.registerHeader()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForCatalogEvent(m.watcher)
}

// Update responds to Bubble Tea messages. The engine sees every message
// first so its internal timers keep working; everything it declines falls
// through to the host handlers, and whatever they decline reaches the text
// field for cursor upkeep.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd, ok := m.engine.Update(msg); ok {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(catalogEventMsg{}):   m.handleCatalogEventMsg,
		reflect.TypeOf(catalogDoneMsg{}):    m.handleCatalogDoneMsg,
		reflect.TypeOf(openPlayerMsg{}):     m.handleOpenPlayerMsg,
		reflect.TypeOf(playTickMsg{}):       m.handlePlayTickMsg,
		reflect.TypeOf(scrollCheckMsg{}):    m.handleScrollCheckMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	return batch(cmds)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	if key.String() == "ctrl+c" {
		events.App.Exit("interrupt")
		return tea.Quit
	}
	if cmd, handled := m.engine.HandleKey(key); handled {
		return cmd
	}
	return m.handleHostKey(key)
}

// handleHostKey owns the keys the engine declined: overlay and editing
// flows first, then the global chords.
func (m *Model) handleHostKey(key tea.KeyMsg) tea.Cmd {
	if m.player.open {
		return m.handlePlayerKey(key)
	}
	if m.search.input.Focused() {
		return m.handleSearchEditKey(key)
	}
	if m.engine.IsMarked(m.search.scope) {
		switch key.String() {
		case "left":
			m.cycleScope(-1)
			return nil
		case "right":
			m.cycleScope(1)
			return nil
		case "up", "down":
			return nil
		}
	}
	switch key.String() {
	case "/":
		return m.focusSearch()
	case "m":
		return m.toggleFocusedList()
	case "enter", " ":
		if m.engine.IsMarked(m.search.field) {
			return m.focusSearch()
		}
	case "esc":
		if m.searchOpen() {
			return m.closeSearch()
		}
		events.App.Exit("dismissed")
		return tea.Quit
	case "q":
		events.App.Exit("quit")
		return tea.Quit
	case "pgdown":
		m.pageOffset += m.viewHeight()
		m.clampPageOffset()
		events.UI.PageScroll(m.pageOffset)
	case "pgup":
		m.pageOffset -= m.viewHeight()
		m.clampPageOffset()
		events.UI.PageScroll(m.pageOffset)
	case "home":
		m.pageOffset = 0
		events.UI.PageScroll(m.pageOffset)
	case "end":
		m.pageOffset = m.maxPageOffset()
		events.UI.PageScroll(m.pageOffset)
	}
	return nil
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Err != nil {
		m.errMsg = fmt.Sprintf("%s: %v", res.Label, res.Err)
		return nil
	}
	m.errMsg = ""
	if res.Info != "" {
		m.setInfo(res.Info)
	}
	return nil
}

func batch(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			filtered = append(filtered, cmd)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return tea.Batch(filtered...)
}
