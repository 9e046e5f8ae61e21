// Package nav implements directional focus navigation for Bubble Tea
// programs: an explicit registry of focusable elements, row-based grouping,
// geometric nearest-neighbor movement, scroll synchronization, and a small
// input state machine that arbitrates arrow keys with text editing.
//
// The engine works in abstract layout units. DefaultOptions carries
// pixel-scale distances; cell-based hosts override them to taste.
package nav

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/geom"
)

// Direction identifies one of the four directional commands.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lowercase name used in trace payloads.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Kind classifies a registered element for key arbitration.
type Kind int

const (
	// KindElement is a plain activatable element; arrows always navigate.
	KindElement Kind = iota
	// KindTextField is an editable text field; arrows arbitrate with the
	// caret position.
	KindTextField
	// KindInput is any other input-like widget; arrows are left to the
	// widget unless the override chord is used.
	KindInput
)

// TextState reports the live editing state of a text field at key time.
type TextState struct {
	Focused   bool
	Empty     bool
	AtStart   bool
	AtEnd     bool
	Selecting bool
}

// Registration describes a focusable element. Geometry is an accessor rather
// than a value: the engine reads it once per navigation decision and treats
// the result as an immutable snapshot for that decision.
type Registration struct {
	// Group names the navigation row this element belongs to. Elements
	// without a group become singleton rows.
	Group string
	// Priority is carried through to candidates but not consulted when
	// scoring neighbors.
	Priority int
	// Primary requests auto-focus shortly after registration.
	Primary bool
	// Skip excludes an otherwise eligible element from discovery.
	Skip bool
	// Zone names the declared skip-navigation zone owning this element,
	// if any. Zone members are invisible to discovery and their focus
	// markers survive the controller's sweep.
	Zone string
	// Container names the ScrollContainer that horizontally scrolls this
	// element, if any.
	Container string

	Kind     Kind
	Geometry func() geom.Rect
	Disabled func() bool
	Hidden   func() bool
	Activate func() tea.Cmd
	OnFocus  func() tea.Cmd
	OnBlur   func() tea.Cmd
	Text     func() TextState
}

// Handle identifies a registered element. The zero Handle means "none".
type Handle int

// None is the zero Handle.
const None Handle = 0

// State is the navigation context the rendering layer observes. Enabled
// flips permanently true on the first directional key press; Navigating
// tracks recent pointer activity; Current is mutated only by the focus
// controller.
type State struct {
	Enabled    bool
	Navigating bool
	Current    Handle
}

// Options tunes distances and delays. The defaults are pixel-scale; a
// terminal host passes cell-scale values instead.
type Options struct {
	// EdgeTolerance absorbs layout noise in the beyond-edge test for
	// vertical movement.
	EdgeTolerance int
	// HorizontalWeight multiplies the horizontal center distance when
	// scoring vertical neighbors, keeping movement column-stable.
	HorizontalWeight int
	// ContainerMargin is the extra distance revealed past a target when
	// scrolling its container.
	ContainerMargin int
	// PageTopMargin widens the "above the viewport" test to clear fixed
	// chrome at the top of the page.
	PageTopMargin int
	// PageBottomMargin widens the "below the viewport" test.
	PageBottomMargin int

	Throttle    time.Duration
	SettleDelay time.Duration
	PointerIdle time.Duration
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		EdgeTolerance:    20,
		HorizontalWeight: 3,
		ContainerMargin:  50,
		PageTopMargin:    100,
		PageBottomMargin: 50,
		Throttle:         80 * time.Millisecond,
		SettleDelay:      100 * time.Millisecond,
		PointerIdle:      500 * time.Millisecond,
	}
}

type entry struct {
	handle Handle
	reg    Registration
}

// Engine owns the navigation state machine and the element registry. It is
// not safe for concurrent use; drive it from a single update loop.
type Engine struct {
	opts Options
	keys KeyMap

	next       Handle
	order      []Handle
	regs       map[Handle]*entry
	marked     map[Handle]bool
	zones      map[string]bool
	activeZone string
	containers map[string]ScrollContainer
	pager      Pager

	state State
	gate  time.Time

	settleSeq int
	idleSeq   int
}

// New creates an engine with the given tuning and key bindings.
func New(opts Options, keys KeyMap) *Engine {
	return &Engine{
		opts:       opts,
		keys:       keys,
		regs:       make(map[Handle]*entry),
		marked:     make(map[Handle]bool),
		zones:      make(map[string]bool),
		containers: make(map[string]ScrollContainer),
	}
}

// Register adds an element to the registry and returns its handle. Order of
// registration is the engine's scan order, so hosts register top-to-bottom,
// left-to-right. Primary registrations also return a settle command that
// requests auto-focus once layout has settled.
func (e *Engine) Register(r Registration) (Handle, tea.Cmd) {
	e.next++
	h := e.next
	e.regs[h] = &entry{handle: h, reg: r}
	e.order = append(e.order, h)
	if !r.Primary {
		return h, nil
	}
	e.settleSeq++
	return h, tick(e.opts.SettleDelay, settleMsg{seq: e.settleSeq, target: h})
}

// Deregister removes an element. A stale current-focus handle is not cleared
// here; the next navigation command re-scans and recovers.
func (e *Engine) Deregister(h Handle) {
	if _, ok := e.regs[h]; !ok {
		return
	}
	delete(e.regs, h)
	delete(e.marked, h)
	for i, other := range e.order {
		if other == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// DeclareZone marks a container id as a skip-navigation zone. Members of a
// declared zone are excluded from discovery and spared by the focus sweep.
func (e *Engine) DeclareZone(id string) {
	if id == "" {
		return
	}
	e.zones[id] = true
}

// SetActiveZone records which declared zone currently owns input. While a
// zone is active the router ignores directional keys entirely. An empty id
// clears it.
func (e *Engine) SetActiveZone(id string) {
	e.activeZone = id
}

// ActiveZone returns the zone currently owning input, or "".
func (e *Engine) ActiveZone() string {
	return e.activeZone
}

// RegisterContainer attaches a horizontally scrollable container.
func (e *Engine) RegisterContainer(id string, c ScrollContainer) {
	if id == "" || c == nil {
		return
	}
	e.containers[id] = c
}

// SetPager attaches the page-level scroller.
func (e *Engine) SetPager(p Pager) {
	e.pager = p
}

// State returns the current navigation context.
func (e *Engine) State() State {
	return e.state
}

// IsMarked reports whether the element carries the visual focus marker.
func (e *Engine) IsMarked(h Handle) bool {
	return e.marked[h]
}

// Keys exposes the engine's bindings, e.g. for help rendering.
func (e *Engine) Keys() KeyMap {
	return e.keys
}

// Close invalidates all outstanding timers. It does not flip Enabled; once
// triggered, navigation mode persists for the session.
func (e *Engine) Close() {
	e.settleSeq++
	e.idleSeq++
}

type settleMsg struct {
	seq    int
	target Handle
}

type pointerIdleMsg struct {
	seq int
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
