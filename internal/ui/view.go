package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/logging/events"
)

const wheelStep = 3 // page lines per wheel notch

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model. The screen is one header row, the visible
// slice of the page, and two chrome rows at the bottom (status + hints).
func (m *Model) View() string {
	lines := make([]styledLine, 0, m.viewHeight()+chromeRows)
	lines = append(lines, m.headerLine())
	if m.player.open {
		lines = append(lines, m.playerLines()...)
	} else {
		lines = append(lines, m.visiblePageLines()...)
	}
	lines = append(lines, m.statusLine(), m.hintLine())
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// headerLine renders the fixed chrome row: search field on the left, the
// scope selector on the right.
func (m *Model) headerLine() styledLine {
	marker := " "
	if m.engine.IsMarked(m.search.field) {
		marker = "▸"
	}
	left := marker + m.search.input.View()
	scope := m.scopeSegment()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(scope)
	if gap < 1 {
		gap = 1
	}
	return styledLine{text: left + strings.Repeat(" ", gap) + scope, raw: true}
}

func (m *Model) scopeSegment() string {
	seg := "[" + scopeLabels[m.search.scopeIdx] + "]"
	if m.engine.IsMarked(m.search.scope) {
		seg = "▸" + seg + "◂"
	} else {
		seg = " " + seg + " "
	}
	return m.styles.Header.Render(seg)
}

// visiblePageLines slices the full page at the current scroll offset and
// pads to exactly the viewport height.
func (m *Model) visiblePageLines() []styledLine {
	page := m.pageLines()
	viewH := m.viewHeight()
	out := make([]styledLine, 0, viewH)
	for i := 0; i < viewH; i++ {
		idx := m.pageOffset + i
		if idx >= 0 && idx < len(page) {
			out = append(out, page[idx])
			continue
		}
		out = append(out, styledLine{})
	}
	return out
}

func (m *Model) pageLines() []styledLine {
	if m.searchOpen() {
		return m.searchPageLines()
	}
	return m.browsePageLines()
}

// browsePageLines builds the whole browse page in page coordinates: the
// hero block first, then one title line, three card-box lines, and a blank
// per shelf. Offsets into this slice must agree with the rectangles the
// layout hands to the navigation engine.
func (m *Model) browsePageLines() []styledLine {
	lines := make([]styledLine, 0, m.browsePageHeight())
	if hero := m.featured.Featured(); hero != nil {
		lines = append(lines,
			styledLine{text: hero.Name, style: m.styles.Hero},
			styledLine{text: hero.Tagline, style: m.styles.HeroTagline},
			m.heroButtonLine(),
			styledLine{},
		)
	}
	if len(lines) == 0 && len(m.rows) == 0 {
		return []styledLine{{text: "Loading catalog…", style: m.styles.Info}}
	}
	for _, row := range m.rows {
		lines = append(lines, styledLine{text: row.section.Name, style: m.styles.SectionTitle})
		lines = append(lines, m.cardLines(row)...)
		lines = append(lines, styledLine{})
	}
	return lines
}

func (m *Model) heroButtonLine() styledLine {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cardLeft))
	b.WriteString(m.buttonText(heroPlayLabel, m.engine.IsMarked(m.browseKeys["hero:play"])))
	b.WriteString("  ")
	b.WriteString(m.buttonText(heroListLabel, m.engine.IsMarked(m.browseKeys["hero:list"])))
	return styledLine{text: b.String(), raw: true}
}

// buttonText keeps focused and unfocused renderings the same width so the
// row does not shift as focus moves.
func (m *Model) buttonText(label string, focused bool) string {
	if focused {
		return m.styles.CardFocused.Render("▸" + label + "◂")
	}
	return m.styles.Card.Render(" " + label + " ")
}

// cardLines draws one shelf as three raw lines of box-drawn cards. Cards
// partially pushed past either edge of the strip are dropped entirely;
// the ‹ › indicator columns signal the hidden remainder.
func (m *Model) cardLines(row *rowState) []styledLine {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	areaW := m.cardAreaWidth()
	horizontal := strings.Repeat(hz, cardWidth-2)
	boxTop := m.styles.Card.Render(tlc + horizontal + trc)
	boxBottom := m.styles.Card.Render(blc + horizontal + brc)

	var top, mid, bot strings.Builder
	cursor := cardLeft
	for idx, t := range row.section.Titles {
		left := cardLeft + idx*cardStride - row.offset
		if left < cardLeft {
			continue
		}
		if left+cardWidth > cardLeft+areaW {
			break
		}
		pad := strings.Repeat(" ", left-cursor)
		top.WriteString(pad + boxTop)
		mid.WriteString(pad + m.cardMiddle(row, t))
		bot.WriteString(pad + boxBottom)
		cursor = left + cardWidth
	}

	margin := strings.Repeat(" ", cardLeft)
	leftInd, rightInd := " ", " "
	if row.canLeft {
		leftInd = "‹"
	}
	if row.canRight {
		rightInd = "›"
	}
	midLine := leftInd + " " + mid.String()
	if pad := m.width - 1 - lipgloss.Width(midLine); pad > 0 {
		midLine += strings.Repeat(" ", pad)
	}
	midLine += rightInd
	return []styledLine{
		{text: margin + top.String(), raw: true},
		{text: midLine, raw: true},
		{text: margin + bot.String(), raw: true},
	}
}

func (m *Model) cardMiddle(row *rowState, t catalog.Title) string {
	const vt = "│"
	name := truncateText(t.Name, cardInner)
	if pad := cardInner - len([]rune(name)); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	style := m.styles.Card
	inner := " " + name + " "
	if m.engine.IsMarked(m.browseKeys["card:"+row.section.ID+":"+t.ID]) {
		style = m.styles.CardFocused
		inner = "▸" + name + "◂"
	} else if !t.Released {
		style = m.styles.CardDisabled
	}
	return m.styles.Card.Render(vt) + style.Render(inner) + m.styles.Card.Render(vt)
}

// searchPageLines builds the results page: a count line, a spelling
// suggestion, and the aligned results table beneath its header.
func (m *Model) searchPageLines() []styledLine {
	query := strings.TrimSpace(m.search.input.Value())
	lines := make([]styledLine, 0, m.searchPageHeight())
	count := fmt.Sprintf("%d results for %q", len(m.search.results), query)
	if len(m.search.results) == 0 {
		count = fmt.Sprintf("No results for %q", query)
	}
	lines = append(lines, styledLine{text: count, style: m.styles.Info})
	if m.search.suggestion != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Did you mean %q?", m.search.suggestion), style: m.styles.Suggestion})
	} else {
		lines = append(lines, styledLine{})
	}
	if len(m.search.tableLines) == 0 {
		return lines
	}
	lines = append(lines, styledLine{text: "  " + m.search.tableLines[0], style: m.styles.TableHeader})
	for i, t := range m.search.results {
		if i+1 >= len(m.search.tableLines) {
			break
		}
		gutter := "  "
		style := m.styles.Card
		if m.engine.IsMarked(m.search.handles[i]) {
			gutter = "▸ "
			style = m.styles.CardFocused
		} else if !t.Released {
			style = m.styles.CardDisabled
		}
		lines = append(lines, styledLine{text: gutter + m.search.tableLines[i+1], style: style})
	}
	return lines
}

// playerLines fills the page area with the playback overlay.
func (m *Model) playerLines() []styledLine {
	panel := m.playerPanel()
	viewH := m.viewHeight()
	out := make([]styledLine, 0, viewH)
	for i := 0; i < viewH; i++ {
		if i < len(panel) {
			out = append(out, panel[i])
			continue
		}
		out = append(out, styledLine{})
	}
	return out
}

func (m *Model) playerPanel() []styledLine {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	p := &m.player
	border := m.styles.ZoneBorder
	panelW := m.width - 2*cardLeft
	if panelW > 72 {
		panelW = 72
	}
	if panelW < 30 {
		panelW = 30
	}
	innerW := panelW - 2

	titleSeg := " " + truncateText(p.title.Name, innerW-2) + " "
	dashes := panelW - 2 - len([]rune(titleSeg))
	if dashes < 0 {
		dashes = 0
	}
	topLine := border.Render(tlc) + m.styles.Hero.Render(titleSeg) + border.Render(strings.Repeat(hz, dashes)+trc)
	bottomLine := border.Render(blc + strings.Repeat(hz, innerW) + brc)

	boxed := func(content string) styledLine {
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		return styledLine{text: border.Render(vt) + content + border.Render(vt), raw: true}
	}

	margin := strings.Repeat(" ", cardLeft)
	rows := make([]styledLine, 0, 8)
	rows = append(rows, styledLine{text: margin + topLine, raw: true})
	for _, line := range m.playerBodyLines(boxed, innerW) {
		rows = append(rows, styledLine{text: margin + line.text, raw: true})
	}
	rows = append(rows, styledLine{text: margin + bottomLine, raw: true})
	return rows
}

func (m *Model) playerBodyLines(boxed func(string) styledLine, innerW int) []styledLine {
	p := &m.player
	if p.dialog {
		prompt := fmt.Sprintf(" Resume from %s?", formatClock(p.title.Resume))
		buttons := " " + m.buttonText("Resume", p.choice == 0) +
			"  " + m.buttonText("Restart", p.choice == 1)
		return []styledLine{
			boxed(""),
			boxed(m.styles.Info.Render(prompt)),
			boxed(""),
			boxed(buttons),
			boxed(""),
		}
	}
	icon := "▶"
	status := "playing"
	if p.paused {
		icon = "⏸"
		status = "paused"
	}
	state := fmt.Sprintf(" %s %s  %s / %s", icon, status, formatClock(p.position), formatClock(p.title.Runtime))
	toggleLabel := "Pause"
	if p.paused {
		toggleLabel = "Play"
	}
	buttons := " " + m.buttonText("« 10s", m.engine.IsMarked(p.back)) +
		"  " + m.buttonText(toggleLabel, m.engine.IsMarked(p.toggle)) +
		"  " + m.buttonText("10s »", m.engine.IsMarked(p.forward))
	return []styledLine{
		boxed(""),
		boxed(m.styles.Info.Render(state)),
		boxed(" " + progressBar(p.position, p.title.Runtime, innerW-2)),
		boxed(""),
		boxed(buttons),
		boxed(""),
	}
}

func progressBar(position, runtime, width int) string {
	if width < 1 {
		return ""
	}
	filled := 0
	if runtime > 0 {
		filled = position * width / runtime
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: m.styles.Info}
	}
	return styledLine{}
}

func (m *Model) hintLine() styledLine {
	if !m.showHints {
		return styledLine{}
	}
	return styledLine{text: m.hintText(), style: m.styles.HintBar}
}

func (m *Model) hintText() string {
	if m.player.open {
		if m.player.dialog {
			return "←/→ choose  enter confirm  esc cancel"
		}
		return "space pause  ←/→ seek  esc close"
	}
	if m.search.input.Focused() {
		return "type to search  enter results  esc clear"
	}
	parts := make([]string, 0, 6)
	if m.engine.State().Navigating {
		help := m.engine.Keys().ShortHelp()
		arrows := make([]string, 0, len(help))
		for _, b := range help[:len(help)-1] {
			arrows = append(arrows, b.Help().Key)
		}
		parts = append(parts, strings.Join(arrows, "/")+" move")
		activate := help[len(help)-1].Help()
		parts = append(parts, activate.Key+" "+activate.Desc)
	}
	if m.engine.IsMarked(m.search.scope) {
		parts = append(parts, "←/→ scope", "alt+arrows leave")
	}
	parts = append(parts, "/ search", "m my list", "q quit")
	return strings.Join(parts, "  ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.clampPageOffset()
	for _, row := range m.rows {
		row.clampOffset(m.cardAreaWidth())
		row.refreshIndicators(m.cardAreaWidth())
	}
	return nil
}

// handleMouseMsg reports pointer traffic to the engine and maps wheel
// motion onto the page and the shelf under the cursor.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{m.engine.PointerActive()}
	if m.player.open {
		return batch(cmds)
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.pageOffset -= wheelStep
		m.clampPageOffset()
		events.UI.PageScroll(m.pageOffset)
		cmds = append(cmds, m.deferScrollCheck())
	case tea.MouseButtonWheelDown:
		m.pageOffset += wheelStep
		m.clampPageOffset()
		events.UI.PageScroll(m.pageOffset)
		cmds = append(cmds, m.deferScrollCheck())
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		if m.searchOpen() {
			break
		}
		row := m.rowAt(ev.Y - 1 + m.pageOffset)
		if row == nil {
			break
		}
		delta := cardStride
		if ev.Button == tea.MouseButtonWheelLeft {
			delta = -cardStride
		}
		row.offset += delta
		row.clampOffset(m.cardAreaWidth())
		row.refreshIndicators(m.cardAreaWidth())
		events.UI.RowScroll(row.section.ID, row.offset)
		cmds = append(cmds, m.deferScrollCheck())
	}
	return batch(cmds)
}

// deferScrollCheck schedules a re-clamp after a wheel burst goes quiet, so
// indicators settle on the final position rather than every notch.
func (m *Model) deferScrollCheck() tea.Cmd {
	m.scrollSeq++
	return m.schedule(indicatorDelay, scrollCheckMsg{seq: m.scrollSeq})
}

func (m *Model) handleScrollCheckMsg(msg tea.Msg) tea.Cmd {
	check, ok := msg.(scrollCheckMsg)
	if !ok || check.seq != m.scrollSeq {
		return nil
	}
	m.clampPageOffset()
	for _, row := range m.rows {
		row.clampOffset(m.cardAreaWidth())
		row.refreshIndicators(m.cardAreaWidth())
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
	events.UI.Info(message)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
