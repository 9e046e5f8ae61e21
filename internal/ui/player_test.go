package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/testutil"
)

func TestActivateOpensPlayerAndTicks(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	loadCatalog(h, fixtureSections(), fixtureHero())

	h.Send(keyMsg(tea.KeyDown)) // enter navigation on the hero Play button
	h.Send(keyMsg(tea.KeyEnter))

	if !m.player.open {
		t.Fatalf("expected activating Play to open the overlay")
	}
	if got := m.engine.ActiveZone(); got != playerZone {
		t.Fatalf("expected the player zone to own input, got %q", got)
	}
	if got := m.engine.State().Current; got != m.player.toggle {
		t.Fatalf("expected focus parked on the pause button, got handle %d", got)
	}
	view := plainView(h)
	for _, want := range []string{"╭ Neon Harbor ", "▶ playing", "0:00 / 1:30:00", "▸Pause◂", "space pause  ←/→ seek  esc close"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the overlay\n%s", want, view)
		}
	}
	if strings.Contains(view, "Trending Now") {
		t.Fatalf("expected the overlay to replace the shelves")
	}

	for i := 0; i < 3; i++ {
		h.Send(playTickMsg{seq: m.player.tickSeq})
	}
	if m.player.position != 3 {
		t.Fatalf("expected three ticks to advance to 0:03, got %d", m.player.position)
	}
	if !strings.Contains(plainView(h), "0:03 / 1:30:00") {
		t.Fatalf("expected the clock to follow the ticks")
	}

	// A tick from a superseded timer must not advance playback.
	h.Send(playTickMsg{seq: m.player.tickSeq + 7})
	if m.player.position != 3 {
		t.Fatalf("expected the stale tick ignored, got position %d", m.player.position)
	}

	// The zone swallows plain navigation entirely.
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyUp))
	if got := m.engine.State().Current; got != m.player.toggle {
		t.Fatalf("expected vertical keys ignored inside the zone, got handle %d", got)
	}
}

func TestPlayerPauseAndSeek(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	loadCatalog(h, fixtureSections(), fixtureHero())
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyEnter))

	h.Send(keyMsg(tea.KeyRight))
	h.Send(keyMsg(tea.KeyRight))
	if m.player.position != 20 {
		t.Fatalf("expected two seeks forward to reach 20s, got %d", m.player.position)
	}
	h.Send(keyMsg(tea.KeyLeft))
	h.Send(keyMsg(tea.KeyLeft))
	h.Send(keyMsg(tea.KeyLeft))
	if m.player.position != 0 {
		t.Fatalf("expected seeking back to clamp at zero, got %d", m.player.position)
	}

	h.Send(keyMsg(tea.KeySpace))
	if !m.player.paused {
		t.Fatalf("expected space to pause playback")
	}
	view := plainView(h)
	if !strings.Contains(view, "⏸ paused") || !strings.Contains(view, "▸Play◂") {
		t.Fatalf("expected the paused transport\n%s", view)
	}
	h.Send(playTickMsg{seq: m.player.tickSeq})
	if m.player.position != 0 {
		t.Fatalf("expected no ticking while paused, got %d", m.player.position)
	}

	h.Send(keyMsg(tea.KeySpace))
	if m.player.paused {
		t.Fatalf("expected space to resume playback")
	}
	if !strings.Contains(plainView(h), "▸Pause◂") {
		t.Fatalf("expected the playing transport back")
	}
}

func TestPlayerFinishesAtRuntime(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	loadCatalog(h, fixtureSections(), fixtureHero())
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyEnter))

	m.player.position = m.player.title.Runtime - 2
	h.Send(playTickMsg{seq: m.player.tickSeq})
	h.Send(playTickMsg{seq: m.player.tickSeq})

	if m.player.position != m.player.title.Runtime {
		t.Fatalf("expected playback to stop at the runtime, got %d", m.player.position)
	}
	if !m.player.paused {
		t.Fatalf("expected the finished player paused")
	}
	view := plainView(h)
	if !strings.Contains(view, "Finished Neon Harbor") {
		t.Fatalf("expected the finish notice\n%s", view)
	}
	if !strings.Contains(view, "⏸ paused") {
		t.Fatalf("expected the paused state after finishing")
	}
	if strings.Contains(view, "░") {
		t.Fatalf("expected a full progress bar at the end\n%s", view)
	}
}

func TestPlayerCloseRestoresFocus(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	loadCatalog(h, fixtureSections(), fixtureHero())
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyEsc))

	if m.player.open {
		t.Fatalf("expected esc to close the overlay")
	}
	if got := m.engine.ActiveZone(); got != "" {
		t.Fatalf("expected the zone released, got %q", got)
	}
	if got := m.engine.State().Current; got != m.browseKeys["hero:play"] {
		t.Fatalf("expected focus back on the opener, got handle %d", got)
	}
	if !strings.Contains(plainView(h), "Trending Now") {
		t.Fatalf("expected the shelves back after closing")
	}
}

// openIronDialog walks focus to the card with a saved position and
// activates it, landing in the resume prompt.
func openIronDialog(t *testing.T, m *Model, h *Harness) {
	t.Helper()
	loadCatalog(h, fixtureSections(), fixtureHero())
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyRight))
	h.Send(keyMsg(tea.KeyRight))
	expectFocus(t, m, "card:trending:t-iron")
	h.Send(keyMsg(tea.KeyEnter))
	if !m.player.open || !m.player.dialog {
		t.Fatalf("expected the resume prompt for a title with saved progress")
	}
}

func TestResumeDialogOffersSavedPosition(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	openIronDialog(t, m, h)

	view := plainView(h)
	for _, want := range []string{"Resume from 10:00?", "▸Resume◂", " Restart ", "←/→ choose  enter confirm  esc cancel"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the prompt\n%s", want, view)
		}
	}

	h.Send(keyMsg(tea.KeyRight))
	if m.player.choice != 1 {
		t.Fatalf("expected right to select Restart, got choice %d", m.player.choice)
	}
	if !strings.Contains(plainView(h), "▸Restart◂") {
		t.Fatalf("expected the Restart highlight")
	}
	h.Send(keyMsg(tea.KeyLeft))
	if m.player.choice != 0 {
		t.Fatalf("expected left back on Resume, got choice %d", m.player.choice)
	}

	// Dismissing the prompt closes the overlay without starting playback.
	h.Send(keyMsg(tea.KeyEsc))
	if m.player.open {
		t.Fatalf("expected esc to close the prompt and the overlay")
	}
	expectFocus(t, m, "card:trending:t-iron")
}

func TestResumeDialogResumes(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	openIronDialog(t, m, h)

	h.Send(keyMsg(tea.KeyEnter))
	if m.player.dialog {
		t.Fatalf("expected the prompt dismissed")
	}
	if m.player.position != 600 {
		t.Fatalf("expected playback from the saved position, got %d", m.player.position)
	}
	if m.player.paused {
		t.Fatalf("expected playback running after the prompt")
	}
	view := plainView(h)
	if !strings.Contains(view, "Resumed Iron Meridian at 10:00") {
		t.Fatalf("expected the resume notice\n%s", view)
	}
	if !strings.Contains(view, "10:00 / 1:00:00") {
		t.Fatalf("expected the clock at the saved position\n%s", view)
	}
}

func TestResumeDialogRestarts(t *testing.T) {
	m, h := newTestModel(t, 80, 24)
	openIronDialog(t, m, h)

	h.Send(keyMsg(tea.KeyRight))
	h.Send(keyMsg(tea.KeyEnter))
	if m.player.position != 0 {
		t.Fatalf("expected playback from the top, got %d", m.player.position)
	}
	if m.player.paused || m.player.dialog {
		t.Fatalf("expected playback running after restart")
	}
	if strings.Contains(plainView(h), "Resumed") {
		t.Fatalf("expected no resume notice on restart")
	}
}

func TestPlayerPersistsProgress(t *testing.T) {
	store := openSeededStore(t)
	m, h := newStoreModel(t, store)
	loadStoreCatalog(t, h, store)

	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyEnter))
	for i := 0; i < 3; i++ {
		h.Send(playTickMsg{seq: m.player.tickSeq})
	}
	h.Send(keyMsg(tea.KeyEsc))

	if !strings.Contains(plainView(h), "Saved The Long Thaw at 0:03") {
		t.Fatalf("expected the save confirmation")
	}
	hero, err := store.Featured()
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if hero.Resume != 3 {
		t.Fatalf("expected the position persisted, got %d", hero.Resume)
	}

	// The next poll carries the new position; reopening offers to resume.
	loadStoreCatalog(t, h, store)
	h.Send(keyMsg(tea.KeyEnter))
	if !m.player.dialog {
		t.Fatalf("expected the resume prompt after persisting progress")
	}
	if !strings.Contains(plainView(h), "Resume from 0:03?") {
		t.Fatalf("expected the prompt to quote the saved position")
	}
	h.Send(keyMsg(tea.KeyEnter))
	if m.player.position != 3 {
		t.Fatalf("expected playback from the saved position, got %d", m.player.position)
	}
	if !strings.Contains(plainView(h), "Resumed The Long Thaw at 0:03") {
		t.Fatalf("expected the resume notice")
	}
}

func TestPlayerPanelGolden(t *testing.T) {
	m, h := newTestModel(t, 40, 24)
	loadCatalog(h, fixtureSections(), fixtureHero())
	h.Send(keyMsg(tea.KeyDown))
	h.Send(keyMsg(tea.KeyEnter))

	var b strings.Builder
	for _, line := range m.playerPanel() {
		b.WriteString(line.text)
		b.WriteByte('\n')
	}
	testutil.Golden(t, "player_panel.txt", b.String())
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{600, "10:00"},
		{3600, "1:00:00"},
		{5445, "1:30:45"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.seconds); got != tc.want {
			t.Fatalf("formatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		position, runtime, width int
		want                     string
	}{
		{0, 100, 10, "░░░░░░░░░░"},
		{50, 100, 10, "█████░░░░░"},
		{100, 100, 10, "██████████"},
		{200, 100, 10, "██████████"},
		{30, 0, 10, "░░░░░░░░░░"},
		{5, 10, 0, ""},
	}
	for _, tc := range cases {
		if got := progressBar(tc.position, tc.runtime, tc.width); got != tc.want {
			t.Fatalf("progressBar(%d, %d, %d) = %q, want %q", tc.position, tc.runtime, tc.width, got, tc.want)
		}
	}
}

func TestClampSeconds(t *testing.T) {
	cases := []struct {
		v, max, want int
	}{
		{-5, 100, 0},
		{50, 100, 50},
		{150, 100, 100},
		{50, 0, 50},
	}
	for _, tc := range cases {
		if got := clampSeconds(tc.v, tc.max); got != tc.want {
			t.Fatalf("clampSeconds(%d, %d) = %d, want %d", tc.v, tc.max, got, tc.want)
		}
	}
}
