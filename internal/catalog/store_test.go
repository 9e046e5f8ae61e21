package catalog

import (
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openSeeded(t *testing.T) *Store {
	t.Helper()
	s := openStore(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestFreshStoreIsEmpty(t *testing.T) {
	s := openStore(t)
	empty, err := s.Empty()
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if !empty {
		t.Fatalf("expected a fresh store to be empty")
	}
	featured, err := s.Featured()
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if featured != nil {
		t.Fatalf("expected no featured title, got %q", featured.Name)
	}
}

func TestSeedPopulatesSections(t *testing.T) {
	s := openSeeded(t)

	empty, err := s.Empty()
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if empty {
		t.Fatalf("expected titles after seeding")
	}

	sections, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if len(sections) != len(seedSections) {
		t.Fatalf("expected %d sections, got %d", len(seedSections), len(sections))
	}
	for i, sec := range sections {
		if sec.Name != seedSections[i].name {
			t.Fatalf("section %d: expected %q, got %q", i, seedSections[i].name, sec.Name)
		}
		if len(sec.Titles) != len(seedSections[i].titles) {
			t.Fatalf("section %q: expected %d titles, got %d",
				sec.Name, len(seedSections[i].titles), len(sec.Titles))
		}
		for j, title := range sec.Titles {
			if title.Name != seedSections[i].titles[j].name {
				t.Fatalf("section %q title %d: expected %q, got %q",
					sec.Name, j, seedSections[i].titles[j].name, title.Name)
			}
			if title.Position != j {
				t.Fatalf("title %q: expected position %d, got %d", title.Name, j, title.Position)
			}
		}
	}

	featured, err := s.Featured()
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if featured == nil || featured.Name != "The Long Thaw" {
		t.Fatalf("unexpected featured title: %+v", featured)
	}
	if !featured.Featured || !featured.Released {
		t.Fatalf("featured title flags wrong: %+v", featured)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openSeeded(t)
	before, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if err := s.Seed(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	after, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("reseed changed section count: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if len(after[i].Titles) != len(before[i].Titles) {
			t.Fatalf("reseed changed %q title count", after[i].Name)
		}
	}
}

func TestUnreleasedTitlesCarryTheFlag(t *testing.T) {
	s := openSeeded(t)
	sections, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	coming := 0
	for _, sec := range sections {
		for _, title := range sec.Titles {
			if !title.Released {
				coming++
			}
		}
	}
	if coming != 2 {
		t.Fatalf("expected 2 unreleased titles, got %d", coming)
	}
}

func TestSaveProgressRoundTrip(t *testing.T) {
	s := openSeeded(t)
	sections, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	title := sections[0].Titles[0]

	if err := s.SaveProgress(title.ID, 300); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if got := resumeFor(t, s, title.ID); got != 300 {
		t.Fatalf("expected resume 300, got %d", got)
	}

	// Upsert replaces, never accumulates.
	if err := s.SaveProgress(title.ID, 900); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if got := resumeFor(t, s, title.ID); got != 900 {
		t.Fatalf("expected resume 900, got %d", got)
	}

	if err := s.SaveProgress(title.ID, -5); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if got := resumeFor(t, s, title.ID); got != 0 {
		t.Fatalf("negative progress must clamp to zero, got %d", got)
	}
}

func TestSaveProgressRejectsUnknownTitle(t *testing.T) {
	s := openSeeded(t)
	if err := s.SaveProgress("no-such-title", 10); err == nil {
		t.Fatalf("expected a foreign key error for an unknown title")
	}
}

func TestToggleMyListSynthesizesSection(t *testing.T) {
	s := openSeeded(t)
	sections, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	first := sections[0].Titles[0]
	second := sections[0].Titles[1]

	added, err := s.ToggleMyList(first.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !added {
		t.Fatalf("expected first toggle to add")
	}
	if _, err := s.ToggleMyList(second.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	sections, err = s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if sections[0].ID != MyListSectionID {
		t.Fatalf("expected My List first, got %q", sections[0].ID)
	}
	if len(sections) != len(seedSections)+1 {
		t.Fatalf("expected %d sections with My List, got %d", len(seedSections)+1, len(sections))
	}
	got := sections[0].Titles
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("saved list must keep insertion order, got %+v", got)
	}

	removed, err := s.ToggleMyList(first.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if removed {
		t.Fatalf("expected second toggle to remove")
	}
	sections, err = s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if sections[0].ID != MyListSectionID || len(sections[0].Titles) != 1 {
		t.Fatalf("expected one saved title left, got %+v", sections[0])
	}

	if _, err := s.ToggleMyList(second.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	sections, err = s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if sections[0].ID == MyListSectionID {
		t.Fatalf("empty list must not synthesize a section")
	}
}

func resumeFor(t *testing.T, s *Store, titleID string) int {
	t.Helper()
	sections, err := s.Sections()
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	for _, sec := range sections {
		for _, title := range sec.Titles {
			if title.ID == titleID {
				return title.Resume
			}
		}
	}
	t.Fatalf("title %s not found", titleID)
	return 0
}

func TestWatcherEmitsBothKinds(t *testing.T) {
	s := openSeeded(t)
	w := NewWatcher(s, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	seen := map[Kind]bool{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if evt.Err != nil {
				t.Fatalf("poll error: %v", evt.Err)
			}
			switch evt.Kind {
			case KindSections:
				sections, ok := evt.Data.([]Section)
				if !ok || len(sections) == 0 {
					t.Fatalf("unexpected sections payload: %#v", evt.Data)
				}
			case KindFeatured:
				featured, ok := evt.Data.(*Title)
				if !ok || featured == nil {
					t.Fatalf("unexpected featured payload: %#v", evt.Data)
				}
			}
			seen[evt.Kind] = true
		case <-timeout:
			t.Fatalf("timed out waiting for watcher events")
		}
	}
}
