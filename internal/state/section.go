package state

import (
	"slices"

	"github.com/atomicstack/marquee/internal/catalog"
)

// SectionStore holds the browse shelves most recently read from the catalog.
type SectionStore interface {
	Sections() []catalog.Section
	SetSections([]catalog.Section) bool
}

type sectionStore struct {
	sections []catalog.Section
}

func NewSectionStore() SectionStore {
	return &sectionStore{}
}

func (s *sectionStore) Sections() []catalog.Section {
	return cloneSections(s.sections)
}

// SetSections replaces the held shelves and reports whether anything
// actually changed.
func (s *sectionStore) SetSections(sections []catalog.Section) bool {
	if sectionsEqual(s.sections, sections) {
		return false
	}
	s.sections = cloneSections(sections)
	return true
}

func cloneSections(sections []catalog.Section) []catalog.Section {
	if len(sections) == 0 {
		return nil
	}
	dup := make([]catalog.Section, len(sections))
	copy(dup, sections)
	for i := range dup {
		if len(dup[i].Titles) == 0 {
			dup[i].Titles = nil
			continue
		}
		titles := make([]catalog.Title, len(dup[i].Titles))
		copy(titles, dup[i].Titles)
		dup[i].Titles = titles
	}
	return dup
}

func sectionsEqual(a, b []catalog.Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Position != b[i].Position {
			return false
		}
		if !slices.Equal(a[i].Titles, b[i].Titles) {
			return false
		}
	}
	return true
}
