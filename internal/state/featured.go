package state

import "github.com/atomicstack/marquee/internal/catalog"

// FeaturedStore holds the hero title, if any.
type FeaturedStore interface {
	Featured() *catalog.Title
	SetFeatured(*catalog.Title) bool
}

type featuredStore struct {
	featured *catalog.Title
}

func NewFeaturedStore() FeaturedStore {
	return &featuredStore{}
}

func (s *featuredStore) Featured() *catalog.Title {
	if s.featured == nil {
		return nil
	}
	dup := *s.featured
	return &dup
}

// SetFeatured replaces the hero title and reports whether it changed.
func (s *featuredStore) SetFeatured(title *catalog.Title) bool {
	switch {
	case s.featured == nil && title == nil:
		return false
	case s.featured != nil && title != nil && *s.featured == *title:
		return false
	}
	if title == nil {
		s.featured = nil
		return true
	}
	dup := *title
	s.featured = &dup
	return true
}
