package dispatcher

import (
	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/state"
)

// Result reports which stores actually changed after an event.
type Result struct {
	SectionsUpdated bool
	FeaturedUpdated bool
}

type Dispatcher struct {
	sections state.SectionStore
	featured state.FeaturedStore
}

func New(s state.SectionStore, f state.FeaturedStore) *Dispatcher {
	return &Dispatcher{sections: s, featured: f}
}

// Handle folds one watcher event into the stores. Errored polls and polls
// that carry the same data as last time report no updates, so the UI only
// rebuilds when the catalog really moved.
func (d *Dispatcher) Handle(evt catalog.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case catalog.KindSections:
		if sections, ok := evt.Data.([]catalog.Section); ok {
			res.SectionsUpdated = d.sections.SetSections(sections)
		}
	case catalog.KindFeatured:
		if featured, ok := evt.Data.(*catalog.Title); ok {
			res.FeaturedUpdated = d.featured.SetFeatured(featured)
		}
	}
	return res
}
