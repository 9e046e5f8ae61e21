package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/state"
)

func sections() []catalog.Section {
	return []catalog.Section{
		{ID: "a", Name: "Trending", Titles: []catalog.Title{
			{ID: "t1", Name: "Midnight Freight", Section: "a"},
		}},
	}
}

func TestHandleReportsOnlyRealChanges(t *testing.T) {
	d := New(state.NewSectionStore(), state.NewFeaturedStore())

	res := d.Handle(catalog.Event{Kind: catalog.KindSections, Data: sections()})
	if !res.SectionsUpdated || res.FeaturedUpdated {
		t.Fatalf("expected a sections-only update, got %+v", res)
	}

	res = d.Handle(catalog.Event{Kind: catalog.KindSections, Data: sections()})
	if res.SectionsUpdated {
		t.Fatalf("identical poll must not report an update")
	}

	changed := sections()
	changed[0].Titles[0].Resume = 120
	res = d.Handle(catalog.Event{Kind: catalog.KindSections, Data: changed})
	if !res.SectionsUpdated {
		t.Fatalf("changed poll must report an update")
	}
}

func TestHandleIgnoresErroredPolls(t *testing.T) {
	store := state.NewSectionStore()
	d := New(store, state.NewFeaturedStore())
	d.Handle(catalog.Event{Kind: catalog.KindSections, Data: sections()})

	res := d.Handle(catalog.Event{
		Kind: catalog.KindSections,
		Err:  errors.New("database is locked"),
	})
	if res.SectionsUpdated || res.FeaturedUpdated {
		t.Fatalf("errored poll must not report updates, got %+v", res)
	}
	if len(store.Sections()) != 1 {
		t.Fatalf("errored poll must not clear the store")
	}
}

func TestHandleFeaturedTransitions(t *testing.T) {
	d := New(state.NewSectionStore(), state.NewFeaturedStore())
	hero := &catalog.Title{ID: "t9", Name: "The Long Thaw"}

	res := d.Handle(catalog.Event{Kind: catalog.KindFeatured, Data: hero})
	if !res.FeaturedUpdated {
		t.Fatalf("expected a featured update")
	}
	res = d.Handle(catalog.Event{Kind: catalog.KindFeatured, Data: hero})
	if res.FeaturedUpdated {
		t.Fatalf("identical hero must not report an update")
	}

	res = d.Handle(catalog.Event{Kind: catalog.KindFeatured, Data: (*catalog.Title)(nil)})
	if !res.FeaturedUpdated {
		t.Fatalf("losing the hero must report an update")
	}
}
