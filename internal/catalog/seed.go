package catalog

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/atomicstack/marquee/internal/logging/events"
)

type seedTitle struct {
	name     string
	year     int
	kind     string
	tagline  string
	minutes  int
	coming   bool
	featured bool
}

var seedSections = []struct {
	name   string
	titles []seedTitle
}{
	{"Trending Now", []seedTitle{
		{name: "Midnight Freight", year: 2024, kind: KindFilm, tagline: "Every cargo has a price.", minutes: 116},
		{name: "The Glass Harbor", year: 2023, kind: KindSeries, tagline: "A town built on secrets, cracked open.", minutes: 52},
		{name: "Static", year: 2024, kind: KindFilm, tagline: "The broadcast never ended.", minutes: 98},
		{name: "Crown of Embers", year: 2022, kind: KindSeries, tagline: "The throne burns whoever holds it.", minutes: 58},
		{name: "Last Transmission", year: 2024, kind: KindFilm, tagline: "Eight minutes of tape. One survivor.", minutes: 104},
	}},
	{"New Releases", []seedTitle{
		{name: "The Long Thaw", year: 2025, kind: KindFilm, tagline: "Winter kept the town's secrets. Spring gives them up.", minutes: 121, featured: true},
		{name: "Signal Lost", year: 2025, kind: KindFilm, tagline: "They heard it first. Then it heard them.", minutes: 109},
		{name: "Paper Moons", year: 2025, kind: KindSeries, tagline: "Two con artists. One honest mistake.", minutes: 47},
		{name: "Driftwood", year: 2025, kind: KindSeries, tagline: "What washes ashore doesn't stay ashore.", minutes: 55},
		{name: "Northern Standard", year: 2025, kind: KindFilm, tagline: "The last honest paper in a company town.", minutes: 113, coming: true},
	}},
	{"Sci-Fi & Fantasy", []seedTitle{
		{name: "Orbital Decay", year: 2021, kind: KindSeries, tagline: "The station is falling. So are its crew.", minutes: 49},
		{name: "The Cartographer's Daughter", year: 2020, kind: KindFilm, tagline: "Maps end where she begins.", minutes: 127},
		{name: "Eleventh Hour Colony", year: 2023, kind: KindSeries, tagline: "Humanity's backup plan needs a backup plan.", minutes: 54},
		{name: "Spindle", year: 2022, kind: KindFilm, tagline: "Time frays at the edges.", minutes: 101, coming: true},
	}},
	{"Documentaries", []seedTitle{
		{name: "Salt and Iron", year: 2019, kind: KindFilm, tagline: "A century of the coastal forges.", minutes: 89},
		{name: "The Quiet Grid", year: 2023, kind: KindFilm, tagline: "Life inside the last analog exchange.", minutes: 76},
		{name: "Fermata", year: 2021, kind: KindFilm, tagline: "An orchestra's year of silence.", minutes: 94},
		{name: "Open Water Year", year: 2024, kind: KindSeries, tagline: "Four seasons with the channel swimmers.", minutes: 43},
	}},
	{"Comedies", []seedTitle{
		{name: "Bad Reception", year: 2022, kind: KindSeries, tagline: "A wedding planner with no signal.", minutes: 31},
		{name: "The Understudies", year: 2023, kind: KindSeries, tagline: "Always second. Never ready.", minutes: 28},
		{name: "Peak Hours", year: 2024, kind: KindFilm, tagline: "One gym. Every resolution.", minutes: 92},
		{name: "Borrowed Dog", year: 2021, kind: KindFilm, tagline: "He needed a friend. The dog needed an alibi.", minutes: 87},
	}},
}

// Seed fills the catalog with the demo library. Ids derive from names, so
// reseeding an existing catalog inserts nothing new.
func (s *Store) Seed() error {
	titles := 0
	err := s.withTx(func(tx *sql.Tx) error {
		for si, sec := range seedSections {
			sid := seedID("section:" + sec.name)
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO sections (id, name, position) VALUES (?, ?, ?)`,
				sid, sec.name, si,
			); err != nil {
				return fmt.Errorf("insert section %q: %w", sec.name, err)
			}
			for ti, t := range sec.titles {
				released := 1
				if t.coming {
					released = 0
				}
				featured := 0
				if t.featured {
					featured = 1
				}
				if _, err := tx.Exec(`
					INSERT OR IGNORE INTO titles
						(id, name, year, kind, tagline, section_id, position, released, featured, runtime)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				`, seedID("title:"+t.name), t.name, t.year, t.kind, t.tagline,
					sid, ti, released, featured, t.minutes*60,
				); err != nil {
					return fmt.Errorf("insert title %q: %w", t.name, err)
				}
				titles++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	events.Catalog.Seeded(titles)
	return nil
}

func seedID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
