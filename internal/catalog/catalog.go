// Package catalog persists the streaming library: sections of titles, watch
// progress, and the user's saved list.
package catalog

// Title kinds.
const (
	KindFilm   = "film"
	KindSeries = "series"
)

// MyListSectionID names the synthesized section that collects saved titles.
const MyListSectionID = "my-list"

// Title is one entry in the library.
type Title struct {
	ID       string
	Name     string
	Year     int
	Kind     string
	Tagline  string
	Section  string
	Position int
	Released bool
	Featured bool
	Runtime  int // seconds
	Resume   int // seconds already watched
}

// Section is an ordered shelf of titles.
type Section struct {
	ID       string
	Name     string
	Position int
	Titles   []Title
}
