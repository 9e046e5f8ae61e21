package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header            *lipgloss.Style
	Hero              *lipgloss.Style
	HeroTagline       *lipgloss.Style
	SectionTitle      *lipgloss.Style
	Card              *lipgloss.Style
	CardFocused       *lipgloss.Style
	CardDisabled      *lipgloss.Style
	ZoneBorder        *lipgloss.Style
	HintBar           *lipgloss.Style
	Info              *lipgloss.Style
	Error             *lipgloss.Style
	SearchPrompt      *lipgloss.Style
	SearchPlaceholder *lipgloss.Style
	Suggestion        *lipgloss.Style
	TableHeader       *lipgloss.Style
	Cursor            *lipgloss.Style
}

const defaultAccent = "203"

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Hero: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	HeroTagline: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
	),
	SectionTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Card: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	CardFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	CardDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ZoneBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)),
	),
	HintBar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true),
	),
	SearchPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
	),
	TableHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(defaultAccent)).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Accent returns the default styles with the focus highlight and search
// prompt recolored. An empty colour keeps the stock palette.
func Accent(color string) *Styles {
	if color == "" {
		return Default()
	}
	s := defaultStyles
	s.CardFocused = ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color(color)).Bold(true),
	)
	s.ZoneBorder = ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
	)
	s.SearchPrompt = ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true),
	)
	s.Cursor = ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(color)).Blink(true),
	)
	return &s
}

// Plain returns styles with no colour or emphasis, so tests can compare
// rendered output byte for byte.
func Plain() *Styles {
	empty := lipgloss.NewStyle()
	return &Styles{
		Header:            &empty,
		Hero:              &empty,
		HeroTagline:       &empty,
		SectionTitle:      &empty,
		Card:              &empty,
		CardFocused:       &empty,
		CardDisabled:      &empty,
		ZoneBorder:        &empty,
		HintBar:           &empty,
		Info:              &empty,
		Error:             &empty,
		SearchPrompt:      &empty,
		SearchPlaceholder: &empty,
		Suggestion:        &empty,
		TableHeader:       &empty,
		Cursor:            &empty,
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
