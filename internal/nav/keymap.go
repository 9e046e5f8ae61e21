package nav

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the directional commands, their override chords, and
// activation. The override chord forces navigation away from input widgets
// that otherwise keep their arrow keys.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ForceUp    key.Binding
	ForceDown  key.Binding
	ForceLeft  key.Binding
	ForceRight key.Binding

	Activate key.Binding
}

// DefaultKeyMap binds the arrow keys, alt+arrows as the override chord, and
// enter/space for activation.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		ForceUp:    key.NewBinding(key.WithKeys("alt+up")),
		ForceDown:  key.NewBinding(key.WithKeys("alt+down")),
		ForceLeft:  key.NewBinding(key.WithKeys("alt+left")),
		ForceRight: key.NewBinding(key.WithKeys("alt+right")),
		Activate:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	}
}

// ShortHelp lists the bindings shown in the navigation hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Activate}
}

// FullHelp groups every binding for expanded help views.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Activate},
	}
}
