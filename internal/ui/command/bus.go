// Package command wraps host actions into traced Bubble Tea commands.
package command

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/logging/events"
)

// Request encapsulates an action invocation. Run performs the side effect
// and returns a human-readable summary for the status line.
type Request struct {
	ID    string
	Label string
	Run   func() (string, error)
}

// Result reports a completed action back to the update loop.
type Result struct {
	ID    string
	Label string
	Info  string
	Err   error
}

// Bus coordinates the execution of host actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace
// logs. The run function executes off the update loop; its outcome returns
// as a Result message.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info, err := req.Run()
		events.Command.Result(req.ID, req.Label, err)
		return Result{ID: req.ID, Label: req.Label, Info: info, Err: err}
	}
}
