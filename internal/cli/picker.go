// Package cli runs the interactive hint picker in the terminal.
package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jsfr/zellij-fingers/internal/session"
	"github.com/jsfr/zellij-fingers/pkg/style"
)

var statusStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)

// Picker is a bubbletea model that forwards key presses to a session.
type Picker struct {
	session *session.Session
	width   int
	height  int
	outcome session.Outcome
}

// NewPicker wraps a started session.
func NewPicker(sess *session.Session) *Picker {
	return &Picker{session: sess}
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		outcome := p.session.HandleKey(msg.String())
		if outcome.Done {
			p.outcome = outcome
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
	}
	return p, nil
}

func (p *Picker) View() string {
	rows := p.height
	if rows <= 0 {
		rows = len(p.session.Hinter().Lines())
	}
	multi := p.session.Multi()
	if multi && rows > 1 {
		rows--
	}

	// bubbletea manages the cursor itself.
	view := strings.TrimPrefix(p.session.Frame(rows, p.width), style.HideCursor)
	if multi {
		status := fmt.Sprintf("multi: %d selected, enter to finish", len(p.session.Selected()))
		view += "\n" + statusStyle.Render(status)
	}
	return view
}

// Outcome returns how the picker ended. It is zero until a key finishes the session.
func (p *Picker) Outcome() session.Outcome {
	return p.outcome
}

// Run shows the picker until the session is done and returns its outcome.
func Run(ctx context.Context, sess *session.Session, opts ...tea.ProgramOption) (session.Outcome, error) {
	picker := NewPicker(sess)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(picker, opts...).Run()
	if err != nil {
		return session.Outcome{}, fmt.Errorf("picker failed: %w", err)
	}
	outcome := final.(*Picker).Outcome()
	log.Debugf("Picker finished: %+v", outcome)
	return outcome, nil
}
