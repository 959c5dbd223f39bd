package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type busyDoneMsg struct{}

type busyModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newBusyModel(label string, style lipgloss.Style) busyModel {
	return busyModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style)),
		label:   label,
	}
}

func (m busyModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m busyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case busyDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m busyModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runBusySpinner draws a spinner while fn runs. fn always runs to completion
// before this returns, even when the spinner itself fails.
func runBusySpinner(ctx context.Context, output io.Writer, label string, style lipgloss.Style, fn func(context.Context) error) error {
	p := tea.NewProgram(
		newBusyModel(label, style),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	result := make(chan error, 1)
	go func() {
		result <- fn(ctx)
		p.Send(busyDoneMsg{})
	}()

	_, _ = p.Run()
	return <-result
}
