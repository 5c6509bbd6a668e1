package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/apg/pkg/program"
)

const watchInterval = 100 * time.Millisecond

// statusSource is the part of *program.Program the watch view polls.
type statusSource interface {
	Statuses() []program.Status
}

type (
	tickMsg    time.Time
	runDoneMsg struct{ err error }
)

// watchModel is the bubbletea model for `run --watch`: a status table
// refreshed on every tick until the run ends.
type watchModel struct {
	src      statusSource
	statuses []program.Status
	start    time.Time
	elapsed  time.Duration
	done     bool
	quit     bool
	err      error
}

func newWatchModel(src statusSource) watchModel {
	return watchModel{src: src, statuses: src.Statuses(), start: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.statuses = m.src.Statuses()
		m.elapsed = time.Time(msg).Sub(m.start)
		return m, tick()
	case runDoneMsg:
		m.done, m.err = true, msg.err
		m.statuses = m.src.Statuses()
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Program"))
	b.WriteString(" ")
	b.WriteString(styleDim.Render(m.elapsed.Round(time.Millisecond).String()))
	b.WriteString("\n")
	b.WriteString(statusTable(m.statuses))
	b.WriteString("\n")

	active := 0
	for _, st := range m.statuses {
		if st.Active {
			active++
		}
	}
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.done:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " done")
	default:
		b.WriteString(styleDim.Render(fmt.Sprintf("%d active  q quit", active)))
	}
	b.WriteString("\n")
	return b.String()
}

// runWatch runs p while showing the watch view on w. Quitting the view
// cancels the run.
func runWatch(ctx context.Context, p *program.Program, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tp := tea.NewProgram(newWatchModel(p), tea.WithContext(ctx), tea.WithOutput(w))
	errc := make(chan error, 1)
	go func() {
		err := p.Run(ctx)
		errc <- err
		tp.Send(runDoneMsg{err: err})
	}()

	_, uiErr := tp.Run()
	cancel()
	runErr := <-errc
	if runErr != nil {
		return runErr
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("watch: %w", uiErr)
	}
	return nil
}
