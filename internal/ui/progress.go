// Package ui draws the terminal progress view of multi-file runs.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ember/internal/pipeline"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

const statusWidth = 10

type fileRow struct {
	path    string
	stage   pipeline.Stage
	status  pipeline.Status
	elapsed time.Duration
}

// label is what the status column shows.
func (r fileRow) label() string {
	if r.status == pipeline.StatusWorking {
		if verb := r.stage.Verb(); verb != "" {
			return verb
		}
	}
	return string(r.status)
}

func (r fileRow) style() lipgloss.Style {
	switch r.status {
	case pipeline.StatusDone:
		return doneStyle
	case pipeline.StatusError:
		return errorStyle
	case pipeline.StatusWorking:
		return workingStyle
	default:
		return queuedStyle
	}
}

// share is the part of the overall bar this file has earned.
func (r fileRow) share() float64 {
	if r.status.Final() {
		return 1
	}
	return r.stage.Weight()
}

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	width   int
	done    bool
}

type (
	eventMsg  pipeline.Event
	closedMsg struct{}
)

// NewProgressModel returns a Bubble Tea model showing one row per file. It
// quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: pipeline.StatusQueued}
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one pipeline event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev on its row. Events for unknown files are dropped.
func (m *progressModel) apply(ev pipeline.Event) tea.Cmd {
	// строки адресуются по позиции: один путь может встретиться дважды
	if ev.Index < 0 || ev.Index >= len(m.rows) || m.rows[ev.Index].path != ev.File {
		return nil
	}
	row := &m.rows[ev.Index]
	if ev.Stage != "" {
		row.stage = ev.Stage
	}
	row.status = ev.Status
	row.elapsed += ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.share()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) finished() int {
	n := 0
	for _, r := range m.rows {
		if r.status.Final() {
			n++
		}
	}
	return n
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished(), len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-16, 20)
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %s %s", r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label())), truncate(r.path, nameWidth))
		if r.status.Final() && r.elapsed > 0 {
			b.WriteString(" ")
			b.WriteString(elapsedStyle.Render(r.elapsed.Round(time.Microsecond).String()))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width terminal columns, "..." included.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
