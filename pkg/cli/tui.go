package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("99")).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

type TickMsg time.Time

type StepStartedMsg struct {
	Name string
}

type StepFinishedMsg struct {
	Result *model.StepResult
}

type PipelineFinishedMsg struct {
	Summary *model.Summary
}

type stepRow struct {
	name     string
	status   model.StepStatus
	exitCode int
	duration time.Duration
}

type TUIModel struct {
	pipelineName string
	rows         []stepRow
	index        map[string]int
	startedAt    time.Time
	summary      *model.Summary
	done         bool
	width        int
	height       int
}

func NewTUIModel(pipeline *model.Pipeline) *TUIModel {
	rows := make([]stepRow, len(pipeline.Steps))
	index := make(map[string]int, len(pipeline.Steps))
	for i, step := range pipeline.Steps {
		rows[i] = stepRow{
			name:   step.Name,
			status: model.StepStatusPending,
		}
		index[step.Name] = i
	}
	return &TUIModel{
		pipelineName: pipeline.Name,
		rows:         rows,
		index:        index,
		startedAt:    time.Now(),
	}
}

func (m *TUIModel) Init() tea.Cmd {
	return tickCmd()
}

func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case StepStartedMsg:
		if i, ok := m.index[msg.Name]; ok {
			m.rows[i].status = model.StepStatusRunning
		}
		return m, nil

	case StepFinishedMsg:
		if i, ok := m.index[msg.Result.Name]; ok {
			m.rows[i].status = msg.Result.Status
			m.rows[i].exitCode = msg.Result.ExitCode
			m.rows[i].duration = msg.Result.Duration
		}
		return m, nil

	case PipelineFinishedMsg:
		m.summary = msg.Summary
		m.done = true
		for i := range m.rows {
			if m.rows[i].status == model.StepStatusPending {
				m.rows[i].status = model.StepStatusSkipped
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *TUIModel) View() string {
	if m.width == 0 {
		return ""
	}

	header := headerStyle.Render("🔧 " + m.pipelineName)

	statusInfo := fmt.Sprintf("Elapsed: %s | Press 'q' to abort",
		time.Since(m.startedAt).Round(time.Second))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderTable(),
		"",
		statusStyle.Render(statusInfo))
}

func (m *TUIModel) renderTable() string {
	var rows []string

	headerRow := fmt.Sprintf("%-4s %-24s %-12s %-10s",
		"", "Step", "Status", "Time")
	rows = append(rows, tableHeaderStyle.Render(headerRow))

	for _, row := range m.rows {
		name := truncateName(row.name, 24)

		status := string(row.status)
		if row.status == model.StepStatusFailure {
			status = fmt.Sprintf("exit %d", row.exitCode)
		}

		timeInfo := ""
		switch row.status {
		case model.StepStatusRunning:
			timeInfo = "running..."
		case model.StepStatusSuccess, model.StepStatusFailure:
			timeInfo = row.duration.Round(time.Millisecond).String()
		}

		line := fmt.Sprintf("%-4s %-24s %-12s %-10s",
			stepStatusIcon(row.status), name, status, timeInfo)

		style := lipgloss.NewStyle()
		switch row.status {
		case model.StepStatusSuccess:
			style = style.Foreground(lipgloss.Color("10"))
		case model.StepStatusFailure:
			style = style.Foreground(lipgloss.Color("9"))
		case model.StepStatusRunning:
			style = style.Foreground(lipgloss.Color("11"))
		case model.StepStatusSkipped:
			style = style.Foreground(lipgloss.Color("240"))
		}

		rows = append(rows, style.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// truncateName shortens a step name to max runes, never splitting a
// multi-byte rune.
func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func stepStatusIcon(status model.StepStatus) string {
	switch status {
	case model.StepStatusSuccess:
		return "✅"
	case model.StepStatusFailure:
		return "❌"
	case model.StepStatusRunning:
		return "🔄"
	case model.StepStatusSkipped:
		return "⏭️"
	default:
		return "⏳"
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TUIDisplay forwards runner events into the bubbletea program.
type TUIDisplay struct {
	program *tea.Program
}

func NewTUIDisplay(program *tea.Program) interfaces.Display {
	return &TUIDisplay{program: program}
}

// Trace is a no-op: the alt-screen table already shows each command.
func (d *TUIDisplay) Trace(step model.Step) {}

func (d *TUIDisplay) StepStart(step model.Step) {
	d.program.Send(StepStartedMsg{Name: step.Name})
}

func (d *TUIDisplay) StepDone(result *model.StepResult) {
	d.program.Send(StepFinishedMsg{Result: result})
}

func (d *TUIDisplay) StepFailed(result *model.StepResult, err error) {
	d.program.Send(StepFinishedMsg{Result: result})
}

func (d *TUIDisplay) Summary(summary *model.Summary) {
	d.program.Send(PipelineFinishedMsg{Summary: summary})
}
