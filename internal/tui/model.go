package tui

import (
	"fmt"
	"os"
	"strings"

	"metascan/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseWalking Phase = iota
	PhaseExtracting
	PhaseDone
	PhaseError
)

// Messages sent by the scan goroutine
type (
	ProgressMsg struct {
		Done  int
		Total int
		Dir   string
	}
	DoneMsg struct {
		Summary domain.Summary
	}
	ErrorMsg struct {
		Err error
	}
)

// Config for the TUI
type Config struct {
	Root       string
	ReportPath string
	Verbose    bool
}

// Model is the scan progress TUI
type Model struct {
	config      Config
	Phase       Phase
	Summary     domain.Summary
	Err         error
	spinner     spinner.Model
	progress    progress.Model
	done        int
	total       int
	currentDir  string
	Interrupted bool
	width       int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseWalking,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Interrupted = true
			return m, tea.Quit
		}

	case ProgressMsg:
		m.Phase = PhaseExtracting
		m.done = msg.Done
		m.total = msg.Total
		m.currentDir = msg.Dir
		if m.total > 0 {
			return m, m.progress.SetPercent(float64(m.done) / float64(m.total))
		}
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Summary = msg.Summary
		return m, tea.Quit

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Phase == PhaseWalking || m.Phase == PhaseExtracting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseWalking:
		b.WriteString(fmt.Sprintf("%s Walking directory tree...", m.spinner.View()))
	case PhaseExtracting:
		b.WriteString(m.renderExtraction())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconScan + " metascan")
	subtitle := subtitleStyle.Render("Recursive metadata extraction")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Root:   %s", iconFolder, shortenPath(m.config.Root))),
		dimStyle.Render(fmt.Sprintf("%s Report: %s", iconFolder, shortenPath(m.config.ReportPath))),
	)
}

func (m Model) renderExtraction() string {
	var b strings.Builder

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}

	b.WriteString(fmt.Sprintf("%s Extracting metadata...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.done, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentDir != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, dirStyle.Render(m.currentDir)))
	}

	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Scan Complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render("Report written")))

	stat := func(label string, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(label), statValueStyle.Render(value)))
	}
	stat("Directories scanned:", fmt.Sprintf("%d", m.Summary.Directories))
	stat("Files scanned:", fmt.Sprintf("%d", m.Summary.FilesScanned))
	stat("Metadata decoded:", fmt.Sprintf("%d", m.Summary.Decoded))

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	if m.Summary.DecodeFailures > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Decode failures:"),
			warningStyle.Render(fmt.Sprintf("%s %d", iconWarn, m.Summary.DecodeFailures))))
	}
	if m.Summary.StatFailures > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Stat failures:"),
			warningStyle.Render(fmt.Sprintf("%s %d", iconWarn, m.Summary.StatFailures))))
	}
	if m.Summary.DirFailures > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Unreadable directories:"),
			warningStyle.Render(fmt.Sprintf("%s %d", iconWarn, m.Summary.DirFailures))))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Ignored files:"),
		dimStyle.Render(fmt.Sprintf("%d", m.Summary.FilesIgnored))))

	if m.config.Verbose && len(m.Summary.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Warnings:"))
		b.WriteString("\n")
		for _, w := range m.Summary.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", iconWarn, w))
		}
	}

	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))
	return errorBoxStyle.Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	switch m.Phase {
	case PhaseDone, PhaseError:
		return ""
	default:
		return helpStyle.Render("Press q to cancel")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
