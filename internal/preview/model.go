// Package preview renders a typing session against the virtual keyboard in a Bubble Tea UI.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bioooz/typoer/internal/keyboard"
	"github.com/bioooz/typoer/internal/typing"
)

// eventMsg carries an engine event and a snapshot of the buffer taken right after it.
type eventMsg struct {
	ev     typing.Event
	buffer []rune
}

// doneMsg reports the end of the engine run.
type doneMsg struct {
	res typing.Result
	err error
}

// Model implements the Bubble Tea preview UI.
type Model struct {
	kb       *keyboard.Virtual
	startKey string
	abortKey string
	autoQuit bool

	width  int
	height int

	targetRunes []rune
	typedRunes  []rune
	bar         progress.Model

	started     bool
	chars       int
	typos       int
	corrected   int
	uncorrected int

	done bool
	res  typing.Result
	err  error
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a preview model for text typed into kb.
func NewModel(cfg typing.Config, kb *keyboard.Virtual, text string) *Model {
	return &Model{
		kb:          kb,
		startKey:    keyboard.NormalizeKey(cfg.StartKey),
		abortKey:    keyboard.NormalizeKey(cfg.AbortKey),
		targetRunes: []rune(strings.ReplaceAll(text, "\r\n", "\n")),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = m.contentWidth()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case eventMsg:
		m.handleEvent(msg)
		return m, nil
	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		if m.autoQuit {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
		return tea.Quit
	}
	name := keyboard.NormalizeKey(msg.String())
	if name != "" && (name == m.startKey || name == m.abortKey) {
		m.kb.Hold(name)
	}
	return nil
}

func (m *Model) handleEvent(msg eventMsg) {
	m.typedRunes = msg.buffer
	switch msg.ev.Kind {
	case typing.EventStart:
		m.started = true
	case typing.EventChar:
		m.chars++
	case typing.EventTypo:
		m.typos++
		switch msg.ev.Outcome {
		case typing.TypoCorrected:
			m.corrected++
		case typing.TypoUncorrected:
			m.uncorrected++
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	cursorIndex := -1
	if !m.done && len(m.typedRunes) < len(m.targetRunes) {
		cursorIndex = len(m.typedRunes)
	}
	styledRunes := buildStyledRunes(m.targetRunes, m.typedRunes, cursorIndex)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes) + "\n" + footer
	}
	contentWidth := m.contentWidth()
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	barLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.bar.ViewAs(m.progress()))
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + barLine + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) progress() float64 {
	if len(m.targetRunes) == 0 {
		return 1
	}
	return min(1, float64(m.chars)/float64(len(m.targetRunes)))
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(m.progress()*100)),
		fmt.Sprintf("Typos %d", m.typos),
		fmt.Sprintf("Fixed %d", m.corrected),
		fmt.Sprintf("Left %d", m.uncorrected),
	}
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: " + m.err.Error())
	case m.done:
		segments = append(segments, fmt.Sprintf("%s in %.1fs · q to quit", m.res.Status, m.res.Duration().Seconds()))
	case !m.started || (m.startKey != "" && m.chars == 0):
		if m.startKey != "" {
			segments = append(segments, "press "+m.startKey+" to start")
		}
	case m.abortKey != "":
		segments = append(segments, m.abortKey+" to stop")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
