// Package tui provides a Bubble Tea terminal user interface for inspecting
// parsed lyrics and scanning music libraries.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/config"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
	"github.com/reindex-ot/AccordLegacy/internal/model"
	"github.com/reindex-ot/AccordLegacy/internal/scan"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C77DFF"))

	backgroundStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6C757D"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateViewing
	StateScanning
	StateComplete
	StateError
)

// maxLogs is how many progress messages the scan view keeps.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   scan.ProgressLevel
}

// eventLog buffers progress events between ticks.
type eventLog struct {
	mu     sync.Mutex
	events []scan.ProgressEvent
}

func (l *eventLog) add(e scan.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) drain() []scan.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	viewport  viewport.Model
	settings  *config.Settings
	service   *lyrics.Service
	log       zerolog.Logger
	logs      []LogEntry
	err       error

	// Lyrics being inspected
	input  string
	lines  []model.LyricLine
	source lyrics.Source

	// Scan context
	ctx    context.Context
	cancel context.CancelFunc

	// Scan manager reference
	manager *scan.Manager
	events  *eventLog
	results []scan.Result

	// Scan progress
	totalFiles     int32
	processedFiles int32
	foundFiles     int32

	// Options
	translations bool
	export       bool
	verbose      bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, service *lyrics.Service, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "/music/song.mp3, /music/song.lrc, /music or https://..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateInput,
		textInput:    ti,
		spinner:      sp,
		progress:     prog,
		viewport:     viewport.New(80, 20),
		settings:     settings,
		service:      service,
		log:          log,
		logs:         make([]LogEntry, 0),
		ctx:          ctx,
		cancel:       cancel,
		events:       &eventLog{},
		translations: true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// LoadDoneMsg is sent when lyrics for a single input are resolved.
	LoadDoneMsg struct {
		Lines  []model.LyricLine
		Source lyrics.Source
	}

	// ScanDoneMsg is sent when a library scan completes.
	ScanDoneMsg struct {
		Results []scan.Result
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-10, 5)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput, StateViewing, StateComplete, StateError:
				return m, tea.Quit
			case StateLoading, StateScanning:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				return m.start()
			}

		case "alt+e":
			if m.state == StateInput {
				m.export = !m.export
				return m, nil
			}

		case "alt+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "t":
			if m.state == StateViewing {
				m.translations = !m.translations
				m.viewport.SetContent(m.renderLines())
			}

		case "q":
			if m.state == StateViewing || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateViewing || m.state == StateComplete || m.state == StateError {
				return m.reset(), textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LoadDoneMsg:
		if m.state != StateLoading {
			return m, nil
		}
		if msg.Lines == nil {
			m.state = StateError
			m.err = fmt.Errorf("no lyrics found for %s", m.input)
			return m, nil
		}
		m.state = StateViewing
		m.lines = msg.Lines
		m.source = msg.Source
		m.viewport.SetContent(m.renderLines())
		m.viewport.GotoTop()

	case ScanDoneMsg:
		m.drainEvents()
		m.results = msg.Results
		if m.manager != nil {
			m.processedFiles, m.foundFiles, m.totalFiles = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateScanning {
			m.drainEvents()
			m.processedFiles, m.foundFiles, m.totalFiles = m.manager.GetProgress()

			var percent float64
			if m.totalFiles > 0 {
				percent = float64(m.processedFiles) / float64(m.totalFiles)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateViewing:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start resolves the entered input: directories are scanned, anything else
// is loaded and shown.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.input = strings.TrimSpace(m.textInput.Value())

	if info, err := os.Stat(m.input); err == nil && info.IsDir() {
		m.state = StateScanning
		m.manager = scan.NewManager(m.settings, m.service, scan.Options{Export: m.export}, m.log, m.events.add)
		return m, tea.Batch(m.startScan(), m.tickProgress(), m.spinner.Tick)
	}

	m.state = StateLoading
	return m, tea.Batch(m.loadLyrics(), m.spinner.Tick)
}

// reset returns to the input state for a new inspection.
func (m Model) reset() Model {
	m.cancel()
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.input = ""
	m.lines = nil
	m.source = lyrics.SourceNone
	m.manager = nil
	m.results = nil
	m.events = &eventLog{}
	m.processedFiles = 0
	m.foundFiles = 0
	m.totalFiles = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.viewport.SetContent("")
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m *Model) drainEvents() {
	for _, e := range m.events.drain() {
		// Filter verbose messages if not in verbose mode
		if e.Level == scan.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	}
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Accord Lyrics"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Inspect synchronized lyrics"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateViewing:
		b.WriteString(m.viewLyrics())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a track, lyric file, directory or URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	exportCheck := "[ ]"
	if m.export {
		exportCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Export while scanning (alt+e)\n", exportCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (alt+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Export format: %s", m.settings.Format())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	return m.spinner.View() + " " + subtitleStyle.Render("Loading lyrics...") + "\n"
}

func (m Model) viewLyrics() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("%d line(s) from %s", len(m.lines), m.source)))
	b.WriteString(dimStyle.Render("  " + m.input))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning " + m.input))
	b.WriteString("\n\n")

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Tracks: %d/%d | With lyrics: %d",
		m.processedFiles,
		m.totalFiles,
		m.foundFiles,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var exported int
	for _, r := range m.results {
		if r.ExportPath != "" {
			exported++
		}
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✓ Scan Complete!\n\n"+
			"Tracks: %d\n"+
			"With lyrics: %d\n"+
			"Exported: %d",
		m.totalFiles,
		m.foundFiles,
		exported,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

// renderLines renders the lyric lines for the viewport.
func (m Model) renderLines() string {
	var b strings.Builder

	for _, line := range m.lines {
		if !line.Synced {
			b.WriteString(line.Content)
			b.WriteString("\n")
			continue
		}

		b.WriteString(timeStyle.Render(formatTimestamp(line.Timestamp)))
		b.WriteString(" ")
		if line.Label != model.LabelNone {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", line.Label)))
		} else {
			b.WriteString(strings.Repeat(" ", 10))
		}

		if line.Label == model.LabelBackground {
			b.WriteString(backgroundStyle.Render("(" + line.Content + ")"))
		} else {
			b.WriteString(line.Content)
		}
		b.WriteString("\n")

		if m.translations && line.Translation != "" {
			b.WriteString(strings.Repeat(" ", 22))
			b.WriteString(dimStyle.Render(line.Translation))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case scan.LevelError:
			style = errorStyle
			prefix = "✗"
		case scan.LevelWarning:
			style = warningStyle
			prefix = "!"
		case scan.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case scan.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: open • alt+e: export • alt+v: verbose • esc: quit"
	case StateLoading, StateScanning:
		return "esc: cancel"
	case StateViewing:
		return "↑/↓: scroll • t: translations • r: new • q: quit"
	case StateComplete, StateError:
		return "r: new • q: quit"
	}
	return ""
}

// loadLyrics resolves the input in the background.
func (m Model) loadLyrics() tea.Cmd {
	ctx, input, service := m.ctx, m.input, m.service
	return func() tea.Msg {
		lines, source := service.Load(ctx, input)
		return LoadDoneMsg{Lines: lines, Source: source}
	}
}

// startScan starts the library scan in background.
func (m Model) startScan() tea.Cmd {
	ctx, input, manager := m.ctx, m.input, m.manager
	return func() tea.Msg {
		results, err := manager.Scan(ctx, input)
		return ScanDoneMsg{Results: results, Err: err}
	}
}

// formatTimestamp formats milliseconds as [MM:SS.fff].
func formatTimestamp(ms int64) string {
	return fmt.Sprintf("[%02d:%02d.%03d]", ms/60000, ms/1000%60, ms%1000)
}

// Run starts the TUI application.
func Run(settings *config.Settings, service *lyrics.Service, log zerolog.Logger) error {
	p := tea.NewProgram(NewModel(settings, service, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
