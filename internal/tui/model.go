// Package tui provides the BubbleTea-based terminal front end.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/theme"
	"github.com/jmylchreest/themetoggle/internal/ui"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeMain Mode = iota
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	app      *applicator.Applicator
	bindings *ui.Bindings

	mode Mode
	help help.Model
	keys KeyMap

	// Controls in focus order.
	button   *ui.IconButton
	themeSw  *ui.ToggleSwitch
	systemSw *ui.SystemToggle
	cards    []*ui.PreviewCard
	focus    int

	width  int
	height int

	statusMsg string
	changes   <-chan event.Change
}

// New creates a TUI model over b. Preview cards are added for every catalog
// theme when showPreviews is set.
func New(b *ui.Bindings, app *applicator.Applicator, showPreviews bool) Model {
	m := Model{
		app:      app,
		bindings: b,
		mode:     ModeMain,
		help:     help.New(),
		keys:     DefaultKeyMap(b.Shortcut()),
		button:   b.NewIconButton(),
		themeSw:  b.NewToggleSwitch(),
		systemSw: b.NewSystemToggle(),
		changes:  app.Bus().Listen(),
	}
	if showPreviews {
		for _, id := range theme.IDs() {
			m.cards = append(m.cards, b.NewPreviewCard(id))
		}
	}
	return m
}

// Init starts listening for theme changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange
}

type changeMsg event.Change

// waitForChange blocks until the bus delivers a change.
func (m Model) waitForChange() tea.Msg {
	c, ok := <-m.changes
	if !ok {
		return nil
	}
	return changeMsg(c)
}

type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case changeMsg:
		m.statusMsg = fmt.Sprintf("%s theme (%s)", theme.ByID(msg.Theme).DisplayName(m.bindings.Language()), msg.Source)
		return m, tea.Batch(m.waitForChange, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		}))

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.bindings.HandleKey(keyEvent(msg)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.app.Bus().Unlisten(m.changes)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeMain
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode != ModeMain {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus + m.rows() - 1) % m.rows()
	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % m.rows()
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	}
	return m, nil
}

func (m Model) rows() int {
	return 3 + len(m.cards)
}

// activate runs the focused control's action.
func (m Model) activate() {
	switch m.focus {
	case 0:
		m.button.Click()
	case 1:
		m.themeSw.SetChecked(!m.themeSw.Checked())
	case 2:
		m.systemSw.SetChecked(!m.systemSw.Checked())
	default:
		if i := m.focus - 3; i < len(m.cards) {
			m.cards[i].Select()
		}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewMain()
}

func (m Model) palette() theme.Palette {
	return theme.ByID(m.app.Current()).Palette
}

func (m Model) viewMain() string {
	p := m.palette()
	base := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Primary)).
		Background(lipgloss.Color(p.Background))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Secondary))
	focused := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Tertiary))

	var sb strings.Builder
	sb.WriteString(base.Bold(true).Padding(0, 1).Render("Theme " + m.button.Icon()))
	sb.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("%s  %s", m.button.Icon(), m.button.Title()),
		switchRow(m.themeSw.Checked(), ui.ThemeModeLabel, "light"),
		switchRow(m.systemSw.Checked(), ui.FollowSystemLabel, ""),
	}
	for i, row := range rows {
		sb.WriteString(m.cursor(i, focused))
		if m.focus == i {
			sb.WriteString(focused.Render(row))
		} else {
			sb.WriteString(row)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(muted.Render("   "+ui.ThemeModeDescription) + "\n")

	if len(m.cards) > 0 {
		cards := make([]string, 0, len(m.cards))
		for i, c := range m.cards {
			cards = append(cards, renderCard(c, m.focus == i+3))
		}
		sb.WriteString("\n")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.statusMsg != "" {
		sb.WriteString(muted.Render(m.statusMsg))
	} else {
		sb.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return sb.String()
}

func (m Model) cursor(row int, style lipgloss.Style) string {
	if m.focus == row {
		return style.Render("> ")
	}
	return "  "
}

func switchRow(checked bool, label, note string) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	if note != "" {
		return fmt.Sprintf("%s %s (%s)", box, label, note)
	}
	return fmt.Sprintf("%s %s", box, label)
}

// renderCard draws a preview card in its own theme's palette.
func renderCard(c *ui.PreviewCard, focused bool) string {
	p := c.Theme().Palette
	border := lipgloss.NormalBorder()
	if c.Active() {
		border = lipgloss.DoubleBorder()
	}
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(p.Primary)).
		Background(lipgloss.Color(p.Background)).
		Padding(0, 1).
		MarginRight(1)
	if focused {
		style = style.BorderForeground(lipgloss.Color(p.Tertiary))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)).Render(c.Name())
	swatches := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Background(lipgloss.Color(p.Secondary)).Render("   "),
		" ",
		lipgloss.NewStyle().Background(lipgloss.Color(p.Tertiary)).Render("   "),
	)
	return style.Render(title + "\n" + swatches)
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.palette().Primary)).
		MarginBottom(1)

	return titleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press ? to return")
}

// SystemWatcher reports OS color-scheme changes until ctx ends. Watch must
// not block.
type SystemWatcher interface {
	Watch(ctx context.Context, fn func(theme.ID)) error
}

// RunOptions configures the TUI.
type RunOptions struct {
	App      *applicator.Applicator
	Bindings ui.Options
	// ShowPreviews adds a preview card per theme.
	ShowPreviews bool
	// Storage is the file App's store writes through. Rewrites by other
	// processes are reloaded. Optional.
	Storage *prefs.FileKV
	// System delivers OS color-scheme changes. Optional.
	System SystemWatcher
	Logger *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := opts.App
	if app == nil {
		app = applicator.New(applicator.Options{Logger: logger})
	}
	app.Init()

	bopts := opts.Bindings
	bopts.Shortcut = TerminalShortcut(bopts.Shortcut)
	b := ui.New(app, bopts)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.System != nil {
		if err := opts.System.Watch(ctx, func(id theme.ID) { app.SystemChanged(id) }); err != nil {
			logger.Warn("failed to watch system color scheme", "error", err)
		}
	}

	if opts.Storage != nil {
		w := prefs.NewWatcher(opts.Storage, func() { app.Reload() }, logger)
		if err := w.Start(); err != nil {
			logger.Warn("failed to start preference watcher", "error", err)
		}
		defer func() { _ = w.Stop() }()
	}

	p := tea.NewProgram(New(b, app, opts.ShowPreviews), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
