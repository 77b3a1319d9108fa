package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

const (
	defaultWidth  = 100
	defaultHeight = 40
	chatWidth     = 36
	chatLines     = 12
)

// --- Messages ---

type submittedMsg struct {
	thought *thought.Thought
	err     error
}

type chatReplyMsg struct {
	reply page.ChatMessage
	err   error
}

// focus is the input that receives keystrokes.
type focus int

const (
	focusThought focus = iota
	focusChat
)

// Options tune a Model.
type Options struct {
	Styles *Styles // nil means DefaultStyles
	// GlamourStyle names the markdown style for the module tab
	// ("dark", "light", "notty"). Empty means "dark".
	GlamourStyle string
	Logger       *zap.Logger
}

// Model is the bubbletea model for one page.
type Model struct {
	page   *page.Page
	events *Bridge
	styles Styles
	logger *zap.Logger

	input     textarea.Model
	chatInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model

	glamourStyle string
	modules      string // rendered module tab, cached per width
	modulesWidth int

	focus     focus
	chatOpen  bool
	notice    string
	syntaxIdx int
	width     int
	height    int
}

// New builds the model for p. events must be the Bridge wired into the
// page's OnEvent hook.
func New(p *page.Page, events *Bridge, opts Options) Model {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Gib deinen Gedanken ein ... (Enter zum Analysieren)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Frage an das System ..."
	ti.Prompt = "› "
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Selected

	m := Model{
		page:         p,
		events:       events,
		styles:       styles,
		logger:       opts.Logger,
		input:        ta,
		chatInput:    ti,
		spinner:      sp,
		viewport:     viewport.New(defaultWidth, defaultHeight-12),
		glamourStyle: opts.GlamourStyle,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts the cursor blink, the spinner and the event loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.events.Next())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case eventMsg:
		m.refresh()
		return m, m.events.Next()

	case submittedMsg:
		switch {
		case errors.Is(msg.err, page.ErrBlankThought):
			m.notice = page.BlankNotice
		case errors.Is(msg.err, page.ErrDiscarded):
			m.notice = ""
		case msg.err != nil:
			m.notice = fmt.Sprintf("Analyse fehlgeschlagen: %v", msg.err)
		default:
			m.notice = ""
			m.logger.Debug("thought submitted", zap.String("id", msg.thought.ID))
		}
		m.refresh()
		return m, nil

	case chatReplyMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Chat: %v", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading() {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.events.Close()
		return m, tea.Quit

	case "tab":
		next := page.TabModule
		if m.page.Composer.Tab() == page.TabModule {
			next = page.TabVisualisierung
		}
		if err := m.page.Composer.SetTab(string(next)); err != nil {
			m.notice = err.Error()
		}
		m.refresh()
		return m, nil

	case "ctrl+r":
		m.page.Input.Reset()
		m.input.Reset()
		m.notice = ""
		m.refresh()
		return m, nil

	case "ctrl+o":
		m.chatOpen = !m.chatOpen
		m.resize(m.width, m.height)
		m.refresh()
		if m.chatOpen {
			m.focus = focusChat
			m.input.Blur()
			return m, m.chatInput.Focus()
		}
		m.focus = focusThought
		m.chatInput.Blur()
		return m, m.input.Focus()

	case "ctrl+s":
		m.syntaxIdx = (m.syntaxIdx + 1) % len(simulator.SyntaxFormats)
		m.refresh()
		return m, nil

	case "ctrl+g":
		m.regenerate()
		m.refresh()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		if m.focus == focusChat {
			return m, m.ask()
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusChat {
		m.chatInput, cmd = m.chatInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submit validates the input and starts the analysis. Blank input shows
// the notice and changes nothing.
func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.notice = page.BlankNotice
		return nil
	}
	if m.page.Input.Submitting() {
		m.notice = "Analyse läuft bereits ..."
		return nil
	}
	m.notice = ""
	p := m.page
	return func() tea.Msg {
		t, err := p.Input.Submit(context.Background(), text)
		return submittedMsg{thought: t, err: err}
	}
}

func (m *Model) ask() tea.Cmd {
	question := m.chatInput.Value()
	if strings.TrimSpace(question) == "" {
		return nil
	}
	m.chatInput.Reset()
	chat := m.page.Chat
	return func() tea.Msg {
		reply, err := chat.Ask(context.Background(), question)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m *Model) regenerate() {
	target := simulator.SyntaxFormats[m.syntaxIdx]
	err := m.page.Composer.RegenerateSyntax(target)
	switch {
	case errors.Is(err, panel.ErrNotPopulated):
		m.notice = "SyntaxTransformer hat noch keine Ausgabe."
	case err != nil:
		m.notice = err.Error()
	default:
		m.notice = ""
	}
}

func (m Model) loading() bool {
	for _, st := range m.page.Composer.Panels().States() {
		if st == panel.Loading {
			return true
		}
	}
	return m.page.Input.Submitting()
}

// --- Layout ---

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(max(m.contentWidth()-4, 10))
	m.chatInput.Width = chatWidth - 4
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(height-12, 5)
}

func (m Model) contentWidth() int {
	w := m.width
	if m.chatOpen {
		w -= chatWidth + 1
	}
	return max(w-2, 20)
}

// refresh redraws the viewport from the page's current state.
func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

func (m *Model) content() string {
	if m.page.Composer.Tab() == page.TabModule {
		return m.renderModules()
	}
	return m.renderPanels()
}

func (m *Model) renderModules() string {
	width := m.contentWidth()
	if m.modules != "" && m.modulesWidth == width {
		return m.modules
	}
	md, err := m.page.Composer.Modules()
	if err != nil {
		return m.styles.Notice.Render(err.Error())
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		m.logger.Warn("rendering module docs", zap.Error(err))
		return md
	}
	m.modules, m.modulesWidth = out, width
	return out
}

// View renders the page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Resonanz") + "  " + m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Width(m.contentWidth()).Render(m.input.View()))
	b.WriteString("\n")
	if m.page.Input.Submitting() {
		b.WriteString(m.spinner.View() + " Gedanke wird analysiert ...")
	} else if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
	}
	b.WriteString("\n")

	main := m.viewport.View()
	if m.chatOpen {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderChat())
	}
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter analysieren · tab Ansicht · ctrl+s Format · ctrl+g regenerieren · ctrl+o Chat · ctrl+r zurücksetzen · esc beenden"))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		tab   page.Tab
		label string
	}{
		{page.TabVisualisierung, "Visualisierung"},
		{page.TabModule, "Module"},
	}
	active := m.page.Composer.Tab()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.tab == active {
			parts = append(parts, m.styles.ActiveTab.Render(t.label))
		} else {
			parts = append(parts, m.styles.Tab.Render(t.label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderChat() string {
	transcript := m.page.Chat.Transcript()
	if len(transcript) > chatLines {
		transcript = transcript[len(transcript)-chatLines:]
	}
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Chat") + "\n")
	for _, msg := range transcript {
		who := "Du"
		if msg.Role == page.RoleSystem {
			who = "System"
		}
		b.WriteString(lipgloss.NewStyle().Width(chatWidth-2).Render(who+": "+msg.Text) + "\n")
	}
	b.WriteString(m.chatInput.View())
	return m.styles.Chat.Width(chatWidth).Render(b.String())
}

// visibleFacets lists the facets currently shown.
func (m Model) visibleFacets() []facets.Name {
	var out []facets.Name
	for _, n := range facets.Names {
		if m.page.Composer.Visible(n) {
			out = append(out, n)
		}
	}
	return out
}
