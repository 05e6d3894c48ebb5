package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"bbs/internal/config"
	"bbs/internal/logging"
)

const statusLinePadding = 1

type Model struct {
	deps       screenDeps
	screen     screen
	nextViewID int
	status     string
	statusErr  bool
	width      int
	height     int
	hotkeys    *HotkeyRenderer
}

func NewModel(api BoardAPI, cfg config.CoreConfig, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.Nop()
	}
	text := catalogFor(cfg.Locale())
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return Model{
		deps: screenDeps{
			api:      api,
			text:     text,
			timeout:  timeout,
			markdown: cfg.MarkdownEnabled(),
			logger:   logger,
		},
		hotkeys: NewHotkeyRenderer(DefaultHotkeys(text), DefaultHotkeyResolver{}),
	}
}

func Run(api BoardAPI, cfg config.CoreConfig, logger logging.Logger) error {
	detectMarkdownBackground()
	model := NewModel(api, cfg, logger)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	model.closeScreen()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.navigate(route{kind: routeThreads})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if vm, ok := msg.(viewMsg); ok && !m.mounted(vm.targetView()) {
		m.deps.logger.Debug("dropped message for unmounted view", logging.F("view", vm.targetView()))
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.screen != nil {
			m.screen.Resize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.screen == nil || !m.screen.CapturesText() {
				return m, tea.Quit
			}
		}
		if m.status != "" {
			m.setStatus("", false)
		}
	case navigateMsg:
		cmd := m.navigate(msg.target)
		m.setStatus(msg.status, false)
		return m, cmd
	case copyResultMsg:
		if msg.err != nil {
			m.deps.logger.Warn("copy failed", logging.F("error", msg.err.Error()))
			m.setStatus(m.deps.text.CopyFailed, true)
			return m, nil
		}
		m.setStatus(m.deps.text.Copied, false)
		return m, nil
	}
	if m.screen == nil {
		return m, nil
	}
	return m, m.screen.Update(msg)
}

// navigate unmounts the current view and mounts a fresh one for target.
func (m *Model) navigate(target route) tea.Cmd {
	m.closeScreen()
	m.nextViewID++
	id := m.nextViewID
	switch target.kind {
	case routeNewThread:
		m.screen = newNewThreadView(id, m.deps)
	case routePosts:
		m.screen = newPostListView(id, m.deps, target.threadID, target.title)
	default:
		m.screen = newThreadListView(id, m.deps)
	}
	if m.width > 0 {
		m.screen.Resize(m.width, m.height)
	}
	m.deps.logger.Debug("view mounted", logging.F("view", id), logging.F("route", target.kind))
	return m.screen.Init()
}

func (m *Model) mounted(viewID int) bool {
	return m.screen != nil && m.screen.ID() == viewID
}

func (m *Model) closeScreen() {
	if m.screen == nil {
		return
	}
	m.screen.Close()
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	return view
}

func (m *Model) render() string {
	text := m.deps.text
	header := headerStyle.Render(text.BoardTitle)
	if m.screen != nil && m.screen.HotkeyContext() == HotkeyThreadList {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, headerLinkStyle.Render(" "+text.NewThreadLink+" "))
	}
	bodyHeight := m.height - lipgloss.Height(header) - 2
	body := ""
	if m.screen != nil {
		body = m.screen.View(m.width, bodyHeight)
	}

	helpText := ""
	if m.hotkeys != nil {
		helpText = m.hotkeys.Render(m)
	}
	help := helpStyle.Render(helpText)
	status := statusStyle.Render(m.status)
	if m.statusErr {
		status = errorStyle.Render(m.status)
	}
	statusLine := renderStatusLine(m.width, help, status)

	if m.height <= 0 || m.width <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}
	body = lipgloss.NewStyle().Height(max(bodyHeight, 1)).MaxHeight(max(bodyHeight, 1)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine)
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	helpWidth := lipgloss.Width(help)
	statusWidth := lipgloss.Width(status)
	padding := width - helpWidth - statusWidth
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}
