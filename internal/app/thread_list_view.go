package app

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"bbs/internal/board"
	"bbs/internal/client"
	"bbs/internal/types"
)

type threadListView struct {
	id     int
	deps   screenDeps
	list   *board.ListController[types.Thread]
	cursor int
	loader spinner.Model
}

func newThreadListView(id int, deps screenDeps) *threadListView {
	api := deps.api
	fetch := func(ctx context.Context, _ string, offset int) ([]types.Thread, error) {
		return api.ListThreads(ctx, offset)
	}
	return &threadListView{
		id:     id,
		deps:   deps,
		list:   board.NewListController[types.Thread](fetch, deps.text.ThreadsFailed),
		loader: newLoader(),
	}
}

func (v *threadListView) ID() int { return v.id }

func (v *threadListView) Init() tea.Cmd {
	return tea.Batch(v.loader.Tick, v.load(v.list.Load(client.ThreadsPath(), 0)))
}

func (v *threadListView) load(req *board.ListRequest[types.Thread]) tea.Cmd {
	return loadThreadsCmd(v.id, req, v.deps.timeout)
}

func (v *threadListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case threadsLoadedMsg:
		if !v.list.Apply(msg.result) {
			return nil
		}
		v.deps.logFailure("list threads", msg.result.Err)
		v.clampCursor()
		return nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.loader, cmd = v.loader.Update(msg)
		return cmd
	case tea.KeyPressMsg:
		return v.handleKey(msg)
	}
	return nil
}

func (v *threadListView) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "enter":
		if thread, ok := v.selected(); ok {
			return navigateCmd(v.id, route{kind: routePosts, threadID: thread.ID, title: thread.Title}, "")
		}
	case "left", "h":
		if !v.list.CanPrev() {
			return nil
		}
		v.cursor = 0
		return v.load(v.list.Prev())
	case "right", "l":
		if !v.list.CanNext() {
			return nil
		}
		v.cursor = 0
		return v.load(v.list.Next())
	case "r":
		return v.load(v.list.Reload())
	case "n":
		return navigateCmd(v.id, route{kind: routeNewThread}, "")
	case "y":
		if thread, ok := v.selected(); ok {
			return copyCmd(v.id, thread.ID)
		}
	}
	return nil
}

func (v *threadListView) moveCursor(delta int) {
	items := v.list.State().Items
	if len(items) == 0 {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(items)-1)
}

func (v *threadListView) clampCursor() {
	v.moveCursor(0)
}

func (v *threadListView) selected() (types.Thread, bool) {
	items := v.list.State().Items
	if v.cursor < 0 || v.cursor >= len(items) {
		return types.Thread{}, false
	}
	return items[v.cursor], true
}

func (v *threadListView) Resize(int, int) {}

func (v *threadListView) View(width, _ int) string {
	text := v.deps.text
	state := v.list.State()
	lines := []string{titleStyle.Render(text.ThreadListTitle)}
	// Rows stay on screen while a reload is pending and after it fails.
	switch {
	case state.Loading:
		lines = append(lines, loadingStyle.Render(v.loader.View()+" "+text.Loading))
	case state.HasError():
		lines = append(lines, errorStyle.Render(state.Error))
	}
	if len(state.Items) == 0 && !state.Loading {
		lines = append(lines, emptyStyle.Render(text.EmptyThreads))
	}
	for i, thread := range state.Items {
		lines = append(lines, renderThreadRow(thread, i == v.cursor, width))
	}
	lines = append(lines, "", renderPager(text, v.list.Offset(), v.list.CanPrev(), v.list.CanNext()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderThreadRow(thread types.Thread, selected bool, width int) string {
	title := strings.TrimSpace(thread.Title)
	if width > 4 {
		title = xansi.Truncate(title, width-4, "…")
	}
	if selected {
		return selectedStyle.Render("> " + title)
	}
	return itemStyle.Render("  " + title)
}

func renderPager(text *catalog, offset int, canPrev, canNext bool) string {
	prev := buttonDisabledStyle.Render(text.Prev)
	if canPrev {
		prev = buttonStyle.Render(text.Prev)
	}
	next := buttonDisabledStyle.Render(text.Next)
	if canNext {
		next = buttonStyle.Render(text.Next)
	}
	label := statusStyle.Render(fmt.Sprintf("%d %s", offset+1, text.PageLabel))
	return lipgloss.JoinHorizontal(lipgloss.Center, prev, " ", label, " ", next)
}

func (v *threadListView) Close() {
	v.list.Close()
}

func (v *threadListView) HotkeyContext() HotkeyContext { return HotkeyThreadList }

func (v *threadListView) CapturesText() bool { return false }

func newLoader() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(lipgloss.NewStyle()))
}
