package app

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"bbs/internal/board"
	"bbs/internal/client"
	"bbs/internal/types"
)

const (
	postInputCharLimit = 1000
	minPostInputWidth  = 20
)

// postListView shows one thread's posts with an input for appending a post.
// A created post is placed at the top of the page without refetching.
type postListView struct {
	id       int
	deps     screenDeps
	threadID string
	title    string
	list     *board.ListController[types.Post]
	submit   *board.SubmissionController[string, *types.Post]
	input    textinput.Model
	cursor   int
	loader   spinner.Model
}

func newPostListView(id int, deps screenDeps, threadID, title string) *postListView {
	api := deps.api
	fetch := func(ctx context.Context, _ string, offset int) ([]types.Post, error) {
		return api.ListPosts(ctx, threadID, offset)
	}
	send := func(ctx context.Context, text string) (*types.Post, error) {
		return api.CreatePost(ctx, threadID, text)
	}
	input := newTextInput(postInputCharLimit)
	return &postListView{
		id:       id,
		deps:     deps,
		threadID: threadID,
		title:    title,
		list:     board.NewListController[types.Post](fetch, deps.text.PostsFailed),
		submit: board.NewSubmissionController[string, *types.Post](send, board.SubmissionOptions[string]{
			Field:          "post",
			IsEmpty:        isBlank,
			EmptyMessage:   deps.text.PostRequired,
			FailureMessage: deps.text.CreatePostFail,
		}),
		input:  input,
		loader: newLoader(),
	}
}

// newTextInput returns a focused single-line input with a steady cursor.
func newTextInput(charLimit int) textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = charLimit
	input.SetWidth(minPostInputWidth)
	styles := input.Styles()
	styles.Cursor.Blink = false
	input.SetStyles(styles)
	input.Focus()
	return input
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (v *postListView) ID() int { return v.id }

func (v *postListView) Init() tea.Cmd {
	return tea.Batch(v.loader.Tick, v.load(v.list.Load(client.PostsPath(v.threadID), 0)))
}

func (v *postListView) load(req *board.ListRequest[types.Post]) tea.Cmd {
	return loadPostsCmd(v.id, req, v.deps.timeout)
}

func (v *postListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		if !v.list.Apply(msg.result) {
			return nil
		}
		v.deps.logFailure("list posts", msg.result.Err)
		v.moveCursor(0)
		return nil
	case postCreatedMsg:
		created, ok := v.submit.Apply(msg.result)
		if !ok {
			v.deps.logFailure("create post", msg.result.Err)
			return nil
		}
		v.input.Reset()
		if created == nil {
			return v.load(v.list.Reload())
		}
		v.list.Prepend(*created)
		v.cursor = 0
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

func (v *postListView) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		req, err := v.submit.Submit(v.input.Value())
		if err != nil || req == nil {
			return nil
		}
		return createPostCmd(v.id, req, v.deps.timeout)
	case "esc":
		return navigateCmd(v.id, route{kind: routeThreads}, "")
	case "up":
		v.moveCursor(-1)
		return nil
	case "down":
		v.moveCursor(1)
		return nil
	case "ctrl+r":
		return v.load(v.list.Reload())
	case "ctrl+y":
		if post, ok := v.selected(); ok {
			return copyCmd(v.id, post.Post)
		}
		return nil
	}
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		v.submit.ClearError()
	}
	return cmd
}

func (v *postListView) moveCursor(delta int) {
	items := v.list.State().Items
	if len(items) == 0 {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(items)-1)
}

func (v *postListView) selected() (types.Post, bool) {
	items := v.list.State().Items
	if v.cursor < 0 || v.cursor >= len(items) {
		return types.Post{}, false
	}
	return items[v.cursor], true
}

func (v *postListView) Resize(width, _ int) {
	v.input.SetWidth(max(minPostInputWidth, width-lipgloss.Width(v.input.Prompt)-1))
}

func (v *postListView) View(width, height int) string {
	text := v.deps.text
	header := titleStyle.Render(text.PostListTitle)
	if title := strings.TrimSpace(v.title); title != "" {
		header = titleStyle.Render(title) + " " + statusStyle.Render(text.PostListTitle)
	}
	form := v.renderForm()

	fixed := lipgloss.Height(header) + lipgloss.Height(form) + 1
	body := v.renderPosts(width, height-fixed)
	return lipgloss.JoinVertical(lipgloss.Left, header, form, "", body)
}

func (v *postListView) renderForm() string {
	text := v.deps.text
	state := v.submit.State()
	lines := []string{labelStyle.Render(text.PostLabel), v.input.View()}
	switch {
	case state.Submitting:
		lines = append(lines, loadingStyle.Render(v.loader.View()+" "+text.Posting))
	case state.HasError():
		lines = append(lines, errorStyle.Render(state.Error))
	default:
		lines = append(lines, buttonStyle.Render(text.Send))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderPosts shows the loaded posts starting at the selected one, keeping as
// many as fit in height. A pending or failed reload adds a status line above
// the posts already on screen.
func (v *postListView) renderPosts(width, height int) string {
	text := v.deps.text
	state := v.list.State()
	blocks := make([]string, 0, len(state.Items)+1)
	switch {
	case state.Loading:
		blocks = append(blocks, loadingStyle.Render(v.loader.View()+" "+text.Loading))
	case state.HasError():
		blocks = append(blocks, errorStyle.Render(state.Error))
	}
	if len(state.Items) == 0 && !state.Loading {
		blocks = append(blocks, emptyStyle.Render(text.EmptyPosts))
	}
	bodyWidth := width - 2
	first := len(blocks)
	used := first
	for i := v.cursor; i < len(state.Items); i++ {
		block := renderPostBlock(state.Items[i], i == v.cursor, bodyWidth, v.deps.markdown)
		blockHeight := lipgloss.Height(block)
		if height > 0 && len(blocks) > first && used+blockHeight > height {
			break
		}
		blocks = append(blocks, block)
		used += blockHeight
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderPostBlock(post types.Post, selected bool, width int, markdown bool) string {
	marker := "  "
	if selected {
		marker = selectedStyle.Render(">") + " "
	}
	body := renderPostBody(post.Post, width, markdown)
	return postFrameStyle.Render(marker + postIDStyle.Render("#"+post.ID) + "\n" + body)
}

func (v *postListView) Close() {
	v.list.Close()
	v.submit.Close()
}

func (v *postListView) HotkeyContext() HotkeyContext { return HotkeyPostList }

func (v *postListView) CapturesText() bool { return true }
