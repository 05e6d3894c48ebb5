package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"bbs/internal/config"
	"bbs/internal/types"
)

type fakeBoardAPI struct {
	threads      func(offset int) ([]types.Thread, error)
	posts        func(threadID string, offset int) ([]types.Post, error)
	createThread func(title string) (*types.Thread, error)
	createPost   func(threadID, text string) (*types.Post, error)

	threadOffsets []int
	postRequests  []string
	createdTitles []string
	createdPosts  []string
}

func (f *fakeBoardAPI) ListThreads(_ context.Context, offset int) ([]types.Thread, error) {
	f.threadOffsets = append(f.threadOffsets, offset)
	if f.threads == nil {
		return []types.Thread{}, nil
	}
	return f.threads(offset)
}

func (f *fakeBoardAPI) CreateThread(_ context.Context, title string) (*types.Thread, error) {
	f.createdTitles = append(f.createdTitles, title)
	if f.createThread == nil {
		return nil, nil
	}
	return f.createThread(title)
}

func (f *fakeBoardAPI) ListPosts(_ context.Context, threadID string, offset int) ([]types.Post, error) {
	f.postRequests = append(f.postRequests, fmt.Sprintf("%s@%d", threadID, offset))
	if f.posts == nil {
		return []types.Post{}, nil
	}
	return f.posts(threadID, offset)
}

func (f *fakeBoardAPI) CreatePost(_ context.Context, threadID, text string) (*types.Post, error) {
	f.createdPosts = append(f.createdPosts, threadID+":"+text)
	if f.createPost == nil {
		return nil, nil
	}
	return f.createPost(threadID, text)
}

func newTestModel(t *testing.T, api BoardAPI, locale string) *Model {
	t.Helper()
	cfg := config.DefaultCoreConfig()
	cfg.UI.Locale = locale
	markdown := false
	cfg.UI.Markdown = &markdown
	m := NewModel(api, cfg, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &m
}

// collectMsgs runs cmd and flattens batches. Spinner ticks are dropped so the
// loaders never schedule timers.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drain feeds every message produced by cmd back into the model until the
// program is idle. It reports whether a quit was requested.
func drain(m *Model, cmd tea.Cmd) bool {
	queue := collectMsgs(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		_, next := m.Update(msg)
		queue = append(queue, collectMsgs(next)...)
	}
	return false
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch key {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEsc}
	case "up":
		msg = tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	case "pgdown":
		msg = tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "ctrl+c":
		msg = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+r":
		msg = tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case "ctrl+y":
		msg = tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		code := tea.KeyExtended
		if runes := []rune(key); len(runes) == 1 {
			code = runes[0]
		}
		msg = tea.KeyPressMsg{Code: code, Text: key}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// viewText renders the model and strips styling.
func viewText(m *Model) string {
	return xansi.Strip(fmt.Sprint(m.View().Content))
}

func threadPage(start, count int) []types.Thread {
	out := make([]types.Thread, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("t%d", start+i)
		out = append(out, types.Thread{ID: id, Title: "thread " + id})
	}
	return out
}

func threadScreen(t *testing.T, m *Model) *threadListView {
	t.Helper()
	view, ok := m.screen.(*threadListView)
	if !ok {
		t.Fatalf("expected thread list view, got %T", m.screen)
	}
	return view
}

func postScreen(t *testing.T, m *Model) *postListView {
	t.Helper()
	view, ok := m.screen.(*postListView)
	if !ok {
		t.Fatalf("expected post list view, got %T", m.screen)
	}
	return view
}

func newThreadScreen(t *testing.T, m *Model) *newThreadView {
	t.Helper()
	view, ok := m.screen.(*newThreadView)
	if !ok {
		t.Fatalf("expected new thread view, got %T", m.screen)
	}
	return view
}

func postIDs(posts []types.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids
}

func openThread(t *testing.T, m *Model) *postListView {
	t.Helper()
	drain(m, m.Init())
	drain(m, press(m, "enter"))
	return postScreen(t, m)
}

func TestModelInitLoadsFirstThreadPage(t *testing.T) {
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		return threadPage(offset, 3), nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())

	view := threadScreen(t, m)
	state := view.list.State()
	if state.Loading || state.HasError() {
		t.Fatalf("expected settled state, got %+v", state)
	}
	if len(state.Items) != 3 || state.Items[0].ID != "t0" {
		t.Fatalf("unexpected items: %+v", state.Items)
	}
	if len(api.threadOffsets) != 1 || api.threadOffsets[0] != 0 {
		t.Fatalf("expected one fetch at offset 0, got %v", api.threadOffsets)
	}
	out := viewText(m)
	for _, want := range []string{"掲示板", "新着スレッド", "thread t0", "前へ", "次へ"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, out)
		}
	}
}

func TestThreadListNextRequestsNextOffset(t *testing.T) {
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		if offset == 0 {
			return threadPage(0, 10), nil
		}
		return []types.Thread{}, nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	drain(m, press(m, "l"))

	view := threadScreen(t, m)
	if got := api.threadOffsets; len(got) != 2 || got[1] != 10 {
		t.Fatalf("expected second fetch at offset 10, got %v", got)
	}
	state := view.list.State()
	if len(state.Items) != 0 || state.HasError() {
		t.Fatalf("expected empty page without error, got %+v", state)
	}
	if !view.list.CanNext() || !view.list.CanPrev() {
		t.Fatalf("expected both pager buttons enabled at offset 10")
	}
	if !strings.Contains(viewText(m), "スレッドがありません") {
		t.Fatalf("expected empty placeholder in view")
	}

	drain(m, press(m, "h"))
	if got := api.threadOffsets; len(got) != 3 || got[2] != 0 {
		t.Fatalf("expected prev to fetch offset 0, got %v", got)
	}
	if cmd := press(m, "h"); cmd != nil {
		t.Fatalf("expected prev at offset 0 to be a no-op")
	}
	if len(api.threadOffsets) != 3 {
		t.Fatalf("expected no fetch for prev at offset 0, got %v", api.threadOffsets)
	}
}

func TestThreadListReloadFailureKeepsItems(t *testing.T) {
	fail := false
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return threadPage(offset, 2), nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	fail = true
	drain(m, press(m, "r"))

	state := threadScreen(t, m).list.State()
	if len(state.Items) != 2 {
		t.Fatalf("expected previous items to survive a failed reload, got %+v", state.Items)
	}
	if state.Error != "データの取得に失敗しました" || state.Loading {
		t.Fatalf("unexpected state after failure: %+v", state)
	}
	out := viewText(m)
	for _, want := range []string{"データの取得に失敗しました", "thread t0", "thread t1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q after a failed reload, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "スレッドがありません") {
		t.Fatalf("expected no empty placeholder while items are kept, got:\n%s", out)
	}
}

func TestThreadListKeepsRowsVisibleWhileReloading(t *testing.T) {
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		return threadPage(offset, 2), nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())

	pending := press(m, "r")
	if pending == nil {
		t.Fatalf("expected a reload command")
	}
	if !threadScreen(t, m).list.State().Loading {
		t.Fatalf("expected reload to be in flight")
	}
	out := viewText(m)
	for _, want := range []string{"読み込み中...", "thread t0", "thread t1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q while reloading, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "スレッドがありません") {
		t.Fatalf("expected no empty placeholder while loading, got:\n%s", out)
	}

	drain(m, pending)
	if strings.Contains(viewText(m), "読み込み中...") {
		t.Fatalf("expected loading line gone after the reload settled")
	}
}

func TestThreadListCursorMovement(t *testing.T) {
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		return threadPage(offset, 3), nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	view := threadScreen(t, m)

	press(m, "j")
	press(m, "down")
	press(m, "j")
	if view.cursor != 2 {
		t.Fatalf("expected cursor clamped at last item, got %d", view.cursor)
	}
	press(m, "k")
	if view.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", view.cursor)
	}
	drain(m, press(m, "enter"))
	posts := postScreen(t, m)
	if posts.threadID != "t1" || posts.title != "thread t1" {
		t.Fatalf("expected selected thread to open, got %q %q", posts.threadID, posts.title)
	}
}

func TestStaleViewResultsAreDropped(t *testing.T) {
	api := &fakeBoardAPI{threads: func(offset int) ([]types.Thread, error) {
		return threadPage(offset, 1), nil
	}}
	m := newTestModel(t, api, "ja")
	pending := m.Init()
	first := threadScreen(t, m)

	drain(m, press(m, "n"))
	newThreadScreen(t, m)
	if first.list.Alive() {
		t.Fatalf("expected unmounted thread list controller to be closed")
	}

	drain(m, pending)
	newThreadScreen(t, m)
	if items := first.list.Items(); len(items) != 0 {
		t.Fatalf("expected late result to be discarded, got %+v", items)
	}
}

func TestPostViewPrependsCreatedPost(t *testing.T) {
	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5", Title: "five"}}, nil
		},
		posts: func(string, int) ([]types.Post, error) {
			return []types.Post{{ID: "1", Post: "first"}}, nil
		},
		createPost: func(_, text string) (*types.Post, error) {
			return &types.Post{ID: "99", Post: text}, nil
		},
	}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)
	if len(api.postRequests) != 1 || api.postRequests[0] != "5@0" {
		t.Fatalf("expected posts of thread 5 at offset 0, got %v", api.postRequests)
	}

	press(m, "hello")
	drain(m, press(m, "enter"))

	if got := postIDs(view.list.Items()); strings.Join(got, ",") != "99,1" {
		t.Fatalf("expected created post first, got %v", got)
	}
	if view.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", view.input.Value())
	}
	if len(api.createdPosts) != 1 || api.createdPosts[0] != "5:hello" {
		t.Fatalf("unexpected create calls: %v", api.createdPosts)
	}
	if len(api.postRequests) != 1 {
		t.Fatalf("expected no refetch after a created post, got %v", api.postRequests)
	}
}

func TestPostViewFailedPostKeepsInput(t *testing.T) {
	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5", Title: "five"}}, nil
		},
		posts: func(string, int) ([]types.Post, error) {
			return []types.Post{{ID: "1", Post: "first"}}, nil
		},
		createPost: func(string, string) (*types.Post, error) {
			return nil, errors.New("boom")
		},
	}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)

	press(m, "hello")
	drain(m, press(m, "enter"))

	if view.input.Value() != "hello" {
		t.Fatalf("expected input retained after failure, got %q", view.input.Value())
	}
	if got := postIDs(view.list.Items()); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected items unchanged after failure, got %v", got)
	}
	if !strings.Contains(viewText(m), "投稿に失敗しました") {
		t.Fatalf("expected post failure message in view")
	}

	press(m, "!")
	if view.submit.State().HasError() {
		t.Fatalf("expected editing to clear the submission error")
	}
}

func TestPostViewIgnoresSubmitWhileSubmitting(t *testing.T) {
	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5"}}, nil
		},
		createPost: func(_, text string) (*types.Post, error) {
			return &types.Post{ID: "7", Post: text}, nil
		},
	}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)

	press(m, "hi")
	inFlight := press(m, "enter")
	if inFlight == nil {
		t.Fatalf("expected a submission command")
	}
	if !strings.Contains(viewText(m), "投稿中...") {
		t.Fatalf("expected submitting indicator")
	}
	if cmd := press(m, "enter"); cmd != nil {
		t.Fatalf("expected second activation to be ignored")
	}
	drain(m, inFlight)

	if len(api.createdPosts) != 1 {
		t.Fatalf("expected exactly one create request, got %v", api.createdPosts)
	}
	if got := postIDs(view.list.Items()); len(got) != 1 || got[0] != "7" {
		t.Fatalf("expected created post in list, got %v", got)
	}
}

func TestPostViewBlankSubmitIsRejected(t *testing.T) {
	api := &fakeBoardAPI{threads: func(int) ([]types.Thread, error) {
		return []types.Thread{{ID: "5"}}, nil
	}}
	m := newTestModel(t, api, "ja")
	openThread(t, m)

	press(m, "   ")
	if cmd := press(m, "enter"); cmd != nil {
		t.Fatalf("expected no request for a blank post")
	}
	if len(api.createdPosts) != 0 {
		t.Fatalf("expected no create calls, got %v", api.createdPosts)
	}
	if !strings.Contains(viewText(m), "投稿内容を入力してください") {
		t.Fatalf("expected validation message in view")
	}
}

func TestPostViewReloadsWhenCreateReturnsNoBody(t *testing.T) {
	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5"}}, nil
		},
		createPost: func(string, string) (*types.Post, error) {
			return nil, nil
		},
	}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)

	press(m, "hello")
	drain(m, press(m, "enter"))

	if len(api.postRequests) != 2 {
		t.Fatalf("expected the page to be refetched, got %v", api.postRequests)
	}
	if view.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", view.input.Value())
	}
}

func TestPostViewEscRemountsThreadList(t *testing.T) {
	api := &fakeBoardAPI{threads: func(int) ([]types.Thread, error) {
		return []types.Thread{{ID: "5"}}, nil
	}}
	m := newTestModel(t, api, "ja")
	posts := openThread(t, m)
	drain(m, press(m, "esc"))

	threadScreen(t, m)
	if posts.list.Alive() || posts.submit.Alive() {
		t.Fatalf("expected post view controllers closed after leaving")
	}
	if len(api.threadOffsets) != 2 {
		t.Fatalf("expected a fresh thread list fetch, got %v", api.threadOffsets)
	}
}

func TestNewThreadCreatesAndReturnsToFreshList(t *testing.T) {
	api := &fakeBoardAPI{
		createThread: func(title string) (*types.Thread, error) {
			return &types.Thread{ID: "42", Title: title}, nil
		},
	}
	m := newTestModel(t, api, "en")
	drain(m, m.Init())
	drain(m, press(m, "n"))
	newThreadScreen(t, m)

	if cmd := press(m, "enter"); cmd != nil {
		t.Fatalf("expected blank title to be rejected")
	}
	if !strings.Contains(viewText(m), "Enter a title") {
		t.Fatalf("expected validation message in view")
	}

	press(m, "golang")
	drain(m, press(m, "enter"))

	threadScreen(t, m)
	if len(api.createdTitles) != 1 || api.createdTitles[0] != "golang" {
		t.Fatalf("unexpected create calls: %v", api.createdTitles)
	}
	if len(api.threadOffsets) != 2 || api.threadOffsets[1] != 0 {
		t.Fatalf("expected fresh list fetch at offset 0, got %v", api.threadOffsets)
	}
	if m.status != "Thread created" {
		t.Fatalf("expected created status, got %q", m.status)
	}
}

func TestNewThreadFailureKeepsForm(t *testing.T) {
	api := &fakeBoardAPI{
		createThread: func(string) (*types.Thread, error) {
			return nil, errors.New("boom")
		},
	}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	drain(m, press(m, "n"))
	press(m, "golang")
	drain(m, press(m, "enter"))

	view := newThreadScreen(t, m)
	if view.input.Value() != "golang" {
		t.Fatalf("expected title retained, got %q", view.input.Value())
	}
	if !strings.Contains(viewText(m), "スレッドの作成に失敗しました") {
		t.Fatalf("expected failure message in view")
	}
}

func TestQuitKeys(t *testing.T) {
	api := &fakeBoardAPI{threads: func(int) ([]types.Thread, error) {
		return []types.Thread{{ID: "5"}}, nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	if !drain(m, press(m, "q")) {
		t.Fatalf("expected q to quit from the thread list")
	}

	view := openThread(t, m)
	if drain(m, press(m, "q")) {
		t.Fatalf("expected q to be typed into the post input")
	}
	if view.input.Value() != "q" {
		t.Fatalf("expected q in input, got %q", view.input.Value())
	}
	if !drain(m, press(m, "ctrl+c")) {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestCopySelectedThreadID(t *testing.T) {
	var copied string
	prev := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = prev })

	api := &fakeBoardAPI{threads: func(int) ([]types.Thread, error) {
		return []types.Thread{{ID: "abc-123", Title: "t"}}, nil
	}}
	m := newTestModel(t, api, "ja")
	drain(m, m.Init())
	drain(m, press(m, "y"))

	if copied != "abc-123" {
		t.Fatalf("expected thread id copied, got %q", copied)
	}
	if m.status != "コピーしました" {
		t.Fatalf("expected copied status, got %q", m.status)
	}
}

func TestCopySelectedPostText(t *testing.T) {
	var copied string
	prev := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = prev })

	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5"}}, nil
		},
		posts: func(string, int) ([]types.Post, error) {
			return []types.Post{{ID: "1", Post: "first"}, {ID: "2", Post: "second"}}, nil
		},
	}
	m := newTestModel(t, api, "ja")
	openThread(t, m)
	press(m, "down")
	drain(m, press(m, "ctrl+y"))

	if copied != "second" {
		t.Fatalf("expected selected post copied, got %q", copied)
	}
}

func TestPostViewAlwaysFetchesFirstPage(t *testing.T) {
	api := &fakeBoardAPI{threads: func(int) ([]types.Thread, error) {
		return []types.Thread{{ID: "5"}}, nil
	}}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)

	drain(m, press(m, "pgdown"))
	if got := strings.Join(api.postRequests, ","); got != "5@0" {
		t.Fatalf("expected pgdown to issue no request, got %s", got)
	}
	drain(m, press(m, "ctrl+r"))
	if got := strings.Join(api.postRequests, ","); got != "5@0,5@0" {
		t.Fatalf("expected reload at offset 0, got %s", got)
	}
	if view.list.Offset() != 0 {
		t.Fatalf("expected post list to stay at offset 0, got %d", view.list.Offset())
	}
}

func TestPostViewKeepsPostsVisibleWhileReloadingAndAfterFailure(t *testing.T) {
	fail := false
	api := &fakeBoardAPI{
		threads: func(int) ([]types.Thread, error) {
			return []types.Thread{{ID: "5"}}, nil
		},
		posts: func(string, int) ([]types.Post, error) {
			if fail {
				return nil, errors.New("connection refused")
			}
			return []types.Post{{ID: "1", Post: "first"}, {ID: "2", Post: "second"}}, nil
		},
	}
	m := newTestModel(t, api, "ja")
	view := openThread(t, m)

	fail = true
	pending := press(m, "ctrl+r")
	if !view.list.State().Loading {
		t.Fatalf("expected reload to be in flight")
	}
	out := viewText(m)
	for _, want := range []string{"読み込み中...", "first", "second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q while reloading, got:\n%s", want, out)
		}
	}

	drain(m, pending)
	if got := postIDs(view.list.Items()); strings.Join(got, ",") != "1,2" {
		t.Fatalf("expected posts kept after a failed reload, got %v", got)
	}
	out = viewText(m)
	for _, want := range []string{"投稿の取得に失敗しました", "first", "second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q after a failed reload, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "投稿がありません") {
		t.Fatalf("expected no empty placeholder while posts are kept, got:\n%s", out)
	}
}
