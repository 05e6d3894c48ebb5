package app

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"bbs/internal/board"
	"bbs/internal/types"
)

const threadTitleCharLimit = 200

type newThreadView struct {
	id     int
	deps   screenDeps
	submit *board.SubmissionController[string, *types.Thread]
	input  textinput.Model
	loader spinner.Model
}

func newNewThreadView(id int, deps screenDeps) *newThreadView {
	api := deps.api
	send := func(ctx context.Context, title string) (*types.Thread, error) {
		return api.CreateThread(ctx, title)
	}
	input := newTextInput(threadTitleCharLimit)
	return &newThreadView{
		id:   id,
		deps: deps,
		submit: board.NewSubmissionController[string, *types.Thread](send, board.SubmissionOptions[string]{
			Field:          "title",
			IsEmpty:        isBlank,
			EmptyMessage:   deps.text.TitleRequired,
			FailureMessage: deps.text.CreateThreadFail,
		}),
		input:  input,
		loader: newLoader(),
	}
}

func (v *newThreadView) ID() int { return v.id }

func (v *newThreadView) Init() tea.Cmd {
	return v.loader.Tick
}

func (v *newThreadView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case threadCreatedMsg:
		if _, ok := v.submit.Apply(msg.result); !ok {
			v.deps.logFailure("create thread", msg.result.Err)
			return nil
		}
		v.input.Reset()
		// The created thread is not merged anywhere; the list is fetched anew.
		return navigateCmd(v.id, route{kind: routeThreads}, v.deps.text.ThreadCreated)
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.loader, cmd = v.loader.Update(msg)
		return cmd
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			req, err := v.submit.Submit(v.input.Value())
			if err != nil || req == nil {
				return nil
			}
			return createThreadCmd(v.id, req, v.deps.timeout)
		case "esc":
			return navigateCmd(v.id, route{kind: routeThreads}, "")
		}
		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if v.input.Value() != before {
			v.submit.ClearError()
		}
		return cmd
	}
	return nil
}

func (v *newThreadView) Resize(width, _ int) {
	v.input.SetWidth(max(minPostInputWidth, width-lipgloss.Width(v.input.Prompt)-1))
}

func (v *newThreadView) View(int, int) string {
	text := v.deps.text
	state := v.submit.State()
	lines := []string{
		titleStyle.Render(text.NewThreadTitle),
		"",
		labelStyle.Render(text.ThreadTitleLabel),
		v.input.View(),
	}
	switch {
	case state.Submitting:
		lines = append(lines, loadingStyle.Render(v.loader.View()+" "+text.Creating))
	case state.HasError():
		lines = append(lines, errorStyle.Render(state.Error))
	default:
		lines = append(lines, buttonStyle.Render(text.Create))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *newThreadView) Close() {
	v.submit.Close()
}

func (v *newThreadView) HotkeyContext() HotkeyContext { return HotkeyNewThread }

func (v *newThreadView) CapturesText() bool { return true }
