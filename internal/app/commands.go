package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"bbs/internal/board"
	"bbs/internal/types"
)

const defaultRequestTimeout = 10 * time.Second

func loadThreadsCmd(viewID int, req *board.ListRequest[types.Thread], timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return threadsLoadedMsg{viewID: viewID, result: req.Run(ctx)}
	}
}

func loadPostsCmd(viewID int, req *board.ListRequest[types.Post], timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return postsLoadedMsg{viewID: viewID, result: req.Run(ctx)}
	}
}

func createThreadCmd(viewID int, req *board.SubmitRequest[string, *types.Thread], timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return threadCreatedMsg{viewID: viewID, result: req.Run(ctx)}
	}
}

func createPostCmd(viewID int, req *board.SubmitRequest[string, *types.Post], timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return postCreatedMsg{viewID: viewID, result: req.Run(ctx)}
	}
}

func copyCmd(viewID int, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := copyTextToClipboard(text)
		return copyResultMsg{viewID: viewID, err: err}
	}
}

func navigateCmd(viewID int, target route, status string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{viewID: viewID, target: target, status: status}
	}
}
