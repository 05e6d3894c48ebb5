package app

import (
	"bbs/internal/board"
	"bbs/internal/types"
)

// viewMsg is implemented by every message that belongs to one mounted view.
type viewMsg interface {
	targetView() int
}

type threadsLoadedMsg struct {
	viewID int
	result board.ListResult[types.Thread]
}

type postsLoadedMsg struct {
	viewID int
	result board.ListResult[types.Post]
}

type threadCreatedMsg struct {
	viewID int
	result board.SubmitResult[string, *types.Thread]
}

type postCreatedMsg struct {
	viewID int
	result board.SubmitResult[string, *types.Post]
}

type copyResultMsg struct {
	viewID int
	err    error
}

type navigateMsg struct {
	viewID int
	target route
	status string
}

func (m threadsLoadedMsg) targetView() int { return m.viewID }
func (m postsLoadedMsg) targetView() int   { return m.viewID }
func (m threadCreatedMsg) targetView() int { return m.viewID }
func (m postCreatedMsg) targetView() int   { return m.viewID }
func (m copyResultMsg) targetView() int    { return m.viewID }
func (m navigateMsg) targetView() int      { return m.viewID }
