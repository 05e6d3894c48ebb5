package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"bbs/internal/board"
	"bbs/internal/logging"
)

type routeKind int

const (
	routeThreads routeKind = iota
	routeNewThread
	routePosts
)

type route struct {
	kind     routeKind
	threadID string
	title    string
}

// screen is one mounted view. The root model owns exactly one at a time and
// closes it on navigation so late results addressed to it are discarded.
type screen interface {
	ID() int
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Resize(width, height int)
	Close()
	HotkeyContext() HotkeyContext
	CapturesText() bool
}

type screenDeps struct {
	api      BoardAPI
	text     *catalog
	timeout  time.Duration
	markdown bool
	logger   logging.Logger
}

func (d screenDeps) logFailure(action string, err error) {
	if err == nil || d.logger == nil {
		return
	}
	d.logger.Warn(action+" failed",
		logging.F("kind", board.Classify(err).String()),
		logging.F("error", err.Error()),
	)
}

func (k routeKind) String() string {
	switch k {
	case routeNewThread:
		return "new_thread"
	case routePosts:
		return "posts"
	default:
		return "threads"
	}
}
