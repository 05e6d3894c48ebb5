package app

import (
	"strings"

	"golang.org/x/text/language"
)

// catalog holds every user-facing string of the terminal UI.
type catalog struct {
	BoardTitle       string
	NewThreadLink    string
	ThreadListTitle  string
	PostListTitle    string
	NewThreadTitle   string
	ThreadTitleLabel string
	PostLabel        string
	Loading          string
	Creating         string
	Posting          string
	Create           string
	Send             string
	Prev             string
	Next             string
	EmptyThreads     string
	EmptyPosts       string
	PageLabel        string
	ThreadsFailed    string
	PostsFailed      string
	CreateThreadFail string
	CreatePostFail   string
	TitleRequired    string
	PostRequired     string
	Copied           string
	CopyFailed       string
	ThreadCreated    string
	KeyQuit          string
	KeyMove          string
	KeyOpen          string
	KeyPage          string
	KeyReload        string
	KeyNewThread     string
	KeyCopy          string
	KeyBack          string
	KeySubmit        string
	KeyScroll        string
}

var catalogJA = catalog{
	BoardTitle:       "掲示板",
	NewThreadLink:    "★新しいスレッドをたてる★",
	ThreadListTitle:  "新着スレッド",
	PostListTitle:    "投稿一覧",
	NewThreadTitle:   "新しいスレッドを作成",
	ThreadTitleLabel: "スレッドタイトル:",
	PostLabel:        "投稿:",
	Loading:          "読み込み中...",
	Creating:         "作成中...",
	Posting:          "投稿中...",
	Create:           "作成",
	Send:             "投稿",
	Prev:             "前へ",
	Next:             "次へ",
	EmptyThreads:     "スレッドがありません",
	EmptyPosts:       "投稿がありません",
	PageLabel:        "件目から",
	ThreadsFailed:    "データの取得に失敗しました",
	PostsFailed:      "投稿の取得に失敗しました",
	CreateThreadFail: "スレッドの作成に失敗しました",
	CreatePostFail:   "投稿に失敗しました",
	TitleRequired:    "タイトルを入力してください",
	PostRequired:     "投稿内容を入力してください",
	Copied:           "コピーしました",
	CopyFailed:       "コピーに失敗しました",
	ThreadCreated:    "スレッドを作成しました",
	KeyQuit:          "終了",
	KeyMove:          "移動",
	KeyOpen:          "開く",
	KeyPage:          "前へ/次へ",
	KeyReload:        "再読み込み",
	KeyNewThread:     "新規スレッド",
	KeyCopy:          "コピー",
	KeyBack:          "戻る",
	KeySubmit:        "送信",
	KeyScroll:        "スクロール",
}

var catalogEN = catalog{
	BoardTitle:       "Bulletin Board",
	NewThreadLink:    "* start a new thread *",
	ThreadListTitle:  "Latest threads",
	PostListTitle:    "Posts",
	NewThreadTitle:   "Create a new thread",
	ThreadTitleLabel: "Thread title:",
	PostLabel:        "Post:",
	Loading:          "Loading...",
	Creating:         "Creating...",
	Posting:          "Posting...",
	Create:           "Create",
	Send:             "Post",
	Prev:             "Prev",
	Next:             "Next",
	EmptyThreads:     "No threads",
	EmptyPosts:       "No posts yet",
	PageLabel:        "from item",
	ThreadsFailed:    "Failed to load threads",
	PostsFailed:      "Failed to load posts",
	CreateThreadFail: "Failed to create the thread",
	CreatePostFail:   "Failed to post",
	TitleRequired:    "Enter a title",
	PostRequired:     "Enter a message",
	Copied:           "Copied",
	CopyFailed:       "Copy failed",
	ThreadCreated:    "Thread created",
	KeyQuit:          "quit",
	KeyMove:          "move",
	KeyOpen:          "open",
	KeyPage:          "prev/next",
	KeyReload:        "reload",
	KeyNewThread:     "new thread",
	KeyCopy:          "copy",
	KeyBack:          "back",
	KeySubmit:        "send",
	KeyScroll:        "scroll",
}

var (
	supportedLocales = []language.Tag{language.Japanese, language.English}
	catalogs         = []*catalog{&catalogJA, &catalogEN}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

// catalogFor picks the closest supported catalog, defaulting to Japanese.
func catalogFor(locale string) *catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return &catalogJA
	}
	_, index := language.MatchStrings(localeMatcher, locale)
	if index < 0 || index >= len(catalogs) {
		return &catalogJA
	}
	return catalogs[index]
}
