package app

type HotkeyContext int

const (
	HotkeyGlobal HotkeyContext = iota
	HotkeyThreadList
	HotkeyPostList
	HotkeyNewThread
)

type Hotkey struct {
	Key      string
	Label    string
	Context  HotkeyContext
	Priority int
}

type HotkeyResolver interface {
	ActiveContexts(*Model) []HotkeyContext
}

func DefaultHotkeys(c *catalog) []Hotkey {
	if c == nil {
		c = &catalogJA
	}
	return []Hotkey{
		{Key: "ctrl+c", Label: c.KeyQuit, Context: HotkeyGlobal, Priority: 91},
		{Key: "j/k/↑/↓", Label: c.KeyMove, Context: HotkeyThreadList, Priority: 10},
		{Key: "enter", Label: c.KeyOpen, Context: HotkeyThreadList, Priority: 11},
		{Key: "h/l/←/→", Label: c.KeyPage, Context: HotkeyThreadList, Priority: 20},
		{Key: "n", Label: c.KeyNewThread, Context: HotkeyThreadList, Priority: 30},
		{Key: "y", Label: c.KeyCopy, Context: HotkeyThreadList, Priority: 40},
		{Key: "r", Label: c.KeyReload, Context: HotkeyThreadList, Priority: 50},
		{Key: "q", Label: c.KeyQuit, Context: HotkeyThreadList, Priority: 90},
		{Key: "enter", Label: c.KeySubmit, Context: HotkeyPostList, Priority: 10},
		{Key: "↑/↓", Label: c.KeyScroll, Context: HotkeyPostList, Priority: 11},
		{Key: "ctrl+y", Label: c.KeyCopy, Context: HotkeyPostList, Priority: 40},
		{Key: "ctrl+r", Label: c.KeyReload, Context: HotkeyPostList, Priority: 50},
		{Key: "esc", Label: c.KeyBack, Context: HotkeyPostList, Priority: 60},
		{Key: "enter", Label: c.KeySubmit, Context: HotkeyNewThread, Priority: 10},
		{Key: "esc", Label: c.KeyBack, Context: HotkeyNewThread, Priority: 60},
	}
}

type DefaultHotkeyResolver struct{}

func (r DefaultHotkeyResolver) ActiveContexts(m *Model) []HotkeyContext {
	contexts := []HotkeyContext{HotkeyGlobal}
	if m == nil || m.screen == nil {
		return contexts
	}
	return append(contexts, m.screen.HotkeyContext())
}
