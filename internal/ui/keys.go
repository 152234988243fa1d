package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the listing view and the map panel
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Click     key.Binding
	Center    key.Binding
	Favorite  key.Binding
	PrevImg   key.Binding
	NextImg   key.Binding
	Sort      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	ToggleMap key.Binding
	Focus     key.Binding
	Clear     key.Binding
	Details   key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding

	// map panel
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	NextMarker key.Binding
	PrevMarker key.Binding
	Back       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Center:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show on map")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		PrevImg:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev photo")),
		NextImg:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next photo")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		NextPage:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
		ToggleMap: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus map")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Details:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "details")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		NextMarker: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next marker")),
		PrevMarker: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev marker")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
	}
}

// listHelp adapts the bindings of the listing view to help.KeyMap
type listHelp struct{ k *keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	k := h.k
	return []key.Binding{k.Click, k.Favorite, k.Sort, k.NextPage, k.ToggleMap, k.Focus, k.Help, k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	k := h.k
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Click, k.Center, k.Favorite, k.PrevImg, k.NextImg, k.Clear},
		{k.Sort, k.NextPage, k.PrevPage, k.Reload},
		{k.ToggleMap, k.Focus, k.Details, k.Help, k.Quit},
	}
}

// mapHelp adapts the bindings of the focused map panel to help.KeyMap
type mapHelp struct{ k *keyMap }

func (h mapHelp) ShortHelp() []key.Binding {
	k := h.k
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.NextMarker, k.Click, k.Back, k.Quit}
}

func (h mapHelp) FullHelp() [][]key.Binding {
	k := h.k
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut},
		{k.NextMarker, k.PrevMarker, k.Click, k.Back},
	}
}
