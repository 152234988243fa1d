package selection

// State holds the selection state. An empty id means none.
type State struct {
	Active  string
	Hovered string
}

// Pager is the part of the listing set the coordinator needs for
// resolving ids and revealing the page a listing lives on.
type Pager interface {
	PageOf(id string) (int, bool)
	Page() int
	SetPage(n int)
	Paging() bool
}

// Highlighter receives marker emphasis changes.
type Highlighter interface {
	SetHighlighted(id string, on bool)
}
