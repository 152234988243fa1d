// Package selection keeps the single active listing and the transient hover
// in sync between cards and map markers.
package selection

// Coordinator owns the selection state. All transitions are synchronous and
// the projections are readable immediately after a call returns.
type Coordinator struct {
	state       State
	pager       Pager
	highlighter Highlighter
}

// NewCoordinator creates a coordinator resolving ids through pager.
func NewCoordinator(pager Pager) *Coordinator {
	return &Coordinator{pager: pager}
}

// SetHighlighter attaches the marker side and pushes the current projection to it.
func (c *Coordinator) SetHighlighter(h Highlighter) {
	c.highlighter = h
	c.project(c.state.Active, c.state.Hovered)
}

// Activate makes id the active listing. Unknown ids clear the selection.
// If the listing lives on another page that page is revealed first; the
// return value reports whether that happened.
func (c *Coordinator) Activate(id string) bool {
	prev := c.state.Active

	page, ok := c.pager.PageOf(id)
	if !ok {
		c.state.Active = ""
		c.project(prev)
		return false
	}

	pageChanged := false
	if c.pager.Paging() && page != c.pager.Page() {
		c.pager.SetPage(page)
		pageChanged = true
	}

	c.state.Active = id
	c.project(prev, id)
	return pageChanged
}

// Hover sets the hovered listing; the last call wins.
func (c *Coordinator) Hover(id string) {
	prev := c.state.Hovered
	c.state.Hovered = id
	c.project(prev, id)
}

// Unhover clears the hover if it is currently on id.
func (c *Coordinator) Unhover(id string) {
	if c.state.Hovered != id {
		return
	}
	c.state.Hovered = ""
	c.project(id)
}

// Clear drops the active listing.
func (c *Coordinator) Clear() {
	prev := c.state.Active
	c.state.Active = ""
	c.project(prev)
}

// Revalidate drops ids that no longer resolve, e.g. after the data was replaced.
func (c *Coordinator) Revalidate() {
	if _, ok := c.pager.PageOf(c.state.Active); c.state.Active != "" && !ok {
		c.Clear()
	}
	if _, ok := c.pager.PageOf(c.state.Hovered); c.state.Hovered != "" && !ok {
		c.Unhover(c.state.Hovered)
	}
}

// Active returns the active id, or "" for none.
func (c *Coordinator) Active() string {
	return c.state.Active
}

// Hovered returns the hovered id, or "" for none.
func (c *Coordinator) Hovered() string {
	return c.state.Hovered
}

// State returns a copy of the current state.
func (c *Coordinator) State() State {
	return c.state
}

// CardActive reports whether the card for id is drawn as active.
func (c *Coordinator) CardActive(id string) bool {
	return id != "" && id == c.state.Active
}

// MarkerEmphasized reports whether the marker for id is drawn emphasized:
// it is active, hovered, or both.
func (c *Coordinator) MarkerEmphasized(id string) bool {
	return id != "" && (id == c.state.Active || id == c.state.Hovered)
}

// Sync re-pushes the projection for every id that may be emphasized.
func (c *Coordinator) Sync() {
	c.project(c.state.Active, c.state.Hovered)
}

func (c *Coordinator) project(ids ...string) {
	if c.highlighter == nil {
		return
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		c.highlighter.SetHighlighted(id, c.MarkerEmphasized(id))
	}
}
