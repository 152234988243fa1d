// Package widget composes the listing set, selection, cards and map into
// the public listings-with-map widget.
package widget

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"stayfinder/internal/cards"
	"stayfinder/internal/domain"
	"stayfinder/internal/listings"
	"stayfinder/internal/mapview"
	"stayfinder/internal/selection"
)

// Widget is one mounted instance. Every instance owns its own state and is
// driven from a single thread of control; mutating operations and deferred
// tasks are serialized by mu.
type Widget struct {
	mu      sync.Mutex
	notices []func()

	id         string
	cfg        Config
	container  Container
	set        *listings.Set
	sel        *selection.Coordinator
	adapter    *mapview.Adapter
	cards      []*cards.Card
	slot       *Slot
	sched      Scheduler
	logger     *log.Logger
	mapState   MapState
	mapVisible bool
	destroyed  bool
}

// Init resolves the container and builds the widget. The map stays inert
// until AttachMap is called.
func Init(cfg Config) (*Widget, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	container := cfg.Container
	if container == nil && cfg.ContainerKey != "" && cfg.Resolver != nil {
		container, _ = cfg.Resolver.Resolve(cfg.ContainerKey)
	}
	if container == nil {
		err := fmt.Errorf("%w: %q", ErrContainerNotFound, cfg.ContainerKey)
		logger.Printf("stayfinder: %v", err)
		return nil, err
	}

	pageSize := cfg.PageSize
	if !cfg.Features.Pagination {
		pageSize = 0
	}

	w := &Widget{
		id:         uuid.NewString(),
		cfg:        cfg,
		container:  container,
		set:        listings.New(pageSize),
		adapter:    mapview.NewAdapter(cfg.Currency),
		slot:       &Slot{},
		sched:      cfg.Scheduler,
		mapVisible: true,
	}
	if w.sched == nil {
		w.sched = timerScheduler{}
	}
	w.logger = log.New(logger.Writer(), fmt.Sprintf("%s[%s] ", logger.Prefix(), w.id[:8]), logger.Flags())

	w.sel = selection.NewCoordinator(w.set)
	w.adapter.OnMarkerClick(w.markerClicked)
	w.adapter.OnViewportChange(w.viewportChanged)

	w.set.SetBase(cfg.Listings)
	w.repaint()
	container.SetClass(ClassWidget, true)

	if cfg.SearchSlot != nil {
		w.guard("search slot", func() { cfg.SearchSlot(w.slot) })
	}

	w.logger.Printf("Widget initialized with %d listings (page size %d)", w.set.Len(), pageSize)
	return w, nil
}

// AttachMap hands the loaded map engine to the widget. Markers are placed
// for the whole base set and the view is fitted to them.
func (w *Widget) AttachMap(engine mapview.Engine) {
	if engine == nil {
		return
	}
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed || w.mapState != MapPending {
		engine.Remove()
		return
	}
	opts := w.cfg.Map
	w.adapter.Attach(engine, opts.Tiles, opts.Center, opts.Zoom)
	w.mapState = MapReady

	w.adapter.Place(w.set.Base())
	w.adapter.FitToMarkers()
	w.sel.SetHighlighter(w.adapter)
	w.scheduleResize()

	w.logger.Printf("Map ready with %d markers", w.adapter.MarkerCount())
}

// MapUnavailable records that the map capability failed to load. Map
// operations stay inert for the lifetime of the widget; cards keep working.
func (w *Widget) MapUnavailable(err error) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed || w.mapState != MapPending {
		return
	}
	w.mapState = MapUnavailable
	w.container.SetClass(ClassMapUnavailable, true)
	w.logger.Printf("Map unavailable, continuing without it: %v", err)
}

// SetListings replaces the listing data wholesale. Sort and page reset and
// the marker set is rebuilt.
func (w *Widget) SetListings(ls []domain.Listing) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.set.SetBase(ls)
	w.sel.Revalidate()
	w.repaint()
	w.adapter.Place(w.set.Base())
	w.adapter.FitToMarkers()
	w.sel.Sync()
	w.container.ScrollToTop()

	w.logger.Printf("Listings replaced: %d listings, %d markers", w.set.Len(), w.adapter.MarkerCount())
}

// PanToListing centers the map on the listing, selects it and brings its
// card into view, switching page first when needed. Unknown ids are ignored.
func (w *Widget) PanToListing(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	if _, ok := w.set.IndexOf(id); !ok {
		return
	}
	w.adapter.PanTo(id)
	w.activate(id)
}

// ToggleMap shows or hides the map panel.
func (w *Widget) ToggleMap() {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed || !w.cfg.Features.MapToggle {
		return
	}
	w.mapVisible = !w.mapVisible
	w.container.SetClass(ClassMapHidden, !w.mapVisible)
	if w.mapVisible {
		w.scheduleResize()
	}
}

// Relayout re-measures the map after the host resized the container.
func (w *Widget) Relayout() {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed || !w.mapVisible {
		return
	}
	w.scheduleResize()
}

// GoToPage switches to page n (clamped) and scrolls the list to the top.
func (w *Widget) GoToPage(n int) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.set.SetPage(n)
	w.repaint()
	w.container.ScrollToTop()
}

// SetSortOrder reorders the listings and returns to the first page.
func (w *Widget) SetSortOrder(order listings.SortOrder) error {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return nil
	}
	if err := w.set.SetSortOrder(order); err != nil {
		return err
	}
	w.repaint()
	w.container.ScrollToTop()
	return nil
}

// Destroy tears down the map and empties the container. Everything after it is a no-op.
func (w *Widget) Destroy() {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.destroyed = true
	w.adapter.Teardown()
	w.cards = nil
	w.container.Clear()
	w.container.SetClass(ClassWidget, false)
	w.logger.Printf("Widget destroyed")
}

// ClickCard selects the listing, pans the map to it and notifies the host.
func (w *Widget) ClickCard(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	c, _, ok := cards.Find(w.cards, id)
	if !ok {
		return
	}
	w.adapter.PanTo(id)
	w.activate(id)
	if w.cfg.OnListingClick != nil {
		w.notify("listing click", func() { w.cfg.OnListingClick(c.Listing) })
	}
}

// HoverCard emphasizes the listing's marker while the pointer is on its card.
func (w *Widget) HoverCard(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed || id == "" {
		return
	}
	w.sel.Hover(id)
}

// UnhoverCard drops the hover emphasis for id.
func (w *Widget) UnhoverCard(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.sel.Unhover(id)
}

// ClearSelection drops the active listing.
func (w *Widget) ClearSelection() {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.sel.Clear()
}

// ToggleFavorite flips the card's heart and notifies the host.
func (w *Widget) ToggleFavorite(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	c, _, ok := cards.Find(w.cards, id)
	if !ok {
		return
	}
	state := c.ToggleFavorite()
	if w.cfg.OnFavorite != nil {
		w.notify("favorite", func() { w.cfg.OnFavorite(c.Listing, state) })
	}
}

// NextImage advances the card's carousel.
func (w *Widget) NextImage(id string) {
	w.mu.Lock()
	defer w.unlock()

	if c, _, ok := cards.Find(w.cards, id); ok {
		c.Next()
	}
}

// PrevImage moves the card's carousel back.
func (w *Widget) PrevImage(id string) {
	w.mu.Lock()
	defer w.unlock()

	if c, _, ok := cards.Find(w.cards, id); ok {
		c.Prev()
	}
}

// ID is the instance id.
func (w *Widget) ID() string { return w.id }

// Cards returns the cards of the visible page.
func (w *Widget) Cards() []*cards.Card { return w.cards }

// Empty reports whether the visible page has nothing to show.
func (w *Widget) Empty() bool { return len(w.cards) == 0 }

func (w *Widget) Len() int { return w.set.Len() }
func (w *Widget) Page() int { return w.set.Page() }
func (w *Widget) TotalPages() int { return w.set.TotalPages() }
func (w *Widget) SortOrder() listings.SortOrder { return w.set.SortOrder() }
func (w *Widget) Selection() selection.State { return w.sel.State() }
func (w *Widget) Features() Features { return w.cfg.Features }
func (w *Widget) MapVisible() bool { return w.mapVisible }
func (w *Widget) MapState() MapState { return w.mapState }
func (w *Widget) MarkerCount() int { return w.adapter.MarkerCount() }
func (w *Widget) SearchSlot() *Slot { return w.slot }
func (w *Widget) Destroyed() bool { return w.destroyed }
func (w *Widget) Currency() string { return w.cfg.Currency }
func (w *Widget) LegacyBadges() bool { return w.cfg.LegacyBadges }
func (w *Widget) Listing(id string) (domain.Listing, bool) { return w.set.Lookup(id) }

// CardState returns how the card should be drawn.
func (w *Widget) CardState(c *cards.Card) cards.CardState {
	switch {
	case w.sel.CardActive(c.ID()):
		return cards.CardActive
	case c.ID() != "" && c.ID() == w.sel.Hovered():
		return cards.CardHovered
	default:
		return cards.CardNormal
	}
}

// MarkerEmphasized reports the marker projection for id.
func (w *Widget) MarkerEmphasized(id string) bool {
	return w.sel.MarkerEmphasized(id)
}

func (w *Widget) activate(id string) {
	if w.sel.Activate(id) {
		w.repaint()
	}
	if _, i, ok := cards.Find(w.cards, id); ok {
		w.container.ScrollIntoView(i)
	}
}

func (w *Widget) markerClicked(id string) {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.activate(id)
}

// viewportChanged is called by the engine, possibly while an operation holds mu.
func (w *Widget) viewportChanged(v domain.Viewport) {
	if w.destroyed || w.cfg.OnViewportChange == nil {
		return
	}
	w.guard("viewport change", func() { w.cfg.OnViewportChange(v) })
}

func (w *Widget) repaint() {
	w.cards = cards.Build(w.set.VisiblePage())
}

// scheduleResize re-measures the map once the layout settles and again
// after the transition. Late or duplicate runs are harmless.
func (w *Widget) scheduleResize() {
	w.sched.After(ResizeDelay, w.resize)
	w.sched.After(TransitionDelay, w.resize)
}

func (w *Widget) resize() {
	w.mu.Lock()
	defer w.unlock()

	if w.destroyed {
		return
	}
	w.adapter.Resize()
}

// notify queues a host callback to run once mu is released, so hosts may
// call back into the widget.
func (w *Widget) notify(name string, fn func()) {
	w.notices = append(w.notices, func() { w.guard(name, fn) })
}

func (w *Widget) unlock() {
	notices := w.notices
	w.notices = nil
	w.mu.Unlock()
	for _, fn := range notices {
		fn()
	}
}

// guard runs a host callback so that a panic inside it is logged instead
// of reaching the host's event loop.
func (w *Widget) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Printf("%s callback panic: %v\nStack: %s", name, r, debug.Stack())
		}
	}()
	fn()
}
