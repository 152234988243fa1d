package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stayfinder/internal/cards"
	"stayfinder/internal/config"
	"stayfinder/internal/domain"
	"stayfinder/internal/eventbus"
	"stayfinder/internal/mapview"
	"stayfinder/internal/mapview/termmap"
	"stayfinder/internal/widget"
)

// ErrMapDisabled is reported to the widget when the map was turned off on the command line
var ErrMapDisabled = errors.New("map disabled")

const (
	mapLoadTimeout = 10 * time.Second
	statusTimeout  = 3 * time.Second
	panStepX       = 4
	panStepY       = 2
)

type focusArea int

const (
	focusList focusArea = iota
	focusMap
)

// interactiveMap is the part of a terminal map engine the UI drives directly
type interactiveMap interface {
	mapview.Engine
	Render() string
	Pan(dx, dy int)
	ZoomBy(delta float64)
	CycleMarker(dir int)
	ClickFocused() bool
}

// Options configures a Model
type Options struct {
	Config   *config.Config
	Listings []domain.Listing
	Bus      eventbus.EventBus
	// Loader creates the map engine. Nil selects the terminal map.
	Loader mapview.Loader
	NoMap  bool
	// Reload re-reads the listing data. Nil disables the reload key.
	Reload func() ([]domain.Listing, error)
	Logger *log.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	widget  *widget.Widget
	panel   *listPanel
	surface *mapSurface
	sched   *teaScheduler
	loader  mapview.Loader
	engine  interactiveMap
	reload  func() ([]domain.Listing, error)

	width  int
	height int
	cursor int
	focus  focusArea
	status string
	errMsg bool

	keys         keyMap
	help         help.Model
	styles       *Styles
	cardRenderer *cards.Renderer
	helpRenderer *HelpRenderer
	inPagerMode  bool

	ctx    context.Context
	cancel context.CancelFunc

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates a new UI model and mounts the widget into it
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		panel:        newListPanel(cfg.UI.Columns),
		surface:      &mapSurface{},
		sched:        &teaScheduler{},
		reload:       opts.Reload,
		keys:         newKeyMap(),
		help:         help.New(),
		styles:       NewStyles(),
		cardRenderer: cards.NewRenderer(cards.NewStyles(), cfg.Currency, cfg.Badges.LegacyFallback),
		helpRenderer: NewHelpRenderer(),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.loader = opts.Loader
	switch {
	case opts.NoMap:
		m.loader = mapview.LoaderFunc(func(context.Context) (mapview.Engine, error) {
			return nil, ErrMapDisabled
		})
	case m.loader == nil:
		m.loader = mapview.LoaderFunc(func(ctx context.Context) (mapview.Engine, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return termmap.New(m.surface), nil
		})
	}

	w, err := widget.Init(widget.Config{
		Container: m.panel,
		Listings:  opts.Listings,
		Currency:  cfg.Currency,
		Map: widget.MapOptions{
			Center: cfg.Map.CenterLatLng(),
			Zoom:   cfg.Map.Zoom,
			Tiles: mapview.TileLayer{
				URL:         cfg.Map.TileURL,
				Attribution: cfg.Map.Attribution,
				MaxZoom:     cfg.Map.MaxZoom,
			},
		},
		Features: widget.Features{
			MapToggle:  cfg.Features.MapToggle,
			Sort:       cfg.Features.Sort,
			Pagination: cfg.Features.Pagination,
		},
		PageSize:     cfg.PageSize,
		LegacyBadges: cfg.Badges.LegacyFallback,
		SearchSlot: func(slot *widget.Slot) {
			slot.SetRenderer(m.searchSummary)
		},
		OnFavorite: func(l domain.Listing, favorited bool) {
			m.publish(eventbus.FavoriteToggledEvent{Listing: l, Favorited: favorited})
		},
		OnListingClick: func(l domain.Listing) {
			m.publish(eventbus.ListingClickedEvent{Listing: l})
		},
		OnViewportChange: func(v domain.Viewport) {
			m.publish(eventbus.ViewportChangedEvent{Viewport: v})
		},
		Scheduler: m.sched,
		Logger:    opts.Logger,
	})
	if err != nil {
		m.cancel()
		return nil, fmt.Errorf("failed to mount listings widget: %w", err)
	}
	m.widget = w
	m.hoverCursor()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Widget returns the mounted widget
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Init starts the deferred map load
func (m *Model) Init() tea.Cmd {
	return m.loadMap()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		m.widget.Relayout()
		return nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return nil
		}
		if m.focus == focusMap {
			return m.handleMapKey(msg)
		}
		return m.handleListKey(msg)

	case mapLoadedMsg:
		return m.handleMapLoaded(msg)

	case taskMsg:
		msg.run()
		return nil

	case listingsLoadedMsg:
		if msg.err != nil {
			log.Printf("Reloading listings failed: %v", msg.err)
			return m.setError(fmt.Sprintf("Reload failed: %v", msg.err))
		}
		m.widget.SetListings(msg.listings)
		m.cursor = 0
		m.hoverCursor()
		m.publish(eventbus.ListingsReplacedEvent{Count: len(msg.listings), Markers: m.widget.MarkerCount()})
		return m.setStatus(fmt.Sprintf("Loaded %d stays", len(msg.listings)))

	case EventMsg:
		return m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case clearStatusMsg:
		m.status = ""
		m.errMsg = false
		return nil
	}
	return nil
}

// loadMap returns the deferred map load command
func (m *Model) loadMap() tea.Cmd {
	loader := m.loader
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, mapLoadTimeout)
		defer cancel()
		engine, err := loader.Load(ctx)
		return mapLoadedMsg{engine: engine, err: err}
	}
}

func (m *Model) handleMapLoaded(msg mapLoadedMsg) tea.Cmd {
	if msg.err == nil && msg.engine == nil {
		msg.err = errors.New("map loader returned no engine")
	}
	if msg.err != nil {
		m.widget.MapUnavailable(msg.err)
		m.publish(eventbus.MapUnavailableEvent{Err: msg.err})
		return nil
	}

	m.widget.AttachMap(msg.engine)
	if m.widget.MapState() != widget.MapReady {
		return nil
	}
	if im, ok := msg.engine.(interactiveMap); ok {
		m.engine = im
	}
	log.Printf("Map attached with %d markers", m.widget.MarkerCount())
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	w := m.widget
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.panel.columns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.panel.columns)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Click):
		if c := m.currentCard(); c != nil {
			w.ClickCard(c.ID())
			m.syncCursorToActive()
		}
	case key.Matches(msg, m.keys.Center):
		if c := m.currentCard(); c != nil {
			w.PanToListing(c.ID())
			m.syncCursorToActive()
		}
	case key.Matches(msg, m.keys.Favorite):
		if c := m.currentCard(); c != nil {
			w.ToggleFavorite(c.ID())
		}
	case key.Matches(msg, m.keys.PrevImg):
		if c := m.currentCard(); c != nil {
			w.PrevImage(c.ID())
		}
	case key.Matches(msg, m.keys.NextImg):
		if c := m.currentCard(); c != nil {
			w.NextImage(c.ID())
		}
	case key.Matches(msg, m.keys.Sort):
		if !w.Features().Sort {
			return nil
		}
		next := w.SortOrder().Next()
		if err := w.SetSortOrder(next); err != nil {
			return m.setError(err.Error())
		}
		m.cursor = 0
		m.hoverCursor()
		return m.setStatus("Sorted by " + next.Label())
	case key.Matches(msg, m.keys.NextPage):
		m.goToPage(w.Page() + 1)
	case key.Matches(msg, m.keys.PrevPage):
		m.goToPage(w.Page() - 1)
	case key.Matches(msg, m.keys.ToggleMap):
		w.ToggleMap()
		m.layout()
	case key.Matches(msg, m.keys.Focus):
		if w.MapVisible() && m.engine != nil {
			m.focus = focusMap
		}
	case key.Matches(msg, m.keys.Clear):
		w.ClearSelection()
	case key.Matches(msg, m.keys.Details):
		if c := m.currentCard(); c != nil {
			return m.showPager(m.helpRenderer.RenderListing(c.Listing, w.Currency(), w.LegacyBadges()))
		}
	case key.Matches(msg, m.keys.Reload):
		return m.reloadListings()
	case key.Matches(msg, m.keys.Help):
		return m.showPager(m.helpRenderer.RenderHelp(&m.keys))
	}
	return nil
}

func (m *Model) handleMapKey(msg tea.KeyMsg) tea.Cmd {
	if m.engine == nil || !m.widget.MapVisible() {
		m.focus = focusList
		return m.handleListKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.focus = focusList
	case key.Matches(msg, m.keys.Up):
		m.engine.Pan(0, -panStepY)
	case key.Matches(msg, m.keys.Down):
		m.engine.Pan(0, panStepY)
	case key.Matches(msg, m.keys.Left):
		m.engine.Pan(-panStepX, 0)
	case key.Matches(msg, m.keys.Right):
		m.engine.Pan(panStepX, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomBy(1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomBy(-1)
	case key.Matches(msg, m.keys.NextMarker):
		m.engine.CycleMarker(1)
	case key.Matches(msg, m.keys.PrevMarker):
		m.engine.CycleMarker(-1)
	case key.Matches(msg, m.keys.Click):
		if m.engine.ClickFocused() {
			m.syncCursorToActive()
		}
	case key.Matches(msg, m.keys.ToggleMap):
		m.widget.ToggleMap()
		m.focus = focusList
		m.layout()
	case key.Matches(msg, m.keys.Help):
		return m.showPager(m.helpRenderer.RenderHelp(&m.keys))
	}
	return nil
}

func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch ev := e.(type) {
	case eventbus.FavoriteToggledEvent:
		if ev.Favorited {
			return m.setStatus(fmt.Sprintf("Saved %s to favorites", ev.Listing.Title))
		}
		return m.setStatus(fmt.Sprintf("Removed %s from favorites", ev.Listing.Title))
	case eventbus.ListingClickedEvent:
		return m.setStatus("Opened " + ev.Listing.Title)
	case eventbus.MapUnavailableEvent:
		return m.setError("Map unavailable, showing the list only")
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.widget.Destroy()
	m.engine = nil
	m.cancel()
	return tea.Quit
}

func (m *Model) goToPage(n int) {
	w := m.widget
	if !w.Features().Pagination || n < 1 || n > w.TotalPages() || n == w.Page() {
		return
	}
	w.GoToPage(n)
	m.cursor = 0
	m.hoverCursor()
}

func (m *Model) reloadListings() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		ls, err := reload()
		return listingsLoadedMsg{listings: ls, err: err}
	}
}

// showPager opens content in the pager, pausing rendering while it runs
func (m *Model) showPager(content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	program, pager := m.program, m.pager
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := pager.ShowInPager(content)
		program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.errMsg = false
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) setError(s string) tea.Cmd {
	cmd := m.setStatus(s)
	m.errMsg = true
	return cmd
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// currentCard returns the card under the cursor
func (m *Model) currentCard() *cards.Card {
	cs := m.widget.Cards()
	if m.cursor < 0 || m.cursor >= len(cs) {
		return nil
	}
	return cs[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	n := len(m.widget.Cards())
	if n == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= n {
		return
	}
	m.cursor = next
	m.hoverCursor()
}

// hoverCursor clamps the cursor and hovers the card under it
func (m *Model) hoverCursor() {
	cs := m.widget.Cards()
	m.cursor = max(0, min(m.cursor, len(cs)-1))
	if c := m.currentCard(); c != nil && c.ID() != "" {
		m.widget.HoverCard(c.ID())
		m.panel.ScrollIntoView(m.cursor)
		return
	}
	if hovered := m.widget.Selection().Hovered; hovered != "" {
		m.widget.UnhoverCard(hovered)
	}
}

// syncCursorToActive moves the cursor onto the active card after a click
// revealed it, possibly on another page.
func (m *Model) syncCursorToActive() {
	active := m.widget.Selection().Active
	if _, i, ok := cards.Find(m.widget.Cards(), active); ok {
		m.cursor = i
	}
	m.hoverCursor()
}

func (m *Model) searchSummary() string {
	n := m.widget.Len()
	switch n {
	case 0:
		return "No stays"
	case 1:
		return "1 stay"
	}
	return fmt.Sprintf("%d stays", n)
}

// layout splits the screen between the list and the map panel
func (m *Model) layout() {
	_, mapWidth := m.panelWidths()
	border := m.styles.MapPanel.GetHorizontalFrameSize()
	// popup and attribution lines sit below the canvas
	height := m.bodyHeight() - m.styles.MapPanel.GetVerticalFrameSize() - 2
	if mapWidth == 0 {
		m.surface.SetSize(0, 0)
		return
	}
	m.surface.SetSize(mapWidth-border, height)
}

func (m *Model) mapShown() bool {
	return !m.panel.HasClass(widget.ClassMapHidden)
}

func (m *Model) panelWidths() (int, int) {
	if !m.mapShown() || m.width < 60 {
		return m.width, 0
	}
	listWidth := m.width * 3 / 5
	return listWidth, m.width - listWidth
}

// bodyHeight is the height left after the header, status and help lines
func (m *Model) bodyHeight() int {
	return max(m.height-4, 3)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.panel.cleared {
		return ""
	}

	listWidth, mapWidth := m.panelWidths()
	body := m.renderList(listWidth)
	if mapWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderMap(mapWidth))
	}

	statusStyle := m.styles.Status
	if m.errMsg {
		statusStyle = m.styles.StatusError
	}

	var km help.KeyMap = listHelp{&m.keys}
	if m.focus == focusMap {
		km = mapHelp{&m.keys}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		statusStyle.Render(m.status),
		m.styles.Help.Render(m.help.View(km)),
	)
}

func (m *Model) renderHeader() string {
	w := m.widget
	parts := []string{
		m.styles.Title.Render("stayfinder"),
		m.styles.Slot.Render(w.SearchSlot().View()),
	}
	if w.Features().Sort {
		parts = append(parts, m.styles.Dim.Render(w.SortOrder().Label()))
	}
	if w.Features().Pagination && w.TotalPages() > 1 {
		parts = append(parts, m.styles.Dim.Render(fmt.Sprintf("Page %d/%d", w.Page(), w.TotalPages())))
	}
	return m.styles.Header.Render(strings.Join(parts, "  "))
}

// renderList draws the grid rows that fit starting at the panel's scroll row
func (m *Model) renderList(width int) string {
	cs := m.widget.Cards()
	height := m.bodyHeight()
	if len(cs) == 0 {
		return lipgloss.NewStyle().Width(width).Height(height).
			Render(m.cardRenderer.Grid(nil, m.widget.CardState, width, m.panel.columns))
	}

	cols := m.panel.columns
	stateOf := func(c *cards.Card) cards.CardState {
		if m.focus == focusList && c == m.currentCard() && m.widget.CardState(c) == cards.CardNormal {
			return cards.CardHovered
		}
		return m.widget.CardState(c)
	}

	var rows []string
	used, fitted := 0, 0
	for start := m.panel.topRow * cols; start < len(cs); start += cols {
		row := m.cardRenderer.Grid(cs[start:min(start+cols, len(cs))], stateOf, width, cols)
		h := lipgloss.Height(row)
		if fitted > 0 && used+h > height-1 {
			break
		}
		rows = append(rows, row)
		used += h
		fitted++
	}
	m.panel.rows = max(fitted, 1)

	totalRows := cards.RowOf(len(cs)-1, cols) + 1
	if below := totalRows - m.panel.topRow - fitted; below > 0 {
		rows = append(rows, m.styles.Scroll.Render(fmt.Sprintf("↓ %d more", below)))
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderMap(width int) string {
	style := m.styles.MapPanel
	if m.focus == focusMap {
		style = m.styles.MapFocused
	}
	innerWidth := width - style.GetHorizontalFrameSize()
	innerHeight := m.bodyHeight() - style.GetVerticalFrameSize()

	var content string
	switch {
	case m.panel.HasClass(widget.ClassMapUnavailable):
		content = m.styles.MapNotice.Render("Map unavailable")
	case m.widget.MapState() == widget.MapPending:
		content = m.styles.MapNotice.Render("Loading map…")
	case m.engine != nil:
		content = m.engine.Render()
	default:
		content = m.styles.MapNotice.Render(fmt.Sprintf("%d stays on the map", m.widget.MarkerCount()))
	}
	return style.Width(innerWidth).Height(innerHeight).MaxHeight(innerHeight + style.GetVerticalFrameSize()).Render(content)
}
