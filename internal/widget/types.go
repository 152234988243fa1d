package widget

import (
	"errors"
	"log"
	"time"

	"stayfinder/internal/domain"
	"stayfinder/internal/mapview"
)

// CSS-like state classes toggled on the container
const (
	ClassWidget         = "stayfinder"
	ClassMapHidden      = "stayfinder--map-hidden"
	ClassMapUnavailable = "stayfinder--map-unavailable"
)

const (
	// ResizeDelay lets the layout settle before the map re-measures.
	ResizeDelay = 50 * time.Millisecond
	// TransitionDelay is a second re-measure after the panel transition ends.
	TransitionDelay = 350 * time.Millisecond
)

// ErrContainerNotFound is returned by Init when no container can be resolved.
var ErrContainerNotFound = errors.New("widget container not found")

// Container is the host surface a widget mounts into.
type Container interface {
	SetClass(name string, on bool)
	Clear()
	ScrollToTop()
	// ScrollIntoView brings the card at index of the visible page into view.
	ScrollIntoView(index int)
}

// Resolver looks up a container by key.
type Resolver interface {
	Resolve(key string) (Container, bool)
}

// Scheduler runs fn once after d. Tasks are never cancelled; the widget
// makes every scheduled task safe to run late or twice.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// timerScheduler runs tasks on timer goroutines; the widget's lock
// serializes them with its operations. Hosts that drive the widget from a
// single loop should inject a Scheduler that re-enters that loop.
type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// MapOptions configures the initial map view and tiles.
type MapOptions struct {
	Center domain.LatLng
	Zoom   float64
	Tiles  mapview.TileLayer
}

// Features toggles optional controls.
type Features struct {
	MapToggle  bool
	Sort       bool
	Pagination bool
}

// Config is supplied once at Init.
type Config struct {
	// Container is used directly; otherwise ContainerKey is resolved through Resolver.
	Container    Container
	ContainerKey string
	Resolver     Resolver

	Listings     []domain.Listing
	Currency     string
	Map          MapOptions
	Features     Features
	PageSize     int
	LegacyBadges bool

	// SearchSlot is called once with the slot the host may render into.
	SearchSlot func(slot *Slot)

	OnFavorite       func(l domain.Listing, favorited bool)
	OnListingClick   func(l domain.Listing)
	OnViewportChange func(v domain.Viewport)

	Scheduler Scheduler
	Logger    *log.Logger
}

// MapState tracks the deferred map capability.
type MapState int

const (
	MapPending MapState = iota
	MapReady
	MapUnavailable
)

func (s MapState) String() string {
	switch s {
	case MapReady:
		return "ready"
	case MapUnavailable:
		return "unavailable"
	default:
		return "pending"
	}
}

// Slot is the search slot mount point.
type Slot struct {
	render func() string
}

// SetContent renders fixed text into the slot.
func (s *Slot) SetContent(content string) {
	s.render = func() string { return content }
}

// SetRenderer renders the slot by calling fn on every paint.
func (s *Slot) SetRenderer(fn func() string) {
	s.render = fn
}

// View returns the current slot content.
func (s *Slot) View() string {
	if s == nil || s.render == nil {
		return ""
	}
	return s.render()
}
