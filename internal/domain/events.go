package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventListingClicked   EventType = "ListingClicked"
	EventFavoriteToggled  EventType = "FavoriteToggled"
	EventViewportChanged  EventType = "ViewportChanged"
	EventListingsReplaced EventType = "ListingsReplaced"
	EventMapUnavailable   EventType = "MapUnavailable"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ListingClickedEvent is emitted when a card or its marker is clicked
type ListingClickedEvent struct {
	Listing Listing
}

func (e ListingClickedEvent) Type() EventType { return EventListingClicked }

// FavoriteToggledEvent is emitted when a card's heart is flipped
type FavoriteToggledEvent struct {
	Listing   Listing
	Favorited bool
}

func (e FavoriteToggledEvent) Type() EventType { return EventFavoriteToggled }

// ViewportChangedEvent is emitted when the map settles after a pan or zoom
type ViewportChangedEvent struct {
	Viewport Viewport
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }

// ListingsReplacedEvent is emitted after the listing data is swapped wholesale
type ListingsReplacedEvent struct {
	Count   int
	Markers int
}

func (e ListingsReplacedEvent) Type() EventType { return EventListingsReplaced }

// MapUnavailableEvent is emitted when the map engine could not be loaded
type MapUnavailableEvent struct {
	Err error
}

func (e MapUnavailableEvent) Type() EventType { return EventMapUnavailable }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
