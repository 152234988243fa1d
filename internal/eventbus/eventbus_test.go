package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stayfinder/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventListingClicked, func(e DomainEvent) { got <- e })

	b.Publish(ListingClickedEvent{Listing: domain.Listing{ID: "a"}})

	select {
	case e := <-got:
		ev, ok := e.(ListingClickedEvent)
		require.True(t, ok)
		require.Equal(t, "a", ev.Listing.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan struct{}, 4)
	second := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventFavoriteToggled, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventFavoriteToggled, func(DomainEvent) { second <- struct{}{} })

	unsubscribe()
	b.Publish(FavoriteToggledEvent{Favorited: true})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	select {
	case <-first:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPanickingHandlerDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventConfigLoaded, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventConfigLoaded, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ConfigLoadedEvent{Path: "x"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()
	require.NotPanics(t, func() { b.Publish(ConfigSavedEvent{}) })
}
