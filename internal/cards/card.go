// Package cards builds the per-listing card state and renders cards.
package cards

import "stayfinder/internal/domain"

// Card is the view state of one listing card. It is rebuilt on every
// repaint, which resets the carousel to the first image.
type Card struct {
	Listing   domain.Listing
	image     int
	favorited bool
}

// NewCard creates a card showing the first image.
func NewCard(l domain.Listing) *Card {
	return &Card{Listing: l, favorited: l.Favorited}
}

// Build creates one card per listing, preserving order.
func Build(listings []domain.Listing) []*Card {
	out := make([]*Card, len(listings))
	for i, l := range listings {
		out[i] = NewCard(l)
	}
	return out
}

// ID is the listing id the card was built from.
func (c *Card) ID() string {
	return c.Listing.ID
}

// Image returns the current carousel index.
func (c *Card) Image() int {
	return c.image
}

// ImageCount is the number of images in the carousel.
func (c *Card) ImageCount() int {
	return len(c.Listing.Images)
}

// CurrentImage returns the URL at the carousel index, or "" when there are no images.
func (c *Card) CurrentImage() string {
	if len(c.Listing.Images) == 0 {
		return ""
	}
	return c.Listing.Images[c.image]
}

// Next advances the carousel. Advancing past the last image is a no-op.
func (c *Card) Next() bool {
	if c.image >= len(c.Listing.Images)-1 {
		return false
	}
	c.image++
	return true
}

// Prev moves the carousel back. Retreating past the first image is a no-op.
func (c *Card) Prev() bool {
	if c.image <= 0 {
		return false
	}
	c.image--
	return true
}

// Favorited returns the in-memory favorite flag.
func (c *Card) Favorited() bool {
	return c.favorited
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (c *Card) ToggleFavorite() bool {
	c.favorited = !c.favorited
	return c.favorited
}

// Find returns the card for id.
func Find(cards []*Card, id string) (*Card, int, bool) {
	if id == "" {
		return nil, -1, false
	}
	for i, c := range cards {
		if c.ID() == id {
			return c, i, true
		}
	}
	return nil, -1, false
}
