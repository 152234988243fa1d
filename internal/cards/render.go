package cards

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stayfinder/internal/format"
)

// Styles contains the card style definitions
type Styles struct {
	Card         lipgloss.Style
	ActiveCard   lipgloss.Style
	HoverCard    lipgloss.Style
	Image        lipgloss.Style
	Title        lipgloss.Style
	Dim          lipgloss.Style
	Price        lipgloss.Style
	Rating       lipgloss.Style
	Tag          lipgloss.Style
	Heart        lipgloss.Style
	HeartOff     lipgloss.Style
	Badges       map[BadgeKind]lipgloss.Style
	EmptyMessage lipgloss.Style
}

// NewStyles creates card styles with default colors
func NewStyles() *Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	return &Styles{
		Card:       card,
		ActiveCard: card.BorderForeground(lipgloss.Color("205")).BorderStyle(lipgloss.ThickBorder()),
		HoverCard:  card.BorderForeground(lipgloss.Color("99")),
		Image:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		Title:      lipgloss.NewStyle().Bold(true),
		Dim:        lipgloss.NewStyle().Faint(true),
		Price:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		Rating:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Tag:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
		Heart:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		HeartOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Badges: map[BadgeKind]lipgloss.Style{
			BadgeGuestFavorite: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("231")).Padding(0, 1),
			BadgeSuperhost:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("205")).Padding(0, 1),
			BadgeMinimumStay:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
			BadgeNeutral:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1),
		},
		EmptyMessage: lipgloss.NewStyle().Faint(true).Italic(true).Padding(1, 2),
	}
}

// Renderer handles rendering of listing cards
type Renderer struct {
	styles      *Styles
	currency    string
	legacyBadge bool
}

// NewRenderer creates a card renderer
func NewRenderer(styles *Styles, currency string, legacyBadge bool) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles, currency: currency, legacyBadge: legacyBadge}
}

// CardState is how a card should be emphasized
type CardState int

const (
	CardNormal CardState = iota
	CardHovered
	CardActive
)

// Render renders one card at the given outer width.
func (r *Renderer) Render(c *Card, state CardState, width int) string {
	if c == nil {
		return ""
	}
	style := r.styles.Card
	switch state {
	case CardActive:
		style = r.styles.ActiveCard
	case CardHovered:
		style = r.styles.HoverCard
	}
	inner := max(width-style.GetHorizontalFrameSize(), 10)

	l := c.Listing
	var lines []string

	lines = append(lines, r.imageLine(c, inner))

	top := r.badge(l.Badge)
	heart := r.styles.HeartOff.Render("♡")
	if c.Favorited() {
		heart = r.styles.Heart.Render("♥")
	}
	gap := inner - lipgloss.Width(top) - lipgloss.Width(heart)
	lines = append(lines, top+strings.Repeat(" ", max(gap, 1))+heart)

	title := l.Title
	if title == "" {
		title = "Untitled"
	}
	lines = append(lines, r.styles.Title.Render(truncate(title, inner)))

	for _, s := range []string{l.Subtitle, l.Details, l.Dates} {
		if s != "" {
			lines = append(lines, r.styles.Dim.Render(truncate(s, inner)))
		}
	}

	var priceParts []string
	if price := format.PriceLine(l, r.currency); price != "" {
		priceParts = append(priceParts, r.styles.Price.Render(price))
	}
	if rating := format.Rating(l.Rating, l.ReviewCount); rating != "" {
		priceParts = append(priceParts, r.styles.Rating.Render(rating))
	}
	if len(priceParts) > 0 {
		lines = append(lines, strings.Join(priceParts, "  "))
	}

	if l.Tag != "" {
		lines = append(lines, r.styles.Tag.Render(truncate(l.Tag, inner)))
	}

	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// Grid lays cards out in rows of the given number of columns.
func (r *Renderer) Grid(cs []*Card, stateOf func(*Card) CardState, width, columns int) string {
	if len(cs) == 0 {
		return r.styles.EmptyMessage.Render("No stays match this search.")
	}
	columns = max(columns, 1)
	cardWidth := max(width/columns, 20)

	var rows []string
	for start := 0; start < len(cs); start += columns {
		end := min(start+columns, len(cs))
		row := make([]string, 0, end-start)
		for _, c := range cs[start:end] {
			row = append(row, r.Render(c, stateOf(c), cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RowOf returns the grid row the card at index i is drawn in.
func RowOf(i, columns int) int {
	return i / max(columns, 1)
}

func (r *Renderer) imageLine(c *Card, width int) string {
	if c.ImageCount() == 0 {
		return r.styles.Image.Width(width).Render(" no photos")
	}
	name := path.Base(c.CurrentImage())
	counter := fmt.Sprintf("‹ %d/%d ›", c.Image()+1, c.ImageCount())
	room := width - lipgloss.Width(counter) - 2
	return r.styles.Image.Width(width).Render(" " + truncate(name, max(room, 1)) + " " + counter)
}

func (r *Renderer) badge(text string) string {
	kind := ClassifyBadge(text, r.legacyBadge)
	if kind == BadgeNone {
		return ""
	}
	return r.styles.Badges[kind].Render(text)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
