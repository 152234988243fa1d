package cards

import "strings"

// BadgeKind is the visual category of a badge chip
type BadgeKind string

const (
	BadgeNone          BadgeKind = ""
	BadgeGuestFavorite BadgeKind = "guest-favorite"
	BadgeSuperhost     BadgeKind = "superhost"
	BadgeMinimumStay   BadgeKind = "minimum-stay"
	BadgeNeutral       BadgeKind = "neutral"
)

// ClassifyBadge maps badge text to a category by case-insensitive substring
// match. Unrecognized text is neutral unless legacy is set, in which case it
// falls back to guest-favorite like older deployments did.
func ClassifyBadge(text string, legacy bool) BadgeKind {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "":
		return BadgeNone
	case strings.Contains(t, "superhost"):
		return BadgeSuperhost
	case strings.Contains(t, "minimum"), strings.Contains(t, "min stay"), strings.Contains(t, "night min"):
		return BadgeMinimumStay
	case strings.Contains(t, "guest favorite"), strings.Contains(t, "guest favourite"):
		return BadgeGuestFavorite
	case legacy:
		return BadgeGuestFavorite
	default:
		return BadgeNeutral
	}
}
