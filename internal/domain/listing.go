package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Listing is a single stay shown as a card and, when it has coordinates, as a map marker.
// Listings are owned by the caller and treated as read-only.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       Price    `json:"price"`
	Lat         Coord    `json:"lat"`
	Lng         Coord    `json:"lng"`
	Images      []string `json:"images"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Details     string   `json:"details,omitempty"`
	Dates       string   `json:"dates,omitempty"`
	PricePeriod string   `json:"pricePeriod,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
	Badge       string   `json:"badge,omitempty"`
	Favorited   bool     `json:"favorited,omitempty"`
}

// Position returns the listing's coordinates. The second value is false unless
// both latitude and longitude are valid numbers.
func (l Listing) Position() (LatLng, bool) {
	if !l.Lat.Valid || !l.Lng.Valid {
		return LatLng{}, false
	}
	return LatLng{Lat: l.Lat.Value, Lng: l.Lng.Value}, true
}

// Coord is a latitude or longitude. Only finite JSON numbers are valid;
// any other JSON value decodes to an invalid Coord without an error.
type Coord struct {
	Value float64
	Valid bool
}

// Num returns a valid coordinate unless v is NaN or infinite.
func Num(v float64) Coord {
	return Coord{Value: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	*c = Coord{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !(data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}
	*c = Num(v)
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// Price is either a numeric amount or a caller pre-formatted string.
type Price struct {
	Amount float64
	Text   string
	Number bool
}

// Amount returns a numeric price.
func Amount(v float64) Price {
	return Price{Amount: v, Number: true}
}

// Text returns a pre-formatted price.
func Text(s string) Price {
	return Price{Text: s}
}

// Missing reports whether no price was supplied at all.
func (p Price) Missing() bool {
	return !p.Number && p.Text == ""
}

// Value is the numeric value used for sorting. Strings are parsed after
// dropping everything but digits, '.' and '-'; anything unparseable is 0.
func (p Price) Value() float64 {
	if p.Number {
		if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
			return 0
		}
		return p.Amount
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, p.Text)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Text = s
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// booleans, objects and arrays are treated as a missing price
		return nil
	}
	*p = Amount(v)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	switch {
	case p.Number:
		return json.Marshal(p.Amount)
	case p.Text != "":
		return json.Marshal(p.Text)
	default:
		return []byte("null"), nil
	}
}
