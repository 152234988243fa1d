// Package format turns raw listing values into display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stayfinder/internal/domain"
)

var printer = message.NewPrinter(language.English)

// Price renders a listing price. Pre-formatted strings pass through untouched.
func Price(p domain.Price, currency string) string {
	if !p.Number {
		return p.Text
	}
	return currency + Amount(p.Amount)
}

// Amount renders a number with thousands grouping, dropping decimals for whole amounts.
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) {
		if math.Abs(v) < 1<<63 {
			return printer.Sprintf("%d", int64(v))
		}
		return printer.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%.2f", v)
}

// PriceLine is the price followed by its period, e.g. "$120 night".
func PriceLine(l domain.Listing, currency string) string {
	price := Price(l.Price, currency)
	if price == "" {
		return ""
	}
	if l.PricePeriod == "" {
		return price
	}
	return price + " " + l.PricePeriod
}

// Pill is the compact price shown on a map marker.
func Pill(p domain.Price, currency string) string {
	if !p.Number {
		if p.Text == "" {
			return "•"
		}
		return p.Text
	}
	rounded := math.Round(p.Amount)
	if math.Abs(rounded) < 1000 {
		return currency + Amount(rounded)
	}
	short := strconv.FormatFloat(p.Amount/1000, 'f', 1, 64)
	short = strings.TrimSuffix(short, ".0")
	return currency + short + "k"
}

// Rating renders "★ 4.87 (123)", or "" when there is no rating.
func Rating(rating float64, reviews int) string {
	if rating <= 0 {
		return ""
	}
	s := fmt.Sprintf("★ %.2f", rating)
	if reviews > 0 {
		s += " (" + printer.Sprintf("%d", reviews) + ")"
	}
	return s
}
