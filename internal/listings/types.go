package listings

import (
	"errors"
	"fmt"
)

// SortOrder selects how the base set is ordered
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// SortOrders lists the orders in the sequence the UI cycles through them
var SortOrders = []SortOrder{SortDefault, SortPriceAsc, SortPriceDesc}

// ErrUnknownSortOrder is returned for sort keys outside SortOrders
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ParseSortOrder converts a config or UI string into a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortDefault, SortPriceAsc, SortPriceDesc:
		return SortOrder(s), nil
	case "":
		return SortDefault, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}

// Label returns a short human readable name
func (o SortOrder) Label() string {
	switch o {
	case SortPriceAsc:
		return "Price: low to high"
	case SortPriceDesc:
		return "Price: high to low"
	default:
		return "Recommended"
	}
}

// Next returns the order after o in SortOrders
func (o SortOrder) Next() SortOrder {
	for i, s := range SortOrders {
		if s == o {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return SortDefault
}
