// Command genlistings writes a file of sample stays around a city center.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/google/uuid"

	"stayfinder/internal/domain"
	"stayfinder/internal/listingfile"
)

var (
	kinds     = []string{"Loft", "Cottage", "Apartment", "Studio", "Townhouse", "Houseboat", "Villa", "Cabin"}
	areas     = []string{"Alfama", "Baixa", "Belém", "Chiado", "Graça", "Estrela", "Príncipe Real", "Campo de Ourique"}
	perks     = []string{"river view", "rooftop terrace", "fast wifi", "self check-in", "pool", "garden", "workspace"}
	badges    = []string{"", "", "", "Guest favorite", "Superhost", "2 night minimum", "Rare find"}
	tags      = []string{"", "", "New", "Free cancellation"}
	imageDirs = []string{"living", "bedroom", "kitchen", "view", "bath"}
)

func main() {
	var (
		count  int
		out    string
		lat    float64
		lng    float64
		spread float64
		seed   uint64
	)
	flag.IntVar(&count, "n", 40, "Number of listings")
	flag.StringVar(&out, "out", "listings.json", "Output file")
	flag.Float64Var(&lat, "lat", 38.7223, "Center latitude")
	flag.Float64Var(&lng, "lng", -9.1393, "Center longitude")
	flag.Float64Var(&spread, "spread", 0.04, "Maximum distance from the center in degrees")
	flag.Uint64Var(&seed, "seed", 1, "Random seed")
	flag.Parse()

	if count < 0 {
		log.Fatalf("-n must not be negative")
	}

	r := rand.New(rand.NewPCG(seed, seed^0x5eed))
	listings := make([]domain.Listing, 0, count)
	for range count {
		listings = append(listings, generate(r, lat, lng, spread))
	}

	if err := listingfile.Save(out, listings); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing listings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d listings to %s\n", len(listings), out)
}

func generate(r *rand.Rand, lat, lng, spread float64) domain.Listing {
	id := uuid.New()
	kind := pick(r, kinds)
	area := pick(r, areas)

	l := domain.Listing{
		ID:          id.String(),
		Title:       fmt.Sprintf("%s in %s", kind, area),
		Subtitle:    fmt.Sprintf("%s, Lisbon", area),
		Details:     fmt.Sprintf("%d guests · %d bedrooms · %s", 1+r.IntN(6), 1+r.IntN(4), pick(r, perks)),
		Dates:       fmt.Sprintf("Nov %d – %d", 1+r.IntN(20), 22+r.IntN(7)),
		Price:       domain.Amount(float64(40 + r.IntN(460))),
		PricePeriod: "night",
		Lat:         domain.Num(lat + (r.Float64()*2-1)*spread),
		Lng:         domain.Num(lng + (r.Float64()*2-1)*spread),
		Badge:       pick(r, badges),
		Tag:         pick(r, tags),
	}

	// some listings take the degraded paths
	switch r.IntN(12) {
	case 0:
		l.Lat = domain.Coord{}
	case 1:
		l.Price = domain.Text(fmt.Sprintf("€%d", 60+r.IntN(200)))
	case 2:
		l.Images = nil
		return l
	}
	if r.IntN(5) > 0 {
		l.Rating = 4 + float64(r.IntN(100))/100
		l.ReviewCount = 3 + r.IntN(1500)
	}

	short := id.String()[:8]
	for _, dir := range imageDirs[:1+r.IntN(len(imageDirs))] {
		l.Images = append(l.Images, fmt.Sprintf("https://img.stayfinder.example/%s/%s.jpg", short, dir))
	}
	return l
}

func pick(r *rand.Rand, from []string) string {
	return from[r.IntN(len(from))]
}
