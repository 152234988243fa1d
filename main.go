package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"stayfinder/internal/config"
	"stayfinder/internal/domain"
	"stayfinder/internal/eventbus"
	"stayfinder/internal/listingfile"
	"stayfinder/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath   string
		listingsPath string
		pageSize     int
		noMap        bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&listingsPath, "listings", "", "Listing data file (JSON)")
	flag.IntVar(&pageSize, "page-size", -1, "Listings per page, overrides the config (0 shows every listing on one page)")
	flag.BoolVar(&noMap, "no-map", false, "Start without the map")
	flag.Parse()

	// If no listing file specified, check for remaining args
	if listingsPath == "" && flag.NArg() > 0 {
		listingsPath = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("stayfinder.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s", event.Path)
		}
	})

	configSvc := config.NewConfigServiceAt(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	overridePageSize(cfg, pageSize)
	if listingsPath == "" {
		listingsPath = cfg.ListingsFile
	}

	listings, err := loadListings(listingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading listings: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Loaded %d listings from %q", len(listings), listingsPath)

	model, err := ui.NewModel(ui.Options{
		Config:   cfg,
		Listings: listings,
		Bus:      bus,
		NoMap:    noMap,
		Reload:   func() ([]domain.Listing, error) { return loadListings(listingsPath) },
		Logger:   log.Default(),
	})
	if err != nil {
		log.Printf("Error creating UI: %v", err)
		fmt.Fprintf(os.Stderr, "Error creating UI: %v\n", err)
		os.Exit(1)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}

	bus.Subscribe(eventbus.EventListingClicked, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ListingClickedEvent); ok {
			log.Printf("Listing clicked: %s (%s)", event.Listing.ID, event.Listing.Title)
			forwardEvent(e)
		}
	})
	bus.Subscribe(eventbus.EventFavoriteToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FavoriteToggledEvent); ok {
			log.Printf("Favorite toggled: %s -> %t", event.Listing.ID, event.Favorited)
			forwardEvent(e)
		}
	})
	bus.Subscribe(eventbus.EventViewportChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ViewportChangedEvent); ok {
			v := event.Viewport
			log.Printf("Viewport: N%.4f S%.4f E%.4f W%.4f zoom %.0f", v.North, v.South, v.East, v.West, v.Zoom)
		}
	})
	bus.Subscribe(eventbus.EventListingsReplaced, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ListingsReplacedEvent); ok {
			log.Printf("Listings replaced: %d listings, %d markers", event.Count, event.Markers)
		}
	})
	bus.Subscribe(eventbus.EventMapUnavailable, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.MapUnavailableEvent); ok {
			log.Printf("Map unavailable: %v", event.Err)
			forwardEvent(e)
		}
	})

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	// Run the UI
	log.Printf("Starting UI...")
	if os.Getenv("STAYFINDER_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// overridePageSize applies the -page-size flag. Negative values keep the config.
func overridePageSize(cfg *config.Config, pageSize int) {
	if pageSize >= 0 {
		cfg.PageSize = pageSize
	}
}

// loadListings reads the listing file. No file yields an empty widget.
func loadListings(path string) ([]domain.Listing, error) {
	if path == "" {
		return []domain.Listing{}, nil
	}
	ls, err := listingfile.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("listing file %s does not exist (generate one with genlistings)", path)
	}
	return ls, err
}
