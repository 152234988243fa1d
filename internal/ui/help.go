package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"stayfinder/internal/cards"
	"stayfinder/internal/domain"
	"stayfinder/internal/format"
)

// HelpRenderer renders the full help and listing details for the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// RenderHelp renders every binding grouped by where it applies
func (r *HelpRenderer) RenderHelp(k *keyMap) string {
	var help strings.Builder

	help.WriteString(r.title.Render("stayfinder help"))
	help.WriteString("\n")

	r.writeSection(&help, "Listings", k.Up, k.Down, k.Left, k.Right, k.Click, k.Center, k.Favorite, k.PrevImg, k.NextImg, k.Clear)
	r.writeSection(&help, "Sorting & pages", k.Sort, k.NextPage, k.PrevPage, k.Reload)
	r.writeSection(&help, "Map", k.ToggleMap, k.Focus)
	r.writeSection(&help, "Map panel (after tab)", k.ZoomIn, k.ZoomOut, k.NextMarker, k.PrevMarker, k.Click, k.Back)
	help.WriteString(r.note.Render("  Arrow keys pan the map while it has focus."))
	help.WriteString("\n")
	r.writeSection(&help, "Other", k.Details, k.Help, k.Quit)

	return strings.TrimRight(help.String(), "\n")
}

func (r *HelpRenderer) writeSection(b *strings.Builder, name string, bindings ...key.Binding) {
	b.WriteString(r.section.Render(name))
	b.WriteString("\n")
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", h.Key)), r.desc.Render(h.Desc))
	}
}

// RenderListing renders everything known about a listing
func (r *HelpRenderer) RenderListing(l domain.Listing, currency string, legacyBadges bool) string {
	var b strings.Builder

	title := l.Title
	if title == "" {
		title = "Untitled stay"
	}
	b.WriteString(r.title.Render(title))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", label)), r.desc.Render(value))
	}
	row("Where", l.Subtitle)
	row("Price", format.PriceLine(l, currency))
	row("Dates", l.Dates)
	if l.Rating > 0 {
		row("Rating", format.Rating(l.Rating, l.ReviewCount))
	}
	if kind := cards.ClassifyBadge(l.Badge, legacyBadges); kind != cards.BadgeNone {
		row("Badge", fmt.Sprintf("%s (%s)", l.Badge, kind))
	}
	row("Tag", l.Tag)
	if pos, ok := l.Position(); ok {
		row("Location", fmt.Sprintf("%.5f, %.5f", pos.Lat, pos.Lng))
	} else {
		row("Location", "not on the map")
	}
	row("ID", l.ID)

	if l.Details != "" {
		b.WriteString(r.section.Render("Details"))
		b.WriteString("\n  ")
		b.WriteString(l.Details)
		b.WriteString("\n")
	}
	if len(l.Images) > 0 {
		b.WriteString(r.section.Render("Photos"))
		b.WriteString("\n")
		for i, img := range l.Images {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, img)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// ShowInPager shows content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
