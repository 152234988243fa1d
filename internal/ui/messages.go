package ui

import (
	"stayfinder/internal/domain"
	"stayfinder/internal/eventbus"
	"stayfinder/internal/mapview"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// mapLoadedMsg carries the result of the deferred map load
type mapLoadedMsg struct {
	engine mapview.Engine
	err    error
}

// taskMsg runs a task the widget scheduled
type taskMsg struct {
	run func()
}

// listingsLoadedMsg contains the result of reloading the listing file
type listingsLoadedMsg struct {
	listings []domain.Listing
	err      error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals that an external pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the pager has exited
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
