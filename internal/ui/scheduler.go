package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler turns widget tasks into tick commands so they run on the
// program's update loop instead of a timer goroutine.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return taskMsg{run: fn}
	}))
}

// drain returns the commands scheduled since the last call
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
