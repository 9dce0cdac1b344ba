package gesture

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// SessionStyles are the shared visual resources a gesture needs on
// screen: the detached ghost that follows the pointer, the live create
// preview rectangle, and the not-allowed tint shown over a conflicting
// drop target.
type SessionStyles struct {
	Ghost   lipgloss.Style
	Preview lipgloss.Style
	Blocked lipgloss.Style
}

// Session owns the process-wide interaction resources. They are
// created lazily on first use and torn down with the coordinator;
// acquire and release are both idempotent, so repeated cleanup cannot
// double-remove anything.
type Session struct {
	created bool
	styles  SessionStyles
}

// Acquire returns the shared styles, creating them on first call.
func (s *Session) Acquire() SessionStyles {
	if !s.created {
		s.styles = SessionStyles{
			Ghost: lipgloss.NewStyle().
				Background(lipgloss.ANSIColor(24)).
				Foreground(lipgloss.ANSIColor(255)).
				Bold(true),
			Preview: lipgloss.NewStyle().
				Background(lipgloss.ANSIColor(28)).
				Foreground(lipgloss.ANSIColor(255)),
			Blocked: lipgloss.NewStyle().
				Background(lipgloss.ANSIColor(124)).
				Foreground(lipgloss.ANSIColor(255)),
		}
		s.created = true
	}
	return s.styles
}

// Created reports whether the resources currently exist.
func (s *Session) Created() bool {
	return s.created
}

// Release tears the shared resources down. Safe to call repeatedly.
func (s *Session) Release() {
	s.created = false
	s.styles = SessionStyles{}
}
