// Package style centralizes the lipgloss color definitions. The
// interactive picker uses OK for its title; logx does not use this
// package, its console colors come from logrus's text formatter.
package style

import "github.com/charmbracelet/lipgloss"

var (
	Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	Err  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	OK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	Dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
