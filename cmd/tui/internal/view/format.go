package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"hamrotrack/internal/gateway"
)

const gatewayTimeout = 10 * time.Second

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(d gateway.Date) string {
	if d.IsZero() {
		return ""
	}

	return d.Format(time.DateOnly)
}

// GwCtx returns a context with the standard timeout for gateway operations.
func GwCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), gatewayTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func faint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
