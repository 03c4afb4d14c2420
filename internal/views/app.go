package views

import (
	"fmt"
	"strings"
)

type AppData struct {
	Header       string
	Body         string
	Overlay      string
	StatusLine   string
	IsError      bool
	Footer       string
	Notification string
}

func RenderApp(data AppData, th Theme) string {
	lines := []string{th.Header.Render(data.Header)}
	if data.Overlay != "" {
		lines = append(lines, th.Panel.Render(data.Overlay))
	} else {
		lines = append(lines, data.Body)
	}
	if status := Sanitize(data.StatusLine); status != "" {
		if data.IsError {
			lines = append(lines, th.Error.Render("error: "+status))
		} else {
			lines = append(lines, th.Status.Render(status))
		}
	}
	if data.Notification != "" {
		lines = append(lines, th.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, th.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderPrompt(label, inputView string) string {
	return label + ": " + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), Sanitize(body))
}

// FilterSummary describes the active filter criteria for the header.
func FilterSummary(search, label string, overdue bool) string {
	parts := make([]string, 0, 3)
	if search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", Sanitize(search)))
	}
	if label != "" {
		parts = append(parts, fmt.Sprintf("label=%q", Sanitize(label)))
	}
	if overdue {
		parts = append(parts, "overdue")
	}
	if len(parts) == 0 {
		return "all cards"
	}
	return strings.Join(parts, " ")
}
