package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// RenderMarkdown renders md for the terminal with the glamour style that
// matches the theme, falling back to plain text.
func RenderMarkdown(md string, th Theme, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if th.Name == "light" {
		style = "light"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// RenderDetail is the body of the card detail modal.
func RenderDetail(card model.Card, today string, th Theme, width int) string {
	lines := []string{th.Header.Render(Sanitize(card.Title))}
	if desc := RenderMarkdown(SanitizeBlock(card.Desc), th, width); desc != "" {
		lines = append(lines, "", desc)
	}
	if chips := RenderChips(card.Labels, th); chips != "" {
		lines = append(lines, "", chips)
	}
	if card.Due != "" {
		lines = append(lines, "", RenderDue(card.Due, today, th))
	}
	lines = append(lines, "", th.Muted.Render("list: "+Sanitize(card.List.Title())+"  id: "+Sanitize(card.ID)))
	return strings.Join(lines, "\n")
}
