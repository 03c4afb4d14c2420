package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// EditFormData is the rendered state of the inline edit or add form.
type EditFormData struct {
	Title  string
	Desc   string
	Labels string
	Due    string
}

type BoardData struct {
	Columns      []filter.Column
	Today        string
	ActiveColumn int
	SelectedID   string
	DraggingID   string
	// DropColumn is the column a dragged card would land in, -1 when not
	// dragging.
	DropColumn int
	// Form replaces the card with EditingID, or is appended to the
	// active column when AddingTo is set.
	Form      *EditFormData
	EditingID string
	AddingTo  model.ListID
	Width     int
}

const minColumnWidth = 24

// RenderBoard draws the lists side by side.
func RenderBoard(data BoardData, th Theme) string {
	n := len(data.Columns)
	if n == 0 {
		return th.Muted.Render("(no lists)")
	}
	width := minColumnWidth
	if data.Width > 0 && data.Width/n-2 > width {
		width = data.Width/n - 2
	}
	rendered := make([]string, 0, n)
	for i, col := range data.Columns {
		rendered = append(rendered, renderColumn(data, i, col, width, th))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumn(data BoardData, idx int, col filter.Column, width int, th Theme) string {
	style := th.Column
	switch {
	case data.DropColumn == idx:
		style = th.ColumnDrop
	case data.ActiveColumn == idx:
		style = th.ColumnActive
	}
	inner := width - 4
	parts := []string{th.ColumnTitle.Render(fmt.Sprintf("%s (%d)", Sanitize(col.Title), len(col.Cards)))}
	for _, card := range col.Cards {
		if data.Form != nil && card.ID == data.EditingID {
			parts = append(parts, RenderForm(*data.Form, inner, th))
			continue
		}
		parts = append(parts, RenderCard(card, data, inner, th))
	}
	if data.Form != nil && data.AddingTo == col.List && data.EditingID == "" {
		parts = append(parts, RenderForm(*data.Form, inner, th))
	}
	if len(col.Cards) == 0 && !(data.Form != nil && data.AddingTo == col.List) {
		parts = append(parts, th.Muted.Render("(empty)"))
	}
	return style.Width(width).Render(strings.Join(parts, "\n"))
}

// RenderCard draws one card in display mode, or its saved values as a
// form when the card is marked as being edited.
func RenderCard(card model.Card, data BoardData, width int, th Theme) string {
	style := th.Card
	switch card.ID {
	case data.DraggingID:
		style = th.CardDragged
	case data.SelectedID:
		style = th.CardSelected
	}
	if card.Editing {
		form := RenderForm(EditFormData{
			Title:  Sanitize(card.Title),
			Desc:   Sanitize(card.Desc),
			Labels: Sanitize(strings.Join(card.Labels, ", ")),
			Due:    Sanitize(card.Due),
		}, width-2, th)
		return style.Width(width).Render(th.Muted.Render("editing") + "\n" + form)
	}
	lines := []string{th.CardTitle.Render(Sanitize(card.Title))}
	if desc := Sanitize(card.Desc); desc != "" {
		lines = append(lines, th.Desc.Render(desc))
	}
	if chips := RenderChips(card.Labels, th); chips != "" {
		lines = append(lines, chips)
	}
	if card.Due != "" {
		lines = append(lines, RenderDue(card.Due, data.Today, th))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func RenderChips(labels []string, th Theme) string {
	chips := make([]string, 0, len(labels))
	for _, l := range labels {
		chips = append(chips, th.Chip.Render(Sanitize(l)))
	}
	return strings.Join(chips, " ")
}

// RenderDue draws the due badge, styled overdue when due < today.
func RenderDue(due, today string, th Theme) string {
	if filter.IsOverdue(due, today) {
		return th.DueOverdue.Render("due " + Sanitize(due) + " (overdue)")
	}
	return th.DueOK.Render("due " + Sanitize(due))
}

// RenderForm draws the form fields. Values are the rendered text inputs
// while a form is active, or plain saved values otherwise.
func RenderForm(f EditFormData, width int, th Theme) string {
	row := func(label, value string) string {
		return th.FormLabel.Render(label) + " " + value
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join([]string{
		row("title ", f.Title),
		row("desc  ", f.Desc),
		row("labels", f.Labels),
		row("due   ", f.Due),
	}, "\n"))
}
