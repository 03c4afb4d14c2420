package render

import (
	"strings"

	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// ListMarkup is the rebuilt content of one list's card container.
type ListMarkup struct {
	List  model.ListID
	Title string
	Count int
	HTML  string
}

// RenderLists rebuilds the card markup of every list from scratch.
func RenderLists(b *model.Board, c filter.Criteria, today string) []ListMarkup {
	cols := filter.Project(b, c, today)
	out := make([]ListMarkup, 0, len(cols))
	for _, col := range cols {
		var sb strings.Builder
		for _, card := range col.Cards {
			writeCard(&sb, card, today)
		}
		out = append(out, ListMarkup{
			List:  col.List,
			Title: col.Title,
			Count: len(col.Cards),
			HTML:  sb.String(),
		})
	}
	return out
}

// RenderCard returns the article element for one card.
func RenderCard(card model.Card, today string) string {
	var sb strings.Builder
	writeCard(&sb, card, today)
	return sb.String()
}

func writeCard(sb *strings.Builder, card model.Card, today string) {
	id := EscapeHTML(card.ID)
	draggable := "true"
	if card.Editing {
		draggable = "false"
	}
	sb.WriteString(`<article class="card" data-id="` + id + `" draggable="` + draggable + `">`)
	if card.Editing {
		writeEditForm(sb, card)
	} else {
		writeDisplay(sb, card, id, today)
	}
	sb.WriteString("</article>\n")
}

func writeDisplay(sb *strings.Builder, card model.Card, id, today string) {
	sb.WriteString(`<h3 class="open-modal" data-id="` + id + `">` + EscapeHTML(card.Title) + `</h3>`)
	sb.WriteString(`<p>` + EscapeHTML(card.Desc) + `</p>`)
	if len(card.Labels) > 0 {
		sb.WriteString(`<div class="labels">`)
		writeChips(sb, card.Labels, "")
		sb.WriteString(`</div>`)
	}
	if card.Due != "" {
		sb.WriteString(`<div class="meta"><span class="due ` + dueClass(card.Due, today) + `">` + EscapeHTML(card.Due) + `</span></div>`)
	}
	sb.WriteString(`<div class="card-actions">`)
	sb.WriteString(`<button class="move-left" data-id="` + id + `" title="Move left">&larr;</button>`)
	sb.WriteString(`<button class="move-right" data-id="` + id + `" title="Move right">&rarr;</button>`)
	sb.WriteString(`<button class="edit" data-id="` + id + `" title="Edit">Edit</button>`)
	sb.WriteString(`<button class="delete" data-id="` + id + `" title="Delete">Delete</button>`)
	sb.WriteString(`</div>`)
}

func writeEditForm(sb *strings.Builder, card model.Card) {
	sb.WriteString(`<form class="edit-form">`)
	sb.WriteString(`<input type="text" name="title" value="` + EscapeHTML(card.Title) + `" required />`)
	sb.WriteString(`<textarea name="desc" placeholder="Description...">` + EscapeHTML(card.Desc) + `</textarea>`)
	sb.WriteString(`<input type="text" name="labels" value="` + EscapeHTML(strings.Join(card.Labels, ", ")) + `" placeholder="Labels" />`)
	sb.WriteString(`<input type="date" name="due" value="` + EscapeHTML(card.Due) + `" />`)
	sb.WriteString(`<div class="card-actions"><button type="submit">Save</button><button type="button" class="cancel-edit">Cancel</button></div>`)
	sb.WriteString(`</form>`)
}

func writeChips(sb *strings.Builder, labels []string, sep string) {
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(`<span class="label-chip">` + EscapeHTML(l) + `</span>`)
	}
}

func dueClass(due, today string) string {
	if filter.IsOverdue(due, today) {
		return "overdue"
	}
	return "ok"
}

// RenderDetail returns the body of the card detail modal.
func RenderDetail(card model.Card, today string) string {
	var sb strings.Builder
	sb.WriteString(`<h2>` + EscapeHTML(card.Title) + `</h2>`)
	sb.WriteString(`<p>` + EscapeHTML(card.Desc) + `</p>`)
	writeChips(&sb, card.Labels, " ")
	if card.Due != "" {
		sb.WriteString(`<p><strong>Due:</strong> ` + EscapeHTML(card.Due))
		if filter.IsOverdue(card.Due, today) {
			sb.WriteString(` (overdue)`)
		}
		sb.WriteString(`</p>`)
	}
	return sb.String()
}
