package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func newCardForm(list model.ListID) *cardForm {
	f := &cardForm{list: list}
	f.title = textinput.New()
	f.title.Placeholder = "Title"
	f.title.CharLimit = 256
	f.title.Width = 24

	f.desc = textarea.New()
	f.desc.Placeholder = "Description..."
	f.desc.ShowLineNumbers = false
	f.desc.SetWidth(24)
	f.desc.SetHeight(3)

	f.labels = textinput.New()
	f.labels.Placeholder = "Labels (comma separated)"
	f.labels.CharLimit = 256
	f.labels.Width = 24

	f.due = textinput.New()
	f.due.Placeholder = model.DateLayout
	f.due.CharLimit = len(model.DateLayout)
	f.due.Width = 12
	f.setFocus(0)
	return f
}

func (f *cardForm) setFocus(i int) {
	f.focus = (i + formFields) % formFields
	f.title.Blur()
	f.desc.Blur()
	f.labels.Blur()
	f.due.Blur()
	switch f.focus {
	case 0:
		f.title.Focus()
	case 1:
		f.desc.Focus()
	case 2:
		f.labels.Focus()
	case 3:
		f.due.Focus()
	}
}

func (f *cardForm) input() board.CardInput {
	in := board.CardInput{
		Title:  f.title.Value(),
		Desc:   f.desc.Value(),
		Labels: f.labels.Value(),
		Due:    f.due.Value(),
	}
	if f.savedLabels != nil && in.Labels == f.savedLabelText {
		in.LabelList = f.savedLabels
	}
	return in
}

func (f *cardForm) update(msg tea.KeyMsg) {
	switch f.focus {
	case 0:
		f.title, _ = f.title.Update(msg)
	case 1:
		f.desc, _ = f.desc.Update(msg)
	case 2:
		f.labels, _ = f.labels.Update(msg)
	case 3:
		f.due, _ = f.due.Update(msg)
	}
}

func (m *Model) openAddForm(list model.ListID) {
	m.form = newCardForm(list)
	m.Mode = ModeForm
}

// beginEdit marks the card as being edited and opens its form.
func (m *Model) beginEdit(card model.Card) {
	if err := m.session.SetEditing(m.ctx, card.ID, true); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.openEditForm(card)
}

func (m *Model) openEditForm(card model.Card) {
	f := newCardForm(card.List)
	f.cardID = card.ID
	f.title.SetValue(views.Sanitize(card.Title))
	f.desc.SetValue(views.SanitizeBlock(card.Desc))
	f.labels.SetValue(views.Sanitize(strings.Join(card.Labels, ", ")))
	f.savedLabels = append([]string{}, card.Labels...)
	f.savedLabelText = f.labels.Value()
	f.due.SetValue(views.Sanitize(card.Due))
	m.form = f
	m.Mode = ModeForm
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.cancelForm()
		return m
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.form.focus != 1 {
			return m.submitForm()
		}
	}
	m.form.update(msg)
	return m
}

func (m Model) submitForm() Model {
	in := m.form.input()
	var (
		card model.Card
		err  error
	)
	if m.form.cardID == "" {
		card, err = m.session.AddCard(m.ctx, m.form.list, in)
	} else {
		card, err = m.session.EditCard(m.ctx, m.form.cardID, in)
	}
	switch {
	case errors.Is(err, board.ErrEmptyTitle):
		m.form.setFocus(0)
		return m
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	verb := "added"
	if m.form.cardID != "" {
		verb = "saved"
	}
	m.form = nil
	m.Mode = ModeBoard
	m.focusCard(card.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s", verb, card.Title)}
	return m
}

func (m *Model) cancelForm() {
	if m.form != nil && m.form.cardID != "" {
		if err := m.session.SetEditing(m.ctx, m.form.cardID, false); err != nil {
			m.logger.Warn("leave edit mode failed", "card", m.form.cardID, "err", err)
		}
	}
	m.form = nil
	m.Mode = ModeBoard
}
