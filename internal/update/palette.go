package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	if m.Mode == ModePalette {
		m.Mode = ModeBoard
	}
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			card, err := m.session.AddCard(m.ctx, model.ListID(a.List), board.CardInput{Title: a.Title, Labels: a.Labels, Due: a.Due})
			if err != nil {
				return commands.Result{}, err
			}
			m.focusCard(card.ID)
			return commands.Result{Message: fmt.Sprintf("added %s to %s", card.Title, card.List.Title())}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			card, ok := m.session.Card(a.ID)
			if !ok {
				return commands.Result{}, board.ErrCardNotFound
			}
			m.beginEdit(card)
			return commands.Result{Message: "editing " + card.Title}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			card, err := m.session.MoveCard(m.ctx, a.ID, board.Direction(a.Direction))
			if err != nil {
				return commands.Result{}, err
			}
			m.focusCard(card.ID)
			return commands.Result{Message: fmt.Sprintf("moved %s to %s", card.Title, card.List.Title())}, nil
		},
		Drop: func(a commands.DropArgs) (commands.Result, error) {
			card, err := m.session.DropCard(m.ctx, a.ID, model.ListID(a.List))
			if err != nil {
				return commands.Result{}, err
			}
			m.focusCard(card.ID)
			return commands.Result{Message: fmt.Sprintf("dropped %s into %s", card.Title, card.List.Title())}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			card, ok := m.session.Card(a.ID)
			if !ok {
				return commands.Result{}, board.ErrCardNotFound
			}
			m.askDelete(card)
			return commands.Result{Message: "confirm delete of " + card.Title}, nil
		},
		Search: func(a commands.FilterArgs) (commands.Result, error) {
			m.session.SetSearch(a.Text)
			return commands.Result{Message: fmt.Sprintf("search: %q", a.Text)}, nil
		},
		Label: func(a commands.FilterArgs) (commands.Result, error) {
			m.session.SetLabelFilter(a.Text)
			return commands.Result{Message: fmt.Sprintf("label: %q", a.Text)}, nil
		},
		Overdue: func(a commands.OverdueArgs) (commands.Result, error) {
			m.session.SetOverdueOnly(a.On)
			return commands.Result{Message: fmt.Sprintf("overdue only: %v", a.On)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			path, err := m.exportTo(a.Path)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "exported to " + path}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			if err := m.importFrom(a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "imported " + a.Path}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			t, err := m.setTheme(a.Mode)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme " + string(t)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	return m
}
