package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "h", "left":
		m.Col--
		m.Row = 0
	case "l", "right":
		m.Col++
		m.Row = 0
	case "j", "down":
		m.Row++
	case "k", "up":
		m.Row--
	case "n":
		if list, ok := m.listAt(m.Col); ok {
			m.openAddForm(list)
		}
	case "e":
		if card, ok := m.selectedCard(); ok {
			m.beginEdit(card)
		}
	case "H":
		m.moveSelected(board.Left)
	case "L":
		m.moveSelected(board.Right)
	case "d":
		if card, ok := m.selectedCard(); ok {
			m.askDelete(card)
		}
	case " ", "space":
		if card, ok := m.selectedCard(); ok {
			m.session.BeginDrag(card.ID)
			m.Mode = ModeDrag
			m.DropCol = m.Col
			m.Status = StatusBar{Text: "dragging " + card.Title}
		}
	case "enter":
		if card, ok := m.selectedCard(); ok {
			m.openDetail(card)
		}
	case "s":
		m.openFilter(ModeSearch, m.session.Criteria().Search)
	case "f":
		m.openFilter(ModeLabel, m.session.Criteria().Label)
	case "o":
		on := !m.session.Criteria().Overdue
		m.session.SetOverdueOnly(on)
		m.Status = StatusBar{Text: fmt.Sprintf("overdue only: %v", on)}
	case "x":
		m.exportTo("")
	case "i":
		m.Mode = ModeImport
		m.importInput.SetValue("")
		m.importInput.Focus()
	case "t":
		m.setTheme("toggle")
	case "/":
		m.Mode = ModePalette
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case "?":
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m *Model) moveSelected(dir board.Direction) {
	card, ok := m.selectedCard()
	if !ok {
		return
	}
	moved, err := m.session.MoveCard(m.ctx, card.ID, dir)
	if errors.Is(err, board.ErrAtBoundary) {
		m.Status = StatusBar{Text: fmt.Sprintf("%s is already at the %s edge", card.Title, dir)}
		return
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.focusCard(moved.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("moved %s to %s", moved.Title, moved.List.Title())}
}

func (m *Model) askDelete(card model.Card) {
	m.confirm = pendingDelete{CardID: card.ID, Title: card.Title}
	m.Mode = ModeConfirm
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		if m.gate != nil {
			m.gate.approve()
		}
		err := m.session.DeleteCard(m.ctx, m.confirm.CardID)
		switch {
		case err == nil:
			m.Status = StatusBar{Text: "deleted " + m.confirm.Title}
		case errors.Is(err, board.ErrNotConfirmed):
		default:
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	case "n", "N", "esc":
	default:
		return m
	}
	m.confirm = pendingDelete{}
	m.Mode = ModeBoard
	return m
}

func (m Model) handleDragKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		if m.DropCol > 0 {
			m.DropCol--
		}
	case "l", "right":
		if m.DropCol < len(m.session.Columns())-1 {
			m.DropCol++
		}
	case " ", "space", "enter":
		target, _ := m.listAt(m.DropCol)
		card, err := m.session.Drop(m.ctx, target)
		if err != nil {
			m.session.CancelDrag()
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.focusCard(card.ID)
			m.Status = StatusBar{Text: fmt.Sprintf("dropped %s into %s", card.Title, card.List.Title())}
		}
		m.Mode = ModeBoard
		m.DropCol = -1
	case "esc":
		m.session.CancelDrag()
		m.Mode = ModeBoard
		m.DropCol = -1
		m.Status = StatusBar{Text: "drag cancelled"}
	}
	return m
}

func (m *Model) openDetail(card model.Card) {
	th := views.ThemeFor(m.Theme == "dark")
	m.detailID = card.ID
	m.detail.SetContent(views.RenderDetail(card, m.session.Today(), th, m.detail.Width))
	m.detail.GotoTop()
	m.Mode = ModeDetail
}

func (m Model) handleDetailKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc", "enter", "q":
		m.Mode = ModeBoard
		m.detailID = ""
		return m
	}
	m.detail, _ = m.detail.Update(msg)
	return m
}

func (m Model) selectedCard() (model.Card, bool) {
	cols := m.session.Columns()
	if m.Col < 0 || m.Col >= len(cols) {
		return model.Card{}, false
	}
	cards := cols[m.Col].Cards
	if m.Row < 0 || m.Row >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.Row], true
}

// focusCard points the cursor at id if it is visible.
func (m *Model) focusCard(id string) {
	for c, col := range m.session.Columns() {
		for r, card := range col.Cards {
			if card.ID == id {
				m.Col, m.Row = c, r
				return
			}
		}
	}
}

func (m *Model) clampCursor() {
	cols := m.session.Columns()
	if m.Col >= len(cols) {
		m.Col = len(cols) - 1
	}
	if m.Col < 0 {
		m.Col = 0
	}
	n := 0
	if m.Col < len(cols) {
		n = len(cols[m.Col].Cards)
	}
	if m.Row >= n {
		m.Row = n - 1
	}
	if m.Row < 0 {
		m.Row = 0
	}
}
