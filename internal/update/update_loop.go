package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.detail.Width = max(typed.Width-4, 20)
		m.detail.Height = max(typed.Height-8, 5)
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		m, cmd = m.handleKey(typed)
	case DueMsg:
		m.onDue(typed.Event)
		if m.Scheduler != nil {
			cmd = waitForDueCmd(m.Scheduler.C())
		}
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
	case ClearStatusMsg:
		m.Status = StatusBar{}
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
	}
	m.afterChange()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.Mode {
	case ModePalette:
		return m.handlePaletteKey(msg), nil
	case ModeForm:
		return m.handleFormKey(msg), nil
	case ModeConfirm:
		return m.handleConfirmKey(msg), nil
	case ModeDrag:
		return m.handleDragKey(msg), nil
	case ModeDetail:
		return m.handleDetailKey(msg), nil
	case ModeSearch, ModeLabel:
		return m.handleFilterKey(msg), nil
	case ModeImport:
		return m.handleImportKey(msg), nil
	}
	return m.handleBoardKey(msg)
}

// afterChange re-syncs state that depends on the document once per update.
func (m *Model) afterChange() {
	if m.changes.pending {
		m.changes.pending = false
		m.syncWatcher()
	}
	m.clampCursor()
}

func (m Model) View() string {
	th := views.ThemeFor(m.Theme == "dark")
	criteria := m.session.Criteria()
	today := m.session.Today()

	data := views.BoardData{
		Columns:      m.session.Columns(),
		Today:        today,
		ActiveColumn: m.Col,
		DropColumn:   -1,
		Width:        m.width,
	}
	if card, ok := m.selectedCard(); ok {
		data.SelectedID = card.ID
	}
	if id, ok := m.session.Dragging(); ok {
		data.DraggingID = id
		data.DropColumn = m.DropCol
	}
	if m.form != nil {
		data.Form = &views.EditFormData{
			Title:  m.form.title.View(),
			Desc:   m.form.desc.View(),
			Labels: m.form.labels.View(),
			Due:    m.form.due.View(),
		}
		data.EditingID = m.form.cardID
		data.AddingTo = m.form.list
	}

	body := []string{views.RenderBoard(data, th)}
	if prompt := m.renderPrompt(); prompt != "" {
		body = append(body, prompt)
	}
	if m.HelpVisible {
		body = append(body, m.renderHelpView())
	}

	summary := views.FilterSummary(criteria.Search, criteria.Label, criteria.Overdue)
	if !criteria.IsZero() {
		summary += fmt.Sprintf(" (%d of %d)", filter.Count(data.Columns), m.session.Board().Cards.Len())
	}
	app := views.AppData{
		Header:       fmt.Sprintf("taskflow | %s | today %s | theme %s", summary, today, m.Theme),
		Body:         strings.Join(body, "\n"),
		StatusLine:   m.Status.Text,
		IsError:      m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       m.footer(),
	}
	if m.Mode == ModeDetail {
		app.Overlay = m.detail.View() + "\n" + th.Muted.Render("esc close | j/k scroll")
	}
	return views.RenderApp(app, th)
}

func (m Model) renderPrompt() string {
	switch m.Mode {
	case ModeSearch:
		return views.RenderPrompt("search", m.filterInput.View())
	case ModeLabel:
		return views.RenderPrompt("label", m.filterInput.View())
	case ModeImport:
		return views.RenderPrompt("import file", m.importInput.View())
	case ModePalette:
		return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	case ModeConfirm:
		return fmt.Sprintf("Delete %q? (y/n)", views.Sanitize(m.confirm.Title))
	case ModeDrag:
		if target, ok := m.listAt(m.DropCol); ok {
			return "drop into " + target.Title() + " (h/l choose, space drop, esc cancel)"
		}
	}
	return ""
}

func (m Model) footer() string {
	switch m.Mode {
	case ModeForm:
		return "tab next field | enter save | ctrl+s save | esc cancel"
	case ModeDrag:
		return "h/l choose list | space/enter drop | esc cancel"
	default:
		return "n add | e edit | H/L move | d delete | space drag | enter open | s search | f label | o overdue | / cmd | ? help | q quit"
	}
}

func (m Model) listAt(col int) (model.ListID, bool) {
	cols := m.session.Columns()
	if col < 0 || col >= len(cols) {
		return "", false
	}
	return cols[col].List, true
}
