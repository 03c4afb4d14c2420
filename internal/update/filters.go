package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/render"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

func (m *Model) openFilter(mode Mode, current string) {
	m.Mode = mode
	m.filterInput.Prompt = "> "
	m.filterInput.SetValue(current)
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
}

// handleFilterKey applies the search or label text on every keystroke.
func (m Model) handleFilterKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.filterInput.Blur()
		m.Mode = ModeBoard
		return m
	case "esc":
		m.filterInput.SetValue("")
		m.applyFilterInput()
		m.filterInput.Blur()
		m.Mode = ModeBoard
		return m
	}
	m.filterInput, _ = m.filterInput.Update(msg)
	m.applyFilterInput()
	return m
}

func (m *Model) applyFilterInput() {
	switch m.Mode {
	case ModeSearch:
		m.session.SetSearch(m.filterInput.Value())
	case ModeLabel:
		m.session.SetLabelFilter(m.filterInput.Value())
	}
}

func (m Model) handleImportKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.importInput.Blur()
		m.Mode = ModeBoard
		return m
	case "enter":
		path := strings.TrimSpace(m.importInput.Value())
		m.importInput.Blur()
		m.Mode = ModeBoard
		if path == "" {
			path = board.ExportFileName
		}
		if err := m.importFrom(path); err != nil {
			m.notify("Import", m.Status.Text, "error")
		}
		return m
	}
	m.importInput, _ = m.importInput.Update(msg)
	return m
}

// importFrom reads the whole file before handing it to the session.
func (m *Model) importFrom(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("import failed: %v", err), IsError: true}
		return err
	}
	if err := m.session.ImportBoard(m.ctx, raw); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return err
	}
	m.Col, m.Row = 0, 0
	m.Status = StatusBar{Text: "imported " + path}
	return nil
}

// exportTo writes the board JSON; an empty path means the default file
// in the export directory.
func (m *Model) exportTo(path string) (string, error) {
	if path == "" {
		path = filepath.Join(m.exportDir, board.ExportFileName)
	}
	raw, err := m.session.ExportBoard()
	if err == nil {
		err = render.WriteFileAtomic(path, append(raw, '\n'))
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("export failed: %v", err), IsError: true}
		return "", err
	}
	m.Status = StatusBar{Text: "exported to " + path}
	return path, nil
}

var errUnknownTheme = errors.New("unknown theme")

func (m *Model) setTheme(mode string) (storage.Theme, error) {
	next := m.Theme
	switch mode {
	case "toggle":
		if m.Theme == storage.ThemeDark {
			next = storage.ThemeLight
		} else {
			next = storage.ThemeDark
		}
	default:
		t, err := storage.ParseTheme(mode)
		if err != nil {
			return m.Theme, errUnknownTheme
		}
		next = t
	}
	m.Theme = next
	if m.themes != nil {
		if err := m.themes.SetTheme(m.ctx, next); err != nil {
			m.logger.Warn("save theme failed", "err", err)
		}
	}
	m.Status = StatusBar{Text: "theme " + string(next)}
	return next, nil
}
