package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskflow/internal/board"
)

// Mirror keeps an HTML file in step with a session.
type Mirror struct {
	session *board.Session
	path    string
	dark    func() bool
	logger  *log.Logger
}

// NewMirror returns a mirror writing to path. dark reports the current
// theme and may be nil.
func NewMirror(session *board.Session, path string, dark func() bool, logger *log.Logger) *Mirror {
	if dark == nil {
		dark = func() bool { return false }
	}
	return &Mirror{session: session, path: path, dark: dark, logger: logger}
}

// Start writes the page once and again after every change. The returned
// func stops the mirror.
func (m *Mirror) Start() (stop func(), err error) {
	if err := m.Write(); err != nil {
		return nil, err
	}
	return m.session.Subscribe(func(board.Change) {
		if err := m.Write(); err != nil && m.logger != nil {
			m.logger.Warn("html mirror write failed", "path", m.path, "err", err)
		}
	}), nil
}

// Write renders the current session state to the mirror file.
func (m *Mirror) Write() error {
	page, err := RenderPage(PageData{
		Board:    m.session.Board(),
		Criteria: m.session.Criteria(),
		Today:    m.session.Today(),
		Dark:     m.dark(),
	})
	if err != nil {
		return err
	}
	return WriteFileAtomic(m.path, page)
}

// WriteFileAtomic writes data to a temp file beside path and renames it
// into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
