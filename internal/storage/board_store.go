package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Fixed keys of the persisted board and theme preference.
const (
	BoardKey = "taskflow:v1"
	ThemeKey = "theme"
)

var ErrInvalidTheme = errors.New("storage: invalid theme")

type LoadStatus string

const (
	LoadFound    LoadStatus = "found"
	LoadNotFound LoadStatus = "not_found"
	LoadCorrupt  LoadStatus = "corrupt"
)

// LoadResult reports which path Load took. Err is set only for
// LoadCorrupt and is informational: callers fall back to defaults.
type LoadResult struct {
	Status LoadStatus
	Board  *model.Board
	Err    error
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

// BoardStore persists the whole board document as JSON under BoardKey.
type BoardStore struct {
	kv KV
}

func NewBoardStore(kv KV) *BoardStore {
	return &BoardStore{kv: kv}
}

func (s *BoardStore) Save(ctx context.Context, b *model.Board) error {
	raw, err := model.EncodeBoard(b)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := s.kv.Set(ctx, BoardKey, raw); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

func (s *BoardStore) Load(ctx context.Context) LoadResult {
	raw, err := s.kv.Get(ctx, BoardKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoadResult{Status: LoadNotFound}
		}
		return LoadResult{Status: LoadCorrupt, Err: fmt.Errorf("read board: %w", err)}
	}
	if strings.TrimSpace(string(raw)) == "" || strings.TrimSpace(string(raw)) == "null" {
		return LoadResult{Status: LoadNotFound}
	}
	board, err := model.ParseBoard(raw)
	if err != nil {
		return LoadResult{Status: LoadCorrupt, Err: err}
	}
	return LoadResult{Status: LoadFound, Board: board}
}

// Theme returns the stored preference; ok is false when none (or an
// unrecognized value) is stored.
func (s *BoardStore) Theme(ctx context.Context) (Theme, bool) {
	raw, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", false
	}
	t, err := ParseTheme(string(raw))
	if err != nil {
		return "", false
	}
	return t, true
}

func (s *BoardStore) SetTheme(ctx context.Context, t Theme) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
	return s.kv.Set(ctx, ThemeKey, []byte(t))
}
