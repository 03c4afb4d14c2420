package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidList = errors.New("model: invalid list")
	ErrInvalidDue  = errors.New("model: invalid due date")
	ErrInvalidCard = errors.New("model: invalid card")
	ErrNoTitle     = errors.New("model: card title is required")
)

// DateLayout is the ISO calendar date format used for due dates.
const DateLayout = "2006-01-02"

type ListID string

const (
	ListBacklog    ListID = "backlog"
	ListInProgress ListID = "inprogress"
	ListDone       ListID = "done"
)

// DefaultLists returns the fixed list order of a fresh board.
func DefaultLists() []ListID {
	return []ListID{ListBacklog, ListInProgress, ListDone}
}

// Title is the heading shown for a list.
func (l ListID) Title() string {
	switch l {
	case ListBacklog:
		return "Backlog"
	case ListInProgress:
		return "In Progress"
	case ListDone:
		return "Done"
	default:
		return string(l)
	}
}

type Card struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Desc    string   `json:"desc"`
	Labels  []string `json:"labels"`
	Due     string   `json:"due"`
	List    ListID   `json:"list"`
	Editing bool     `json:"editing,omitempty"`
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: card id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrNoTitle
	}
	for _, label := range c.Labels {
		if label == "" || label != strings.TrimSpace(label) {
			return fmt.Errorf("%w: label %q must be trimmed and non-empty", ErrInvalidCard, label)
		}
	}
	if !ValidDue(c.Due) {
		return fmt.Errorf("%w: %q", ErrInvalidDue, c.Due)
	}
	return nil
}

func (c Card) clone() Card {
	out := c
	if c.Labels != nil {
		out.Labels = make([]string, len(c.Labels))
		copy(out.Labels, c.Labels)
	}
	return out
}

// ValidDue reports whether due is empty or a YYYY-MM-DD date.
func ValidDue(due string) bool {
	if due == "" {
		return true
	}
	if len(due) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, due)
	return err == nil
}

// SplitLabels turns comma separated user input into trimmed labels,
// keeping order and duplicates and dropping empty entries.
func SplitLabels(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// CleanLabels applies the SplitLabels rules to already separated labels.
func CleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}

type Board struct {
	Lists []ListID `json:"lists"`
	Cards Cards    `json:"cards"`
}

// NewBoard returns a board with the default lists and no cards.
func NewBoard() *Board {
	return &Board{Lists: DefaultLists()}
}

func (b *Board) HasList(id ListID) bool {
	for _, l := range b.Lists {
		if l == id {
			return true
		}
	}
	return false
}

// ListIndex returns the position of id in the list order, or -1.
func (b *Board) ListIndex(id ListID) int {
	for i, l := range b.Lists {
		if l == id {
			return i
		}
	}
	return -1
}

func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	return &Board{
		Lists: append([]ListID(nil), b.Lists...),
		Cards: b.Cards.Clone(),
	}
}

// Validate checks the structural invariants every stored or imported
// board must hold. Card titles are not checked here.
func (b *Board) Validate() error {
	if len(b.Lists) == 0 {
		return fmt.Errorf("%w: board has no lists", ErrInvalidList)
	}
	seen := make(map[ListID]bool, len(b.Lists))
	for _, l := range b.Lists {
		if strings.TrimSpace(string(l)) == "" {
			return fmt.Errorf("%w: empty list id", ErrInvalidList)
		}
		if seen[l] {
			return fmt.Errorf("%w: duplicate list %q", ErrInvalidList, l)
		}
		seen[l] = true
	}
	for _, id := range b.Cards.IDs() {
		card, _ := b.Cards.Get(id)
		if card.ID != id {
			return fmt.Errorf("%w: key %q holds card with id %q", ErrInvalidCard, id, card.ID)
		}
		if !seen[card.List] {
			return fmt.Errorf("%w: card %q is in unknown list %q", ErrInvalidList, id, card.List)
		}
	}
	return nil
}
