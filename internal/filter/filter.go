// Package filter decides which cards are visible under the current
// search, label and overdue criteria.
package filter

import (
	"strings"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Criteria holds the lowercased filter inputs. The zero value shows every card.
type Criteria struct {
	Search  string
	Label   string
	Overdue bool
}

// NewCriteria normalizes raw user input.
func NewCriteria(search, label string, overdue bool) Criteria {
	return Criteria{
		Search:  strings.ToLower(search),
		Label:   strings.ToLower(label),
		Overdue: overdue,
	}
}

func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Label == "" && !c.Overdue
}

// IsOverdue reports whether due is set and strictly before today. Both are
// YYYY-MM-DD strings, so lexical order is chronological order.
func IsOverdue(due, today string) bool {
	return due != "" && due < today
}

// IsVisible applies every non-empty criterion; all of them must pass.
func IsVisible(card model.Card, c Criteria, today string) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(card.Title), c.Search) {
		return false
	}
	if c.Label != "" && !anyLabelContains(card.Labels, c.Label) {
		return false
	}
	if c.Overdue && !IsOverdue(card.Due, today) {
		return false
	}
	return true
}

func anyLabelContains(labels []string, needle string) bool {
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l), needle) {
			return true
		}
	}
	return false
}
