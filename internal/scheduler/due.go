package scheduler

import (
	"time"

	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// TriggerFor returns local midnight after the due date, the first instant
// at which a card due on that date counts as overdue.
func TriggerFor(due string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(model.DateLayout, due, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.AddDate(0, 0, 1), true
}

// DueEvents lists one event for every card that has a due date and is not
// overdue yet on today.
func DueEvents(cards []model.Card, today string, loc *time.Location) []DueEvent {
	out := make([]DueEvent, 0)
	for _, card := range cards {
		if card.Due == "" || filter.IsOverdue(card.Due, today) {
			continue
		}
		at, ok := TriggerFor(card.Due, loc)
		if !ok {
			continue
		}
		out = append(out, DueEvent{CardID: card.ID, Due: card.Due, TriggerAt: at})
	}
	return out
}

// Sync replaces the queue with the due events of cards.
func (e *Engine) Sync(cards []model.Card, today string, loc *time.Location) error {
	return e.replace(DueEvents(cards, today, loc))
}
