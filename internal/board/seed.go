package board

import "github.com/sandeepkv93/taskflow/internal/model"

// demoCards returns the cards shown on a brand new board, one per list.
// Due dates are relative to now.
func demoCards(clock model.Clock) []model.Card {
	now := clock.Now()
	tomorrow := model.FormatDate(model.AddDays(now, 1))
	yesterday := model.FormatDate(model.AddDays(now, -1))
	return []model.Card{
		{
			ID:     "c-1",
			Title:  "Design homepage",
			Desc:   "Create a modern landing page layout.",
			Labels: []string{"design", "ui"},
			Due:    tomorrow,
			List:   model.ListBacklog,
		},
		{
			ID:     "c-2",
			Title:  "Fix login bug",
			Desc:   "Resolve user session issue on Safari.",
			Labels: []string{"bug", "urgent"},
			Due:    yesterday,
			List:   model.ListInProgress,
		},
		{
			ID:     "c-3",
			Title:  "Write documentation",
			Desc:   "Add setup steps to README.md",
			Labels: []string{"docs"},
			Due:    "",
			List:   model.ListDone,
		},
	}
}
