package filter

import "github.com/sandeepkv93/taskflow/internal/model"

// Column is one list as it should be drawn: its heading and the visible
// cards in insertion order.
type Column struct {
	List  model.ListID
	Title string
	Cards []model.Card
}

// Project groups the visible cards of b by list, in the board's list order.
func Project(b *model.Board, c Criteria, today string) []Column {
	cols := make([]Column, 0, len(b.Lists))
	index := make(map[model.ListID]int, len(b.Lists))
	for i, id := range b.Lists {
		cols = append(cols, Column{List: id, Title: id.Title()})
		index[id] = i
	}
	for _, card := range b.Cards.All() {
		i, ok := index[card.List]
		if !ok || !IsVisible(card, c, today) {
			continue
		}
		cols[i].Cards = append(cols[i].Cards, card)
	}
	return cols
}

// Count returns how many cards the projection shows.
func Count(cols []Column) int {
	n := 0
	for _, col := range cols {
		n += len(col.Cards)
	}
	return n
}
