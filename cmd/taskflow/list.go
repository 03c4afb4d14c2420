package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
	"github.com/spf13/cobra"
)

type filterFlags struct {
	search  string
	label   string
	overdue bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "only cards whose title contains this text")
	cmd.Flags().StringVar(&f.label, "label", "", "only cards with a label containing this text")
	cmd.Flags().BoolVar(&f.overdue, "overdue", false, "only overdue cards")
}

func (f filterFlags) criteria() filter.Criteria {
	return filter.NewCriteria(f.search, f.label, f.overdue)
}

type columnJSON struct {
	List  model.ListID `json:"list"`
	Title string       `json:"title"`
	Cards []model.Card `json:"cards"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		ff     filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the board, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := ff.criteria()
			a.session.SetCriteria(criteria)
			cols := a.session.Columns()
			out := cmd.OutOrStdout()
			if asJSON {
				return writeColumnsJSON(out, cols)
			}
			writeColumns(out, cols, a.session.Today())
			if !criteria.IsZero() {
				faint.Fprintf(out, "\n%d of %d cards match\n", filter.Count(cols), a.session.Board().Cards.Len())
			}
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func writeColumnsJSON(w io.Writer, cols []filter.Column) error {
	view := make([]columnJSON, 0, len(cols))
	for _, col := range cols {
		cards := col.Cards
		if cards == nil {
			cards = []model.Card{}
		}
		view = append(view, columnJSON{List: col.List, Title: col.Title, Cards: cards})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func writeColumns(w io.Writer, cols []filter.Column, today string) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		cyan.Fprintf(w, "%s (%d)\n", views.Sanitize(col.Title), len(col.Cards))
		if len(col.Cards) == 0 {
			faint.Fprintln(w, "  no cards")
			continue
		}
		for _, card := range col.Cards {
			fmt.Fprintf(w, "  %-16s %s", views.Sanitize(card.ID), views.Sanitize(card.Title))
			if len(card.Labels) > 0 {
				faint.Fprintf(w, "  [%s]", views.Sanitize(strings.Join(card.Labels, ", ")))
			}
			if card.Due != "" {
				if filter.IsOverdue(card.Due, today) {
					red.Fprintf(w, "  due %s (overdue)", card.Due)
				} else {
					green.Fprintf(w, "  due %s", card.Due)
				}
			}
			fmt.Fprintln(w)
		}
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one card with its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, ok := a.session.Card(args[0])
			if !ok {
				return board.ErrCardNotFound
			}
			th := views.ThemeFor(a.darkTheme())
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderDetail(card, a.session.Today(), th, 80))
			return nil
		},
	}
}
