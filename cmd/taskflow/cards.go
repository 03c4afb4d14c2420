package main

import (
	"errors"
	"strings"

	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var in board.CardInput
	cmd := &cobra.Command{
		Use:   "add <list> <title...>",
		Short: "Add a card to a list",
		Example: `  taskflow add backlog Write release notes --labels docs --due 2026-03-01
  taskflow add inprogress "Fix flaky test"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args[1:], " ")
			list := model.ListID(strings.ToLower(args[0]))
			card, err := a.session.AddCard(cmd.Context(), list, in)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Added %s to %s (%s)", card.Title, card.List.Title(), card.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Desc, "desc", "", "description")
	cmd.Flags().StringVar(&in.Labels, "labels", "", "comma separated labels")
	cmd.Flags().StringVar(&in.Due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var in board.CardInput
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the fields of a card",
		Long:  "Only the fields given as flags change; the others keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, ok := a.session.Card(args[0])
			if !ok {
				return board.ErrCardNotFound
			}
			next := board.CardInput{
				Title:     card.Title,
				Desc:      card.Desc,
				LabelList: card.Labels,
				Due:       card.Due,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				next.Title = in.Title
			}
			if flags.Changed("desc") {
				next.Desc = in.Desc
			}
			if flags.Changed("labels") {
				next.Labels, next.LabelList = in.Labels, nil
			}
			if flags.Changed("due") {
				next.Due = in.Due
			}
			card, err := a.session.EditCard(cmd.Context(), card.ID, next)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Saved %s (%s)", card.Title, card.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "new title")
	cmd.Flags().StringVar(&in.Desc, "desc", "", "new description")
	cmd.Flags().StringVar(&in.Labels, "labels", "", "new comma separated labels")
	cmd.Flags().StringVar(&in.Due, "due", "", "new due date (YYYY-MM-DD, empty clears)")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "move <id> left|right",
		Short:     "Move a card to the neighbouring list",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"left", "right"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := board.Direction(strings.ToLower(args[1]))
			if !dir.IsValid() {
				return errors.New("direction must be left or right")
			}
			card, err := a.session.MoveCard(cmd.Context(), args[0], dir)
			if errors.Is(err, board.ErrAtBoundary) {
				warning(cmd.OutOrStdout(), "%s is already at the %s edge", args[0], dir)
				return nil
			}
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Moved %s to %s", card.Title, card.List.Title())
			return nil
		},
	}
}

func newDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <id> <list>",
		Short: "Put a card straight into any list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := a.session.DropCard(cmd.Context(), args[0], model.ListID(strings.ToLower(args[1])))
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Dropped %s into %s", card.Title, card.List.Title())
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes {
				a.confirmer = board.AlwaysConfirm
			}
			err := a.session.DeleteCard(cmd.Context(), args[0])
			if errors.Is(err, board.ErrNotConfirmed) {
				warning(cmd.OutOrStdout(), "Kept %s", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
