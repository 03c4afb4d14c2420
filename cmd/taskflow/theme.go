package main

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/spf13/cobra"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the stored theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, ok := a.store.Theme(ctx)
			if len(args) == 0 {
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "unset (follows the terminal background)")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			var next storage.Theme
			switch mode := strings.ToLower(args[0]); mode {
			case "toggle":
				next = storage.ThemeDark
				if current == storage.ThemeDark {
					next = storage.ThemeLight
				}
			default:
				t, err := storage.ParseTheme(mode)
				if err != nil {
					return err
				}
				next = t
			}
			if err := a.store.SetTheme(ctx, next); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			success(cmd.OutOrStdout(), "Theme set to %s", next)
			return nil
		},
	}
}
