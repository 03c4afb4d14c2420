package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/render"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.session.ExportBoard()
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			raw = append(raw, '\n')
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := render.WriteFileAtomic(out, raw); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			success(cmd.OutOrStdout(), "Exported board to %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", board.ExportFileName, `output file, "-" for stdout`)
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with an exported JSON file",
		Long:  `The file is validated as a whole; on any error the current board is kept. Use "-" to read stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			if err := a.session.ImportBoard(cmd.Context(), raw); err != nil {
				return err
			}
			b := a.session.Board()
			success(cmd.OutOrStdout(), "Imported %d cards in %d lists", b.Cards.Len(), len(b.Lists))
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		out string
		ff  filterFlags
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the board as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.SetCriteria(ff.criteria())
			page, err := render.RenderPage(render.PageData{
				Board:    a.session.Board(),
				Criteria: a.session.Criteria(),
				Today:    a.session.Today(),
				Dark:     a.darkTheme(),
			})
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(page)
				return err
			}
			if err := render.WriteFileAtomic(out, page); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			success(cmd.OutOrStdout(), "Rendered board to %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "board.html", `output file, "-" for stdout`)
	ff.register(cmd)
	return cmd
}
