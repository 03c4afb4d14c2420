package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/update"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	watcher := scheduler.NewEngine(a.cfg.WatcherBuffer)
	watcher.Start()
	defer watcher.Stop()

	gate := update.NewConfirmGate()
	a.confirmer = gate

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = a.cfg.DataDir
	}

	m := update.New(update.Deps{
		Session:        a.session,
		Gate:           gate,
		Themes:         a.store,
		Scheduler:      watcher,
		Notifier:       notifier,
		DesktopEnabled: a.cfg.DesktopNotifications,
		Location:       a.loc,
		ExportDir:      exportDir,
		Logger:         a.logger,
		DarkBackground: lipgloss.HasDarkBackground(),
	})
	defer m.Close()

	a.logger.Info("starting interactive board", "backend", a.cfg.Backend)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
