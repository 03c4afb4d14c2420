package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/config"
	"github.com/sandeepkv93/taskflow/internal/logging"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/render"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configFile string
	dataDir    string
	backend    string
	ephemeral  bool
	logLevel   string

	cfg        config.RuntimeConfig
	logger     *log.Logger
	closeLog   func() error
	kv         storage.KV
	store      *storage.BoardStore
	session    *board.Session
	loc        *time.Location
	confirmer  board.Confirmer
	stopMirror func()
	in         *bufio.Reader
	out        io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "taskflow",
		Short: "A personal Kanban board",
		Long: `taskflow keeps cards in Backlog, In Progress and Done lists.

Run without a subcommand to open the interactive board. Every board
command is also available non-interactively.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.bootstrap,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: a.runTUI,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: taskflow.yaml in the data dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/taskflow)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: sqlite, redis, file or memory")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep the board in memory only")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newTUICmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newMoveCmd(a),
		newDropCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newRenderCmd(a),
		newThemeCmd(a),
	)
	return root
}

// bootstrap loads config, then opens the logger, the store and the session.
func (a *app) bootstrap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.in = bufio.NewReader(cmd.InOrStdin())
	a.out = cmd.OutOrStdout()

	flags := map[string]any{}
	if cmd.Flags().Changed("backend") {
		flags[config.KeyBackend] = a.backend
	}
	if a.ephemeral {
		flags[config.KeyBackend] = string(storage.BackendMemory)
	}
	if cmd.Flags().Changed("log-level") {
		flags[config.KeyLogLevel] = a.logLevel
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, DataDir: a.dataDir, Flags: flags})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	var fallback io.Writer = cmd.ErrOrStderr()
	if isTUI(cmd) {
		fallback = io.Discard
	}
	a.logger, a.closeLog, err = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Fallback: fallback})
	if err != nil {
		return err
	}

	a.loc, err = cfg.Location()
	if err != nil {
		return err
	}
	clock := model.SystemClock{Location: a.loc}
	ids, err := board.NewIDGenerator(cfg.IDScheme, clock)
	if err != nil {
		return err
	}

	a.kv, err = storage.Open(ctx, storage.Options{
		Backend:        storage.Backend(cfg.Backend),
		DataDir:        cfg.DataDir,
		RedisAddr:      cfg.RedisAddr,
		RedisPassword:  cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		RedisNamespace: cfg.RedisNamespace,
	})
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	a.store = storage.NewBoardStore(a.kv)
	a.logger.Debug("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	a.confirmer = board.ConfirmFunc(a.prompt)
	a.session = board.Open(ctx, a.store, board.Options{
		IDs:   ids,
		Clock: clock,
		// Indirect so the TUI can swap in its own y/n gate.
		Confirmer: board.ConfirmFunc(func(p string) bool { return a.confirmer.Confirm(p) }),
		Logger:    a.logger,
	})
	a.logger.Debug("board loaded", "status", a.session.LoadResult().Status)

	if cfg.HTMLMirror != "" {
		mirror := render.NewMirror(a.session, cfg.HTMLMirror, a.darkTheme, a.logger)
		stop, err := mirror.Start()
		if err != nil {
			a.logger.Warn("html mirror disabled", "path", cfg.HTMLMirror, "err", err)
		} else {
			a.stopMirror = stop
		}
	}
	return nil
}

func (a *app) close() error {
	if a.stopMirror != nil {
		a.stopMirror()
		a.stopMirror = nil
	}
	var firstErr error
	if a.kv != nil {
		firstErr = a.kv.Close()
		a.kv = nil
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.closeLog = nil
	}
	return firstErr
}

func (a *app) darkTheme() bool {
	t, ok := a.store.Theme(context.Background())
	return ok && t == storage.ThemeDark
}

// prompt asks a y/N question on the command's input.
func (a *app) prompt(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}
