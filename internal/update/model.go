package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskflow/internal/board"
	"github.com/sandeepkv93/taskflow/internal/logging"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

type Mode string

const (
	ModeBoard   Mode = "board"
	ModeForm    Mode = "form"
	ModeConfirm Mode = "confirm"
	ModeDrag    Mode = "drag"
	ModeDetail  Mode = "detail"
	ModeSearch  Mode = "search"
	ModeLabel   Mode = "label"
	ModeImport  Mode = "import"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// ThemeStore keeps the light/dark preference.
type ThemeStore interface {
	Theme(ctx context.Context) (storage.Theme, bool)
	SetTheme(ctx context.Context, t storage.Theme) error
}

// ConfirmGate is the Confirmer the board session asks before deleting.
// The y/n prompt approves it for exactly one call.
type ConfirmGate struct {
	approved bool
}

func NewConfirmGate() *ConfirmGate { return &ConfirmGate{} }

func (g *ConfirmGate) Confirm(string) bool {
	ok := g.approved
	g.approved = false
	return ok
}

func (g *ConfirmGate) approve() { g.approved = true }

type Deps struct {
	Session   *board.Session
	Gate      *ConfirmGate
	Themes    ThemeStore
	Scheduler *scheduler.Engine
	Notifier  DesktopNotifier
	// DesktopEnabled forwards notifications to Notifier.
	DesktopEnabled bool
	Location       *time.Location
	ExportDir      string
	Logger         *log.Logger
	// DarkBackground is used when no theme preference is stored.
	DarkBackground bool
}

type pendingDelete struct {
	CardID string
	Title  string
}

type cardForm struct {
	list   model.ListID
	cardID string
	title  textinput.Model
	desc   textarea.Model
	labels textinput.Model
	due    textinput.Model
	focus  int
	// saved labels of the edited card, reused while the field is untouched
	savedLabels    []string
	savedLabelText string
}

const formFields = 4

// changeFeed collects session notifications between updates.
type changeFeed struct {
	pending bool
	last    board.Change
}

type Model struct {
	Mode           Mode
	Col            int
	Row            int
	DropCol        int
	Theme          storage.Theme
	Status         StatusBar
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Scheduler      *scheduler.Engine
	Quitting       bool
	LastError      error

	session   *board.Session
	gate      *ConfirmGate
	themes    ThemeStore
	notifier  DesktopNotifier
	logger    *log.Logger
	loc       *time.Location
	exportDir string
	ctx       context.Context
	changes   *changeFeed
	cancelSub func()

	confirm      pendingDelete
	form         *cardForm
	detailID     string
	filterInput  textinput.Model
	importInput  textinput.Model
	commandInput textinput.Model
	detail       viewport.Model
	helpModel    help.Model
	width        int
	height       int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DueMsg carries a fired due-date event into the update loop.
type DueMsg struct {
	Event scheduler.DueEvent
}

func New(deps Deps) Model {
	m := Model{
		Mode:           ModeBoard,
		DropCol:        -1,
		DesktopEnabled: deps.DesktopEnabled,
		Scheduler:      deps.Scheduler,
		session:        deps.Session,
		gate:           deps.Gate,
		themes:         deps.Themes,
		notifier:       deps.Notifier,
		logger:         deps.Logger,
		loc:            deps.Location,
		exportDir:      deps.ExportDir,
		ctx:            context.Background(),
		changes:        &changeFeed{},
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.exportDir == "" {
		m.exportDir = "."
	}
	m.Theme = storage.ThemeLight
	if deps.DarkBackground {
		m.Theme = storage.ThemeDark
	}
	if m.themes != nil {
		if t, ok := m.themes.Theme(m.ctx); ok {
			m.Theme = t
		}
	}
	m.initBubbleComponents()

	feed := m.changes
	m.cancelSub = m.session.Subscribe(func(c board.Change) {
		feed.pending = true
		feed.last = c
	})
	m.syncWatcher()
	m.resumeEditing()
	return m
}

func (m *Model) initBubbleComponents() {
	m.filterInput = textinput.New()
	m.filterInput.CharLimit = 128
	m.filterInput.Width = 32

	m.importInput = textinput.New()
	m.importInput.Placeholder = board.ExportFileName
	m.importInput.CharLimit = 512
	m.importInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detail = viewport.New(72, 16)
}

// Close releases the session subscription and empties the due watcher.
func (m Model) Close() {
	if m.cancelSub != nil {
		m.cancelSub()
	}
	if m.Scheduler == nil {
		return
	}
	if n := m.Scheduler.Dropped(); n > 0 {
		m.logger.Warn("due events dropped", "count", n)
	}
	m.logger.Debug("clearing due watcher", "pending", m.Scheduler.Pending())
	m.Scheduler.Clear()
}

// Session exposes the board session driven by the model.
func (m Model) Session() *board.Session { return m.session }

// resumeEditing reopens the edit form of a card that was saved mid-edit.
func (m *Model) resumeEditing() {
	for _, card := range m.session.Board().Cards.All() {
		if card.Editing {
			m.openEditForm(card)
			m.focusCard(card.ID)
			return
		}
	}
}
