package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range boardBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func boardBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "h/l", Action: "previous/next list"},
		{Key: "j/k", Action: "previous/next card"},
		{Key: "n", Action: "add card to this list"},
		{Key: "e", Action: "edit card"},
		{Key: "H/L", Action: "move card left/right"},
		{Key: "d", Action: "delete card (y/n)"},
		{Key: "space", Action: "pick up card, then h/l and space to drop"},
		{Key: "enter", Action: "open card details"},
		{Key: "s", Action: "search titles"},
		{Key: "f", Action: "filter by label"},
		{Key: "o", Action: "toggle overdue only"},
		{Key: "x", Action: "export board"},
		{Key: "i", Action: "import board"},
		{Key: "t", Action: "toggle theme"},
		{Key: "/", Action: "open command palette"},
		{Key: "?", Action: "toggle help panel"},
		{Key: "q", Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(boardBindings()))
	for _, kb := range boardBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
