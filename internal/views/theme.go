package views

import "github.com/charmbracelet/lipgloss"

// Theme holds every style the board is drawn with.
type Theme struct {
	Name         string
	Header       lipgloss.Style
	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	ColumnDrop   lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardDragged  lipgloss.Style
	CardTitle    lipgloss.Style
	Desc         lipgloss.Style
	Chip         lipgloss.Style
	DueOK        lipgloss.Style
	DueOverdue   lipgloss.Style
	FormLabel    lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Panel        lipgloss.Style
	Footer       lipgloss.Style
	Muted        lipgloss.Style
}

func DarkTheme() Theme {
	return newTheme("dark", palette{
		accent: "12", text: "252", muted: "8", chipFG: "0", chipBG: "110",
		ok: "10", overdue: "9", selected: "11", drag: "13",
	})
}

func LightTheme() Theme {
	return newTheme("light", palette{
		accent: "4", text: "235", muted: "245", chipFG: "255", chipBG: "25",
		ok: "28", overdue: "160", selected: "130", drag: "90",
	})
}

// ThemeFor picks the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

type palette struct {
	accent, text, muted, chipFG, chipBG, ok, overdue, selected, drag lipgloss.Color
}

func newTheme(name string, p palette) Theme {
	base := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	card := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.muted).Padding(0, 1)
	return Theme{
		Name:         name,
		Header:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Column:       base.BorderForeground(p.muted),
		ColumnActive: base.BorderForeground(p.accent),
		ColumnDrop:   base.BorderForeground(p.drag).BorderStyle(lipgloss.DoubleBorder()),
		ColumnTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Card:         card,
		CardSelected: card.BorderForeground(p.selected),
		CardDragged:  card.BorderForeground(p.drag).BorderStyle(lipgloss.DoubleBorder()),
		CardTitle:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Desc:         lipgloss.NewStyle().Foreground(p.text),
		Chip:         lipgloss.NewStyle().Foreground(p.chipFG).Background(p.chipBG).Padding(0, 1),
		DueOK:        lipgloss.NewStyle().Foreground(p.ok),
		DueOverdue:   lipgloss.NewStyle().Bold(true).Foreground(p.overdue),
		FormLabel:    lipgloss.NewStyle().Foreground(p.muted),
		Status:       lipgloss.NewStyle().Foreground(p.ok),
		Error:        lipgloss.NewStyle().Foreground(p.overdue),
		Panel:        base.BorderForeground(p.accent),
		Footer:       lipgloss.NewStyle().Foreground(p.muted),
		Muted:        lipgloss.NewStyle().Foreground(p.muted),
	}
}
