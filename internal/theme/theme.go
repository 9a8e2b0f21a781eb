package theme

import "github.com/charmbracelet/lipgloss"

// Theme encapsulates the visual palette for the quote UI.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Accent    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Border    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpValue lipgloss.Style

	// Table cells.
	Header      lipgloss.Style
	Cell        lipgloss.Style
	ActiveCell  lipgloss.Style
	TargetCell  lipgloss.Style
	SelectedRow lipgloss.Style
	LightFilter lipgloss.Style
	Price       lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
}

// Default returns a high-contrast palette that plays nicely with common terminals.
func Default() Theme {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("210"))
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Underline(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Primary:   base.Copy().Foreground(lipgloss.Color("81")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HelpKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		HelpValue: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),

		Header:      cell.Copy().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")).Bold(true),
		Cell:        cell.Copy(),
		ActiveCell:  cell.Copy().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("117")).Bold(true),
		TargetCell:  cell.Copy().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("227")),
		SelectedRow: cell.Copy().Background(lipgloss.Color("24")),
		LightFilter: cell.Copy().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("218")),
		Price:       cell.Copy().Foreground(lipgloss.Color("42")),

		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("213")).Bold(true).Padding(0, 1),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}
