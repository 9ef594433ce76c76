package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ostimeline/internal/model"
	"ostimeline/internal/timeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	decadeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true) // Sky Blue/Cyan

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	chipOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	chipOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	chipCursorStyle = lipgloss.NewStyle().
			Underline(true).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	activeColor = lipgloss.Color("205")
	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Loading timeline... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	header := m.headerView()
	leftWidth, rightWidth, interiorHeight := m.layout()

	// LEFT PANEL: Timeline
	var leftView strings.Builder
	leftView.WriteString(panelTitleStyle.Render(fmt.Sprintf("Timeline (%d)", len(m.Filtered))))
	leftView.WriteString("\n\n")

	if len(m.rows) == 0 {
		leftView.WriteString(dimStyle.Render("No results. Try widening filters."))
	}

	// Header is 2 lines (Title + 1 blank line)
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.rows)

	if len(m.rows) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.rows) {
			startIdx = len(m.rows) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		r := m.rows[i]
		if r.Header {
			leftView.WriteString(decadeStyle.Render(fmt.Sprintf("%ds", r.Decade)))
			leftView.WriteString("\n")
			continue
		}

		icon := model.IconCollapsed
		if r.Entry.ID == m.Expanded {
			icon = model.IconExpanded
		}
		line := fmt.Sprintf(" %s %-9s %s", icon, r.Entry.Span(), r.Entry.Name)
		line = truncate(line, leftWidth-2)

		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	lBorderColor := borderColor
	if m.Focus == FocusList {
		lBorderColor = activeColor
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lBorderColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: Details
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.DetailsViewport.View())

	// Footer
	help := "↑/↓: Navigate • Enter: Details • /: Search • t/f: Types/Families • [ ] { } < >: Years • r: Reset • e: Export • ?: Help • q: Quit"
	switch m.Focus {
	case FocusTypes, FocusFamilies:
		help = "←/→: Choose • Space: Toggle (first click isolates, second resets) • Tab: Next • Esc: Back to list • q: Quit"
	}
	footer := "\n" + dimStyle.Render(help)
	if m.InputMode {
		footer = fmt.Sprintf("\nSearch: %s", m.InputBuffer.View())
	}

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

// headerView renders the title, filter summary and both chip bars.
func (m AppModel) headerView() string {
	width := m.WindowSize.Width
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Kernels & Operating Systems Timeline"))
	sb.WriteString("  ")
	sb.WriteString(dimStyle.Render(timeline.Describe(m.State)))
	if m.Status != "" {
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(m.Status))
	}
	sb.WriteString("\n")

	typeLabels := make([]string, len(model.Types))
	for i, t := range model.Types {
		typeLabels[i] = string(t)
	}
	familyLabels := make([]string, len(model.Families))
	for i, f := range model.Families {
		familyLabels[i] = string(f)
	}

	typeOn := func(i int) bool { return m.State.Types.Has(model.Types[i]) }
	familyOn := func(i int) bool { return m.State.Families.Has(model.Families[i]) }

	sb.WriteString(m.chipBar("Types   ", typeLabels, typeOn, m.Focus == FocusTypes, width))
	sb.WriteString("\n")
	sb.WriteString(m.chipBar("Families", familyLabels, familyOn, m.Focus == FocusFamilies, width))
	return sb.String()
}

func (m AppModel) chipBar(label string, labels []string, on func(int) bool, focused bool, width int) string {
	chips := make([]string, len(labels))
	for i, l := range labels {
		icon := model.IconUnselected
		style := chipOffStyle
		if on(i) {
			icon = model.IconSelected
			style = chipOnStyle
		}
		text := icon + " " + l
		if focused && i == m.ChipIdx {
			text = chipCursorStyle.Render(text)
		}
		chips[i] = style.Render(text)
	}

	labelStyle := dimStyle
	if focused {
		labelStyle = panelTitleStyle
	}
	return lipgloss.NewStyle().Width(width).Render(labelStyle.Render(label) + " " + strings.Join(chips, " "))
}

// layout returns panel widths and the interior height shared by both
// panels.
func (m AppModel) layout() (leftWidth, rightWidth, interiorHeight int) {
	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	netWidth := m.WindowSize.Width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth = netWidth * 2 / 5
	rightWidth = netWidth - leftWidth

	// Header block, two border lines, footer
	boxHeight := m.WindowSize.Height - lipgloss.Height(m.headerView()) - 3
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight = boxHeight - 2
	return leftWidth, rightWidth, interiorHeight
}

func (m *AppModel) resizeDetails() {
	_, rightWidth, interiorHeight := m.layout()
	m.DetailsViewport.Width = rightWidth
	m.DetailsViewport.Height = interiorHeight
	m.refreshDetails()
}

func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.detailsContent())
	m.DetailsViewport.GotoTop()
}

// detailsContent renders the selected entry for the right panel.
func (m AppModel) detailsContent() string {
	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render("Details"))
	sb.WriteString("\n")

	e, ok := m.Selected()
	if !ok {
		sb.WriteString("\nNo entry selected.")
		return sb.String()
	}

	wrap := lipgloss.NewStyle().Width(max(m.DetailsViewport.Width-2, 10))

	platforms := make([]string, len(e.Platform))
	for i, p := range e.Platform {
		platforms[i] = string(p)
	}
	span := e.Span()
	if e.YearEnd == nil {
		span += " " + model.IconOngoing
	}

	sb.WriteString(fmt.Sprintf("\n%s\n", lipgloss.NewStyle().Bold(true).Render(e.Name)))
	sb.WriteString(fmt.Sprintf("Type:       %s\n", e.Type))
	sb.WriteString(fmt.Sprintf("Family:     %s\n", e.Family))
	sb.WriteString(fmt.Sprintf("Years:      %s\n", span))
	sb.WriteString(fmt.Sprintf("Platforms:  %s\n", strings.Join(platforms, ", ")))
	sb.WriteString("\n")
	sb.WriteString(wrap.Render(e.Description))
	sb.WriteString("\n")

	if m.Expanded != e.ID {
		sb.WriteString(dimStyle.Render("\nPress Enter for highlights, versions and related systems."))
		return sb.String()
	}

	sb.WriteString("\n--- Highlights ---\n")
	if len(e.Highlights) == 0 {
		sb.WriteString("—\n")
	}
	for _, h := range e.Highlights {
		sb.WriteString("  • " + h + "\n")
	}

	sb.WriteString("\n--- Notable Versions ---\n")
	if len(e.Versions) == 0 {
		sb.WriteString("—\n")
	}
	for _, v := range e.Versions {
		sb.WriteString(fmt.Sprintf("  %s (%d)\n", v.Version, v.Year))
		if v.Notes != "" {
			sb.WriteString(dimStyle.Render(wrap.Render("    "+v.Notes)) + "\n")
		}
	}

	if m.Dataset != nil {
		if related := m.Dataset.Related(e); len(related) > 0 {
			sb.WriteString("\n--- Related ---\n")
			for _, r := range related {
				sb.WriteString(fmt.Sprintf("  %s %s (%s)\n", model.IconRelated, r.Name, r.Span()))
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := m.helpHeight()

	lines := strings.Split(strings.ReplaceAll(HelpText, "{{VERSION}}", model.Version), "\n")
	contentHeight := m.helpContentHeight()

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}

	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	content := strings.Join(lines[startY:endY], "\n")

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) helpHeight() int {
	helpHeight := m.WindowSize.Height - 6
	if helpHeight < 5 {
		helpHeight = 5
	}
	return helpHeight
}

// helpContentHeight is the dialog height less title and border.
func (m AppModel) helpContentHeight() int {
	return m.helpHeight() - 2
}

func truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, LoadDatasetCmd(m.DataFile))
}
