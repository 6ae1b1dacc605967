package tui

import "github.com/charmbracelet/lipgloss"

// renderHelp draws the full key reference, centered. Any key closes it.
func renderHelp(m *Model, width, height int) string {
	h := m.help
	h.ShowAll = true
	h.Width = maxInt(width-8, 20)

	box := helpBoxStyle.Render(
		helpTitleStyle.Render("Keys  ·  editing | viewing | inspecting") + "\n" +
			h.View(m.keys) + "\n\n" +
			hintDescStyle.Render("press any key to close"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
