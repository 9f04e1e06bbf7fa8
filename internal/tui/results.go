package tui

import (
	"strings"

	"codeberg.org/placewise/server/api/rest/plans"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const resultsChrome = 8

// returns the results view for a plan
func NewResultsModel(plan *plans.PlanResponse, width, height int) *ResultsModel {
	t := table.New(
		table.WithColumns(allocationColumns),
		table.WithRows(allocationRows(plan)),
		table.WithFocused(true),
		table.WithHeight(max(5, height-resultsChrome)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(colorWhite).
		Background(colorDarkGray).
		Bold(false)
	t.SetStyles(styles)

	wrap := max(40, width-4)

	// falls back to plain markdown when no renderer can be built
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)

	vp := viewport.New(max(40, width), max(5, height-resultsChrome))

	m := &ResultsModel{
		plan:     plan,
		table:    t,
		viewport: vp,
		renderer: renderer,
		width:    width,
		height:   height,
	}

	m.viewport.SetContent(m.renderSummary())

	return m
}

func (m *ResultsModel) renderSummary() string {
	markdown := planSummaryMarkdown(m.plan)

	if m.renderer == nil {
		return markdown
	}

	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.showSummary = !m.showSummary
			return m, nil

		case "esc":
			return m, func() tea.Msg { return BackToFormMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, msg.Height-resultsChrome))
		m.viewport.Width = max(40, msg.Width)
		m.viewport.Height = max(5, msg.Height-resultsChrome)
		return m, nil
	}

	var cmd tea.Cmd
	if m.showSummary {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}

	return m, cmd
}

func (m *ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("PLAN " + m.plan.PlanID))
	b.WriteString("  ")
	b.WriteString(successStyle.Render(money(m.plan.Summary.TotalSpend) + " / " + money(m.plan.Budget) + " allocated"))
	b.WriteString("\n\n")

	if m.showSummary {
		b.WriteString(m.viewport.View())
	} else if len(m.plan.Allocations) == 0 {
		b.WriteString(infoStyle.Render("no creator could be funded with this budget. press tab for diagnostics."))
	} else {
		b.WriteString(borderStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[Tab: Table/Summary] [↑/↓: Scroll] [Esc: Edit request] [Ctrl+C: Back]"))

	return b.String()
}
