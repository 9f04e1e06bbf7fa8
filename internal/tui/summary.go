package tui

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/placewise/server/api/rest/plans"
	"github.com/charmbracelet/bubbles/table"
)

var allocationColumns = []table.Column{
	{Title: "Creator", Width: 22},
	{Title: "Phase", Width: 14},
	{Title: "Plc", Width: 4},
	{Title: "Clicks", Width: 10},
	{Title: "Spend", Width: 11},
	{Title: "Conv", Width: 8},
	{Title: "CPA", Width: 9},
	{Title: "Score", Width: 6},
}

// one table row per allocation, in plan order
func allocationRows(plan *plans.PlanResponse) []table.Row {
	rows := make([]table.Row, 0, len(plan.Allocations))

	for _, a := range plan.Allocations {
		name := a.Name
		if name == "" {
			name = a.CreatorID
		}

		rows = append(rows, table.Row{
			name,
			a.PhaseName,
			strconv.Itoa(a.PlacementCount),
			money(a.ExpectedClicks),
			money(a.ExpectedSpend),
			money(a.ExpectedConversions),
			optionalMoney(a.ExpectedCPA),
			fmt.Sprintf("%.2f", a.CombinedScore),
		})
	}

	return rows
}

// renders the plan totals and diagnostics as markdown
func planSummaryMarkdown(plan *plans.PlanResponse) string {
	var b strings.Builder
	s := plan.Summary

	fmt.Fprintf(&b, "# Plan %s\n\n", plan.PlanID)

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Budget | %s |\n", money(plan.Budget))
	fmt.Fprintf(&b, "| Cost per click | %s |\n", money(plan.CostPerClick))
	fmt.Fprintf(&b, "| Spend | %s (%.1f%% of budget) |\n", money(s.TotalSpend), s.BudgetUtilization*100)
	fmt.Fprintf(&b, "| Clicks | %s |\n", money(s.TotalClicks))
	fmt.Fprintf(&b, "| Conversions | %s |\n", money(s.TotalConversions))
	fmt.Fprintf(&b, "| Blended CPA | %s |\n", optionalMoney(s.BlendedCPA))
	fmt.Fprintf(&b, "| Pool size | %d |\n", s.PoolSize)

	b.WriteString("\n## Phases\n\n")
	fmt.Fprintf(&b, "- same context history: %d\n", s.Phases.SameContext)
	fmt.Fprintf(&b, "- cross context history: %d\n", s.Phases.CrossContext)
	fmt.Fprintf(&b, "- no history: %d\n", s.Phases.NoHistory)
	fmt.Fprintf(&b, "- funded by similarity fallback: %d\n", s.Phases.Fallback)

	if len(plan.Diagnostics) == 0 {
		return b.String()
	}

	counts := make(map[string]int)
	var order []string

	for _, d := range plan.Diagnostics {
		if counts[d.Reason] == 0 {
			order = append(order, d.Reason)
		}
		counts[d.Reason]++
	}

	b.WriteString("\n## Skipped\n\n")
	for _, reason := range order {
		fmt.Fprintf(&b, "- `%s`: %d\n", reason, counts[reason])
	}

	return b.String()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optionalMoney(v *float64) string {
	if v == nil {
		return "-"
	}

	return money(*v)
}
