package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"codeberg.org/placewise/server/internal/planner"
)

var header = []string{
	"creator_id",
	"name",
	"acct_id",
	"phase",
	"rationale",
	"placements",
	"expected_clicks",
	"expected_spend",
	"expected_conversions",
	"expected_cpa",
	"combined_score",
}

// writes one row per allocation followed by a totals row
func WriteCSV(w io.Writer, result *planner.PlanResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range result.Allocations {
		cpa := ""
		if v, ok := a.CPA(); ok {
			cpa = formatFloat(v)
		}

		row := []string{
			a.Creator.ID,
			a.Creator.Name,
			a.Creator.AccountID,
			a.Phase.String(),
			string(a.Rationale),
			strconv.Itoa(a.PlacementCount()),
			formatFloat(a.ExpectedClicks),
			formatFloat(a.ExpectedSpend),
			formatFloat(a.ExpectedConversions),
			cpa,
			formatFloat(a.CombinedScore),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write allocation %s: %w", a.Creator.ID, err)
		}
	}

	placements := 0
	for _, a := range result.Allocations {
		placements += a.PlacementCount()
	}

	blended := ""
	if result.TotalConversions > 0 {
		blended = formatFloat(result.BlendedCPA)
	}

	totals := []string{
		"TOTAL", "", "", "", "",
		strconv.Itoa(placements),
		formatFloat(result.TotalClicks),
		formatFloat(result.TotalSpend),
		formatFloat(result.TotalConversions),
		blended,
		"",
	}

	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
