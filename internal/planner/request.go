package planner

import (
	"slices"
	"strings"

	"codeberg.org/placewise/server/internal/similarity"
)

// PlanRequest is the caller's planning input. Optional numbers are nil when absent.
type PlanRequest struct {
	Budget       float64
	CostPerClick *float64
	InsertionID  string
	TargetCPA    *float64
	HorizonDays  int

	Category     string
	AdvertiserID string

	BaselineCVR   *float64
	TargetProfile *similarity.Demographics
	TargetTopics  []string

	// matched against creator keywords to order equally scored new creators
	TargetKeywords []string

	// comma separated account ids
	IncludeAccountIDs string
	ExcludeAccountIDs string
}

// checks every field before any computation, returning the first violation
func (r *PlanRequest) Validate() error {
	if r.Budget <= 0 {
		return invalid("budget", "must be greater than 0")
	}

	if err := validateCostPerClick(r.CostPerClick, r.InsertionID); err != nil {
		return err
	}

	if r.TargetCPA != nil && *r.TargetCPA <= 0 {
		return invalid("target_cpa", "must be greater than 0")
	}

	if r.HorizonDays <= 0 {
		return invalid("horizon_days", "must be greater than 0")
	}

	if err := validateContext(r.Category, r.AdvertiserID); err != nil {
		return err
	}

	return validateBaselineCVR(r.BaselineCVR)
}

func (r *PlanRequest) ContextFilter() ContextFilter {
	return newContextFilter(r.Category, r.AdvertiserID)
}

// exactly one of an explicit cost per click or an insertion order
func validateCostPerClick(cpc *float64, insertionID string) error {
	hasCPC := cpc != nil
	hasInsertion := strings.TrimSpace(insertionID) != ""

	switch {
	case !hasCPC && !hasInsertion:
		return invalid("cost_per_click", "or insertion_id is required")
	case hasCPC && hasInsertion:
		return invalid("cost_per_click", "and insertion_id are mutually exclusive")
	case hasCPC && *cpc <= 0:
		return invalid("cost_per_click", "must be greater than 0")
	}

	return nil
}

// exactly one of category or advertiser
func validateContext(category, advertiserID string) error {
	hasCategory := strings.TrimSpace(category) != ""
	hasAdvertiser := strings.TrimSpace(advertiserID) != ""

	switch {
	case !hasCategory && !hasAdvertiser:
		return invalid("category", "or advertiser_id is required")
	case hasCategory && hasAdvertiser:
		return invalid("category", "and advertiser_id are mutually exclusive")
	}

	return nil
}

func validateBaselineCVR(cvr *float64) error {
	if cvr != nil && (*cvr <= 0 || *cvr > 1) {
		return invalid("baseline_cvr", "must be in (0, 1]")
	}

	return nil
}

func newContextFilter(category, advertiserID string) ContextFilter {
	return ContextFilter{
		Category:     strings.TrimSpace(category),
		AdvertiserID: strings.TrimSpace(advertiserID),
	}
}

// splits a comma separated id list, trimming blanks and duplicates while keeping order
func ParseAccountIDs(raw string) []string {
	var ids []string

	for part := range strings.SplitSeq(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || slices.Contains(ids, id) {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}
