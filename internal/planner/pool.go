package planner

import (
	"context"
	"slices"
)

// builds the deduplicated candidate pool for a request: exclusions first, then
// additive inclusions, then trimming of non-included creators down to limit
func buildPool(ctx context.Context, catalog Catalog, req *PlanRequest, filter ContextFilter, limit int) ([]Creator, []Diagnostic, error) {
	fetched, err := catalog.FetchCandidates(ctx, filter, limit)
	if err != nil {
		return nil, nil, catalogFailure("fetch candidates", err)
	}

	declined := make(map[string]struct{})

	if filter.AdvertiserID != "" {
		ids, err := catalog.FetchDeclined(ctx, filter.AdvertiserID)
		if err != nil {
			return nil, nil, catalogFailure("fetch declined", err)
		}

		for _, id := range ids {
			declined[id] = struct{}{}
		}
	}

	exclude := toSet(ParseAccountIDs(req.ExcludeAccountIDs))
	includeIDs := ParseAccountIDs(req.IncludeAccountIDs)
	include := toSet(includeIDs)

	var (
		pool        []Creator
		diagnostics []Diagnostic
	)

	seen := make(map[string]struct{}, len(fetched))
	accounts := make(map[string]struct{}, len(fetched))
	excluded := make(map[string]struct{})

	admit := func(c Creator) {
		if _, dup := seen[c.ID]; dup {
			return
		}
		seen[c.ID] = struct{}{}

		if _, ok := exclude[c.AccountID]; ok {
			excluded[c.AccountID] = struct{}{}
			diagnostics = append(diagnostics, Diagnostic{CreatorID: c.ID, Reason: SkipExcluded, Detail: "account " + c.AccountID})
			return
		}

		if _, ok := declined[c.ID]; ok {
			diagnostics = append(diagnostics, Diagnostic{CreatorID: c.ID, Reason: SkipDeclined, Detail: "declined advertiser " + filter.AdvertiserID})
			return
		}

		accounts[c.AccountID] = struct{}{}
		pool = append(pool, c)
	}

	for _, c := range fetched {
		admit(c)
	}

	var missing []string

	for _, id := range includeIDs {
		// exclusion wins; report it even when the account was never fetched
		if _, ok := exclude[id]; ok {
			if _, reported := excluded[id]; !reported {
				excluded[id] = struct{}{}
				diagnostics = append(diagnostics, Diagnostic{Reason: SkipExcluded, Detail: "account " + id})
			}

			continue
		}

		if _, ok := accounts[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		extra, err := catalog.FetchCreatorsByAccount(ctx, missing)
		if err != nil {
			return nil, nil, catalogFailure("fetch included creators", err)
		}

		found := make(map[string]struct{}, len(extra))

		for _, c := range extra {
			if _, ok := include[c.AccountID]; !ok {
				continue
			}

			found[c.AccountID] = struct{}{}
			admit(c)
		}

		for _, id := range missing {
			if _, ok := found[id]; !ok {
				diagnostics = append(diagnostics, Diagnostic{Reason: SkipIncludeNotFound, Detail: "account " + id})
			}
		}
	}

	pool, trimmed := trimPool(pool, include, limit)
	diagnostics = append(diagnostics, trimmed...)

	return pool, diagnostics, nil
}

// drops non-included creators from the tail until the pool fits limit
func trimPool(pool []Creator, include map[string]struct{}, limit int) ([]Creator, []Diagnostic) {
	over := len(pool) - limit
	if over <= 0 {
		return pool, nil
	}

	drop := make(map[int]struct{}, over)

	for i := len(pool) - 1; i >= 0 && len(drop) < over; i-- {
		if _, ok := include[pool[i].AccountID]; !ok {
			drop[i] = struct{}{}
		}
	}

	kept := make([]Creator, 0, len(pool)-len(drop))

	var diagnostics []Diagnostic

	for i, c := range pool {
		if _, ok := drop[i]; ok {
			diagnostics = append(diagnostics, Diagnostic{CreatorID: c.ID, Reason: SkipPoolLimit})
			continue
		}

		kept = append(kept, c)
	}

	return kept, diagnostics
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func creatorIDs(creators []Creator) []string {
	ids := make([]string, 0, len(creators))
	for _, c := range creators {
		ids = append(ids, c.ID)
	}

	return slices.Clip(ids)
}
