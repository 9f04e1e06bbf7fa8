package creators

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/placewise/server/internal/planner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

var _ planner.Catalog = (*Repository)(nil)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchCandidates(ctx context.Context, _ planner.ContextFilter, limit int) ([]planner.Creator, error) {
	rows, err := r.db.Query(ctx, queryCandidates, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	return collectCreators(rows)
}

func (r *Repository) FetchCreatorsByAccount(ctx context.Context, accountIDs []string) ([]planner.Creator, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, queryByAccount, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query creators by account: %w", err)
	}

	return collectCreators(rows)
}

func collectCreators(rows pgx.Rows) ([]planner.Creator, error) {
	creators, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (planner.Creator, error) {
		var c planner.Creator

		err := row.Scan(
			&c.ID,
			&c.Name,
			&c.AccountID,
			&c.Demographics.AgeRange,
			&c.Demographics.GenderSkew,
			&c.Demographics.Location,
			&c.Demographics.Interests,
			&c.Topic,
			&c.ClickEstimate,
			&c.Keywords,
		)

		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan creators: %w", err)
	}

	return creators, nil
}

// one grouped query per scope over the whole id set
func (r *Repository) FetchPerformance(ctx context.Context, creatorIDs []string, filter planner.ContextFilter, scope planner.Scope) (map[string]planner.PerformanceAggregate, error) {
	result := make(map[string]planner.PerformanceAggregate, len(creatorIDs))
	if len(creatorIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, queryPerformance,
		creatorIDs,
		filter.Category,
		filter.AdvertiserID,
		scope == planner.ScopeSameContext,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s performance: %w", scope, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			agg planner.PerformanceAggregate
		)

		if err := rows.Scan(&id, &agg.Clicks, &agg.Conversions, &agg.Placements, &agg.MedianClicks); err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}

		result[id] = agg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read performance: %w", err)
	}

	return result, nil
}

func (r *Repository) FetchEmbeddings(ctx context.Context, creatorIDs []string) (map[string][]float32, error) {
	result := make(map[string][]float32, len(creatorIDs))
	if len(creatorIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, queryEmbeddings, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        string
			embedding pgvector.Vector
		)

		if err := rows.Scan(&id, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}

		result[id] = embedding.Slice()
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read embeddings: %w", err)
	}

	return result, nil
}

func (r *Repository) FetchDeclined(ctx context.Context, advertiserID string) ([]string, error) {
	rows, err := r.db.Query(ctx, queryDeclinedIDs, advertiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query declined creators: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan declined creators: %w", err)
	}

	return ids, nil
}

// declined creators with their names, newest first
func (r *Repository) ListDeclined(ctx context.Context, advertiserID string) ([]DeclinedCreator, error) {
	if _, err := r.FetchAdvertiser(ctx, advertiserID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, queryDeclined, advertiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query declined creators: %w", err)
	}

	declined, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DeclinedCreator, error) {
		var d DeclinedCreator
		err := row.Scan(&d.CreatorID, &d.Name, &d.AccountID, &d.DeclinedAt, &d.Reason)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan declined creators: %w", err)
	}

	return declined, nil
}

func (r *Repository) ResolveCostPerClick(ctx context.Context, insertionID string) (float64, error) {
	var cpc float64

	err := r.db.QueryRow(ctx, queryCostPerClick, insertionID).Scan(&cpc)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, planner.ErrInsertionNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to resolve insertion cpc: %w", err)
	}

	return cpc, nil
}

func (r *Repository) FetchAdvertiser(ctx context.Context, advertiserID string) (*planner.Advertiser, error) {
	var a planner.Advertiser

	err := r.db.QueryRow(ctx, queryAdvertiser, advertiserID).Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Target.AgeRange,
		&a.Target.GenderSkew,
		&a.Target.Location,
		&a.Target.Interests,
		&a.AverageCVR,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, planner.ErrAdvertiserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query advertiser: %w", err)
	}

	return &a, nil
}
