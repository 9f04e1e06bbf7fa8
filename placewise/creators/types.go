package creators

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads creators, performance history and advertiser data from Postgres
type Repository struct {
	db *pgxpool.Pool
}

// a creator that opted out of working with an advertiser
type DeclinedCreator struct {
	CreatorID  string    `json:"creator_id"`
	Name       string    `json:"name"`
	AccountID  string    `json:"acct_id"`
	DeclinedAt time.Time `json:"declined_at"`
	Reason     string    `json:"reason,omitempty"`
}
