package catalog

import (
	"context"

	"codeberg.org/placewise/server/api/rest/pagination"
	"codeberg.org/placewise/server/placewise/creators"
)

// satisfied by *creators.Repository
type DeclinedLister interface {
	ListDeclined(ctx context.Context, advertiserID string) ([]creators.DeclinedCreator, error)
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type DeclinedResponse struct {
	AdvertiserID string                     `json:"advertiser_id"`
	Creators     []creators.DeclinedCreator `json:"creators"`
	Pagination   pagination.Meta            `json:"pagination"`
}
