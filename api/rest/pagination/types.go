package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// limit/offset window requested by the client
type Params struct {
	Limit  int
	Offset int
}

type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(params Params, total int) Meta {
	// offset is client controlled; compare remainders so huge values cannot overflow
	offset := min(params.Offset, total)

	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: total-offset > params.Limit,
	}
}

// reads ?limit= and ?offset=, clamping limit to [1, maxLimit]; unparsable values use defaults
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	if limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// returns the window of items selected by params
func Slice[T any](items []T, params Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}

	end := params.Offset + min(params.Limit, len(items)-params.Offset)

	return items[params.Offset:end]
}
