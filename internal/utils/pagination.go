package utils

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/constants"
)

// PaginationParams holds the page window forwarded to the API server
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts and clamps pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// Apply writes the window into upstream query values. Zero fields are skipped.
func (p PaginationParams) Apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
}
