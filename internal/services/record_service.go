package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/yukikurage/flock-console/internal/querycache"
	"github.com/yukikurage/flock-console/internal/utils"
)

// ListQuery narrows a record listing.
type ListQuery struct {
	// BranchID is nil when the session shows all branches.
	BranchID   *string
	Pagination utils.PaginationParams
	Search     string
	// Filters are forwarded as extra query parameters.
	Filters url.Values
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.BranchID != nil {
		v.Set("branchId", *q.BranchID)
	}
	q.Pagination.Apply(v)
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for key, values := range q.Filters {
		for _, value := range values {
			v.Add(key, value)
		}
	}
	return v
}

// RecordService forwards record reads and writes to the API server. Reads go
// through the query cache; writes invalidate the resource's cached reads.
type RecordService struct {
	api   API
	cache *querycache.Cache
}

// NewRecordService creates a new RecordService.
func NewRecordService(api API, cache *querycache.Cache) *RecordService {
	return &RecordService{
		api:   api,
		cache: cache,
	}
}

// Get reads path with query through the cache.
func (s *RecordService) Get(ctx context.Context, caller Caller, path string, query ListQuery) (json.RawMessage, error) {
	values := query.values()
	key := path
	if encoded := values.Encode(); encoded != "" {
		key += "?" + encoded
	}

	return querycache.Fetch(ctx, s.cache, caller.SessionID, key, func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Get(ctx, caller.Token, path, values)
	})
}

// Post writes body to path and invalidates cached reads of the same resource.
func (s *RecordService) Post(ctx context.Context, caller Caller, path string, body any) (json.RawMessage, error) {
	data, err := s.api.Post(ctx, caller.Token, path, body)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(caller.SessionID, resourcePrefix(path))
	return data, nil
}

// resourcePrefix returns the first path segment, "/events" for
// "/events/42/share".
func resourcePrefix(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
