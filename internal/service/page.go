package service

import "fieldpro.app/relay/internal/store"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PageRequest is a caller-supplied window; zero values pick defaults.
type PageRequest struct {
	Limit  int
	Offset int
}

func (p PageRequest) toStore() store.Page {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := max(p.Offset, 0)
	return store.Page{Limit: int32(limit), Offset: int32(offset)}
}
