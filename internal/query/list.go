package query

import (
	"math"

	"github.com/mbeoliero/realty/internal/config"
)

// ListParams are the common query parameters of every list endpoint
type ListParams struct {
	Page     int64  `query:"page" json:"page"`
	Limit    int64  `query:"limit" json:"limit"`
	Search   string `query:"search" json:"search"`
	Status   string `query:"status" json:"status"`
	AgencyId string `query:"agencyId" json:"agencyId"`
}

// Options bound and shape list queries
type Options struct {
	DefaultLimit int64
	MaxLimit     int64
	StatusMatch  string
}

// DefaultOptions are used when no configuration is loaded
var DefaultOptions = Options{
	DefaultLimit: 10,
	MaxLimit:     100,
	StatusMatch:  config.StatusMatchExact,
}

// OptionsFrom builds Options from the list config section
func OptionsFrom(cfg config.ListConfig) Options {
	opts := DefaultOptions
	if cfg.DefaultLimit > 0 {
		opts.DefaultLimit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 {
		opts.MaxLimit = cfg.MaxLimit
	}
	if cfg.StatusMatch != "" {
		opts.StatusMatch = cfg.StatusMatch
	}
	return opts
}

// Normalize applies defaults: page >= 1, 1 <= limit <= MaxLimit.
// Page is capped so that Skip cannot overflow.
func (p ListParams) Normalize(opts Options) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && p.Limit > opts.MaxLimit {
		p.Limit = opts.MaxLimit
	}
	if p.Limit > 0 {
		p.Page = min(p.Page, math.MaxInt64/p.Limit+1)
	}
	return p
}

// Skip is the number of rows before the requested page; it saturates at math.MaxInt64
func (p ListParams) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

// Pagination is the summary returned next to a page of results
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination builds the summary for a normalized request and its filtered total
func NewPagination(total int64, p ListParams) Pagination {
	var pages int64
	if p.Limit > 0 {
		pages = int64(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}
