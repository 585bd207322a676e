package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ApprovalFilter is the tri-state `approved` query parameter. Only the literal
// strings "true" and "false" constrain; any other value means no constraint.
type ApprovalFilter int

const (
	ApprovalAny ApprovalFilter = iota
	ApprovalApproved
	ApprovalUnapproved
)

func ParseApprovalFilter(raw string) ApprovalFilter {
	switch raw {
	case "true":
		return ApprovalApproved
	case "false":
		return ApprovalUnapproved
	default:
		return ApprovalAny
	}
}

// Filter is a conjunction of the optional list constraints. Genres are OR'd.
type Filter struct {
	Approval ApprovalFilter
	Genres   []string
	Title    string
}

func NewFilter(approved string, genres []string, title string) Filter {
	f := Filter{
		Approval: ParseApprovalFilter(approved),
		Title:    strings.TrimSpace(title),
	}
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			f.Genres = append(f.Genres, g)
		}
	}
	return f
}

// Matches evaluates the filter in memory with the same semantics the Mongo
// repository expresses as a query.
func (f Filter) Matches(s *Study) bool {
	switch f.Approval {
	case ApprovalApproved:
		if !s.Approved {
			return false
		}
	case ApprovalUnapproved:
		if s.Approved {
			return false
		}
	}

	if f.Title != "" && !containsFold(s.Title, f.Title) {
		return false
	}

	if len(f.Genres) > 0 {
		matched := false
		for _, pattern := range f.Genres {
			for _, g := range s.Genres {
				if containsFold(g, pattern) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Pagination is a normalized 1-indexed page request.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination replaces non-positive values with the defaults and caps limit.
func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination treats unparsable input like a missing value.
func ParsePagination(rawPage, rawLimit string) Pagination {
	page, _ := strconv.Atoi(strings.TrimSpace(rawPage))
	limit, _ := strconv.Atoi(strings.TrimSpace(rawLimit))
	return NewPagination(page, limit)
}

func (p Pagination) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages is ceil(total/limit).
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

type Page struct {
	Items       []Study `json:"items"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	TotalCount  int64   `json:"totalCount"`
}
