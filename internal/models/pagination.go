package models

import "strconv"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest is a 1-based page request.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePage reads raw query values, applying defaults and bounds.
func ParsePage(page, limit string) PageRequest {
	p, _ := strconv.Atoi(page)
	l, _ := strconv.Atoi(limit)
	return PageRequest{Page: p, Limit: l}.Normalize()
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Skip() int64 { return int64((p.Page - 1) * p.Limit) }

// Page is one page of a listing plus the total match count.
type Page[T any] struct {
	Items []T
	Total int64
	PageRequest
}

// Pages returns the page count for the total.
func (p Page[T]) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Slice pages an in-memory result set.
func Slice[T any](all []T, req PageRequest) Page[T] {
	req = req.Normalize()
	start := int(req.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return Page[T]{Items: all[start:end], Total: int64(len(all)), PageRequest: req}
}
