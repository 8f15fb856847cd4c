package crud

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery carries pagination, sorting, search and filter parameters for
// list endpoints.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
	Filters   map[string]string
}

// Offset computes the row offset for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Meta describes a page of results.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta builds pagination metadata.
func NewMeta(total int64, page, limit int) Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// ParseListQuery reads pagination parameters from the request, clamping page
// and limit so out-of-range values never produce negative offsets.
func ParseListQuery(c *fiber.Ctx, filterFields []string) ListQuery {
	q := ListQuery{
		Page:      parsePositive(c.Query("page"), 1),
		Limit:     parsePositive(c.Query("limit"), defaultLimit),
		SortBy:    c.Query("sortBy"),
		SortOrder: strings.ToLower(c.Query("sortOrder")),
		Search:    strings.TrimSpace(c.Query("search")),
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		q.SortOrder = ""
	}

	for _, field := range filterFields {
		if val := c.Query(field); val != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[field] = val
		}
	}
	return q
}

func parsePositive(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return def
	}
	return parsed
}
