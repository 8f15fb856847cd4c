package repository

import (
	"fmt"
	"strings"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
)

// queryBuilder accumulates WHERE clauses with numbered placeholders.
type queryBuilder struct {
	clauses []string
	args    []any
}

func (b *queryBuilder) arg(val any) string {
	b.args = append(b.args, val)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(expr string) {
	b.clauses = append(b.clauses, expr)
}

func (b *queryBuilder) whereClause() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// applySearch adds a case-insensitive substring match across the given columns.
func (b *queryBuilder) applySearch(search string, cols []string) {
	if search == "" || len(cols) == 0 {
		return
	}
	ph := b.arg("%" + strings.ToLower(search) + "%")
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, ph)
	}
	b.where("(" + strings.Join(parts, " OR ") + ")")
}

// applyFilters adds equality clauses for recognized filter parameters.
// allowed maps the query-parameter name to its column.
func (b *queryBuilder) applyFilters(filters map[string]string, allowed map[string]string) {
	for param, col := range allowed {
		if val, ok := filters[param]; ok {
			b.where(fmt.Sprintf("%s = %s", col, b.arg(val)))
		}
	}
}

// orderClause resolves sortBy against the allowed column map, falling back to
// the default ordering. Column names never come from user input directly.
func orderClause(q crud.ListQuery, sortCols map[string]string, fallback string) string {
	col, ok := sortCols[q.SortBy]
	if !ok {
		return " ORDER BY " + fallback
	}
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

func limitOffset(q crud.ListQuery) string {
	return fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
}
