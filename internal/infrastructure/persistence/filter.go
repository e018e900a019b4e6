package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

var columnNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// applySearch adds a case-insensitive LIKE clause over the given
// columns when the filter carries a search term.
func applySearch(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search == "" || len(searchColumns) == 0 {
		return query
	}

	pattern := "%" + strings.ToLower(filter.Search) + "%"
	clauses := make([]string, 0, len(searchColumns))
	args := make([]interface{}, 0, len(searchColumns))
	for _, col := range searchColumns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// applyEquality adds an equality clause per entry in the filter map.
// Keys that are not plain column identifiers are ignored.
func applyEquality(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for column, value := range filter.Filters {
		if !columnNameRegex.MatchString(column) {
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return query
}

// applyFilter adds search, ordering and pagination to a query. Order
// columns are validated against a conservative identifier pattern so a
// filter can never inject SQL.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applySearch(query, filter, searchColumns...)

	orderBy := filter.OrderBy
	if !columnNameRegex.MatchString(orderBy) {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
