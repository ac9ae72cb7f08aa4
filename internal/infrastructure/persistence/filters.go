package persistence

import (
	"github.com/mindsacademy/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies equality filters, sorting and pagination to a query.
// The sort column is validated against the whitelist so request parameters
// never reach the ORDER BY clause unchecked.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool, defaultSort string) *gorm.DB {
	query = applyEqualityFilters(query, filter, allowedSortFields)

	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, defaultSort)
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyEqualityFilters applies the plain column filters only, used for
// COUNT queries where sorting and pagination must not apply. Filter keys
// are checked against the whitelist to keep arbitrary input out of WHERE.
func applyEqualityFilters(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	for key, value := range filter.Filters {
		if allowedFields[key] {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}
