package persistence

import (
	"fmt"

	"github.com/chickenviken/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY against arbitrary column injection
var allowedOrderColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"unit_price":  true,
	"order_count": true,
	"status":      true,
	"email":       true,
}

// applyEquals adds equality conditions from the filter's Filters map
func applyEquals(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for column, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return query
}

// applyOrder adds a whitelisted ORDER BY clause
func applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy == "" || !allowedOrderColumns[filter.OrderBy] {
		return query
	}
	dir := "asc"
	if filter.OrderDir == "desc" {
		dir = "desc"
	}
	return query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
}

// applyPagination adds LIMIT/OFFSET from the filter's page settings
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
}

// applyFilter combines equality, ordering and pagination
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applyOrder(applyEquals(query, filter), filter), filter)
}
