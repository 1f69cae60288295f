package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/domain/shared"
)

// applyFilter translates the generic query filter into GORM scopes.
// A zero page size means no pagination.
func applyFilter(db *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	for key, value := range filter.Filters {
		db = db.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		query := db.Session(&gorm.Session{NewDB: true})
		for i, col := range searchColumns {
			if i == 0 {
				query = query.Where(fmt.Sprintf("%s LIKE ?", col), pattern)
			} else {
				query = query.Or(fmt.Sprintf("%s LIKE ?", col), pattern)
			}
		}
		db = db.Where(query)
	}

	if filter.OrderBy != "" {
		dir := "asc"
		if filter.OrderDir == "desc" {
			dir = "desc"
		}
		db = db.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	return db
}
