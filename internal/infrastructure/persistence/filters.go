package persistence

import (
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// parseDecimal converts an aggregate column scanned as text. SQLite returns
// bare integers for empty sums, Postgres returns numeric text; both parse.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// applyPeriodFilter narrows a query to a reporting bucket. All period
// fields combine with AND.
func applyPeriodFilter(query *gorm.DB, filter finance.PeriodFilter) *gorm.DB {
	if filter.MonthNumber != nil {
		query = query.Where("period_month_number = ?", *filter.MonthNumber)
	}
	if filter.Quarter != nil {
		query = query.Where("period_quarter = ?", string(*filter.Quarter))
	}
	if filter.Year != nil {
		query = query.Where("period_year = ?", *filter.Year)
	}
	if filter.FromDate != nil {
		query = query.Where("transaction_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_date <= ?", *filter.ToDate)
	}
	return query
}

// applyPagination applies page-based pagination and a stable default order
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize)
}
