package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
)

// TrendMonths is the number of calendar months in the dashboard trend.
const TrendMonths = 6

// MonthWindow is the half-open date range [Start, End) of one calendar month.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// Label returns the English three-letter month name.
func (w MonthWindow) Label() string {
	return w.Start.Month().String()[:3]
}

// MonthWindows returns the n calendar months ending with the month of today,
// oldest first. Offsets are applied to the first of the month so month
// lengths and year boundaries come out exact.
func MonthWindows(today time.Time, n int) []MonthWindow {
	if n <= 0 {
		return nil
	}

	y, m, _ := today.Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	windows := make([]MonthWindow, n)
	for i := range windows {
		start := current.AddDate(0, i-(n-1), 0)
		windows[i] = MonthWindow{Start: start, End: start.AddDate(0, 1, 0)}
	}
	return windows
}

// statsService computes dashboard aggregates over one tenant's expenses.
type statsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatsService creates a new StatsServicer using the wall clock.
func NewStatsService(db *gorm.DB) StatsServicer {
	return NewStatsServiceWithClock(db, time.Now)
}

// NewStatsServiceWithClock creates a StatsServicer that reads "today" from now.
func NewStatsServiceWithClock(db *gorm.DB, now func() time.Time) StatsServicer {
	return &statsService{db: db, now: now}
}

type expenseTotals struct {
	Total         float64
	PersonalTotal float64
	GroupTotal    float64
}

// Dashboard computes every aggregate in one read transaction so they all
// describe the same snapshot.
func (s *statsService) Dashboard(ctx context.Context, tenantID string) (*DashboardStats, error) {
	today := models.CivilDate(s.now())
	windows := MonthWindows(today, TrendMonths)

	stats := &DashboardStats{
		ByCategory:   []CategoryTotal{},
		MonthlyTrend: make([]MonthTotal, 0, len(windows)),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var totals expenseTotals
		if err := scopedQuery[models.Expense](ctx, tx, tenantID).
			Select("COALESCE(SUM(amount), 0.0) AS total, " +
				"COALESCE(SUM(CASE WHEN group_id IS NULL THEN amount ELSE 0.0 END), 0.0) AS personal_total, " +
				"COALESCE(SUM(CASE WHEN group_id IS NOT NULL THEN amount ELSE 0.0 END), 0.0) AS group_total").
			Scan(&totals).Error; err != nil {
			return err
		}
		stats.Total = totals.Total
		stats.PersonalTotal = totals.PersonalTotal
		stats.GroupTotal = totals.GroupTotal

		// The current month runs from its first day through today inclusive.
		current := windows[len(windows)-1]
		monthTotal, err := sumBetween(ctx, tx, tenantID, current.Start, today.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		stats.CurrentMonthTotal = monthTotal

		var byCategory []CategoryTotal
		if err := tx.Table("expenses").
			Select("expenses.category_id AS category_id, categories.name AS category, SUM(expenses.amount) AS amount").
			Joins("JOIN categories ON categories.id = expenses.category_id AND categories.tenant_id = expenses.tenant_id").
			Where("expenses.tenant_id = ?", tenantID).
			Group("expenses.category_id, categories.name").
			Order("amount DESC, category ASC").
			Scan(&byCategory).Error; err != nil {
			return err
		}
		if byCategory != nil {
			stats.ByCategory = byCategory
		}

		for _, w := range windows {
			amount, err := sumBetween(ctx, tx, tenantID, w.Start, w.End)
			if err != nil {
				return err
			}
			stats.MonthlyTrend = append(stats.MonthlyTrend, MonthTotal{
				Month:  w.Label(),
				Year:   w.Start.Year(),
				Amount: amount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return stats, nil
}

// sumBetween sums the tenant's expenses dated in [from, to).
func sumBetween(ctx context.Context, tx *gorm.DB, tenantID string, from, to time.Time) (float64, error) {
	var total float64
	err := scopedQuery[models.Expense](ctx, tx, tenantID).
		Where("date >= ? AND date < ?", from, to).
		Select("COALESCE(SUM(amount), 0.0)").
		Scan(&total).Error
	return total, err
}
