package pos

import (
	"context"
	"time"

	"simba/models"
	"simba/utils"
)

const recentTransactionsLimit = 10

// Windows holds the start instants of the summary periods.
type Windows struct {
	Today time.Time
	Week  time.Time
	Month time.Time
}

// SummaryWindows derives the periods from now in now's location. Weeks start on Sunday.
func SummaryWindows(now time.Time) Windows {
	y, m, d := now.Date()
	loc := now.Location()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Windows{
		Today: today,
		Week:  today.AddDate(0, 0, -int(today.Weekday())),
		Month: time.Date(y, m, 1, 0, 0, 0, 0, loc),
	}
}

// Summary totals completed sales for today, this week and this month.
func (s *DefaultPOSService) Summary(ctx context.Context) (*models.POSSummary, error) {
	w := SummaryWindows(s.now())

	var out models.POSSummary
	windows := []struct {
		name  string
		since time.Time
		dst   *models.SalesWindow
	}{
		{"today", w.Today, &out.Today},
		{"week", w.Week, &out.Week},
		{"month", w.Month, &out.Month},
	}
	for _, win := range windows {
		sales, err := s.Transactions.SalesSince(ctx, win.since)
		if err != nil {
			return nil, utils.NewPersistenceError("summarize "+win.name+" sales", err, nil)
		}
		*win.dst = sales
	}

	recent, err := s.Transactions.Recent(ctx, recentTransactionsLimit)
	if err != nil {
		return nil, utils.NewPersistenceError("load recent transactions", err, nil)
	}
	if recent == nil {
		recent = []models.POSTransaction{}
	}
	out.RecentTransactions = recent
	return &out, nil
}
