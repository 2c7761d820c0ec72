package domain

import "time"

// CategoryTotal is the net amount booked against one category in a period.
// CategoryID is nil for transactions without a category.
type CategoryTotal struct {
	CategoryID   *string `json:"categoryID,omitempty"`
	TotalCents   int64   `json:"totalCents"`
	Transactions int     `json:"transactions"`
}

// MonthlySummary aggregates income and expenses for one calendar month.
// TotalExpensesCents is zero or negative.
type MonthlySummary struct {
	Year               int             `json:"year"`
	Month              time.Month      `json:"month"`
	TotalIncomeCents   int64           `json:"totalIncomeCents"`
	TotalExpensesCents int64           `json:"totalExpensesCents"`
	NetSavingsCents    int64           `json:"netSavingsCents"`
	ByCategory         []CategoryTotal `json:"byCategory"`
}

// AccountBalanceAt is an account together with its balance as of a date.
type AccountBalanceAt struct {
	Account      Account   `json:"account"`
	AsOf         time.Time `json:"asOf"`
	BalanceCents int64     `json:"balanceCents"`
}

// MonthRange returns [first instant of month, first instant of next month)
// in loc. December rolls over into January of the following year.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
