package entity

import "time"

// ReportType selects what a generated financial report covers.
type ReportType string

const (
	ReportTypeSummary  ReportType = "summary"
	ReportTypeRevenue  ReportType = "revenue"
	ReportTypeExpenses ReportType = "expenses"
)

// IsValidReportType reports whether the given report type is known.
func IsValidReportType(t ReportType) bool {
	return t == ReportTypeSummary || t == ReportTypeRevenue || t == ReportTypeExpenses
}

// FinancialReport is the period-filtered view of the published aggregate
// handed to the report generator. It is built from the snapshot, never from
// a fresh store fetch.
type FinancialReport struct {
	Type        ReportType
	PeriodStart time.Time
	PeriodEnd   time.Time
	GeneratedAt time.Time

	// Revenue views whose contract start date falls within the period.
	Revenue []RevenueView
	// Expenses dated within the period.
	Expenses []*Expense
	// Stats of the full published snapshot, for the summary block.
	Stats FinancialStats
}
