package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueView is the derived per-contract financial view produced by the
// join step. It is never persisted.
type RevenueView struct {
	ContractID uuid.UUID
	Reference  string
	Subject    string
	Awardee    string
	StartDate  time.Time
	Deadline   time.Time

	TotalValue      decimal.Decimal // Initial contract amount
	PaidAmount      decimal.Decimal // Sum of linked settlements
	RemainingAmount decimal.Decimal // TotalValue - PaidAmount, not clamped when overpaid

	// Market fields, falling back to the contract's own amount and a
	// placeholder object when no market is linked.
	MarketEstimatedAmount decimal.Decimal
	MarketObject          string

	// Payment sub-state carried over from the contract. TrackedRemaining is
	// the manually maintained remainder, used for partial contracts instead
	// of the recomputed RemainingAmount.
	PaymentStatus    PaymentStatus
	PartialAmount    *decimal.Decimal
	TrackedRemaining decimal.Decimal
}

// ProfitMargin returns the market estimate minus the contract price.
// This is the domain's definition of revenue.
func (v *RevenueView) ProfitMargin() decimal.Decimal {
	return v.MarketEstimatedAmount.Sub(v.TotalValue)
}

// PaymentStatusStat aggregates contracts sharing a payment status.
type PaymentStatusStat struct {
	Count      int
	TotalValue decimal.Decimal
}

// TopRevenueSource is one entry of the ranked profit-margin breakdown.
type TopRevenueSource struct {
	ContractID   uuid.UUID
	Reference    string
	Subject      string
	ProfitMargin decimal.Decimal
	Percentage   decimal.Decimal // Share of TotalRevenue, one decimal place
}

// TopExpenseCategory is one entry of the ranked expense-category breakdown.
type TopExpenseCategory struct {
	Category   ExpenseCategory
	Amount     decimal.Decimal
	Percentage decimal.Decimal // Share of TotalExpenses, one decimal place
}

// MonthlyPoint is one calendar-month bucket of a 12-bucket time series.
// Multiple years collapse into the same bucket.
type MonthlyPoint struct {
	Month  time.Month
	Amount decimal.Decimal
}

// FinancialStats is the aggregate snapshot recomputed on every fetch.
// It has no identity or lifecycle and is never patched incrementally.
//
// Naming follows the domain's cost-accounting conventions:
//   - TotalRevenue ("Revenus Totaux") is a profit-margin metric, the market
//     estimates minus the contract prices, not literal income.
//   - TotalExpenses ("Dépenses Totales") folds the contract prices (cost of
//     delivery) into the operating expenses.
type FinancialStats struct {
	TotalContractValues decimal.Decimal
	TotalMarketValues   decimal.Decimal
	TotalRevenue        decimal.Decimal
	TotalExpenses       decimal.Decimal
	NetProfit           decimal.Decimal
	PendingPayments     decimal.Decimal
	OverduePayments     decimal.Decimal

	PaymentStatusStats map[PaymentStatus]PaymentStatusStat

	TopRevenueSources    []TopRevenueSource
	TopExpenseCategories []TopExpenseCategory

	MonthlyRevenue  []MonthlyPoint // Always 12 entries, January..December
	MonthlyExpenses []MonthlyPoint // Always 12 entries, January..December
}

// FinanceData groups the raw and derived collections published together
// with the stats.
type FinanceData struct {
	Contracts   []*Contract
	Settlements []*Settlement
	Expenses    []*Expense
	Revenue     []RevenueView
	CashFlow    []MonthlyPoint // Monthly revenue minus monthly expenses
}

// FinanceSnapshot is the atomically published result of a full
// fetch-join-aggregate pipeline run.
type FinanceSnapshot struct {
	Finances   FinanceData
	Stats      FinancialStats
	ComputedAt time.Time
}
