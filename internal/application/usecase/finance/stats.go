package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

const (
	// TopBreakdownLimit is the number of entries kept in the ranked
	// revenue-source and expense-category breakdowns.
	TopBreakdownLimit = 5

	// monthsPerYear is the fixed size of the monthly time series.
	monthsPerYear = 12
)

// netMarginRate is the fixed share of total revenue retained as net profit
// after the flat 20% deduction. It is a domain constant, not configuration.
var netMarginRate = decimal.NewFromFloat(0.80)

// percentHundred is the multiplier for percentage computation.
var percentHundred = decimal.NewFromInt(100)

// ComputeStats reduces the revenue views and expenses into a single
// FinancialStats value. The function is pure; now is used only to decide
// which unpaid contracts are overdue.
//
// Two metric names follow the agency's cost-accounting conventions rather
// than conventional accounting:
//   - TotalRevenue is the summed profit margin (market estimates minus
//     contract prices), not literal income.
//   - TotalExpenses folds the contract prices into the operating expenses
//     (cost of delivery plus operating costs).
func ComputeStats(revenues []entity.RevenueView, expenses []*entity.Expense, now time.Time) entity.FinancialStats {
	stats := entity.FinancialStats{
		PaymentStatusStats: make(map[entity.PaymentStatus]entity.PaymentStatusStat),
		MonthlyRevenue:     zeroMonthlySeries(),
		MonthlyExpenses:    zeroMonthlySeries(),
	}

	for _, view := range revenues {
		stats.TotalContractValues = stats.TotalContractValues.Add(view.TotalValue)
		stats.TotalMarketValues = stats.TotalMarketValues.Add(view.MarketEstimatedAmount)

		stats.PendingPayments = stats.PendingPayments.Add(outstandingAmount(view))
		if view.Deadline.Before(now) && view.PaymentStatus != entity.PaymentStatusPaid {
			stats.OverduePayments = stats.OverduePayments.Add(outstandingAmount(view))
		}

		statusStat := stats.PaymentStatusStats[view.PaymentStatus]
		statusStat.Count++
		statusStat.TotalValue = statusStat.TotalValue.Add(view.TotalValue)
		stats.PaymentStatusStats[view.PaymentStatus] = statusStat

		month := int(view.StartDate.Month()) - 1
		stats.MonthlyRevenue[month].Amount = stats.MonthlyRevenue[month].Amount.Add(view.ProfitMargin())
	}

	var expenseSum decimal.Decimal
	for _, expense := range expenses {
		expenseSum = expenseSum.Add(expense.Amount)
		month := int(expense.Date.Month()) - 1
		stats.MonthlyExpenses[month].Amount = stats.MonthlyExpenses[month].Amount.Add(expense.Amount)
	}

	stats.TotalRevenue = stats.TotalMarketValues.Sub(stats.TotalContractValues)
	stats.TotalExpenses = stats.TotalContractValues.Add(expenseSum)
	stats.NetProfit = stats.TotalRevenue.Mul(netMarginRate)

	stats.TopRevenueSources = topRevenueSources(revenues, stats.TotalRevenue)
	stats.TopExpenseCategories = topExpenseCategories(expenses, stats.TotalExpenses)

	return stats
}

// CashFlowSeries derives the monthly cash-flow series as monthly revenue
// minus monthly expenses, bucket by bucket.
func CashFlowSeries(monthlyRevenue, monthlyExpenses []entity.MonthlyPoint) []entity.MonthlyPoint {
	series := zeroMonthlySeries()
	for i := range series {
		series[i].Amount = monthlyRevenue[i].Amount.Sub(monthlyExpenses[i].Amount)
	}
	return series
}

// outstandingAmount returns the contract's contribution to pending/overdue
// totals. Partial contracts contribute the manually tracked remainder;
// pending and overdue contracts contribute the recomputed remainder; paid
// and cancelled contracts contribute nothing.
func outstandingAmount(view entity.RevenueView) decimal.Decimal {
	switch view.PaymentStatus {
	case entity.PaymentStatusPending, entity.PaymentStatusOverdue:
		return view.RemainingAmount
	case entity.PaymentStatusPartial:
		return view.TrackedRemaining
	default:
		return decimal.Zero
	}
}

// topRevenueSources ranks the revenue views by profit margin, keeps the top
// entries and attaches each one's share of total revenue.
func topRevenueSources(revenues []entity.RevenueView, totalRevenue decimal.Decimal) []entity.TopRevenueSource {
	ranked := make([]entity.RevenueView, len(revenues))
	copy(ranked, revenues)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProfitMargin().GreaterThan(ranked[j].ProfitMargin())
	})

	if len(ranked) > TopBreakdownLimit {
		ranked = ranked[:TopBreakdownLimit]
	}

	sources := make([]entity.TopRevenueSource, 0, len(ranked))
	for _, view := range ranked {
		margin := view.ProfitMargin()
		sources = append(sources, entity.TopRevenueSource{
			ContractID:   view.ContractID,
			Reference:    view.Reference,
			Subject:      view.Subject,
			ProfitMargin: margin,
			Percentage:   shareOf(margin, totalRevenue),
		})
	}
	return sources
}

// topExpenseCategories groups expenses by category, ranks the summed
// amounts and attaches each category's share of total expenses.
func topExpenseCategories(expenses []*entity.Expense, totalExpenses decimal.Decimal) []entity.TopExpenseCategory {
	byCategory := make(map[entity.ExpenseCategory]decimal.Decimal)
	for _, expense := range expenses {
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
	}

	categories := make([]entity.TopExpenseCategory, 0, len(byCategory))
	for category, amount := range byCategory {
		categories = append(categories, entity.TopExpenseCategory{
			Category: category,
			Amount:   amount,
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	if len(categories) > TopBreakdownLimit {
		categories = categories[:TopBreakdownLimit]
	}

	for i := range categories {
		categories[i].Percentage = shareOf(categories[i].Amount, totalExpenses)
	}
	return categories
}

// shareOf returns part/total as a percentage rounded to one decimal place.
// When the total is zero or negative, or the part is negative, the share is
// 0.0 so the breakdowns never expose NaN or negative percentages.
func shareOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() || part.IsNegative() {
		return decimal.Zero.Round(1)
	}
	return part.Div(total).Mul(percentHundred).Round(1)
}

// zeroMonthlySeries returns a 12-entry series, one zero bucket per calendar
// month, January through December.
func zeroMonthlySeries() []entity.MonthlyPoint {
	series := make([]entity.MonthlyPoint, monthsPerYear)
	for i := range series {
		series[i].Month = time.Month(i + 1)
	}
	return series
}
