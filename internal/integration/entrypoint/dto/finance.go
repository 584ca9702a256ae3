package dto

import (
	"time"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// FinanceOverviewResponse represents the full financial overview response.
type FinanceOverviewResponse struct {
	Data       FinanceDataResponse    `json:"data"`
	Stats      FinancialStatsResponse `json:"stats"`
	ComputedAt string                 `json:"computed_at"`
}

// FinanceDataResponse groups the raw and derived collections of the overview.
type FinanceDataResponse struct {
	Contracts   []ContractResponse     `json:"contracts"`
	Settlements []SettlementResponse   `json:"settlements"`
	Expenses    []ExpenseResponse      `json:"expenses"`
	Revenue     []RevenueViewResponse  `json:"revenue"`
	CashFlow    []MonthlyPointResponse `json:"cash_flow"`
}

// RevenueViewResponse represents one derived per-contract financial view.
type RevenueViewResponse struct {
	ContractID            string   `json:"contract_id"`
	Reference             string   `json:"reference"`
	Subject               string   `json:"subject"`
	Awardee               string   `json:"awardee"`
	StartDate             string   `json:"start_date"`
	Deadline              string   `json:"deadline"`
	TotalValue            float64  `json:"total_value"`
	PaidAmount            float64  `json:"paid_amount"`
	RemainingAmount       float64  `json:"remaining_amount"`
	MarketEstimatedAmount float64  `json:"market_estimated_amount"`
	MarketObject          string   `json:"market_object"`
	ProfitMargin          float64  `json:"profit_margin"`
	PaymentStatus         string   `json:"payment_status"`
	PartialAmount         *float64 `json:"partial_amount,omitempty"`
	TrackedRemaining      float64  `json:"tracked_remaining"`
}

// PaymentStatusStatResponse aggregates contracts sharing a payment status.
type PaymentStatusStatResponse struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// TopRevenueSourceResponse represents one ranked profit-margin entry.
type TopRevenueSourceResponse struct {
	ContractID   string  `json:"contract_id"`
	Reference    string  `json:"reference"`
	Subject      string  `json:"subject"`
	ProfitMargin float64 `json:"profit_margin"`
	Percentage   float64 `json:"percentage"`
}

// TopExpenseCategoryResponse represents one ranked expense-category entry.
type TopExpenseCategoryResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MonthlyPointResponse represents one calendar-month bucket.
type MonthlyPointResponse struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// FinancialStatsResponse represents the aggregate financial indicators.
type FinancialStatsResponse struct {
	TotalContractValues  float64                              `json:"total_contract_values"`
	TotalMarketValues    float64                              `json:"total_market_values"`
	TotalRevenue         float64                              `json:"total_revenue"`
	TotalExpenses        float64                              `json:"total_expenses"`
	NetProfit            float64                              `json:"net_profit"`
	PendingPayments      float64                              `json:"pending_payments"`
	OverduePayments      float64                              `json:"overdue_payments"`
	PaymentStatusStats   map[string]PaymentStatusStatResponse `json:"payment_status_stats"`
	TopRevenueSources    []TopRevenueSourceResponse           `json:"top_revenue_sources"`
	TopExpenseCategories []TopExpenseCategoryResponse         `json:"top_expense_categories"`
	MonthlyRevenue       []MonthlyPointResponse               `json:"monthly_revenue"`
	MonthlyExpenses      []MonthlyPointResponse               `json:"monthly_expenses"`
}

// SnapshotStatusResponse represents the lightweight snapshot status probe.
type SnapshotStatusResponse struct {
	HasSnapshot bool    `json:"has_snapshot"`
	Loading     bool    `json:"loading"`
	Error       *string `json:"error,omitempty"`
	ComputedAt  *string `json:"computed_at,omitempty"`
}

// ToFinanceOverviewResponse converts a finance snapshot to its response DTO.
func ToFinanceOverviewResponse(snapshot *entity.FinanceSnapshot) FinanceOverviewResponse {
	data := snapshot.Finances

	contracts := make([]ContractResponse, len(data.Contracts))
	for i, contract := range data.Contracts {
		contracts[i] = ToContractResponse(contract)
	}

	settlements := make([]SettlementResponse, len(data.Settlements))
	for i, settlement := range data.Settlements {
		settlements[i] = ToSettlementResponse(settlement)
	}

	expenses := make([]ExpenseResponse, len(data.Expenses))
	for i, expense := range data.Expenses {
		expenses[i] = ToExpenseResponse(expense)
	}

	revenue := make([]RevenueViewResponse, len(data.Revenue))
	for i, view := range data.Revenue {
		revenue[i] = toRevenueViewResponse(view)
	}

	return FinanceOverviewResponse{
		Data: FinanceDataResponse{
			Contracts:   contracts,
			Settlements: settlements,
			Expenses:    expenses,
			Revenue:     revenue,
			CashFlow:    toMonthlySeries(data.CashFlow),
		},
		Stats:      toFinancialStatsResponse(snapshot.Stats),
		ComputedAt: snapshot.ComputedAt.Format(time.RFC3339),
	}
}

func toRevenueViewResponse(view entity.RevenueView) RevenueViewResponse {
	totalValue, _ := view.TotalValue.Float64()
	paidAmount, _ := view.PaidAmount.Float64()
	remainingAmount, _ := view.RemainingAmount.Float64()
	marketAmount, _ := view.MarketEstimatedAmount.Float64()
	profitMargin, _ := view.ProfitMargin().Float64()
	trackedRemaining, _ := view.TrackedRemaining.Float64()

	var partialAmount *float64
	if view.PartialAmount != nil {
		v, _ := view.PartialAmount.Float64()
		partialAmount = &v
	}

	return RevenueViewResponse{
		ContractID:            view.ContractID.String(),
		Reference:             view.Reference,
		Subject:               view.Subject,
		Awardee:               view.Awardee,
		StartDate:             view.StartDate.Format("2006-01-02"),
		Deadline:              view.Deadline.Format("2006-01-02"),
		TotalValue:            totalValue,
		PaidAmount:            paidAmount,
		RemainingAmount:       remainingAmount,
		MarketEstimatedAmount: marketAmount,
		MarketObject:          view.MarketObject,
		ProfitMargin:          profitMargin,
		PaymentStatus:         string(view.PaymentStatus),
		PartialAmount:         partialAmount,
		TrackedRemaining:      trackedRemaining,
	}
}

func toFinancialStatsResponse(stats entity.FinancialStats) FinancialStatsResponse {
	totalContracts, _ := stats.TotalContractValues.Float64()
	totalMarkets, _ := stats.TotalMarketValues.Float64()
	totalRevenue, _ := stats.TotalRevenue.Float64()
	totalExpenses, _ := stats.TotalExpenses.Float64()
	netProfit, _ := stats.NetProfit.Float64()
	pendingPayments, _ := stats.PendingPayments.Float64()
	overduePayments, _ := stats.OverduePayments.Float64()

	statusStats := make(map[string]PaymentStatusStatResponse, len(stats.PaymentStatusStats))
	for status, stat := range stats.PaymentStatusStats {
		totalValue, _ := stat.TotalValue.Float64()
		statusStats[string(status)] = PaymentStatusStatResponse{
			Count:      stat.Count,
			TotalValue: totalValue,
		}
	}

	sources := make([]TopRevenueSourceResponse, len(stats.TopRevenueSources))
	for i, source := range stats.TopRevenueSources {
		margin, _ := source.ProfitMargin.Float64()
		percentage, _ := source.Percentage.Float64()
		sources[i] = TopRevenueSourceResponse{
			ContractID:   source.ContractID.String(),
			Reference:    source.Reference,
			Subject:      source.Subject,
			ProfitMargin: margin,
			Percentage:   percentage,
		}
	}

	categories := make([]TopExpenseCategoryResponse, len(stats.TopExpenseCategories))
	for i, category := range stats.TopExpenseCategories {
		amount, _ := category.Amount.Float64()
		percentage, _ := category.Percentage.Float64()
		categories[i] = TopExpenseCategoryResponse{
			Category:   string(category.Category),
			Amount:     amount,
			Percentage: percentage,
		}
	}

	return FinancialStatsResponse{
		TotalContractValues:  totalContracts,
		TotalMarketValues:    totalMarkets,
		TotalRevenue:         totalRevenue,
		TotalExpenses:        totalExpenses,
		NetProfit:            netProfit,
		PendingPayments:      pendingPayments,
		OverduePayments:      overduePayments,
		PaymentStatusStats:   statusStats,
		TopRevenueSources:    sources,
		TopExpenseCategories: categories,
		MonthlyRevenue:       toMonthlySeries(stats.MonthlyRevenue),
		MonthlyExpenses:      toMonthlySeries(stats.MonthlyExpenses),
	}
}

func toMonthlySeries(points []entity.MonthlyPoint) []MonthlyPointResponse {
	series := make([]MonthlyPointResponse, len(points))
	for i, point := range points {
		amount, _ := point.Amount.Float64()
		series[i] = MonthlyPointResponse{
			Month:  int(point.Month),
			Amount: amount,
		}
	}
	return series
}

// ToSnapshotStatusResponse converts holder state to its response DTO.
func ToSnapshotStatusResponse(snapshot *entity.FinanceSnapshot, loading bool, errMessage string) SnapshotStatusResponse {
	response := SnapshotStatusResponse{
		HasSnapshot: snapshot != nil,
		Loading:     loading,
	}
	if errMessage != "" {
		response.Error = &errMessage
	}
	if snapshot != nil {
		computedAt := snapshot.ComputedAt.Format(time.RFC3339)
		response.ComputedAt = &computedAt
	}
	return response
}
