package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func makeView(amount, marketAmount int64, status entity.PaymentStatus) entity.RevenueView {
	view := entity.RevenueView{
		ContractID:            uuid.New(),
		Reference:             "C-" + uuid.NewString()[:8],
		TotalValue:            dec(amount),
		RemainingAmount:       dec(amount),
		MarketEstimatedAmount: dec(marketAmount),
		PaymentStatus:         status,
		StartDate:             time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		Deadline:              time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		TrackedRemaining:      dec(amount),
	}
	return view
}

func makeExpense(amount int64, category entity.ExpenseCategory, date time.Time) *entity.Expense {
	return &entity.Expense{
		ID:       uuid.New(),
		Amount:   dec(amount),
		Category: category,
		Date:     date,
	}
}

func TestComputeStats_CostAccountingConventions(t *testing.T) {
	// One partially paid contract: price 100 000, market estimate 150 000,
	// 40 000 collected so far, plus a 5 000 operating expense.
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	view := makeView(100_000, 150_000, entity.PaymentStatusPartial)
	partial := dec(40_000)
	view.PartialAmount = &partial
	view.PaidAmount = dec(40_000)
	view.RemainingAmount = dec(60_000)
	view.TrackedRemaining = dec(60_000)

	expenses := []*entity.Expense{
		makeExpense(5_000, entity.ExpenseCategoryMaintenance, now),
	}

	stats := ComputeStats([]entity.RevenueView{view}, expenses, now)

	t.Run("total revenue is the profit margin", func(t *testing.T) {
		if !stats.TotalRevenue.Equal(dec(50_000)) {
			t.Errorf("expected total revenue 50000, got %s", stats.TotalRevenue)
		}
	})

	t.Run("total expenses fold in the contract price", func(t *testing.T) {
		if !stats.TotalExpenses.Equal(dec(105_000)) {
			t.Errorf("expected total expenses 105000, got %s", stats.TotalExpenses)
		}
	})

	t.Run("net profit is 80 percent of revenue", func(t *testing.T) {
		if !stats.NetProfit.Equal(dec(40_000)) {
			t.Errorf("expected net profit 40000, got %s", stats.NetProfit)
		}
	})

	t.Run("partial contract contributes its tracked remainder", func(t *testing.T) {
		if !stats.PendingPayments.Equal(dec(60_000)) {
			t.Errorf("expected pending payments 60000, got %s", stats.PendingPayments)
		}
	})

	t.Run("deadline in the future means nothing overdue", func(t *testing.T) {
		if !stats.OverduePayments.IsZero() {
			t.Errorf("expected overdue payments 0, got %s", stats.OverduePayments)
		}
	})
}

func TestComputeStats_EmptyInputs(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now().UTC())

	for name, value := range map[string]decimal.Decimal{
		"total contract values": stats.TotalContractValues,
		"total market values":   stats.TotalMarketValues,
		"total revenue":         stats.TotalRevenue,
		"total expenses":        stats.TotalExpenses,
		"net profit":            stats.NetProfit,
		"pending payments":      stats.PendingPayments,
		"overdue payments":      stats.OverduePayments,
	} {
		if !value.IsZero() {
			t.Errorf("%s: expected zero, got %s", name, value)
		}
	}

	if len(stats.TopRevenueSources) != 0 {
		t.Errorf("expected no top revenue sources, got %d", len(stats.TopRevenueSources))
	}
	if len(stats.TopExpenseCategories) != 0 {
		t.Errorf("expected no top expense categories, got %d", len(stats.TopExpenseCategories))
	}
	if len(stats.MonthlyRevenue) != 12 || len(stats.MonthlyExpenses) != 12 {
		t.Fatalf("expected 12 monthly buckets, got %d revenue / %d expenses",
			len(stats.MonthlyRevenue), len(stats.MonthlyExpenses))
	}
	for i, point := range stats.MonthlyRevenue {
		if point.Month != time.Month(i+1) {
			t.Errorf("bucket %d: expected month %s, got %s", i, time.Month(i+1), point.Month)
		}
		if !point.Amount.IsZero() {
			t.Errorf("bucket %d: expected zero amount, got %s", i, point.Amount)
		}
	}
}

func TestComputeStats_PendingAndOverdue(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	pending := makeView(10_000, 12_000, entity.PaymentStatusPending)

	overdue := makeView(20_000, 25_000, entity.PaymentStatusOverdue)
	overdue.Deadline = past

	// Paid contract past its deadline contributes to neither total.
	paid := makeView(30_000, 35_000, entity.PaymentStatusPaid)
	paid.Deadline = past
	paid.PaidAmount = dec(30_000)
	paid.RemainingAmount = decimal.Zero

	// Cancelled contract contributes nothing even when unpaid.
	cancelled := makeView(40_000, 45_000, entity.PaymentStatusCancelled)
	cancelled.Deadline = past

	views := []entity.RevenueView{pending, overdue, paid, cancelled}
	stats := ComputeStats(views, nil, now)

	if !stats.PendingPayments.Equal(dec(30_000)) {
		t.Errorf("expected pending payments 30000, got %s", stats.PendingPayments)
	}
	if !stats.OverduePayments.Equal(dec(20_000)) {
		t.Errorf("expected overdue payments 20000, got %s", stats.OverduePayments)
	}

	t.Run("payment status stats count every contract", func(t *testing.T) {
		total := 0
		for _, stat := range stats.PaymentStatusStats {
			total += stat.Count
		}
		if total != len(views) {
			t.Errorf("expected %d contracts across status stats, got %d", len(views), total)
		}
		if stats.PaymentStatusStats[entity.PaymentStatusPending].Count != 1 {
			t.Errorf("expected 1 pending contract, got %d",
				stats.PaymentStatusStats[entity.PaymentStatusPending].Count)
		}
		if !stats.PaymentStatusStats[entity.PaymentStatusCancelled].TotalValue.Equal(dec(40_000)) {
			t.Errorf("expected cancelled total 40000, got %s",
				stats.PaymentStatusStats[entity.PaymentStatusCancelled].TotalValue)
		}
	})
}

func TestComputeStats_TopRevenueSources(t *testing.T) {
	now := time.Now().UTC()

	// Seven contracts with distinct margins 1000..7000.
	views := make([]entity.RevenueView, 0, 7)
	for i := int64(1); i <= 7; i++ {
		views = append(views, makeView(10_000, 10_000+i*1_000, entity.PaymentStatusPending))
	}

	stats := ComputeStats(views, nil, now)

	if len(stats.TopRevenueSources) != TopBreakdownLimit {
		t.Fatalf("expected %d top sources, got %d", TopBreakdownLimit, len(stats.TopRevenueSources))
	}

	// Ranked by margin descending: 7000 first.
	if !stats.TopRevenueSources[0].ProfitMargin.Equal(dec(7_000)) {
		t.Errorf("expected top margin 7000, got %s", stats.TopRevenueSources[0].ProfitMargin)
	}
	for i := 1; i < len(stats.TopRevenueSources); i++ {
		prev := stats.TopRevenueSources[i-1].ProfitMargin
		cur := stats.TopRevenueSources[i].ProfitMargin
		if cur.GreaterThan(prev) {
			t.Errorf("sources out of order at %d: %s > %s", i, cur, prev)
		}
	}

	// Total revenue is 1000+...+7000 = 28000; top share is 7000/28000 = 25.0%.
	if !stats.TopRevenueSources[0].Percentage.Equal(decimal.NewFromInt(25).Round(1)) {
		t.Errorf("expected top share 25.0, got %s", stats.TopRevenueSources[0].Percentage)
	}
}

func TestComputeStats_TopExpenseCategories(t *testing.T) {
	now := time.Now().UTC()
	date := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	// One contract so total expenses has a contract component too.
	view := makeView(50_000, 50_000, entity.PaymentStatusPending)

	expenses := []*entity.Expense{
		makeExpense(30_000, entity.ExpenseCategoryPersonnel, date),
		makeExpense(15_000, entity.ExpenseCategoryMaterials, date),
		makeExpense(5_000, entity.ExpenseCategoryMaterials, date),
	}

	stats := ComputeStats([]entity.RevenueView{view}, expenses, now)

	if len(stats.TopExpenseCategories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats.TopExpenseCategories))
	}
	if stats.TopExpenseCategories[0].Category != entity.ExpenseCategoryPersonnel {
		t.Errorf("expected personnel first, got %s", stats.TopExpenseCategories[0].Category)
	}
	if !stats.TopExpenseCategories[1].Amount.Equal(dec(20_000)) {
		t.Errorf("expected materials total 20000, got %s", stats.TopExpenseCategories[1].Amount)
	}

	// Total expenses = 50000 + 50000 = 100000; personnel share is 30.0%.
	if !stats.TopExpenseCategories[0].Percentage.Equal(decimal.NewFromInt(30).Round(1)) {
		t.Errorf("expected personnel share 30.0, got %s", stats.TopExpenseCategories[0].Percentage)
	}
}

func TestComputeStats_NegativeMarginShareIsZero(t *testing.T) {
	now := time.Now().UTC()

	// Market estimate below contract price yields a negative margin.
	losing := makeView(100_000, 80_000, entity.PaymentStatusPending)
	winning := makeView(10_000, 40_000, entity.PaymentStatusPending)

	stats := ComputeStats([]entity.RevenueView{losing, winning}, nil, now)

	var losingShare decimal.Decimal
	found := false
	for _, source := range stats.TopRevenueSources {
		if source.ProfitMargin.IsNegative() {
			losingShare = source.Percentage
			found = true
		}
	}
	if !found {
		t.Fatal("expected the losing contract in the breakdown")
	}
	if !losingShare.IsZero() {
		t.Errorf("expected 0.0 share for negative margin, got %s", losingShare)
	}
}

func TestComputeStats_MonthlyBuckets(t *testing.T) {
	now := time.Now().UTC()

	// Contracts started in March 2025 and March 2026 collapse into one bucket.
	first := makeView(10_000, 14_000, entity.PaymentStatusPending)
	first.StartDate = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	second := makeView(20_000, 22_000, entity.PaymentStatusPending)
	second.StartDate = time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	expenses := []*entity.Expense{
		makeExpense(1_000, entity.ExpenseCategoryOther, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)),
	}

	stats := ComputeStats([]entity.RevenueView{first, second}, expenses, now)

	march := stats.MonthlyRevenue[int(time.March)-1]
	if !march.Amount.Equal(dec(6_000)) {
		t.Errorf("expected march revenue 6000, got %s", march.Amount)
	}
	for i, point := range stats.MonthlyRevenue {
		if time.Month(i+1) == time.March {
			continue
		}
		if !point.Amount.IsZero() {
			t.Errorf("month %s: expected zero revenue, got %s", point.Month, point.Amount)
		}
	}

	cashFlow := CashFlowSeries(stats.MonthlyRevenue, stats.MonthlyExpenses)
	if len(cashFlow) != 12 {
		t.Fatalf("expected 12 cash-flow buckets, got %d", len(cashFlow))
	}
	if !cashFlow[int(time.March)-1].Amount.Equal(dec(5_000)) {
		t.Errorf("expected march cash flow 5000, got %s", cashFlow[int(time.March)-1].Amount)
	}
}

func TestShareOf(t *testing.T) {
	tests := []struct {
		name  string
		part  decimal.Decimal
		total decimal.Decimal
		want  string
	}{
		{"simple half", dec(50), dec(100), "50"},
		{"rounds to one decimal", dec(1), dec(3), "33.3"},
		{"zero total", dec(10), decimal.Zero, "0"},
		{"negative total", dec(10), dec(-5), "0"},
		{"negative part", dec(-10), dec(100), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shareOf(tt.part, tt.total)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("shareOf(%s, %s) = %s, want %s", tt.part, tt.total, got, want)
			}
		})
	}
}
