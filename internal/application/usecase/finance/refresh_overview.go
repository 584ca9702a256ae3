package finance

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// RefreshOverviewUseCase runs the full fetch-join-aggregate pipeline and
// publishes the resulting snapshot. Every mutation and every change-feed
// burst funnels through this use case; there is no incremental update path.
type RefreshOverviewUseCase struct {
	contractRepo   adapter.ContractRepository
	settlementRepo adapter.SettlementRepository
	expenseRepo    adapter.ExpenseRepository
	holder         *SnapshotHolder
}

// NewRefreshOverviewUseCase creates a new RefreshOverviewUseCase instance.
func NewRefreshOverviewUseCase(
	contractRepo adapter.ContractRepository,
	settlementRepo adapter.SettlementRepository,
	expenseRepo adapter.ExpenseRepository,
	holder *SnapshotHolder,
) *RefreshOverviewUseCase {
	return &RefreshOverviewUseCase{
		contractRepo:   contractRepo,
		settlementRepo: settlementRepo,
		expenseRepo:    expenseRepo,
		holder:         holder,
	}
}

// Execute fetches contracts (with market expansion), settlements and
// expenses, joins them, computes the statistics and publishes the snapshot.
// A failure in any fetch step aborts the whole run: no partial stats are
// ever published, and the previously published snapshot stays visible.
func (uc *RefreshOverviewUseCase) Execute(ctx context.Context) (*entity.FinanceSnapshot, error) {
	uc.holder.SetLoading(true)
	defer uc.holder.SetLoading(false)

	contracts, err := uc.contractRepo.FindActiveWithMarket(ctx)
	if err != nil {
		return nil, uc.fail(domainerror.ErrCodeContractsFetchFailed, "failed to fetch contracts", err)
	}

	settlements, err := uc.settlementRepo.FindAll(ctx)
	if err != nil {
		return nil, uc.fail(domainerror.ErrCodeSettlementsFetchFailed, "failed to fetch settlements", err)
	}

	expenses, err := uc.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, uc.fail(domainerror.ErrCodeExpensesFetchFailed, "failed to fetch expenses", err)
	}

	revenues := BuildRevenueViews(contracts, settlements)
	stats := ComputeStats(revenues, expenses, time.Now().UTC())

	snapshot := &entity.FinanceSnapshot{
		Finances: entity.FinanceData{
			Contracts:   contracts,
			Settlements: settlements,
			Expenses:    expenses,
			Revenue:     revenues,
			CashFlow:    CashFlowSeries(stats.MonthlyRevenue, stats.MonthlyExpenses),
		},
		Stats:      stats,
		ComputedAt: time.Now().UTC(),
	}

	uc.holder.Publish(snapshot)

	slog.Debug("Financial snapshot published",
		"contracts", len(contracts),
		"settlements", len(settlements),
		"expenses", len(expenses),
	)

	return snapshot, nil
}

// fail records the pipeline failure on the holder and wraps the store error.
func (uc *RefreshOverviewUseCase) fail(code domainerror.FinanceErrorCode, message string, err error) error {
	financeErr := domainerror.NewFinanceError(code, message, err)
	uc.holder.SetError(financeErr.Error())
	return financeErr
}
