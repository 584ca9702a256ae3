package finance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

type stubContractRepo struct {
	contracts []*entity.Contract
	err       error
	calls     atomic.Int32
}

func (s *stubContractRepo) FindActiveWithMarket(_ context.Context) ([]*entity.Contract, error) {
	s.calls.Add(1)
	return s.contracts, s.err
}

func (s *stubContractRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Contract, error) {
	return nil, domainerror.ErrContractNotFound
}

func (s *stubContractRepo) UpdatePaymentState(_ context.Context, _ uuid.UUID, _ adapter.PaymentStateUpdate) (*entity.Contract, error) {
	return nil, domainerror.ErrContractNotFound
}

type stubSettlementRepo struct {
	settlements []*entity.Settlement
	err         error
}

func (s *stubSettlementRepo) Create(_ context.Context, _ *entity.Settlement) error { return nil }
func (s *stubSettlementRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Settlement, error) {
	return nil, domainerror.ErrSettlementNotFound
}
func (s *stubSettlementRepo) FindAll(_ context.Context) ([]*entity.Settlement, error) {
	return s.settlements, s.err
}
func (s *stubSettlementRepo) FindByContract(_ context.Context, _ uuid.UUID) ([]*entity.Settlement, error) {
	return s.settlements, s.err
}
func (s *stubSettlementRepo) Update(_ context.Context, _ *entity.Settlement) error { return nil }
func (s *stubSettlementRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

type stubExpenseRepo struct {
	expenses []*entity.Expense
	err      error
}

func (s *stubExpenseRepo) Create(_ context.Context, _ *entity.Expense) error { return nil }
func (s *stubExpenseRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}
func (s *stubExpenseRepo) FindAll(_ context.Context) ([]*entity.Expense, error) {
	return s.expenses, s.err
}
func (s *stubExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }
func (s *stubExpenseRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func TestRefreshOverview_PublishesSnapshot(t *testing.T) {
	contract := makeContract(100_000, &entity.Market{
		ID:              uuid.New(),
		Object:          "Station de pompage",
		EstimatedAmount: decimal.NewFromInt(130_000),
	})

	holder := NewSnapshotHolder()
	uc := NewRefreshOverviewUseCase(
		&stubContractRepo{contracts: []*entity.Contract{contract}},
		&stubSettlementRepo{settlements: []*entity.Settlement{makeSettlement(contract.ID, 20_000)}},
		&stubExpenseRepo{},
		holder,
	)

	snapshot, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot.Finances.Revenue) != 1 {
		t.Fatalf("expected 1 revenue view, got %d", len(snapshot.Finances.Revenue))
	}
	if !snapshot.Finances.Revenue[0].PaidAmount.Equal(dec(20_000)) {
		t.Errorf("expected paid amount 20000, got %s", snapshot.Finances.Revenue[0].PaidAmount)
	}
	if !snapshot.Stats.TotalRevenue.Equal(dec(30_000)) {
		t.Errorf("expected total revenue 30000, got %s", snapshot.Stats.TotalRevenue)
	}
	if len(snapshot.Finances.CashFlow) != 12 {
		t.Errorf("expected 12 cash-flow buckets, got %d", len(snapshot.Finances.CashFlow))
	}
	if snapshot.ComputedAt.IsZero() {
		t.Error("expected computed-at timestamp")
	}

	published, err := holder.Snapshot()
	if err != nil {
		t.Fatalf("expected published snapshot, got %v", err)
	}
	if published != snapshot {
		t.Error("expected holder to expose the same snapshot")
	}
}

func TestRefreshOverview_FetchFailureAbortsRun(t *testing.T) {
	holder := NewSnapshotHolder()
	previous := &entity.FinanceSnapshot{}
	holder.Publish(previous)

	storeErr := errors.New("connection refused")
	uc := NewRefreshOverviewUseCase(
		&stubContractRepo{err: storeErr},
		&stubSettlementRepo{},
		&stubExpenseRepo{},
		holder,
	)

	_, err := uc.Execute(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}

	var finErr *domainerror.FinanceError
	if !errors.As(err, &finErr) {
		t.Fatalf("expected FinanceError, got %T", err)
	}
	if finErr.Code != domainerror.ErrCodeContractsFetchFailed {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeContractsFetchFailed, finErr.Code)
	}
	if !errors.Is(err, storeErr) {
		t.Error("expected the store error to be wrapped")
	}

	// The previous snapshot stays visible, with the failure recorded.
	snapshot, loading, errMessage := holder.Current()
	if snapshot != previous {
		t.Error("expected previous snapshot to remain published")
	}
	if loading {
		t.Error("expected loading cleared after the failed run")
	}
	if errMessage == "" {
		t.Error("expected the failure to be recorded on the holder")
	}
}

func TestRefreshOverview_SettlementFetchFailure(t *testing.T) {
	holder := NewSnapshotHolder()
	uc := NewRefreshOverviewUseCase(
		&stubContractRepo{},
		&stubSettlementRepo{err: errors.New("timeout")},
		&stubExpenseRepo{},
		holder,
	)

	_, err := uc.Execute(context.Background())
	var finErr *domainerror.FinanceError
	if !errors.As(err, &finErr) {
		t.Fatalf("expected FinanceError, got %T", err)
	}
	if finErr.Code != domainerror.ErrCodeSettlementsFetchFailed {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeSettlementsFetchFailed, finErr.Code)
	}
}
