package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

func seedSettlement(repo *fakeSettlementRepo) *entity.Settlement {
	settlement := entity.NewSettlement(
		uuid.New(),
		decimal.NewFromInt(10_000),
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		"VIR-2026-002",
		"",
	)
	repo.settlements[settlement.ID] = settlement
	return settlement
}

func TestUpdateSettlement_PartialFieldUpdate(t *testing.T) {
	repo := newFakeSettlementRepo()
	seeded := seedSettlement(repo)
	publisher := &fakePublisher{}
	uc := NewUpdateSettlementUseCase(repo, publisher, nil)

	amount := decimal.NewFromInt(12_500)
	output, err := uc.Execute(context.Background(), UpdateSettlementInput{
		ID:     seeded.ID,
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Settlement.Amount.Equal(amount) {
		t.Errorf("expected amount 12500, got %s", output.Settlement.Amount)
	}
	if output.Settlement.Reference != "VIR-2026-002" {
		t.Error("fields not named in the input must stay unchanged")
	}
	if !output.Settlement.SettledAt.Equal(seeded.SettledAt) {
		t.Error("settlement date must stay unchanged")
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != adapter.ChangeEventUpdate {
		t.Error("expected a single update change event")
	}
}

func TestUpdateSettlement_InvalidResultRejected(t *testing.T) {
	repo := newFakeSettlementRepo()
	seeded := seedSettlement(repo)
	uc := NewUpdateSettlementUseCase(repo, nil, nil)

	negative := decimal.NewFromInt(-1)
	_, err := uc.Execute(context.Background(), UpdateSettlementInput{
		ID:     seeded.ID,
		Amount: &negative,
	})

	var stlErr *domainerror.SettlementError
	if !errors.As(err, &stlErr) {
		t.Fatalf("expected SettlementError, got %v", err)
	}
	if stlErr.Code != domainerror.ErrCodeInvalidSettlementAmount {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidSettlementAmount, stlErr.Code)
	}
}

func TestUpdateSettlement_NotFound(t *testing.T) {
	repo := newFakeSettlementRepo()
	uc := NewUpdateSettlementUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), UpdateSettlementInput{ID: uuid.New()})

	if !errors.Is(err, domainerror.ErrSettlementNotFound) {
		t.Errorf("expected settlement-not-found, got %v", err)
	}
	var stlErr *domainerror.SettlementError
	if !errors.As(err, &stlErr) || stlErr.Code != domainerror.ErrCodeSettlementNotFound {
		t.Errorf("expected coded error %s, got %v", domainerror.ErrCodeSettlementNotFound, err)
	}
}

func TestDeleteSettlement_RemovesAndPublishes(t *testing.T) {
	repo := newFakeSettlementRepo()
	seeded := seedSettlement(repo)
	publisher := &fakePublisher{}
	uc := NewDeleteSettlementUseCase(repo, publisher, nil)

	if err := uc.Execute(context.Background(), DeleteSettlementInput{ID: seeded.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := repo.settlements[seeded.ID]; ok {
		t.Error("expected settlement removed from store")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != adapter.ChangeEventDelete {
		t.Error("expected a single delete change event")
	}
}

func TestDeleteSettlement_NotFound(t *testing.T) {
	repo := newFakeSettlementRepo()
	publisher := &fakePublisher{}
	uc := NewDeleteSettlementUseCase(repo, publisher, nil)

	err := uc.Execute(context.Background(), DeleteSettlementInput{ID: uuid.New()})

	if !errors.Is(err, domainerror.ErrSettlementNotFound) {
		t.Errorf("expected settlement-not-found, got %v", err)
	}
	var stlErr *domainerror.SettlementError
	if !errors.As(err, &stlErr) || stlErr.Code != domainerror.ErrCodeSettlementNotFound {
		t.Errorf("expected coded error %s, got %v", domainerror.ErrCodeSettlementNotFound, err)
	}
	if len(publisher.events) != 0 {
		t.Error("expected no change event for a failed delete")
	}
}
