package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

func makeContract(amount int64, market *entity.Market) *entity.Contract {
	contract := &entity.Contract{
		ID:              uuid.New(),
		Reference:       "CTR-2026-001",
		Subject:         "Réhabilitation du canal principal",
		Amount:          dec(amount),
		Status:          entity.ContractStatusActive,
		StartDate:       time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Deadline:        time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC),
		Awardee:         "SARL Hydraulique du Sud",
		PaymentStatus:   entity.PaymentStatusPending,
		RemainingAmount: dec(amount),
		Market:          market,
	}
	if market != nil {
		contract.MarketID = &market.ID
	}
	return contract
}

func makeSettlement(contractID uuid.UUID, amount int64) *entity.Settlement {
	return &entity.Settlement{
		ID:         uuid.New(),
		ContractID: contractID,
		Amount:     dec(amount),
		SettledAt:  time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildRevenueViews_JoinsSettlements(t *testing.T) {
	market := &entity.Market{
		ID:              uuid.New(),
		Number:          "AO-2025-042",
		Object:          "Canal principal secteur nord",
		EstimatedAmount: dec(150_000),
	}
	contract := makeContract(100_000, market)

	settlements := []*entity.Settlement{
		makeSettlement(contract.ID, 25_000),
		makeSettlement(contract.ID, 15_000),
		makeSettlement(uuid.New(), 99_000), // unrelated contract
	}

	views := BuildRevenueViews([]*entity.Contract{contract}, settlements)

	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0]

	if !view.PaidAmount.Equal(dec(40_000)) {
		t.Errorf("expected paid amount 40000, got %s", view.PaidAmount)
	}
	if !view.RemainingAmount.Equal(dec(60_000)) {
		t.Errorf("expected remaining amount 60000, got %s", view.RemainingAmount)
	}
	if !view.MarketEstimatedAmount.Equal(dec(150_000)) {
		t.Errorf("expected market amount 150000, got %s", view.MarketEstimatedAmount)
	}
	if view.MarketObject != market.Object {
		t.Errorf("expected market object %q, got %q", market.Object, view.MarketObject)
	}
	if !view.ProfitMargin().Equal(dec(50_000)) {
		t.Errorf("expected profit margin 50000, got %s", view.ProfitMargin())
	}
}

func TestBuildRevenueViews_MissingMarketFallback(t *testing.T) {
	contract := makeContract(80_000, nil)

	views := BuildRevenueViews([]*entity.Contract{contract}, nil)

	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0]

	if !view.MarketEstimatedAmount.Equal(dec(80_000)) {
		t.Errorf("expected fallback market amount 80000, got %s", view.MarketEstimatedAmount)
	}
	if view.MarketObject != MissingMarketObject {
		t.Errorf("expected placeholder object %q, got %q", MissingMarketObject, view.MarketObject)
	}

	// Fallback makes the margin zero, not negative.
	if !view.ProfitMargin().IsZero() {
		t.Errorf("expected zero margin without market, got %s", view.ProfitMargin())
	}
}

func TestBuildRevenueViews_OverpaymentNotClamped(t *testing.T) {
	contract := makeContract(10_000, nil)
	settlements := []*entity.Settlement{
		makeSettlement(contract.ID, 12_000),
	}

	views := BuildRevenueViews([]*entity.Contract{contract}, settlements)

	if !views[0].RemainingAmount.Equal(dec(-2_000)) {
		t.Errorf("expected remaining -2000, got %s", views[0].RemainingAmount)
	}
}

func TestBuildRevenueViews_CarriesPaymentSubState(t *testing.T) {
	contract := makeContract(100_000, nil)
	partial := dec(30_000)
	contract.PaymentStatus = entity.PaymentStatusPartial
	contract.PartialAmount = &partial
	contract.RemainingAmount = dec(70_000)

	views := BuildRevenueViews([]*entity.Contract{contract}, nil)

	view := views[0]
	if view.PaymentStatus != entity.PaymentStatusPartial {
		t.Errorf("expected partial status, got %s", view.PaymentStatus)
	}
	if view.PartialAmount == nil || !view.PartialAmount.Equal(partial) {
		t.Errorf("expected partial amount 30000, got %v", view.PartialAmount)
	}
	if !view.TrackedRemaining.Equal(dec(70_000)) {
		t.Errorf("expected tracked remaining 70000, got %s", view.TrackedRemaining)
	}
}

func TestBuildRevenueViews_EmptyInput(t *testing.T) {
	views := BuildRevenueViews(nil, nil)
	if len(views) != 0 {
		t.Errorf("expected no views, got %d", len(views))
	}
}
