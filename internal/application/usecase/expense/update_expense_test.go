package expense

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

func seededExpense() *entity.Expense {
	return entity.NewExpense(
		"Maintenance pompe station 2",
		decimal.NewFromInt(1_200),
		entity.ExpenseCategoryMaintenance,
		time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		entity.ExpenseStatusPending,
		entity.PaymentMethodTransfer,
		"Hydro Services",
		"",
		"",
	)
}

func TestUpdateExpense_PartialFieldUpdate(t *testing.T) {
	seeded := seededExpense()
	repo := &fakeExpenseRepo{byID: map[uuid.UUID]*entity.Expense{seeded.ID: seeded}}
	publisher := &fakePublisher{}
	uc := NewUpdateExpenseUseCase(repo, publisher, nil)

	amount := decimal.NewFromInt(1_500)
	status := entity.ExpenseStatusPaid
	output, err := uc.Execute(context.Background(), UpdateExpenseInput{
		ID:     seeded.ID,
		Amount: &amount,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Expense.Amount.Equal(amount) {
		t.Errorf("expected amount 1500, got %s", output.Expense.Amount)
	}
	if output.Expense.Status != entity.ExpenseStatusPaid {
		t.Errorf("expected status paid, got %s", output.Expense.Status)
	}
	if output.Expense.Description != "Maintenance pompe station 2" {
		t.Error("fields not named in the input must stay unchanged")
	}
	if output.Expense.Category != entity.ExpenseCategoryMaintenance {
		t.Error("category must stay unchanged")
	}

	if len(repo.updated) != 1 {
		t.Errorf("expected 1 persisted update, got %d", len(repo.updated))
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != adapter.ChangeEventUpdate {
		t.Error("expected a single update change event")
	}
}

func TestUpdateExpense_InvalidResultRejected(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(input *UpdateExpenseInput)
		wantCode domainerror.ExpenseErrorCode
	}{
		{
			name: "negative amount",
			mutate: func(input *UpdateExpenseInput) {
				amount := decimal.NewFromInt(-100)
				input.Amount = &amount
			},
			wantCode: domainerror.ErrCodeInvalidExpenseAmount,
		},
		{
			name: "unknown category",
			mutate: func(input *UpdateExpenseInput) {
				category := entity.ExpenseCategory("training")
				input.Category = &category
			},
			wantCode: domainerror.ErrCodeInvalidExpenseCategory,
		},
		{
			name: "unknown payment method",
			mutate: func(input *UpdateExpenseInput) {
				method := entity.PaymentMethod("crypto")
				input.PaymentMethod = &method
			},
			wantCode: domainerror.ErrCodeInvalidPaymentMethod,
		},
		{
			name: "empty description",
			mutate: func(input *UpdateExpenseInput) {
				description := ""
				input.Description = &description
			},
			wantCode: domainerror.ErrCodeMissingExpenseDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seeded := seededExpense()
			repo := &fakeExpenseRepo{byID: map[uuid.UUID]*entity.Expense{seeded.ID: seeded}}
			publisher := &fakePublisher{}
			uc := NewUpdateExpenseUseCase(repo, publisher, nil)

			input := UpdateExpenseInput{ID: seeded.ID}
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)

			var expErr *domainerror.ExpenseError
			if !errors.As(err, &expErr) {
				t.Fatalf("expected ExpenseError, got %v", err)
			}
			if expErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, expErr.Code)
			}
			if len(repo.updated) != 0 {
				t.Error("expected no store write for invalid input")
			}
			if len(publisher.events) != 0 {
				t.Error("expected no change event for invalid input")
			}
		})
	}
}

func TestUpdateExpense_NotFound(t *testing.T) {
	repo := &fakeExpenseRepo{byID: map[uuid.UUID]*entity.Expense{}}
	uc := NewUpdateExpenseUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), UpdateExpenseInput{ID: uuid.New()})

	if !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Errorf("expected expense-not-found, got %v", err)
	}
	var expErr *domainerror.ExpenseError
	if !errors.As(err, &expErr) || expErr.Code != domainerror.ErrCodeExpenseNotFound {
		t.Errorf("expected coded error %s, got %v", domainerror.ErrCodeExpenseNotFound, err)
	}
}

func TestDeleteExpense_RemovesAndPublishes(t *testing.T) {
	seeded := seededExpense()
	repo := &fakeExpenseRepo{byID: map[uuid.UUID]*entity.Expense{seeded.ID: seeded}}
	publisher := &fakePublisher{}
	uc := NewDeleteExpenseUseCase(repo, publisher, nil)

	if err := uc.Execute(context.Background(), DeleteExpenseInput{ID: seeded.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.deleted) != 1 || repo.deleted[0] != seeded.ID {
		t.Error("expected the expense deleted from the store")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != adapter.ChangeEventDelete {
		t.Error("expected a single delete change event")
	}
	if publisher.events[0].RecordID != seeded.ID {
		t.Error("change event should carry the expense ID")
	}
}

func TestDeleteExpense_NotFound(t *testing.T) {
	repo := &fakeExpenseRepo{byID: map[uuid.UUID]*entity.Expense{}}
	publisher := &fakePublisher{}
	uc := NewDeleteExpenseUseCase(repo, publisher, nil)

	err := uc.Execute(context.Background(), DeleteExpenseInput{ID: uuid.New()})

	if !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Errorf("expected expense-not-found, got %v", err)
	}
	var expErr *domainerror.ExpenseError
	if !errors.As(err, &expErr) || expErr.Code != domainerror.ErrCodeExpenseNotFound {
		t.Errorf("expected coded error %s, got %v", domainerror.ErrCodeExpenseNotFound, err)
	}
	if len(repo.deleted) != 0 {
		t.Error("expected no delete call for unknown expense")
	}
	if len(publisher.events) != 0 {
		t.Error("expected no change event for a failed delete")
	}
}
