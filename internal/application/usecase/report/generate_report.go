package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// GenerateReportInput represents the input for report generation.
type GenerateReportInput struct {
	StartDate time.Time
	EndDate   time.Time
	Type      entity.ReportType
}

// GenerateReportOutput represents the rendered report file.
type GenerateReportOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GenerateReportUseCase renders a period-filtered PDF report from the
// published snapshot.
type GenerateReportUseCase struct {
	holder    *finance.SnapshotHolder
	generator adapter.ReportGenerator
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(holder *finance.SnapshotHolder, generator adapter.ReportGenerator) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		holder:    holder,
		generator: generator,
	}
}

// Execute filters the current snapshot to the requested period and renders
// the report.
func (uc *GenerateReportUseCase) Execute(_ context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	snapshot, err := uc.holder.Snapshot()
	if err != nil {
		return nil, err
	}

	report := entity.FinancialReport{
		Type:        input.Type,
		PeriodStart: input.StartDate,
		PeriodEnd:   input.EndDate,
		GeneratedAt: time.Now().UTC(),
		Revenue:     filterRevenue(snapshot.Finances.Revenue, input.StartDate, input.EndDate),
		Expenses:    filterExpenses(snapshot.Finances.Expenses, input.StartDate, input.EndDate),
		Stats:       snapshot.Stats,
	}

	content, err := uc.generator.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &GenerateReportOutput{
		FileName:    fmt.Sprintf("rapport-%s-%s.pdf", input.Type, time.Now().UTC().Format("2006-01-02")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// validateInput validates the report period and type.
func (uc *GenerateReportUseCase) validateInput(input GenerateReportInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidReportPeriod,
			"report period requires a start date before the end date",
			domainerror.ErrInvalidReportPeriod,
		)
	}
	if !entity.IsValidReportType(input.Type) {
		return domainerror.NewFinanceError(
			domainerror.ErrCodeUnsupportedReportType,
			fmt.Sprintf("unsupported report type %q", input.Type),
			domainerror.ErrUnsupportedReportType,
		)
	}
	return nil
}

// filterRevenue keeps the revenue views whose contract start date falls
// within the period, bounds inclusive.
func filterRevenue(revenue []entity.RevenueView, start, end time.Time) []entity.RevenueView {
	filtered := make([]entity.RevenueView, 0, len(revenue))
	for _, view := range revenue {
		if inPeriod(view.StartDate, start, end) {
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// filterExpenses keeps the expenses dated within the period, bounds inclusive.
func filterExpenses(expenses []*entity.Expense, start, end time.Time) []*entity.Expense {
	filtered := make([]*entity.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if inPeriod(expense.Date, start, end) {
			filtered = append(filtered, expense)
		}
	}
	return filtered
}

func inPeriod(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
