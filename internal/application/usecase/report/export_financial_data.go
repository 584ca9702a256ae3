// Package report contains reporting and export use cases. Both are thin
// wrappers over the published aggregate: they read the snapshot, never the
// store.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// ExportFormatXLSX is the supported spreadsheet export format.
const ExportFormatXLSX = "xlsx"

// ExportFinancialDataInput represents the input for a financial data export.
type ExportFinancialDataInput struct {
	Format string
}

// ExportFinancialDataOutput represents the rendered export file.
type ExportFinancialDataOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportFinancialDataUseCase renders the published snapshot as a
// spreadsheet download.
type ExportFinancialDataUseCase struct {
	holder   *finance.SnapshotHolder
	exporter adapter.FinancialExporter
}

// NewExportFinancialDataUseCase creates a new ExportFinancialDataUseCase instance.
func NewExportFinancialDataUseCase(holder *finance.SnapshotHolder, exporter adapter.FinancialExporter) *ExportFinancialDataUseCase {
	return &ExportFinancialDataUseCase{
		holder:   holder,
		exporter: exporter,
	}
}

// Execute renders the current snapshot in the requested format.
func (uc *ExportFinancialDataUseCase) Execute(_ context.Context, input ExportFinancialDataInput) (*ExportFinancialDataOutput, error) {
	if input.Format != ExportFormatXLSX {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeUnsupportedExportFormat,
			fmt.Sprintf("unsupported export format %q", input.Format),
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	snapshot, err := uc.holder.Snapshot()
	if err != nil {
		return nil, err
	}

	content, err := uc.exporter.Export(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	return &ExportFinancialDataOutput{
		FileName:    fmt.Sprintf("finances-%s.xlsx", time.Now().UTC().Format("2006-01-02")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}
