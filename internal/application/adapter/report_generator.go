package adapter

import (
	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// FinancialExporter renders the published snapshot as a downloadable
// spreadsheet workbook.
type FinancialExporter interface {
	// Export renders the snapshot and returns the file bytes.
	Export(snapshot *entity.FinanceSnapshot) ([]byte, error)
}

// ReportGenerator renders a period-filtered financial report as a
// downloadable document.
type ReportGenerator interface {
	// Generate renders the report and returns the file bytes.
	Generate(report entity.FinancialReport) ([]byte, error)
}
