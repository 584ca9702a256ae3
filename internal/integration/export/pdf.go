package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

const pdfFont = "Helvetica"

// PDFReportGenerator renders a period-filtered financial report as an A4
// PDF document. French text fits the core fonts through the latin-1
// translator, so no font embedding is needed.
type PDFReportGenerator struct{}

// NewPDFReportGenerator creates a new PDFReportGenerator.
func NewPDFReportGenerator() *PDFReportGenerator {
	return &PDFReportGenerator{}
}

// Generate renders the report and returns the document bytes.
func (g *PDFReportGenerator) Generate(report entity.FinancialReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(reportTitle(report.Type)), "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Période du %s au %s",
		formatDate(report.PeriodStart), formatDate(report.PeriodEnd))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Généré le %s", formatDateTime(report.GeneratedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	switch report.Type {
	case entity.ReportTypeRevenue:
		g.writeRevenueTable(pdf, tr, report.Revenue)
	case entity.ReportTypeExpenses:
		g.writeExpenseTable(pdf, tr, report.Expenses)
	default:
		g.writeSummary(pdf, tr, report)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *PDFReportGenerator) writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, report entity.FinancialReport) {
	stats := report.Stats

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr("Indicateurs globaux"), "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 11)

	lines := []struct {
		label string
		value string
	}{
		{"Montant total des contrats", formatAmount(stats.TotalContractValues)},
		{"Montant total des marchés", formatAmount(stats.TotalMarketValues)},
		{"Revenus totaux (marge)", formatAmount(stats.TotalRevenue)},
		{"Dépenses totales", formatAmount(stats.TotalExpenses)},
		{"Bénéfice net", formatAmount(stats.NetProfit)},
		{"Paiements en attente", formatAmount(stats.PendingPayments)},
		{"Paiements en retard", formatAmount(stats.OverduePayments)},
	}
	for _, line := range lines {
		pdf.CellFormat(90, 6, tr(line.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(line.value+" DH"), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr("Principales sources de revenus"), "", 1, "L", false, 0, "")
	drawTableRow(pdf, tr, []string{"Référence", "Objet", "Marge", "Part"},
		[]float64{35, 95, 30, 20}, true)
	for _, source := range stats.TopRevenueSources {
		drawTableRow(pdf, tr, []string{
			source.Reference,
			source.Subject,
			formatAmount(source.ProfitMargin),
			source.Percentage.StringFixed(1) + " %",
		}, []float64{35, 95, 30, 20}, false)
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr("Principales catégories de dépenses"), "", 1, "L", false, 0, "")
	drawTableRow(pdf, tr, []string{"Catégorie", "Montant", "Part"},
		[]float64{100, 50, 30}, true)
	for _, category := range stats.TopExpenseCategories {
		drawTableRow(pdf, tr, []string{
			expenseCategoryLabel(category.Category),
			formatAmount(category.Amount),
			category.Percentage.StringFixed(1) + " %",
		}, []float64{100, 50, 30}, false)
	}
}

func (g *PDFReportGenerator) writeRevenueTable(pdf *gofpdf.Fpdf, tr func(string) string, views []entity.RevenueView) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Marchés de la période (%d)", len(views))), "", 1, "L", false, 0, "")

	widths := []float64{30, 60, 25, 25, 25, 15}
	drawTableRow(pdf, tr, []string{"Référence", "Objet", "Contrat", "Marché", "Marge", "Statut"}, widths, true)
	for _, view := range views {
		drawTableRow(pdf, tr, []string{
			view.Reference,
			view.Subject,
			formatAmount(view.TotalValue),
			formatAmount(view.MarketEstimatedAmount),
			formatAmount(view.ProfitMargin()),
			string(view.PaymentStatus),
		}, widths, false)
	}
}

func (g *PDFReportGenerator) writeExpenseTable(pdf *gofpdf.Fpdf, tr func(string) string, expenses []*entity.Expense) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Dépenses de la période (%d)", len(expenses))), "", 1, "L", false, 0, "")

	widths := []float64{25, 70, 35, 30, 20}
	drawTableRow(pdf, tr, []string{"Date", "Description", "Catégorie", "Montant", "Statut"}, widths, true)
	for _, expense := range expenses {
		drawTableRow(pdf, tr, []string{
			formatDate(expense.Date),
			expense.Description,
			expenseCategoryLabel(expense.Category),
			formatAmount(expense.Amount),
			string(expense.Status),
		}, widths, false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(pdfFont, style, 9)
	for i, col := range cols {
		align := "L"
		if i >= len(cols)-2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func reportTitle(t entity.ReportType) string {
	switch t {
	case entity.ReportTypeRevenue:
		return "Rapport des revenus"
	case entity.ReportTypeExpenses:
		return "Rapport des dépenses"
	default:
		return "Rapport financier de synthèse"
	}
}
