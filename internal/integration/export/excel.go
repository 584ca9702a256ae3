// Package export renders the published financial aggregate as downloadable
// documents: an Excel workbook for the raw export and a PDF for the
// period-filtered reports.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

const (
	summarySheet  = "Synthèse"
	revenueSheet  = "Marchés"
	expensesSheet = "Dépenses"
)

// ExcelExporter renders a finance snapshot as an xlsx workbook with a
// summary sheet, a per-contract revenue sheet and an expense sheet.
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export renders the snapshot and returns the workbook bytes.
func (e *ExcelExporter) Export(snapshot *entity.FinanceSnapshot) ([]byte, error) {
	file := excelize.NewFile()

	file.SetSheetName("Sheet1", summarySheet)
	if err := e.writeSummary(file, snapshot); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(revenueSheet); err != nil {
		return nil, err
	}
	if err := e.writeRevenue(file, snapshot.Finances.Revenue); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(expensesSheet); err != nil {
		return nil, err
	}
	if err := e.writeExpenses(file, snapshot.Finances.Expenses); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeSummary(file *excelize.File, snapshot *entity.FinanceSnapshot) error {
	stats := snapshot.Stats

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Situation financière")
	set("A2", "Calculée le")
	set("B2", formatDateTime(snapshot.ComputedAt))

	rows := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Montant total des contrats", stats.TotalContractValues},
		{"Montant total des marchés", stats.TotalMarketValues},
		{"Revenus totaux (marge)", stats.TotalRevenue},
		{"Dépenses totales", stats.TotalExpenses},
		{"Bénéfice net", stats.NetProfit},
		{"Paiements en attente", stats.PendingPayments},
		{"Paiements en retard", stats.OverduePayments},
	}
	for i, row := range rows {
		set(fmt.Sprintf("A%d", 4+i), row.label)
		set(fmt.Sprintf("B%d", 4+i), formatAmount(row.amount))
	}

	tableRow := 4 + len(rows) + 2
	set(fmt.Sprintf("A%d", tableRow), "Statut de paiement")
	set(fmt.Sprintf("B%d", tableRow), "Contrats")
	set(fmt.Sprintf("C%d", tableRow), "Montant total")
	for i, status := range entity.AllPaymentStatuses {
		stat := stats.PaymentStatusStats[status]
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), paymentStatusLabel(status))
		set(fmt.Sprintf("B%d", row), stat.Count)
		set(fmt.Sprintf("C%d", row), formatAmount(stat.TotalValue))
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 36)
	_ = file.SetColWidth(summarySheet, "B", "C", 20)
	return nil
}

func (e *ExcelExporter) writeRevenue(file *excelize.File, views []entity.RevenueView) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(revenueSheet, cell, value)
	}

	headers := []string{
		"Référence",
		"Objet",
		"Attributaire",
		"Date de début",
		"Échéance",
		"Montant contrat",
		"Montant marché",
		"Marge",
		"Montant payé",
		"Reste à payer",
		"Statut de paiement",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, view := range views {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), view.Reference)
		set(fmt.Sprintf("B%d", row), view.Subject)
		set(fmt.Sprintf("C%d", row), view.Awardee)
		set(fmt.Sprintf("D%d", row), formatDate(view.StartDate))
		set(fmt.Sprintf("E%d", row), formatDate(view.Deadline))
		set(fmt.Sprintf("F%d", row), formatAmount(view.TotalValue))
		set(fmt.Sprintf("G%d", row), formatAmount(view.MarketEstimatedAmount))
		set(fmt.Sprintf("H%d", row), formatAmount(view.ProfitMargin()))
		set(fmt.Sprintf("I%d", row), formatAmount(view.PaidAmount))
		set(fmt.Sprintf("J%d", row), formatAmount(view.RemainingAmount))
		set(fmt.Sprintf("K%d", row), paymentStatusLabel(view.PaymentStatus))
	}

	_ = file.SetColWidth(revenueSheet, "A", "A", 18)
	_ = file.SetColWidth(revenueSheet, "B", "C", 36)
	_ = file.SetColWidth(revenueSheet, "D", "E", 14)
	_ = file.SetColWidth(revenueSheet, "F", "K", 16)
	return nil
}

func (e *ExcelExporter) writeExpenses(file *excelize.File, expenses []*entity.Expense) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(expensesSheet, cell, value)
	}

	headers := []string{
		"Date",
		"Description",
		"Catégorie",
		"Montant",
		"Statut",
		"Mode de paiement",
		"Fournisseur",
		"N° de facture",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, expense := range expenses {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), formatDate(expense.Date))
		set(fmt.Sprintf("B%d", row), expense.Description)
		set(fmt.Sprintf("C%d", row), expenseCategoryLabel(expense.Category))
		set(fmt.Sprintf("D%d", row), formatAmount(expense.Amount))
		set(fmt.Sprintf("E%d", row), string(expense.Status))
		set(fmt.Sprintf("F%d", row), string(expense.PaymentMethod))
		set(fmt.Sprintf("G%d", row), expense.Supplier)
		set(fmt.Sprintf("H%d", row), expense.InvoiceNumber)
	}

	_ = file.SetColWidth(expensesSheet, "A", "A", 14)
	_ = file.SetColWidth(expensesSheet, "B", "B", 40)
	_ = file.SetColWidth(expensesSheet, "C", "F", 18)
	_ = file.SetColWidth(expensesSheet, "G", "H", 24)
	return nil
}

func paymentStatusLabel(status entity.PaymentStatus) string {
	switch status {
	case entity.PaymentStatusPending:
		return "En attente"
	case entity.PaymentStatusPartial:
		return "Partiel"
	case entity.PaymentStatusPaid:
		return "Payé"
	case entity.PaymentStatusOverdue:
		return "En retard"
	case entity.PaymentStatusCancelled:
		return "Annulé"
	default:
		return string(status)
	}
}

func expenseCategoryLabel(category entity.ExpenseCategory) string {
	switch category {
	case entity.ExpenseCategoryMaterials:
		return "Matériaux"
	case entity.ExpenseCategoryMaintenance:
		return "Maintenance"
	case entity.ExpenseCategoryPersonnel:
		return "Personnel"
	case entity.ExpenseCategoryServices:
		return "Services"
	case entity.ExpenseCategoryOther:
		return "Autre"
	default:
		return string(category)
	}
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
