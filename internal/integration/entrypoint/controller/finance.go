package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/application/usecase/report"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/dto"
)

// FinanceController handles the financial overview, export and report endpoints.
type FinanceController struct {
	holder         *finance.SnapshotHolder
	refreshUseCase *finance.RefreshOverviewUseCase
	exportUseCase  *report.ExportFinancialDataUseCase
	reportUseCase  *report.GenerateReportUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(
	holder *finance.SnapshotHolder,
	refreshUseCase *finance.RefreshOverviewUseCase,
	exportUseCase *report.ExportFinancialDataUseCase,
	reportUseCase *report.GenerateReportUseCase,
) *FinanceController {
	return &FinanceController{
		holder:         holder,
		refreshUseCase: refreshUseCase,
		exportUseCase:  exportUseCase,
		reportUseCase:  reportUseCase,
	}
}

// GetOverview handles GET /finances requests.
// It serves the published snapshot, computing one on demand when none has
// been published yet.
func (c *FinanceController) GetOverview(ctx *gin.Context) {
	snapshot, _, _ := c.holder.Current()
	if snapshot == nil {
		fresh, err := c.refreshUseCase.Execute(ctx.Request.Context())
		if err != nil {
			c.handleFinanceError(ctx, err)
			return
		}
		snapshot = fresh
	}

	ctx.JSON(http.StatusOK, dto.ToFinanceOverviewResponse(snapshot))
}

// GetSnapshotStatus handles GET /finances/snapshot requests.
// It is a lightweight probe of the holder state, never triggering a refresh.
func (c *FinanceController) GetSnapshotStatus(ctx *gin.Context) {
	snapshot, loading, errMessage := c.holder.Current()
	ctx.JSON(http.StatusOK, dto.ToSnapshotStatusResponse(snapshot, loading, errMessage))
}

// Refresh handles POST /finances/refresh requests.
// It forces a full fetch-join-aggregate run and returns the new snapshot.
func (c *FinanceController) Refresh(ctx *gin.Context) {
	snapshot, err := c.refreshUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinanceOverviewResponse(snapshot))
}

// Export handles GET /finances/export requests.
func (c *FinanceController) Export(ctx *gin.Context) {
	format := ctx.DefaultQuery("format", report.ExportFormatXLSX)

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), report.ExportFinancialDataInput{
		Format: format,
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.FileName+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// GenerateReport handles GET /finances/report requests.
func (c *FinanceController) GenerateReport(ctx *gin.Context) {
	startDate, err := time.Parse("2006-01-02", ctx.Query("start_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidReportPeriod),
		})
		return
	}
	endDate, err := time.Parse("2006-01-02", ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidReportPeriod),
		})
		return
	}

	reportType := entity.ReportType(ctx.DefaultQuery("type", string(entity.ReportTypeSummary)))

	output, err := c.reportUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      reportType,
	})
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.FileName+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// handleFinanceError maps finance errors to HTTP responses.
func (c *FinanceController) handleFinanceError(ctx *gin.Context, err error) {
	var finErr *domainerror.FinanceError
	if errors.As(err, &finErr) {
		statusCode := c.getStatusCodeForFinanceError(finErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForFinanceError maps finance error codes to HTTP status codes.
func (c *FinanceController) getStatusCodeForFinanceError(code domainerror.FinanceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportPeriod,
		domainerror.ErrCodeUnsupportedExportFormat,
		domainerror.ErrCodeUnsupportedReportType:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoSnapshot:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeStoreNotConfigured,
		domainerror.ErrCodeContractsFetchFailed,
		domainerror.ErrCodeSettlementsFetchFailed,
		domainerror.ErrCodeExpensesFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
