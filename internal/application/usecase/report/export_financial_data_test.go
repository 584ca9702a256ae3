package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

type fakeExporter struct {
	content []byte
	err     error
	got     *entity.FinanceSnapshot
}

func (f *fakeExporter) Export(snapshot *entity.FinanceSnapshot) ([]byte, error) {
	f.got = snapshot
	return f.content, f.err
}

func publishedHolder(snapshot *entity.FinanceSnapshot) *finance.SnapshotHolder {
	holder := finance.NewSnapshotHolder()
	holder.Publish(snapshot)
	return holder
}

func TestExportFinancialData_Success(t *testing.T) {
	snapshot := &entity.FinanceSnapshot{ComputedAt: time.Now().UTC()}
	exporter := &fakeExporter{content: []byte("PK\x03\x04")}
	uc := NewExportFinancialDataUseCase(publishedHolder(snapshot), exporter)

	output, err := uc.Execute(context.Background(), ExportFinancialDataInput{Format: ExportFormatXLSX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exporter.got != snapshot {
		t.Error("exporter should receive the published snapshot")
	}
	if !strings.HasPrefix(output.FileName, "finances-") || !strings.HasSuffix(output.FileName, ".xlsx") {
		t.Errorf("unexpected file name %q", output.FileName)
	}
	if output.ContentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", output.ContentType)
	}
	if string(output.Content) != "PK\x03\x04" {
		t.Error("expected the rendered bytes to pass through")
	}
}

func TestExportFinancialData_UnsupportedFormat(t *testing.T) {
	uc := NewExportFinancialDataUseCase(publishedHolder(&entity.FinanceSnapshot{}), &fakeExporter{})

	for _, format := range []string{"csv", "pdf", ""} {
		t.Run("format "+format, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), ExportFinancialDataInput{Format: format})

			var finErr *domainerror.FinanceError
			if !errors.As(err, &finErr) {
				t.Fatalf("expected FinanceError, got %v", err)
			}
			if finErr.Code != domainerror.ErrCodeUnsupportedExportFormat {
				t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnsupportedExportFormat, finErr.Code)
			}
		})
	}
}

func TestExportFinancialData_NoSnapshot(t *testing.T) {
	uc := NewExportFinancialDataUseCase(finance.NewSnapshotHolder(), &fakeExporter{})

	_, err := uc.Execute(context.Background(), ExportFinancialDataInput{Format: ExportFormatXLSX})

	if !errors.Is(err, domainerror.ErrNoSnapshot) {
		t.Errorf("expected no-snapshot error, got %v", err)
	}
}

func TestExportFinancialData_RendererFailure(t *testing.T) {
	exporter := &fakeExporter{err: errors.New("sheet write failed")}
	uc := NewExportFinancialDataUseCase(publishedHolder(&entity.FinanceSnapshot{}), exporter)

	_, err := uc.Execute(context.Background(), ExportFinancialDataInput{Format: ExportFormatXLSX})
	if err == nil || !strings.Contains(err.Error(), "sheet write failed") {
		t.Errorf("expected wrapped renderer error, got %v", err)
	}
}
