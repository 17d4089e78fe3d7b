package deal

import (
	"fmt"
	"net/http"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Deals"

var exportHeadings = []string{
	"ID", "Client", "Sales Rep", "Stage", "Estimated Value", "Probability",
	"Expected Close", "Won On", "Lost On", "Created At",
}

// GET /deals/export (token obrigatório, mesmo escopo da listagem)
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
		return
	}
	deals, err := h.Repository.List(h.DB.WithContext(r.Context()), auth.DealScope(p))
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Export", apperrors.Persistence("Failed to export deals", err))
		return
	}

	f, err := buildWorkbook(deals)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Export", apperrors.Persistence("Failed to export deals", err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=deals.xlsx")
	if err := f.Write(w); err != nil {
		h.Logger.WithError(err).Error("falha ao escrever planilha de deals")
	}
}

// buildWorkbook monta a planilha com uma linha por deal.
func buildWorkbook(deals []models.Deal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, heading := range exportHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, heading); err != nil {
			return nil, err
		}
	}

	for i, d := range deals {
		row := i + 2
		dto := toDTO(d)
		values := []any{
			dto.ID,
			deref(dto.ClientCompany),
			deref(dto.SalesRepName),
			dto.Stage,
			d.EstimatedValue.InexactFloat64(),
			dto.Probability,
			dateCell(dto.ExpectedClose),
			dateCell(dto.WonOn),
			dateCell(dto.LostOn),
			dto.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateCell(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
