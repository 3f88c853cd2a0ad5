package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/xuri/excelize/v2"
)

// ExportSales streams the sales of a period as an Excel workbook.
// GET /reportes/ventas/export?desde=2025-01-01&hasta=2025-01-31
func (h *Handler) ExportSales(c *gin.Context) {
	from, to := parsePeriod(c.Query("desde"), c.Query("hasta"))

	var sales []database.Sale
	if err := h.db.Preload("Lines").Preload("Customer").
		Where("sale_date BETWEEN ? AND ?", from, to).
		Order("sale_date ASC").
		Find(&sales).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ventas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Fecha", "Cliente", "Tipo de pago", "Estado", "Subtotal", "Impuesto", "Total", "Saldo pendiente", "Utilidad"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, s := range sales {
		customerName := ""
		if s.Customer != nil {
			customerName = s.Customer.Name
		}
		values := []interface{}{
			s.SaleDate.Format("2006-01-02 15:04"),
			customerName,
			s.PaymentType,
			s.Status,
			s.Subtotal,
			s.Tax,
			s.Total,
			s.Balance,
			s.Profit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("ventas_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
