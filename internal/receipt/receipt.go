// Package receipt renders a completed order as a PDF document.
package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"storefront/internal/domain"
)

// Renderer produces PDF receipts for completed orders.
type Renderer struct {
	storeName string
}

func NewRenderer(storeName string) *Renderer {
	if storeName == "" {
		storeName = "Storefront"
	}
	return &Renderer{storeName: storeName}
}

// Render returns the receipt for the order as PDF bytes. Line items
// whose product was deleted are shown with a placeholder name and a
// zero amount. Errors yield no document at all.
func (r *Renderer) Render(order domain.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Receipt for order %s", order.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Receipt for order %s", order.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Placed on %s", order.CreatedAt.Format("Jan 2, 2006 15:04 MST")), "", 1, "C", false, 0, "")
	if order.TransactionID != "" {
		pdf.CellFormat(0, 7, fmt.Sprintf("Transaction %s", order.TransactionID), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.Items {
		name := item.ProductName
		if item.ProductID == nil || name == "" {
			name = "Deleted product"
		}
		pdf.CellFormat(90, 8, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, item.LineTotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(140, 9, "Order total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 9, order.Total().StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
