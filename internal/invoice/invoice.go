// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/woodora/woodora-backend/internal/model"
)

// Render produces an A4 invoice for the order, branded from the site
// settings. The currency symbol is drawn from settings so the layout works
// for any locale the store is configured with.
func Render(o *model.Order, s *model.SiteSettings) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	// core fonts are cp1252; the rupee sign needs an ASCII stand-in
	cur := s.CurrencySymbol
	if cur == "₹" || cur == "" {
		cur = "Rs. "
	}
	money := func(v float64) string { return fmt.Sprintf("%s%.2f", cur, v) }

	// header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, s.BusinessName)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(110, 4.5, s.BusinessAddress, "", "L", false)
	if s.BusinessPhone != "" {
		pdf.CellFormat(110, 4.5, "Phone: "+s.BusinessPhone, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// order meta
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 5.5, "Invoice No: "+o.ID, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5.5, "Date: "+o.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 5.5, "Status: "+string(o.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// bill-to block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5.5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, o.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, o.CustomerPhone, "", 1, "L", false, 0, "")
	pdf.MultiCell(120, 5, o.Address, "", "L", false)
	pdf.Ln(4)

	// items table
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range o.Items {
		pdf.CellFormat(90, 6.5, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6.5, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6.5, money(it.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6.5, money(it.Price*float64(it.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// totals
	summary := func(label string, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
	}
	summary("Subtotal", money(o.Subtotal), false)
	if o.Discount > 0 {
		label := "Discount"
		if o.CouponCode != nil {
			label = "Discount (" + *o.CouponCode + ")"
		}
		summary(label, "-"+money(o.Discount), false)
	}
	if o.Shipping > 0 {
		summary("Shipping", money(o.Shipping), false)
	} else {
		summary("Shipping", "FREE", false)
	}
	if s.TaxPercent > 0 {
		// prices are tax-inclusive; the invoice breaks the component out
		tax := o.Total * s.TaxPercent / (100 + s.TaxPercent)
		summary(fmt.Sprintf("Includes GST (%.1f%%)", s.TaxPercent), money(tax), false)
	}
	summary("Total", money(o.Total), true)
	if o.RemainingAmount > 0 {
		summary("Paid (advance)", money(o.AdvanceAmount), false)
		summary("Balance Due", money(o.RemainingAmount), true)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Thank you for shopping with "+s.BusinessName+".", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
