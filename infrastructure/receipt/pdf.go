// Package receipt renders printable order receipts as PDF documents.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"storefront/application/notification"

	"github.com/go-pdf/fpdf"
)

const currencyPrefix = "PHP "

// PDFRenderer A4 portrait receipt using the core Helvetica font
type PDFRenderer struct {
	storeName string
	now       func() time.Time
	compress  bool
}

func NewPDFRenderer(storeName string) *PDFRenderer {
	if storeName == "" {
		storeName = "Kitchenatics"
	}
	return &PDFRenderer{storeName: storeName, now: time.Now, compress: true}
}

func (r *PDFRenderer) RenderReceipt(view notification.OrderView) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle("Receipt "+view.OrderNumber, false)
	pdf.SetAuthor(r.storeName, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 30)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-25)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%d %s. All rights reserved.", r.now().Year(), r.storeName)), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Generated on "+r.now().Format("2006-01-02 15:04"), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(76, 175, 80)
	pdf.CellFormat(0, 10, tr(strings.ToUpper(r.storeName)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "ORDER RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Order Number: " + view.OrderNumber,
		"Order Date: " + view.CreatedAt.Format("January 2, 2006"),
		"Status: " + capitalize(view.Status),
		"Payment Method: " + paymentLabel(view.PaymentMethod),
	} {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 7, "Customer Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	customer := []string{"Name: " + orNA(view.Customer.Name), "Email: " + orNA(view.Customer.Email)}
	if view.Customer.Phone != "" {
		customer = append(customer, "Phone: "+view.Customer.Phone)
	}
	if view.Customer.Address != "" {
		customer = append(customer, "Address: "+view.Customer.Address)
	}
	if view.Customer.ZipCode != "" {
		customer = append(customer, "ZIP Code: "+view.Customer.ZipCode)
	}
	for _, line := range customer {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 7, "Order Items", "", 1, "L", false, 0, "")

	widths := []float64{90, 20, 30, 30}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, heading := range []string{"Product", "Qty", "Price", "Total"} {
		align := "R"
		switch i {
		case 0:
			align = "L"
		case 1:
			align = "C"
		}
		pdf.CellFormat(widths[i], 7, heading, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range view.Lines {
		name := l.Name
		if name == "" {
			name = notification.PlaceholderProductName
		}
		pdf.CellFormat(widths[0], 6, tr(truncate(name, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", l.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, currencyPrefix+l.Price.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, currencyPrefix+l.Total.String(), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	labelWidth := widths[0] + widths[1] + widths[2]
	pdf.CellFormat(labelWidth, 6, "Subtotal:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, currencyPrefix+view.Subtotal.String(), "T", 1, "R", false, 0, "")
	pdf.CellFormat(labelWidth, 6, "Tax (8%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, currencyPrefix+view.Tax.String(), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelWidth, 8, "Grand Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, currencyPrefix+view.Total.String(), "", 1, "R", false, 0, "")

	if pdf.Err() {
		return nil, fmt.Errorf("render receipt %s: %w", view.OrderNumber, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", view.OrderNumber, err)
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// paymentLabel "cash_on_delivery" -> "CASH ON DELIVERY"
func paymentLabel(method string) string {
	if method == "" {
		return "N/A"
	}
	return strings.ToUpper(strings.ReplaceAll(method, "_", " "))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

var _ notification.ReceiptRenderer = (*PDFRenderer)(nil)
