// Package pdf renders invoices to PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mverhoef/opvang/internal/model"
)

const organizationName = "Opvang Register"

// RenderInvoice renders an invoice to a single-page A4 PDF. Compression
// is disabled so output is byte-stable for a given invoice.
func RenderInvoice(inv *model.Invoice) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("render invoice: invoice is nil")
	}
	if inv.Parent == nil {
		return nil, fmt.Errorf("render invoice %d: invoice has no parent", inv.ID)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetCatalogSort(true)
	// Pin the metadata timestamps so rendering the same invoice twice
	// yields identical bytes.
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetModificationDate(time.Unix(0, 0).UTC())
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "FACTUUR", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, fmt.Sprintf("Factuurnummer: %d", inv.ID), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Datum: %s", formatInvoiceDate(inv.InvoiceDate)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Klant: %s", inv.Parent.Name), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Telefoon: %s", inv.Parent.Phone), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Email: %s", inv.Parent.Email), "", 1, "L", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 8, "Omschrijving", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, "Bedrag", "1", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(130, 8, "Kinderopvang", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, tr(fmt.Sprintf("€ %.2f", inv.Amount)), "1", 1, "R", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr(fmt.Sprintf("Totaalbedrag: € %.2f", inv.Amount)), "", 1, "R", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 11)
	status := "Status: Nog te betalen"
	if inv.Paid {
		status = "Status: Betaald"
	}
	doc.CellFormat(0, 6, status, "", 1, "L", false, 0, "")
	doc.Ln(10)

	doc.CellFormat(0, 6, "Met vriendelijke groet,", "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, organizationName, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}
	return buf.Bytes(), nil
}

// formatInvoiceDate converts the stored yyyy-mm-dd date to the dd-mm-yyyy
// form used on the document. Unparseable values pass through untouched.
func formatInvoiceDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02-01-2006")
}
