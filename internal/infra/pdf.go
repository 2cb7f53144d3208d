package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents come out of here:
//   - GenerateTicketPDF: an A7 thermal-receipt-style ticket for one sale.
//   - GenerateCierrePDF: an A5 arqueo (cash count) report for a closed caja,
//     with declared vs expected amounts per payment method.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateTicketPDF generates a PDF receipt for a completed Venta.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateTicketPDF(venta *model.Venta, nombreComercio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", venta.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreComercio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Ticket info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	if venta.NumeroDocumento != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Documento N° %s", *venta.NumeroDocumento), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta %s", venta.ID.String()[:8]), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, d := range venta.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		// Truncate long names
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !venta.DescuentoGlobalMonto.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+venta.DescuentoGlobalMonto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment methods ───────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range venta.Pagos {
		label := "Pago (" + pago.Metodo + "):"
		pdf.CellFormat(col1+col2, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if !venta.Vuelto.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Vuelto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, venta.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// GenerateCierrePDF writes the arqueo report for a closed caja: system totals
// per payment method next to the cashier's declared amounts, cash change
// netted from expected cash, and the signed difference.
func GenerateCierrePDF(caja *model.Caja, pagos map[string]decimal.Decimal, vuelto decimal.Decimal, nombreComercio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", caja.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, nombreComercio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Arqueo de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Caja: %s", caja.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Apertura: %s", caja.FechaApertura.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if caja.FechaCierre != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Cierre: %s", caja.FechaCierre.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Monto de apertura: %s", caja.MontoApertura.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Per-method table ──────────────────────────────────────────────────────
	col1 := contentW * 0.40
	col2 := contentW * 0.30
	col3 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Método", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Sistema", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Declarado", "B", 1, "R", false, 0, "")

	declarados := map[string]*decimal.Decimal{
		model.MetodoEfectivo:      caja.CierreEfectivo,
		model.MetodoBancard:       caja.CierreBancard,
		model.MetodoProcard:       caja.CierreProcard,
		model.MetodoTransferencia: caja.CierreTransferencia,
		model.MetodoBotonDePago:   caja.CierreBotonDePago,
		model.MetodoPos:           caja.CierrePos,
	}

	pdf.SetFont("Helvetica", "", 8)
	for _, metodo := range model.MetodosPago {
		esperado := pagos[metodo]
		if metodo == model.MetodoEfectivo {
			// Expected cash includes the opening float and nets out change given.
			esperado = caja.MontoApertura.Add(esperado).Sub(vuelto)
		}
		declarado := "—"
		if d := declarados[metodo]; d != nil {
			declarado = d.StringFixed(2)
		}
		pdf.CellFormat(col1, 5, metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, esperado.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, declarado, "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1+col2, 5, "Vuelto entregado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, vuelto.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	diferencia := decimal.Zero
	if caja.Diferencia != nil {
		diferencia = *caja.Diferencia
	}
	pdf.CellFormat(col1+col2, 7, "Diferencia de efectivo:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, diferencia.StringFixed(2), "", 1, "R", false, 0, "")

	if caja.Observaciones != nil && *caja.Observaciones != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Obs: "+*caja.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
