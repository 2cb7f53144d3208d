package worker

// reporte_worker.go
// Processes shift-close report jobs from QueueReportes.
// Generates the arqueo PDF for a closed caja and enqueues an email job so the
// back office receives the reconciliation summary.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/infra"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CierreReportePayload is the job envelope sent to QueueReportes.
type CierreReportePayload struct {
	CajaID string `json:"caja_id"`
}

// CierreReporteWorker builds the closing report for a caja.
type CierreReporteWorker struct {
	cajaRepo       repository.CajaRepository
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	reporteEmailTo string
	nombreComercio string
}

func NewCierreReporteWorker(
	cajaRepo repository.CajaRepository,
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	reporteEmailTo string,
	nombreComercio string,
) *CierreReporteWorker {
	return &CierreReporteWorker{
		cajaRepo:       cajaRepo,
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		reporteEmailTo: reporteEmailTo,
		nombreComercio: nombreComercio,
	}
}

// Process handles a single cierre_reporte job:
//  1. Parse CierreReportePayload from the job envelope
//  2. Fetch the closed Caja and its per-method payment totals
//  3. Generate the arqueo PDF (retried with backoff; parked in fallidos on final failure)
//  4. Enqueue an email job with the PDF attached
func (w *CierreReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CierreReportePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}

	cajaID, err := uuid.Parse(payload.CajaID)
	if err != nil {
		log.Error().Str("caja_id", payload.CajaID).Msg("reporte_worker: invalid caja_id")
		return
	}

	caja, err := w.cajaRepo.FindByID(ctx, cajaID)
	if err != nil {
		log.Error().Err(err).Str("caja_id", payload.CajaID).Msg("reporte_worker: caja not found")
		return
	}

	pagos, err := w.ventaRepo.SumPagosPorMetodo(ctx, cajaID)
	if err != nil {
		log.Error().Err(err).Str("caja_id", payload.CajaID).Msg("reporte_worker: failed to sum payments")
		return
	}
	vuelto, err := w.ventaRepo.SumVuelto(ctx, cajaID)
	if err != nil {
		log.Error().Err(err).Str("caja_id", payload.CajaID).Msg("reporte_worker: failed to sum change")
		return
	}

	const maxAttempts = 3
	var pdfPath string
	pdfErr := withRetry(ctx, maxAttempts, func(attempt int) error {
		path, err := infra.GenerateCierrePDF(caja, pagos, vuelto, w.nombreComercio, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("caja_id", payload.CajaID).
				Msg("reporte_worker: PDF generation failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if pdfErr != nil {
		log.Error().Err(pdfErr).Str("caja_id", payload.CajaID).Msg("reporte_worker: PDF failed after all retries")
		MarcarFallido(ctx, w.rdb, QueueReportes, "cierre_reporte", raw, pdfErr.Error(), maxAttempts)
		return
	}
	log.Info().Str("pdf", pdfPath).Str("caja_id", payload.CajaID).Msg("reporte_worker: arqueo PDF generated")

	if w.reporteEmailTo == "" {
		log.Warn().Msg("reporte_worker: no report recipient configured — skipping email")
		return
	}

	var diferencia string
	if caja.Diferencia != nil {
		diferencia = caja.Diferencia.StringFixed(2)
	}
	emailJob := EmailJobPayload{
		ToEmail: w.reporteEmailTo,
		Subject: fmt.Sprintf("Cierre de caja — %s", caja.ID.String()[:8]),
		Body: fmt.Sprintf(
			"Se cerró la caja %s.\nMonto de apertura: %s\nDiferencia de efectivo: %s\nDetalle en el PDF adjunto.",
			caja.ID, caja.MontoApertura.StringFixed(2), diferencia,
		),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("caja_id", payload.CajaID).Msg("reporte_worker: failed to enqueue email")
		return
	}
	log.Info().Str("to", w.reporteEmailTo).Str("caja_id", payload.CajaID).Msg("reporte_worker: email job enqueued")
}
