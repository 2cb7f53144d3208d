package service

import (
	"context"
	"time"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/policy"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	// Cerrar reconciles declared against expected totals and closes the shift.
	// The transition is one-way: a second close finds no open caja and fails.
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error)
	GetAbierta(ctx context.Context) (*dto.CajaResponse, error)
	Resumen(ctx context.Context, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error)
}

type cajaService struct {
	repo        repository.CajaRepository
	ventaRepo   repository.VentaRepository
	usuarioRepo repository.UsuarioRepository
	dispatcher  *worker.Dispatcher
}

func NewCajaService(
	repo repository.CajaRepository,
	ventaRepo repository.VentaRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
) CajaService {
	return &cajaService{repo: repo, ventaRepo: ventaRepo, usuarioRepo: usuarioRepo, dispatcher: dispatcher}
}

var errSinCajaAbierta = &apierror.Error{Kind: apierror.KindNotFound, Detail: "No hay caja abierta"}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.AbrirCaja); err != nil {
		return nil, err
	}
	if req.MontoApertura.IsNegative() {
		return nil, apierror.BusinessRule("El monto de apertura no puede ser negativo")
	}

	// Friendly guard; the partial unique index closes the race between two
	// concurrent opens — the loser gets Conflict from Create.
	if _, err := s.repo.FindAbierta(ctx); err == nil {
		return nil, apierror.Conflict("Ya existe una caja abierta")
	}

	caja := &model.Caja{
		UsuarioID:     usuarioID,
		MontoApertura: req.MontoApertura,
		Estado:        model.CajaAbierta,
		FechaApertura: time.Now(),
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Locks the open caja row before aggregating so concurrent sales (which take
// the same lock inside their transaction) cannot slip into a shift while its
// totals are being computed.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.CerrarCaja); err != nil {
		return nil, err
	}

	var caja *model.Caja
	txErr := s.repo.RunInTx(ctx, func(tx *gorm.DB) error {
		caja, err = s.repo.FindAbiertaTx(tx)
		if err != nil {
			return errSinCajaAbierta
		}

		esperado, err := s.efectivoEsperado(ctx, caja)
		if err != nil {
			return err
		}

		d := req.Declaracion
		diferencia := d.Efectivo.Sub(esperado)
		now := time.Now()

		caja.Estado = model.CajaCerrada
		caja.FechaCierre = &now
		caja.CierreEfectivo = &d.Efectivo
		caja.CierreBancard = &d.Bancard
		caja.CierreProcard = &d.Procard
		caja.CierreTransferencia = &d.Transferencia
		caja.CierreBotonDePago = &d.BotonDePago
		caja.CierrePos = &d.Pos
		caja.Diferencia = &diferencia
		caja.Observaciones = req.Observaciones

		return s.repo.UpdateTx(tx, caja)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best effort: mail the closing report to the back office.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueCierreReporte(ctx, worker.CierreReportePayload{
			CajaID: caja.ID.String(),
		})
	}

	return cajaToResponse(caja), nil
}

// ── GetAbierta ────────────────────────────────────────────────────────────────

func (s *cajaService) GetAbierta(ctx context.Context) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, errSinCajaAbierta
	}
	return cajaToResponse(caja), nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────
// Per-method payment totals plus the expected cash figure for one shift.

func (s *cajaService) Resumen(ctx context.Context, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, apierror.NotFound("caja", cajaID.String())
	}

	sums, err := s.ventaRepo.SumPagosPorMetodo(ctx, caja.ID)
	if err != nil {
		return nil, err
	}
	vuelto, err := s.ventaRepo.SumVuelto(ctx, caja.ID)
	if err != nil {
		return nil, err
	}

	porMetodo := dto.MontosPorMetodo{
		Efectivo:      sums[model.MetodoEfectivo],
		Bancard:       sums[model.MetodoBancard],
		Procard:       sums[model.MetodoProcard],
		Transferencia: sums[model.MetodoTransferencia],
		BotonDePago:   sums[model.MetodoBotonDePago],
		Pos:           sums[model.MetodoPos],
	}
	porMetodo.Total = porMetodo.Efectivo.
		Add(porMetodo.Bancard).Add(porMetodo.Procard).
		Add(porMetodo.Transferencia).Add(porMetodo.BotonDePago).Add(porMetodo.Pos)

	// Net cash receipts exclude the change handed back to customers.
	esperado := caja.MontoApertura.Add(sums[model.MetodoEfectivo]).Sub(vuelto)

	return &dto.ResumenCajaResponse{
		CajaID:           caja.ID.String(),
		Estado:           caja.Estado,
		MontoApertura:    caja.MontoApertura,
		PorMetodo:        porMetodo,
		VueltoEntregado:  vuelto,
		EfectivoEsperado: esperado,
		Diferencia:       caja.Diferencia,
	}, nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error) {
	cajas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CajaResponse, 0, len(cajas))
	for _, c := range cajas {
		resp = append(resp, *cajaToResponse(&c))
	}
	return resp, total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) efectivoEsperado(ctx context.Context, caja *model.Caja) (decimal.Decimal, error) {
	sums, err := s.ventaRepo.SumPagosPorMetodo(ctx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}
	vuelto, err := s.ventaRepo.SumVuelto(ctx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return caja.MontoApertura.Add(sums[model.MetodoEfectivo]).Sub(vuelto), nil
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:            c.ID.String(),
		UsuarioID:     c.UsuarioID.String(),
		Estado:        c.Estado,
		MontoApertura: c.MontoApertura,
		FechaApertura: c.FechaApertura.Format("2006-01-02T15:04:05Z"),
		Diferencia:    c.Diferencia,
		Observaciones: c.Observaciones,
	}
	if c.FechaCierre != nil {
		t := c.FechaCierre.Format("2006-01-02T15:04:05Z")
		resp.FechaCierre = &t
	}
	if c.CierreEfectivo != nil {
		declarado := dto.MontosPorMetodo{
			Efectivo:      *c.CierreEfectivo,
			Bancard:       *c.CierreBancard,
			Procard:       *c.CierreProcard,
			Transferencia: *c.CierreTransferencia,
			BotonDePago:   *c.CierreBotonDePago,
			Pos:           *c.CierrePos,
		}
		declarado.Total = declarado.Efectivo.
			Add(declarado.Bancard).Add(declarado.Procard).
			Add(declarado.Transferencia).Add(declarado.BotonDePago).Add(declarado.Pos)
		resp.Declarado = &declarado
	}
	return resp
}
