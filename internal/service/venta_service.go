package service

import (
	"context"
	"strings"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/policy"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	// RegistrarVenta creates a sale as one atomic unit: open-shift check,
	// reference resolution, totals, payment validation, per-line stock
	// decrement with movement records, and the sale insert. Any failure rolls
	// back every mutation.
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ActualizarDocumento(ctx context.Context, id uuid.UUID, req dto.ActualizarDocumentoRequest) (*dto.VentaResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.VentaResponse, error)
	// EliminarVenta removes the sale and reverses its stock effect with
	// compensating entrada/correccion movements; the original salida/venta
	// movements stay in the log (audit permanence).
	EliminarVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) error
	GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	cajaRepo     repository.CajaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	usuarioRepo  repository.UsuarioRepository
	inventario   InventarioService
}

func NewVentaService(
	repo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	inventario InventarioService,
) VentaService {
	return &ventaService{
		repo:         repo,
		cajaRepo:     cajaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		usuarioRepo:  usuarioRepo,
		inventario:   inventario,
	}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.RegistrarVenta); err != nil {
		return nil, err
	}

	// 1. Pre-flight: an open caja must exist. Re-checked under lock inside the
	// transaction; this early check just gives a fast, friendly failure.
	if _, err := s.cajaRepo.FindAbierta(ctx); err != nil {
		return nil, apierror.Conflict("No hay caja abierta")
	}

	// 2. Resolve optional cliente.
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.BusinessRule("cliente_id invalido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, apierror.NotFound("cliente", cid.String())
		}
		clienteID = &cid
	}

	// 3. Resolve products and compute line totals. Prices are snapshotted
	// here — later catalog changes never touch this sale.
	type lineaResuelta struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		descValor  decimal.Decimal
		descTipo   string
		subtotal   decimal.Decimal
	}

	resueltas := make([]lineaResuelta, 0, len(req.Detalles))
	bruto := decimal.Zero
	for _, d := range req.Detalles {
		pid, err := uuid.Parse(d.ProductoID)
		if err != nil {
			return nil, apierror.BusinessRule("producto_id invalido")
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("producto", d.ProductoID)
		}
		if !p.Activo {
			return nil, apierror.BusinessRuleID("El producto esta inactivo y no puede venderse", "producto", d.ProductoID)
		}
		descUnitario, err := ResolverDescuento(p.PrecioVenta, d.DescuentoValor, d.DescuentoTipo)
		if err != nil {
			return nil, err
		}
		subtotal := p.PrecioVenta.Sub(descUnitario).Mul(decimal.NewFromInt(int64(d.Cantidad)))
		bruto = bruto.Add(subtotal)
		resueltas = append(resueltas, lineaResuelta{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.PrecioVenta,
			cantidad:   d.Cantidad,
			descValor:  d.DescuentoValor,
			descTipo:   normalizarTipo(d.DescuentoTipo),
			subtotal:   subtotal,
		})
	}

	// 4. Global discount against the gross total.
	descuentoGlobal, err := ResolverDescuento(bruto, req.DescuentoGlobalValor, req.DescuentoGlobalTipo)
	if err != nil {
		return nil, err
	}
	total := bruto.Sub(descuentoGlobal)

	// 5. Payment sufficiency; overpayment becomes cash change.
	pagado, err := ValidarPagos(req.Pagos, total)
	if err != nil {
		return nil, err
	}
	vuelto := pagado.Sub(total)

	// 6. Optional external document number.
	var numeroDoc *string
	if req.NumeroDocumento != nil {
		n := strings.TrimSpace(*req.NumeroDocumento)
		if n == "" {
			return nil, apierror.BusinessRule("El numero de documento no puede estar vacio")
		}
		if _, err := s.repo.FindByNumeroDocumento(ctx, n); err == nil {
			return nil, apierror.Conflict("Numero de documento ya utilizado")
		}
		numeroDoc = &n
	}

	// 7. One atomic unit: shift check under lock, sale insert, per-line stock
	// decrement with movement records.
	var venta model.Venta
	txErr := s.repo.RunInTx(ctx, func(tx *gorm.DB) error {
		caja, err := s.cajaRepo.FindAbiertaTx(tx)
		if err != nil {
			return apierror.Conflict("No hay caja abierta")
		}

		venta = model.Venta{
			NumeroDocumento:      numeroDoc,
			CajaID:               caja.ID,
			ClienteID:            clienteID,
			UsuarioID:            usuarioID,
			Subtotal:             bruto,
			DescuentoGlobalValor: req.DescuentoGlobalValor,
			DescuentoGlobalTipo:  normalizarTipo(req.DescuentoGlobalTipo),
			DescuentoGlobalMonto: descuentoGlobal,
			Total:                total,
			Vuelto:               vuelto,
		}
		for _, l := range resueltas {
			venta.Detalles = append(venta.Detalles, model.VentaDetalle{
				ProductoID:     l.productoID,
				Cantidad:       l.cantidad,
				PrecioUnitario: l.precio,
				DescuentoValor: l.descValor,
				DescuentoTipo:  l.descTipo,
				Subtotal:       l.subtotal,
			})
		}
		for _, p := range req.Pagos {
			venta.Pagos = append(venta.Pagos, model.VentaPago{Metodo: p.Metodo, Monto: p.Monto})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		for _, l := range resueltas {
			if err := s.inventario.AjustarStockTx(
				tx, l.productoID, l.cantidad,
				model.MovimientoSalida, model.MotivoVenta,
				usuarioID, &venta.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := ventaToResponse(&venta)
	for i, l := range resueltas {
		resp.Detalles[i].Producto = l.nombre
	}
	return resp, nil
}

// ── ActualizarDocumento ───────────────────────────────────────────────────────

func (s *ventaService) ActualizarDocumento(ctx context.Context, id uuid.UUID, req dto.ActualizarDocumentoRequest) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta", id.String())
	}

	numero := strings.TrimSpace(req.NumeroDocumento)
	if numero == "" {
		return nil, apierror.BusinessRule("El numero de documento no puede estar vacio")
	}
	if existente, err := s.repo.FindByNumeroDocumento(ctx, numero); err == nil && existente.ID != venta.ID {
		return nil, apierror.Conflict("Numero de documento ya utilizado")
	}

	if err := s.repo.UpdateNumeroDocumento(ctx, id, numero); err != nil {
		return nil, err
	}
	venta.NumeroDocumento = &numero
	return ventaToResponse(venta), nil
}

// ── ActualizarCliente ─────────────────────────────────────────────────────────

func (s *ventaService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta", id.String())
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.BusinessRule("cliente_id invalido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("cliente", req.ClienteID)
	}

	if err := s.repo.UpdateCliente(ctx, id, clienteID); err != nil {
		return nil, err
	}
	venta.ClienteID = &clienteID
	return ventaToResponse(venta), nil
}

// ── EliminarVenta ─────────────────────────────────────────────────────────────

func (s *ventaService) EliminarVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) error {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.EliminarVenta); err != nil {
		return err
	}

	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("venta", id.String())
	}

	return s.repo.RunInTx(ctx, func(tx *gorm.DB) error {
		for _, d := range venta.Detalles {
			if err := s.inventario.AjustarStockTx(
				tx, d.ProductoID, d.Cantidad,
				model.MovimientoEntrada, model.MotivoCorreccion,
				usuarioID, &venta.ID,
			); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *ventaService) GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta", id.String())
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func normalizarTipo(tipo string) string {
	if tipo == "" {
		return model.DescuentoMonto
	}
	return tipo
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			DescuentoValor: d.DescuentoValor,
			DescuentoTipo:  d.DescuentoTipo,
			Subtotal:       d.Subtotal,
		})
	}
	pagos := make([]dto.PagoRequest, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	var clienteID *string
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		clienteID = &cid
	}
	return &dto.VentaResponse{
		ID:                   v.ID.String(),
		NumeroDocumento:      v.NumeroDocumento,
		CajaID:               v.CajaID.String(),
		ClienteID:            clienteID,
		UsuarioID:            v.UsuarioID.String(),
		Detalles:             detalles,
		Subtotal:             v.Subtotal,
		DescuentoGlobalMonto: v.DescuentoGlobalMonto,
		Total:                v.Total,
		Pagos:                pagos,
		Vuelto:               v.Vuelto,
		CreatedAt:            v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
