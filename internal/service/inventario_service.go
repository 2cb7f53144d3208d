package service

import (
	"context"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/policy"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService is the single choke point for stock changes. Every
// stock-affecting operation — sales, manual adjustments, absolute sets —
// passes through AjustarStockTx so the movement log is a complete history.
type InventarioService interface {
	// AjustarStockTx applies one stock change inside the caller's transaction:
	// row-lock the product, verify sufficiency for salidas, apply the delta and
	// append one immutable movement. Cantidad must be positive.
	AjustarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, tipo, motivo string, usuarioID uuid.UUID, referenciaID *uuid.UUID) error
	// AjustarStock is the role-gated manual adjustment, run in its own tx.
	AjustarStock(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoResponse, error)
	// FijarStock sets the stock to an absolute quantity by computing the delta
	// and routing it through AjustarStockTx with motivo correccion, so the
	// audit trail records a movement rather than a silent overwrite.
	FijarStock(ctx context.Context, usuarioID uuid.UUID, req dto.FijarStockRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoStockRepository
	usuarioRepo  repository.UsuarioRepository
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	usuarioRepo repository.UsuarioRepository,
) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movRepo: movRepo, usuarioRepo: usuarioRepo}
}

func (s *inventarioService) AjustarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, tipo, motivo string, usuarioID uuid.UUID, referenciaID *uuid.UUID) error {
	if cantidad <= 0 {
		return apierror.BusinessRule("La cantidad debe ser mayor a cero")
	}

	p, err := s.productoRepo.FindByIDTxLock(tx, productoID)
	if err != nil {
		return apierror.NotFound("producto", productoID.String())
	}

	delta := cantidad
	if tipo == model.MovimientoSalida {
		if p.Stock < cantidad {
			return apierror.BusinessRuleID("Stock insuficiente", "producto", productoID.String())
		}
		delta = -cantidad
	}

	if err := s.productoRepo.UpdateStockTx(tx, productoID, delta); err != nil {
		return err
	}

	mov := &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          tipo,
		Motivo:        motivo,
		Cantidad:      cantidad,
		StockAnterior: p.Stock,
		StockNuevo:    p.Stock + delta,
		UsuarioID:     usuarioID,
		ReferenciaID:  referenciaID,
	}
	return s.movRepo.CreateTx(tx, mov)
}

func (s *inventarioService) AjustarStock(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.AjustarStock); err != nil {
		return nil, err
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.BusinessRule("producto_id invalido")
	}

	txErr := s.productoRepo.RunInTx(ctx, func(tx *gorm.DB) error {
		return s.AjustarStockTx(tx, productoID, req.Cantidad, req.Tipo, req.Motivo, usuarioID, nil)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ultimoMovimiento(ctx, req.ProductoID)
}

func (s *inventarioService) FijarStock(ctx context.Context, usuarioID uuid.UUID, req dto.FijarStockRequest) (*dto.MovimientoResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("usuario", usuarioID.String())
	}
	if err := policy.Authorize(usuario.Rol, policy.AjustarStock); err != nil {
		return nil, err
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.BusinessRule("producto_id invalido")
	}

	var sinCambio bool
	txErr := s.productoRepo.RunInTx(ctx, func(tx *gorm.DB) error {
		p, err := s.productoRepo.FindByIDTxLock(tx, productoID)
		if err != nil {
			return apierror.NotFound("producto", productoID.String())
		}
		delta := req.NuevaCantidad - p.Stock
		if delta == 0 {
			sinCambio = true
			return nil
		}
		tipo := model.MovimientoEntrada
		if delta < 0 {
			tipo = model.MovimientoSalida
			delta = -delta
		}
		return s.AjustarStockTx(tx, productoID, delta, tipo, model.MotivoCorreccion, usuarioID, nil)
	})
	if txErr != nil {
		return nil, txErr
	}
	if sinCambio {
		return nil, nil
	}
	return s.ultimoMovimiento(ctx, req.ProductoID)
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		items = append(items, movimientoToResponse(&m))
	}
	return &dto.MovimientoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventarioService) ultimoMovimiento(ctx context.Context, productoID string) (*dto.MovimientoResponse, error) {
	list, _, err := s.movRepo.List(ctx, dto.MovimientoFilter{ProductoID: productoID, Page: 1, Limit: 1})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	resp := movimientoToResponse(&list[0])
	return &resp, nil
}

func movimientoToResponse(m *model.MovimientoStock) dto.MovimientoResponse {
	nombre := ""
	if m.Producto != nil {
		nombre = m.Producto.Nombre
	}
	return dto.MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Producto:      nombre,
		Tipo:          m.Tipo,
		Motivo:        m.Motivo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		UsuarioID:     m.UsuarioID.String(),
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
