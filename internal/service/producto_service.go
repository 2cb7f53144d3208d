package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const precioCacheTTL = 4 * time.Hour

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	// ConsultarPrecio serves the price check endpoint, backed by a redis cache
	// keyed on the product code.
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	inventario InventarioService
	rdb        *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, inventario InventarioService, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, inventario: inventario, rdb: rdb}
}

// Crear registers a new product. Initial stock goes through the inventory
// ledger so the very first unit already has a movement record.
func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		PrecioCosto: req.PrecioCosto,
		PrecioVenta: req.PrecioVenta,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if req.AromaID != nil {
		aid, err := uuid.Parse(*req.AromaID)
		if err != nil {
			return nil, apierror.BusinessRule("aroma_id invalido")
		}
		p.AromaID = &aid
	}
	if req.FamiliaID != nil {
		fid, err := uuid.Parse(*req.FamiliaID)
		if err != nil {
			return nil, apierror.BusinessRule("familia_id invalido")
		}
		p.FamiliaID = &fid
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if req.StockInicial > 0 {
		txErr := s.repo.RunInTx(ctx, func(tx *gorm.DB) error {
			return s.inventario.AjustarStockTx(
				tx, p.ID, req.StockInicial,
				model.MovimientoEntrada, model.MotivoNuevoStock,
				usuarioID, nil,
			)
		})
		if txErr != nil {
			return nil, txErr
		}
		p.Stock = req.StockInicial
	}

	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto", id.String())
	}
	return productoToResponse(p), nil
}

func (s *productoService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error) {
	cacheKey := "precio:" + codigo

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, apierror.NotFound("producto", codigo)
	}

	resp := &dto.ConsultaPrecioResponse{
		Nombre:          p.Nombre,
		PrecioVenta:     p.PrecioVenta,
		StockDisponible: p.Stock,
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, precioCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto", id.String())
	}

	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.AromaID != nil {
		aid, err := uuid.Parse(*req.AromaID)
		if err != nil {
			return nil, apierror.BusinessRule("aroma_id invalido")
		}
		p.AromaID = &aid
	}
	if req.FamiliaID != nil {
		fid, err := uuid.Parse(*req.FamiliaID)
		if err != nil {
			return nil, apierror.BusinessRule("familia_id invalido")
		}
		p.FamiliaID = &fid
	}
	if req.PrecioCosto != nil {
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCachePrecio(ctx, p.Codigo)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("producto", id.String())
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePrecio(ctx, p.Codigo)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto", id.String())
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) invalidarCachePrecio(ctx context.Context, codigo string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "precio:"+codigo).Err()
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	var aroma, familia *string
	if p.Aroma != nil {
		aroma = &p.Aroma.Nombre
	}
	if p.Familia != nil {
		familia = &p.Familia.Nombre
	}
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Aroma:       aroma,
		Familia:     familia,
		PrecioCosto: p.PrecioCosto,
		PrecioVenta: p.PrecioVenta,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		Activo:      p.Activo,
	}
}
