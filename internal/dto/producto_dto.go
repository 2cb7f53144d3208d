package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo       string          `json:"codigo"       validate:"required"`
	Nombre       string          `json:"nombre"       validate:"required,min=2"`
	Descripcion  *string         `json:"descripcion"`
	AromaID      *string         `json:"aroma_id"     validate:"omitempty,uuid"`
	FamiliaID    *string         `json:"familia_id"   validate:"omitempty,uuid"`
	PrecioCosto  decimal.Decimal `json:"precio_costo" validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta" validate:"required"`
	StockInicial int             `json:"stock_inicial" validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      string           `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	AromaID     *string          `json:"aroma_id"   validate:"omitempty,uuid"`
	FamiliaID   *string          `json:"familia_id" validate:"omitempty,uuid"`
	PrecioCosto *decimal.Decimal `json:"precio_costo"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
	StockMinimo *int             `json:"stock_minimo"`
}

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Codigo    string `form:"codigo"`
	AromaID   string `form:"aroma_id"   validate:"omitempty,uuid"`
	FamiliaID string `form:"familia_id" validate:"omitempty,uuid"`
	Activo    string `form:"activo"` // "false" | "all" | default activos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Aroma       *string         `json:"aroma,omitempty"`
	Familia     *string         `json:"familia,omitempty"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	Activo      bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPrecioResponse is the redis-cached payload of the public price check.
type ConsultaPrecioResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
}
