package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AjusteStockRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Tipo       string `json:"tipo"        validate:"required,oneof=entrada salida"`
	Motivo     string `json:"motivo"      validate:"required,oneof=ajuste_manual nuevo_stock produccion correccion"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type FijarStockRequest struct {
	ProductoID    string `json:"producto_id"    validate:"required,uuid"`
	NuevaCantidad int    `json:"nueva_cantidad" validate:"min=0"`
}

type MovimientoFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Motivo     string `form:"motivo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Producto      string `json:"producto"`
	Tipo          string `json:"tipo"`
	Motivo        string `json:"motivo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	UsuarioID     string `json:"usuario_id"`
	CreatedAt     string `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
