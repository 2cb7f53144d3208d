package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	DescuentoValor decimal.Decimal `json:"descuento_valor"`
	DescuentoTipo  string          `json:"descuento_tipo"  validate:"omitempty,oneof=monto porcentaje"`
}

type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo bancard procard transferencia boton_de_pago pos"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type RegistrarVentaRequest struct {
	ClienteID            *string               `json:"cliente_id" validate:"omitempty,uuid"`
	NumeroDocumento      *string               `json:"numero_documento"`
	Detalles             []DetalleVentaRequest `json:"detalles"   validate:"required,min=1,dive"`
	Pagos                []PagoRequest         `json:"pagos"      validate:"required,min=1,dive"`
	DescuentoGlobalValor decimal.Decimal       `json:"descuento_global_valor"`
	DescuentoGlobalTipo  string                `json:"descuento_global_tipo" validate:"omitempty,oneof=monto porcentaje"`
}

type ActualizarDocumentoRequest struct {
	NumeroDocumento string `json:"numero_documento" validate:"required"`
}

type ActualizarClienteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoValor decimal.Decimal `json:"descuento_valor"`
	DescuentoTipo  string          `json:"descuento_tipo"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID                   string                 `json:"id"`
	NumeroDocumento      *string                `json:"numero_documento,omitempty"`
	CajaID               string                 `json:"caja_id"`
	ClienteID            *string                `json:"cliente_id,omitempty"`
	UsuarioID            string                 `json:"usuario_id"`
	Detalles             []DetalleVentaResponse `json:"detalles"`
	Subtotal             decimal.Decimal        `json:"subtotal"`
	DescuentoGlobalMonto decimal.Decimal        `json:"descuento_global_monto"`
	Total                decimal.Decimal        `json:"total"`
	Pagos                []PagoRequest          `json:"pagos"`
	Vuelto               decimal.Decimal        `json:"vuelto"`
	CreatedAt            string                 `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
