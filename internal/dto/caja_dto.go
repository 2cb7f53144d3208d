package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

// DeclaracionCierre carries the per-method totals counted by the cashier at
// close. Efectivo is the physically counted cash used for the diferencia.
type DeclaracionCierre struct {
	Efectivo      decimal.Decimal `json:"efectivo"      validate:"min=0"`
	Bancard       decimal.Decimal `json:"bancard"       validate:"min=0"`
	Procard       decimal.Decimal `json:"procard"       validate:"min=0"`
	Transferencia decimal.Decimal `json:"transferencia" validate:"min=0"`
	BotonDePago   decimal.Decimal `json:"boton_de_pago" validate:"min=0"`
	Pos           decimal.Decimal `json:"pos"           validate:"min=0"`
}

type CerrarCajaRequest struct {
	Declaracion   DeclaracionCierre `json:"declaracion" validate:"required"`
	Observaciones *string           `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MontosPorMetodo aggregates payment totals per method for one shift.
type MontosPorMetodo struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Bancard       decimal.Decimal `json:"bancard"`
	Procard       decimal.Decimal `json:"procard"`
	Transferencia decimal.Decimal `json:"transferencia"`
	BotonDePago   decimal.Decimal `json:"boton_de_pago"`
	Pos           decimal.Decimal `json:"pos"`
	Total         decimal.Decimal `json:"total"`
}

type ResumenCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	Estado        string          `json:"estado"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	PorMetodo     MontosPorMetodo `json:"por_metodo"`
	// VueltoEntregado is cash handed back as change; already excluded from
	// EfectivoEsperado.
	VueltoEntregado  decimal.Decimal  `json:"vuelto_entregado"`
	EfectivoEsperado decimal.Decimal  `json:"efectivo_esperado"`
	Diferencia       *decimal.Decimal `json:"diferencia,omitempty"`
}

type CajaResponse struct {
	ID            string           `json:"id"`
	UsuarioID     string           `json:"usuario_id"`
	Estado        string           `json:"estado"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	FechaApertura string           `json:"fecha_apertura"`
	FechaCierre   *string          `json:"fecha_cierre,omitempty"`
	Declarado     *MontosPorMetodo `json:"declarado,omitempty"`
	Diferencia    *decimal.Decimal `json:"diferencia,omitempty"`
	Observaciones *string          `json:"observaciones,omitempty"`
}
