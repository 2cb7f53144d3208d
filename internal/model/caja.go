package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de caja.
const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

// Metodos de pago aceptados.
const (
	MetodoEfectivo      = "efectivo"
	MetodoBancard       = "bancard"
	MetodoProcard       = "procard"
	MetodoTransferencia = "transferencia"
	MetodoBotonDePago   = "boton_de_pago"
	MetodoPos           = "pos"
)

// MetodosPago lists every accepted payment method, in reporting order.
var MetodosPago = []string{
	MetodoEfectivo, MetodoBancard, MetodoProcard,
	MetodoTransferencia, MetodoBotonDePago, MetodoPos,
}

// Caja represents one cash register shift, from open to close. At most one
// caja may be "abierta" system-wide — enforced by a partial unique index (see
// infra.NewDatabase) plus a guard query inside the opening transaction.
// The transition abierta→cerrada is one-way; closed shifts are never reopened.
type Caja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	FechaApertura time.Time
	FechaCierre   *time.Time

	// Declared per-method totals, stamped at close.
	CierreEfectivo      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CierreBancard       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CierreProcard       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CierreTransferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CierreBotonDePago   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CierrePos           *decimal.Decimal `gorm:"type:decimal(12,2)"`

	// Diferencia = efectivo declarado − efectivo esperado. Signed: positive is
	// surplus, negative is shortage. Never clamped.
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones *string

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
