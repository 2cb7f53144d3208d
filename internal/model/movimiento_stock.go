package model

import (
	"time"

	"github.com/google/uuid"
)

// Direcciones de movimiento.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Motivos de movimiento.
const (
	MotivoVenta        = "venta"
	MotivoAjusteManual = "ajuste_manual"
	MotivoNuevoStock   = "nuevo_stock"
	MotivoProduccion   = "produccion"
	MotivoCorreccion   = "correccion"
)

// MovimientoStock is an immutable audit record of one stock change. Cantidad
// is always positive; Tipo encodes the sign. Movements are never updated or
// deleted — reversals append compensating entries, so the log is a complete,
// reconstructible history of every product's stock.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"`
	Motivo        string    `gorm:"type:varchar(20);not null"`
	Cantidad      int       `gorm:"not null;check:cantidad > 0"`
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	// ReferenciaID links to the originating Venta when Motivo is venta or the
	// reversal of one.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoStock) TableName() string { return "movimientos_stock" }
