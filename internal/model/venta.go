package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de descuento, usable per line and for the global discount.
const (
	DescuentoMonto      = "monto"
	DescuentoPorcentaje = "porcentaje"
)

// Venta is one completed sale. It references (does not own) the caja that was
// open at creation time; a later close of that caja never invalidates the sale.
// Detalles and Pagos are owned: created and deleted together with the Venta.
type Venta struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroDocumento *string    `gorm:"uniqueIndex"`
	CajaID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClienteID       *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID       uuid.UUID  `gorm:"type:uuid;not null"`

	// Subtotal (gross) and Total (net) satisfy:
	//   Subtotal = Σ detalle.Subtotal
	//   Total    = Subtotal − DescuentoGlobalMonto
	Subtotal             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoGlobalValor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoGlobalTipo  string          `gorm:"type:varchar(20);not null;default:'monto'"`
	DescuentoGlobalMonto decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Vuelto is the cash change given when payments exceed the total. It is
	// subtracted from cash receipts during reconciliation.
	Vuelto    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time

	Detalles []VentaDetalle `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Pagos    []VentaPago    `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
}

// VentaDetalle is one line item. PrecioUnitario is a snapshot taken at sale
// time — catalog price changes never retroactively affect an existing sale.
type VentaDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoValor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoTipo  string          `gorm:"type:varchar(20);not null;default:'monto'"`
	// Subtotal = (PrecioUnitario − descuento unitario efectivo) × Cantidad
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// VentaPago is one declared payment. A sale may combine several methods; the
// sum of amounts must cover the sale total.
type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
