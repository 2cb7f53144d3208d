package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable catalog item. Stock is mutated only through the
// inventory ledger (see service.InventarioService) so that every change has a
// matching MovimientoStock record.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	AromaID     *uuid.UUID      `gorm:"type:uuid;index"`
	FamiliaID   *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioCosto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"`
	StockMinimo int             `gorm:"not null;default:5"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Aroma   *Aroma   `gorm:"foreignKey:AromaID"`
	Familia *Familia `gorm:"foreignKey:FamiliaID"`
}
