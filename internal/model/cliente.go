package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an optional reference on a Venta — walk-in sales carry none.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	RUC       *string   `gorm:"uniqueIndex"`
	Telefono  *string
	Email     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
