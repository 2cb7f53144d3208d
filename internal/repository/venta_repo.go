package repository

import (
	"context"
	"errors"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindByNumeroDocumento(ctx context.Context, numero string) (*model.Venta, error)
	UpdateNumeroDocumento(ctx context.Context, id uuid.UUID, numero string) error
	UpdateCliente(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) error
	// DeleteTx removes the venta together with its owned detalles and pagos.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// SumPagosPorMetodo aggregates declared payments of all sales of a caja,
	// grouped by payment method.
	SumPagosPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]decimal.Decimal, error)
	// SumVuelto totals the cash change given across all sales of a caja.
	SumVuelto(ctx context.Context, cajaID uuid.UUID) (decimal.Decimal, error)
	// RunInTx runs fn inside one database transaction; any error rolls back
	// every write fn made.
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.Conflict("Numero de documento ya utilizado")
		}
		return err
	}
	return nil
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Pagos").First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByNumeroDocumento(ctx context.Context, numero string) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Where("numero_documento = ?", numero).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) UpdateNumeroDocumento(ctx context.Context, id uuid.UUID, numero string) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).
		Update("numero_documento", numero).Error
}

func (r *ventaRepo) UpdateCliente(ctx context.Context, id uuid.UUID, clienteID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).
		Update("cliente_id", clienteID).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("venta_id = ?", id).Delete(&model.VentaPago{}).Error; err != nil {
		return err
	}
	if err := tx.Where("venta_id = ?", id).Delete(&model.VentaDetalle{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").Preload("Pagos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) SumPagosPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]decimal.Decimal, error) {
	type row struct {
		Metodo string
		Suma   decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("venta_pagos").
		Select("venta_pagos.metodo AS metodo, COALESCE(SUM(venta_pagos.monto), 0) AS suma").
		Joins("JOIN ventas ON ventas.id = venta_pagos.venta_id").
		Where("ventas.caja_id = ?", cajaID).
		Group("venta_pagos.metodo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(model.MetodosPago))
	for _, m := range model.MetodosPago {
		sums[m] = decimal.Zero
	}
	for _, rw := range rows {
		sums[rw.Metodo] = rw.Suma
	}
	return sums, nil
}

func (r *ventaRepo) SumVuelto(ctx context.Context, cajaID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("caja_id = ?", cajaID).
		Select("COALESCE(SUM(vuelto), 0)").
		Scan(&total).Error
	return total, err
}
