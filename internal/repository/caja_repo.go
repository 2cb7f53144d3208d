package repository

import (
	"context"
	"errors"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	// Create inserts a new caja. The partial unique index ux_cajas_abierta
	// guarantees at most one open caja; a violation surfaces as Conflict.
	Create(ctx context.Context, c *model.Caja) error
	FindAbierta(ctx context.Context) (*model.Caja, error)
	// FindAbiertaTx takes a FOR UPDATE lock on the open caja row so a close in
	// progress serializes against concurrent sales and closes.
	FindAbiertaTx(tx *gorm.DB) (*model.Caja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	UpdateTx(tx *gorm.DB, c *model.Caja) error
	List(ctx context.Context, page, limit int) ([]model.Caja, int64, error)
	// RunInTx runs fn inside one database transaction; any error rolls back
	// every write fn made.
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Ya existe una caja abierta")
	}
	return err
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("estado = ?", model.CajaAbierta).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("estado = ?", model.CajaAbierta).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}

func (r *cajaRepo) List(ctx context.Context, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Order("fecha_apertura DESC").Offset(offset).Limit(limit).Find(&cajas).Error
	return cajas, total, err
}
