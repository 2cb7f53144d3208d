package repository

import (
	"context"
	"errors"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AromaRepository interface {
	Create(ctx context.Context, a *model.Aroma) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Aroma, error)
	List(ctx context.Context) ([]model.Aroma, error)
	Update(ctx context.Context, a *model.Aroma) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type aromaRepo struct{ db *gorm.DB }

func NewAromaRepository(db *gorm.DB) AromaRepository { return &aromaRepo{db: db} }

func (r *aromaRepo) Create(ctx context.Context, a *model.Aroma) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Ya existe un aroma con ese nombre")
	}
	return err
}

func (r *aromaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Aroma, error) {
	var a model.Aroma
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aromaRepo) List(ctx context.Context) ([]model.Aroma, error) {
	var aromas []model.Aroma
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&aromas).Error
	return aromas, err
}

func (r *aromaRepo) Update(ctx context.Context, a *model.Aroma) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *aromaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Aroma{}).Where("id = ?", id).
		Update("activo", false).Error
}

type FamiliaRepository interface {
	Create(ctx context.Context, f *model.Familia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Familia, error)
	List(ctx context.Context) ([]model.Familia, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type familiaRepo struct{ db *gorm.DB }

func NewFamiliaRepository(db *gorm.DB) FamiliaRepository { return &familiaRepo{db: db} }

func (r *familiaRepo) Create(ctx context.Context, f *model.Familia) error {
	err := r.db.WithContext(ctx).Create(f).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Ya existe una familia con ese nombre")
	}
	return err
}

func (r *familiaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Familia, error) {
	var f model.Familia
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *familiaRepo) List(ctx context.Context) ([]model.Familia, error) {
	var familias []model.Familia
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&familias).Error
	return familias, err
}

func (r *familiaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Familia{}).Where("id = ?", id).
		Update("activo", false).Error
}
