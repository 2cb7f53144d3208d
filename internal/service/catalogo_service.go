package service

import (
	"context"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService manages the two product classification axes: aromas and
// familias.
type CatalogoService interface {
	CrearAroma(ctx context.Context, req dto.CrearAromaRequest) (*dto.AromaResponse, error)
	ListarAromas(ctx context.Context) ([]dto.AromaResponse, error)
	DesactivarAroma(ctx context.Context, id uuid.UUID) error

	CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (*dto.FamiliaResponse, error)
	ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error)
	DesactivarFamilia(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	aromaRepo   repository.AromaRepository
	familiaRepo repository.FamiliaRepository
}

func NewCatalogoService(aromaRepo repository.AromaRepository, familiaRepo repository.FamiliaRepository) CatalogoService {
	return &catalogoService{aromaRepo: aromaRepo, familiaRepo: familiaRepo}
}

func (s *catalogoService) CrearAroma(ctx context.Context, req dto.CrearAromaRequest) (*dto.AromaResponse, error) {
	a := &model.Aroma{Nombre: req.Nombre, Descripcion: req.Descripcion, Activo: true}
	if err := s.aromaRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return &dto.AromaResponse{ID: a.ID.String(), Nombre: a.Nombre, Descripcion: a.Descripcion, Activo: a.Activo}, nil
}

func (s *catalogoService) ListarAromas(ctx context.Context) ([]dto.AromaResponse, error) {
	aromas, err := s.aromaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AromaResponse, 0, len(aromas))
	for _, a := range aromas {
		resp = append(resp, dto.AromaResponse{ID: a.ID.String(), Nombre: a.Nombre, Descripcion: a.Descripcion, Activo: a.Activo})
	}
	return resp, nil
}

func (s *catalogoService) DesactivarAroma(ctx context.Context, id uuid.UUID) error {
	if _, err := s.aromaRepo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("aroma", id.String())
	}
	return s.aromaRepo.SoftDelete(ctx, id)
}

func (s *catalogoService) CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (*dto.FamiliaResponse, error) {
	f := &model.Familia{Nombre: req.Nombre, Activo: true}
	if err := s.familiaRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return &dto.FamiliaResponse{ID: f.ID.String(), Nombre: f.Nombre, Activo: f.Activo}, nil
}

func (s *catalogoService) ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error) {
	familias, err := s.familiaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FamiliaResponse, 0, len(familias))
	for _, f := range familias {
		resp = append(resp, dto.FamiliaResponse{ID: f.ID.String(), Nombre: f.Nombre, Activo: f.Activo})
	}
	return resp, nil
}

func (s *catalogoService) DesactivarFamilia(ctx context.Context, id uuid.UUID) error {
	if _, err := s.familiaRepo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("familia", id.String())
	}
	return s.familiaRepo.SoftDelete(ctx, id)
}
