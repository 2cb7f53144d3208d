package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCajaService struct {
	abierta     *dto.CajaResponse
	abiertaErr  error
	resumen     *dto.ResumenCajaResponse
	resumenErr  error
	resumenPara uuid.UUID
}

func (s *stubCajaService) Abrir(context.Context, uuid.UUID, dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	return nil, nil
}

func (s *stubCajaService) Cerrar(context.Context, uuid.UUID, dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	return nil, nil
}

func (s *stubCajaService) GetAbierta(context.Context) (*dto.CajaResponse, error) {
	return s.abierta, s.abiertaErr
}

func (s *stubCajaService) Resumen(_ context.Context, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	s.resumenPara = cajaID
	return s.resumen, s.resumenErr
}

func (s *stubCajaService) Historial(context.Context, int, int) ([]dto.CajaResponse, int64, error) {
	return nil, 0, nil
}

func cajaRouter(svc *stubCajaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/caja/:id/resumen", NewCajaHandler(svc).Resumen)
	return r
}

func TestResumenCajaPorID(t *testing.T) {
	cajaID := uuid.New()
	svc := &stubCajaService{resumen: &dto.ResumenCajaResponse{CajaID: cajaID.String(), Estado: "abierta"}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/caja/"+cajaID.String()+"/resumen", nil)
	cajaRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cajaID, svc.resumenPara)
	assert.Contains(t, w.Body.String(), cajaID.String())
}

func TestResumenCajaAbierta(t *testing.T) {
	cajaID := uuid.New()
	svc := &stubCajaService{
		abierta: &dto.CajaResponse{ID: cajaID.String(), Estado: "abierta"},
		resumen: &dto.ResumenCajaResponse{CajaID: cajaID.String(), Estado: "abierta"},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/caja/abierta/resumen", nil)
	cajaRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cajaID, svc.resumenPara, "el alias debe resolver a la caja abierta")
}

func TestResumenCajaAbiertaSinCaja(t *testing.T) {
	svc := &stubCajaService{abiertaErr: &apierror.Error{Kind: apierror.KindNotFound, Detail: "No hay caja abierta"}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/caja/abierta/resumen", nil)
	cajaRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumenCajaIDInvalido(t *testing.T) {
	svc := &stubCajaService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/caja/no-es-uuid/resumen", nil)
	cajaRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
