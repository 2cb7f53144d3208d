package handler

import (
	"net/http"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogoHandler exposes the aroma and familia classification endpoints.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func (h *CatalogoHandler) CrearAroma(c *gin.Context) {
	var req dto.CrearAromaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearAroma(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarAromas(c *gin.Context) {
	resp, err := h.svc.ListarAromas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarAroma(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarAroma(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogoHandler) CrearFamilia(c *gin.Context) {
	var req dto.CrearFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearFamilia(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarFamilias(c *gin.Context) {
	resp, err := h.svc.ListarFamilias(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarFamilia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarFamilia(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
