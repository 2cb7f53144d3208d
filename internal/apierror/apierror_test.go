package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apierror.NotFound("producto", "abc"), http.StatusNotFound},
		{apierror.Conflict("ocupado"), http.StatusConflict},
		{apierror.BusinessRule("regla violada"), http.StatusUnprocessableEntity},
		{apierror.BusinessRuleID("regla", "producto", "abc"), http.StatusUnprocessableEntity},
		{apierror.Forbidden("no autorizado"), http.StatusForbidden},
		{errors.New("error crudo"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, apierror.Status(tc.err), "err = %v", tc.err)
	}
}

// Wrapped errors still resolve through errors.As.
func TestStatusEnvuelto(t *testing.T) {
	err := fmt.Errorf("registrando venta: %w", apierror.Conflict("No hay caja abierta"))
	assert.Equal(t, http.StatusConflict, apierror.Status(err))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.False(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestErrorMensaje(t *testing.T) {
	assert.Equal(t, "producto no encontrado (producto abc)", apierror.NotFound("producto", "abc").Error())
	assert.Equal(t, "ocupado", apierror.Conflict("ocupado").Error())
}
