package service_test

import (
	"testing"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverDescuento(t *testing.T) {
	cases := []struct {
		nombre string
		base   int64
		valor  int64
		tipo   string
		espera int64
		falla  bool
	}{
		{nombre: "monto fijo", base: 10000, valor: 2500, tipo: model.DescuentoMonto, espera: 2500},
		{nombre: "tipo vacio es monto", base: 10000, valor: 1000, tipo: "", espera: 1000},
		{nombre: "porcentaje", base: 10000, valor: 25, tipo: model.DescuentoPorcentaje, espera: 2500},
		{nombre: "porcentaje quince", base: 10000, valor: 15, tipo: model.DescuentoPorcentaje, espera: 1500},
		{nombre: "porcentaje cero", base: 10000, valor: 0, tipo: model.DescuentoPorcentaje, espera: 0},
		{nombre: "porcentaje cien", base: 10000, valor: 100, tipo: model.DescuentoPorcentaje, espera: 10000},
		{nombre: "porcentaje sobre cien", base: 10000, valor: 101, tipo: model.DescuentoPorcentaje, falla: true},
		{nombre: "valor negativo", base: 10000, valor: -1, tipo: model.DescuentoMonto, falla: true},
		{nombre: "monto excede base", base: 10000, valor: 10001, tipo: model.DescuentoMonto, falla: true},
		{nombre: "tipo desconocido", base: 10000, valor: 10, tipo: "puntos", falla: true},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			monto, err := service.ResolverDescuento(d(tc.base), d(tc.valor), tc.tipo)
			if tc.falla {
				require.Error(t, err)
				assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))
				return
			}
			require.NoError(t, err)
			assert.True(t, monto.Equal(d(tc.espera)), "monto = %s", monto)
		})
	}
}

func TestValidarPagos(t *testing.T) {
	total := d(50000)

	t.Run("pago exacto", func(t *testing.T) {
		suma, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(50000)},
		}, total)
		require.NoError(t, err)
		assert.True(t, suma.Equal(total))
	})

	t.Run("pago dividido", func(t *testing.T) {
		suma, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(20000)},
			{Metodo: model.MetodoBancard, Monto: d(30000)},
		}, total)
		require.NoError(t, err)
		assert.True(t, suma.Equal(total))
	})

	t.Run("sobrepago devuelve la suma", func(t *testing.T) {
		suma, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(60000)},
		}, total)
		require.NoError(t, err)
		assert.True(t, suma.Equal(d(60000)))
	})

	t.Run("insuficiente", func(t *testing.T) {
		_, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(49999)},
		}, total)
		require.Error(t, err)
		assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))
	})

	t.Run("metodo desconocido", func(t *testing.T) {
		_, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: "cheque", Monto: d(50000)},
		}, total)
		require.Error(t, err)
		assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))
	})

	t.Run("monto no positivo", func(t *testing.T) {
		_, err := service.ValidarPagos([]dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: decimal.Zero},
			{Metodo: model.MetodoBancard, Monto: d(50000)},
		}, total)
		require.Error(t, err)
		assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))
	})
}
