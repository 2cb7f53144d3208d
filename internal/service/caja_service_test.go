package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declaracionExacta(efectivo int64) dto.CerrarCajaRequest {
	return dto.CerrarCajaRequest{
		Declaracion: dto.DeclaracionCierre{
			Efectivo:      d(efectivo),
			Bancard:       decimal.Zero,
			Procard:       decimal.Zero,
			Transferencia: decimal.Zero,
			BotonDePago:   decimal.Zero,
			Pos:           decimal.Zero,
		},
	}
}

func TestAbrirCaja(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")

	resp, err := env.cajas.Abrir(context.Background(), cajero, dto.AbrirCajaRequest{MontoApertura: d(100000)})
	require.NoError(t, err)
	assert.Equal(t, model.CajaAbierta, resp.Estado)
	assert.True(t, resp.MontoApertura.Equal(d(100000)))
	assert.Equal(t, cajero.String(), resp.UsuarioID)
}

func TestAbrirCajaMontoNegativo(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")

	_, err := env.cajas.Abrir(context.Background(), cajero, dto.AbrirCajaRequest{MontoApertura: d(-1)})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))
}

func TestAbrirCajaYaAbierta(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 50000)

	_, err := env.cajas.Abrir(context.Background(), cajero, dto.AbrirCajaRequest{MontoApertura: d(0)})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

// Concurrent opens race against the single-open rule; exactly one must win.
func TestAbrirCajaConcurrente(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")

	const intentos = 10
	var wg sync.WaitGroup
	errs := make([]error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.cajas.Abrir(context.Background(), cajero, dto.AbrirCajaRequest{MontoApertura: d(1000)})
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.True(t, apierror.IsKind(err, apierror.KindConflict))
		}
	}
	assert.Equal(t, 1, exitos)
}

func TestCerrarCajaSinVentas(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 100000)

	resp, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(100000))
	require.NoError(t, err)
	assert.Equal(t, model.CajaCerrada, resp.Estado)
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.IsZero(), "diferencia = %s", resp.Diferencia)
	require.NotNil(t, resp.FechaCierre)
}

func TestCerrarCajaConVentasEfectivo(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 100000)
	producto := env.seedProducto("Vela lavanda", 30000, 10)

	// Pays 50000 cash for a 30000 sale: 20000 back as change.
	_, err := env.ventas.RegistrarVenta(context.Background(), cajero, dto.RegistrarVentaRequest{
		Detalles: []dto.DetalleVentaRequest{{ProductoID: producto.String(), Cantidad: 1}},
		Pagos:    []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(50000)}},
	})
	require.NoError(t, err)

	// Expected cash: 100000 apertura + 50000 received − 20000 change = 130000.
	resp, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(130000))
	require.NoError(t, err)
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.IsZero(), "diferencia = %s", resp.Diferencia)
}

func TestCerrarCajaFaltante(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 100000)

	resp, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(95000))
	require.NoError(t, err)
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.Equal(d(-5000)), "diferencia = %s", resp.Diferencia)
}

func TestCerrarCajaSobrante(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 100000)

	resp, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(103500))
	require.NoError(t, err)
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.Equal(d(3500)), "diferencia = %s", resp.Diferencia)
}

func TestCerrarCajaDosVeces(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 100000)

	_, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(100000))
	require.NoError(t, err)

	_, err = env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(100000))
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestGetAbierta(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")

	_, err := env.cajas.GetAbierta(context.Background())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	abierta := env.abrirCaja(cajero, 20000)
	resp, err := env.cajas.GetAbierta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, abierta.ID, resp.ID)
}

func TestResumenCaja(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	caja := env.abrirCaja(cajero, 100000)
	vela := env.seedProducto("Vela vainilla", 40000, 10)
	difusor := env.seedProducto("Difusor citrico", 60000, 10)

	// Sale 1: 40000, split cash 25000 + bancard 15000.
	_, err := env.ventas.RegistrarVenta(context.Background(), cajero, dto.RegistrarVentaRequest{
		Detalles: []dto.DetalleVentaRequest{{ProductoID: vela.String(), Cantidad: 1}},
		Pagos: []dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(25000)},
			{Metodo: model.MetodoBancard, Monto: d(15000)},
		},
	})
	require.NoError(t, err)

	// Sale 2: 60000 cash, paid with 70000 → 10000 change.
	_, err = env.ventas.RegistrarVenta(context.Background(), cajero, dto.RegistrarVentaRequest{
		Detalles: []dto.DetalleVentaRequest{{ProductoID: difusor.String(), Cantidad: 1}},
		Pagos:    []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(70000)}},
	})
	require.NoError(t, err)

	cajaID, err := uuid.Parse(caja.ID)
	require.NoError(t, err)
	resumen, err := env.cajas.Resumen(context.Background(), cajaID)
	require.NoError(t, err)

	assert.True(t, resumen.PorMetodo.Efectivo.Equal(d(95000)))
	assert.True(t, resumen.PorMetodo.Bancard.Equal(d(15000)))
	assert.True(t, resumen.PorMetodo.Total.Equal(d(110000)))
	assert.True(t, resumen.VueltoEntregado.Equal(d(10000)))
	// 100000 + 95000 − 10000
	assert.True(t, resumen.EfectivoEsperado.Equal(d(185000)), "esperado = %s", resumen.EfectivoEsperado)
}

func TestResumenCajaInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.cajas.Resumen(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestHistorialCajas(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	env.abrirCaja(cajero, 10000)
	_, err := env.cajas.Cerrar(context.Background(), cajero, declaracionExacta(10000))
	require.NoError(t, err)
	env.abrirCaja(cajero, 20000)

	cajas, total, err := env.cajas.Historial(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, cajas, 2)
}
