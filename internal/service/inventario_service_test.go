package service_test

import (
	"context"
	"testing"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjustarStockEntrada(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	producto := env.seedProducto("Vela lavanda", 10000, 5)

	mov, err := env.inventario.AjustarStock(context.Background(), supervisor, dto.AjusteStockRequest{
		ProductoID: producto.String(),
		Tipo:       model.MovimientoEntrada,
		Motivo:     model.MotivoProduccion,
		Cantidad:   20,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, model.MovimientoEntrada, mov.Tipo)
	assert.Equal(t, model.MotivoProduccion, mov.Motivo)
	assert.Equal(t, 5, mov.StockAnterior)
	assert.Equal(t, 25, mov.StockNuevo)

	p, _ := env.productoRepo.FindByID(context.Background(), producto)
	assert.Equal(t, 25, p.Stock)
}

func TestAjustarStockSalida(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	producto := env.seedProducto("Vela lavanda", 10000, 5)

	mov, err := env.inventario.AjustarStock(context.Background(), supervisor, dto.AjusteStockRequest{
		ProductoID: producto.String(),
		Tipo:       model.MovimientoSalida,
		Motivo:     model.MotivoAjusteManual,
		Cantidad:   3,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, 2, mov.StockNuevo)
}

func TestAjustarStockSalidaInsuficiente(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	producto := env.seedProducto("Vela lavanda", 10000, 2)

	_, err := env.inventario.AjustarStock(context.Background(), supervisor, dto.AjusteStockRequest{
		ProductoID: producto.String(),
		Tipo:       model.MovimientoSalida,
		Motivo:     model.MotivoAjusteManual,
		Cantidad:   5,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindBusinessRule))

	p, _ := env.productoRepo.FindByID(context.Background(), producto)
	assert.Equal(t, 2, p.Stock)
	assert.Empty(t, env.movRepo.porProducto(producto))
}

func TestAjustarStockCajeroProhibido(t *testing.T) {
	env := newTestEnv()
	cajero := env.seedUsuario("cajero")
	producto := env.seedProducto("Vela lavanda", 10000, 5)

	_, err := env.inventario.AjustarStock(context.Background(), cajero, dto.AjusteStockRequest{
		ProductoID: producto.String(),
		Tipo:       model.MovimientoEntrada,
		Motivo:     model.MotivoAjusteManual,
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindForbidden))
}

func TestAjustarStockProductoInexistente(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")

	_, err := env.inventario.AjustarStock(context.Background(), supervisor, dto.AjusteStockRequest{
		ProductoID: uuid.NewString(),
		Tipo:       model.MovimientoEntrada,
		Motivo:     model.MotivoAjusteManual,
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestFijarStock(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	producto := env.seedProducto("Vela lavanda", 10000, 8)

	// Raise to 15: entrada of 7 with motivo correccion.
	mov, err := env.inventario.FijarStock(context.Background(), supervisor, dto.FijarStockRequest{
		ProductoID:    producto.String(),
		NuevaCantidad: 15,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, model.MovimientoEntrada, mov.Tipo)
	assert.Equal(t, model.MotivoCorreccion, mov.Motivo)
	assert.Equal(t, 7, mov.Cantidad)
	assert.Equal(t, 15, mov.StockNuevo)

	// Lower to 4: salida of 11.
	mov, err = env.inventario.FijarStock(context.Background(), supervisor, dto.FijarStockRequest{
		ProductoID:    producto.String(),
		NuevaCantidad: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, model.MovimientoSalida, mov.Tipo)
	assert.Equal(t, 11, mov.Cantidad)

	p, _ := env.productoRepo.FindByID(context.Background(), producto)
	assert.Equal(t, 4, p.Stock)
}

func TestFijarStockSinCambio(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	producto := env.seedProducto("Vela lavanda", 10000, 8)

	mov, err := env.inventario.FijarStock(context.Background(), supervisor, dto.FijarStockRequest{
		ProductoID:    producto.String(),
		NuevaCantidad: 8,
	})
	require.NoError(t, err)
	assert.Nil(t, mov)
	assert.Empty(t, env.movRepo.porProducto(producto))
}

func TestListarMovimientosFiltraPorProducto(t *testing.T) {
	env := newTestEnv()
	supervisor := env.seedUsuario("supervisor")
	vela := env.seedProducto("Vela vainilla", 10000, 10)
	difusor := env.seedProducto("Difusor citrico", 20000, 10)

	for _, id := range []uuid.UUID{vela, difusor} {
		_, err := env.inventario.AjustarStock(context.Background(), supervisor, dto.AjusteStockRequest{
			ProductoID: id.String(),
			Tipo:       model.MovimientoEntrada,
			Motivo:     model.MotivoProduccion,
			Cantidad:   5,
		})
		require.NoError(t, err)
	}

	resp, err := env.inventario.ListarMovimientos(context.Background(), dto.MovimientoFilter{
		ProductoID: vela.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, vela.String(), resp.Data[0].ProductoID)
	assert.Equal(t, int64(1), resp.Total)
}
