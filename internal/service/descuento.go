package service

import (
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// ResolverDescuento converts a (valor, tipo) discount into an amount against
// base. The same rules apply at line level (base = unit price) and order level
// (base = gross total):
//   - valor must not be negative
//   - tipo porcentaje requires valor in [0, 100]
//   - the resulting amount must not exceed base
func ResolverDescuento(base, valor decimal.Decimal, tipo string) (decimal.Decimal, error) {
	if valor.IsNegative() {
		return decimal.Zero, apierror.BusinessRule("El descuento no puede ser negativo")
	}
	var monto decimal.Decimal
	switch tipo {
	case model.DescuentoPorcentaje:
		if valor.GreaterThan(cien) {
			return decimal.Zero, apierror.BusinessRule("El descuento porcentual debe estar entre 0 y 100")
		}
		monto = base.Mul(valor).Div(cien)
	case model.DescuentoMonto, "":
		monto = valor
	default:
		return decimal.Zero, apierror.BusinessRule("Tipo de descuento desconocido: " + tipo)
	}
	if monto.GreaterThan(base) {
		return decimal.Zero, apierror.BusinessRule("El descuento excede el monto base")
	}
	return monto, nil
}

// ValidarPagos checks a set of declared payments against the required total:
// known methods, positive amounts, and a sum covering the total. Returns the
// paid sum so callers can compute change.
func ValidarPagos(pagos []dto.PagoRequest, total decimal.Decimal) (decimal.Decimal, error) {
	valido := make(map[string]bool, len(model.MetodosPago))
	for _, m := range model.MetodosPago {
		valido[m] = true
	}

	suma := decimal.Zero
	for _, p := range pagos {
		if !valido[p.Metodo] {
			return decimal.Zero, apierror.BusinessRule("Metodo de pago desconocido: " + p.Metodo)
		}
		if !p.Monto.IsPositive() {
			return decimal.Zero, apierror.BusinessRule("El monto de cada pago debe ser mayor a cero")
		}
		suma = suma.Add(p.Monto)
	}
	if suma.LessThan(total) {
		return decimal.Zero, apierror.BusinessRule("Pago insuficiente")
	}
	return suma, nil
}
