// Package policy centralizes role-based capability checks. Each use case calls
// Authorize at its entry point, independent of the HTTP layer, so the rules
// hold no matter which transport invokes the service.
package policy

import (
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
)

// Roles.
const (
	RolCajero        = "cajero"
	RolSupervisor    = "supervisor"
	RolAdministrador = "administrador"
)

// Acciones gated by role.
type Accion string

const (
	AbrirCaja         Accion = "abrir_caja"
	CerrarCaja        Accion = "cerrar_caja"
	RegistrarVenta    Accion = "registrar_venta"
	EliminarVenta     Accion = "eliminar_venta"
	AjustarStock      Accion = "ajustar_stock"
	GestionarCatalogo Accion = "gestionar_catalogo"
	GestionarUsuarios Accion = "gestionar_usuarios"
)

var permisos = map[Accion][]string{
	AbrirCaja:         {RolCajero, RolSupervisor, RolAdministrador},
	CerrarCaja:        {RolCajero, RolSupervisor, RolAdministrador},
	RegistrarVenta:    {RolCajero, RolSupervisor, RolAdministrador},
	EliminarVenta:     {RolSupervisor, RolAdministrador},
	AjustarStock:      {RolSupervisor, RolAdministrador},
	GestionarCatalogo: {RolAdministrador},
	GestionarUsuarios: {RolAdministrador},
}

// Authorize returns a Forbidden error when the role may not perform the action.
func Authorize(rol string, accion Accion) error {
	for _, permitido := range permisos[accion] {
		if rol == permitido {
			return nil
		}
	}
	return apierror.Forbidden("Permisos insuficientes para " + string(accion))
}
