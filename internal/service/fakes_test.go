package service_test

// In-memory repository fakes shared by the service tests. RunInTx snapshots
// the whole store before running the closure and restores it when the closure
// fails, mirroring the database rollback, so partial-application bugs surface
// here too; the Tx method variants simply ignore the nil *gorm.DB handle. The
// caja fake enforces the single-open rule under a mutex, mirroring the
// partial unique index in Postgres.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/apierror"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/dto"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/model"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNoEncontrado = errors.New("registro no encontrado")

// ── Transactions ──────────────────────────────────────────────────────────────

// fakeTx gives the fakes rollback semantics: it snapshots every store before
// the closure runs and restores all of them when the closure returns an
// error, exactly as one database transaction would. The repo fakes delegate
// their RunInTx to the coordinator they share.
type fakeTx struct {
	mu     sync.Mutex
	cajas  *fakeCajaRepo
	ventas *fakeVentaRepo
	prods  *fakeProductoRepo
	movs   *fakeMovimientoRepo
}

func (t *fakeTx) run(fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cajas := t.cajas.snapshot()
	ventas := t.ventas.snapshot()
	prods := t.prods.snapshot()
	movs := t.movs.snapshot()
	if err := fn(nil); err != nil {
		t.cajas.restore(cajas)
		t.ventas.restore(ventas)
		t.prods.restore(prods)
		t.movs.restore(movs)
		return err
	}
	return nil
}

// ── Caja ──────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	mu    sync.Mutex
	tx    *fakeTx
	cajas map[uuid.UUID]*model.Caja
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.cajas {
		if existente.Estado == model.CajaAbierta {
			return apierror.Conflict("Ya existe una caja abierta")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clon := *c
	r.cajas[c.ID] = &clon
	return nil
}

func (r *fakeCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.abiertaLocked()
}

func (r *fakeCajaRepo) FindAbiertaTx(_ *gorm.DB) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.abiertaLocked()
}

func (r *fakeCajaRepo) abiertaLocked() (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.Estado == model.CajaAbierta {
			clon := *c
			return &clon, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *fakeCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *c
	return &clon, nil
}

func (r *fakeCajaRepo) UpdateTx(_ *gorm.DB, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clon := *c
	r.cajas[c.ID] = &clon
	return nil
}

func (r *fakeCajaRepo) List(_ context.Context, page, limit int) ([]model.Caja, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Caja, 0, len(r.cajas))
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCajaRepo) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.tx.run(fn)
}

func (r *fakeCajaRepo) snapshot() map[uuid.UUID]*model.Caja {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]*model.Caja, len(r.cajas))
	for id, c := range r.cajas {
		clon := *c
		out[id] = &clon
	}
	return out
}

func (r *fakeCajaRepo) restore(s map[uuid.UUID]*model.Caja) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cajas = s
}

// ── Venta ─────────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	mu     sync.Mutex
	tx     *fakeTx
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.NumeroDocumento != nil {
		for _, existente := range r.ventas {
			if existente.NumeroDocumento != nil && *existente.NumeroDocumento == *v.NumeroDocumento {
				return apierror.Conflict("Numero de documento ya utilizado")
			}
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	for i := range v.Detalles {
		v.Detalles[i].ID = uuid.New()
		v.Detalles[i].VentaID = v.ID
	}
	for i := range v.Pagos {
		v.Pagos[i].ID = uuid.New()
		v.Pagos[i].VentaID = v.ID
	}
	clon := *v
	r.ventas[v.ID] = &clon
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *v
	return &clon, nil
}

func (r *fakeVentaRepo) FindByNumeroDocumento(_ context.Context, numero string) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.ventas {
		if v.NumeroDocumento != nil && *v.NumeroDocumento == numero {
			clon := *v
			return &clon, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *fakeVentaRepo) UpdateNumeroDocumento(_ context.Context, id uuid.UUID, numero string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return errNoEncontrado
	}
	v.NumeroDocumento = &numero
	return nil
}

func (r *fakeVentaRepo) UpdateCliente(_ context.Context, id uuid.UUID, clienteID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return errNoEncontrado
	}
	v.ClienteID = &clienteID
	return nil
}

func (r *fakeVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ventas, id)
	return nil
}

func (r *fakeVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVentaRepo) SumPagosPorMetodo(_ context.Context, cajaID uuid.UUID) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[string]decimal.Decimal, len(model.MetodosPago))
	for _, m := range model.MetodosPago {
		sums[m] = decimal.Zero
	}
	for _, v := range r.ventas {
		if v.CajaID != cajaID {
			continue
		}
		for _, p := range v.Pagos {
			sums[p.Metodo] = sums[p.Metodo].Add(p.Monto)
		}
	}
	return sums, nil
}

func (r *fakeVentaRepo) SumVuelto(_ context.Context, cajaID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, v := range r.ventas {
		if v.CajaID == cajaID {
			total = total.Add(v.Vuelto)
		}
	}
	return total, nil
}

func (r *fakeVentaRepo) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.tx.run(fn)
}

func (r *fakeVentaRepo) snapshot() map[uuid.UUID]*model.Venta {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]*model.Venta, len(r.ventas))
	for id, v := range r.ventas {
		clon := *v
		out[id] = &clon
	}
	return out
}

func (r *fakeVentaRepo) restore(s map[uuid.UUID]*model.Venta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ventas = s
}

// ── Producto ──────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	mu        sync.Mutex
	tx        *fakeTx
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clon := *p
	r.productos[p.ID] = &clon
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *p
	return &clon, nil
}

func (r *fakeProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.Codigo == codigo {
			clon := *p
			return &clon, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *fakeProductoRepo) FindByIDTxLock(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *p
	return &clon, nil
}

func (r *fakeProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return errNoEncontrado
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clon := *p
	r.productos[p.ID] = &clon
	return nil
}

func (r *fakeProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return errNoEncontrado
	}
	p.Activo = false
	return nil
}

func (r *fakeProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return errNoEncontrado
	}
	p.Activo = true
	return nil
}

func (r *fakeProductoRepo) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.tx.run(fn)
}

func (r *fakeProductoRepo) snapshot() map[uuid.UUID]*model.Producto {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]*model.Producto, len(r.productos))
	for id, p := range r.productos {
		clon := *p
		out[id] = &clon
	}
	return out
}

func (r *fakeProductoRepo) restore(s map[uuid.UUID]*model.Producto) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos = s
}

// ── Movimientos de stock ──────────────────────────────────────────────────────

type fakeMovimientoRepo struct {
	mu          sync.Mutex
	movimientos []model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*fakeMovimientoRepo)(nil)

func newFakeMovimientoRepo() *fakeMovimientoRepo { return &fakeMovimientoRepo{} }

func (r *fakeMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

// List returns newest first, matching the created_at DESC order of the real
// repository.
func (r *fakeMovimientoRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimientoStock
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		m := r.movimientos[i]
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		if filter.Motivo != "" && m.Motivo != filter.Motivo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMovimientoRepo) snapshot() []model.MovimientoStock {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.MovimientoStock, len(r.movimientos))
	copy(out, r.movimientos)
	return out
}

func (r *fakeMovimientoRepo) restore(s []model.MovimientoStock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movimientos = s
}

func (r *fakeMovimientoRepo) porProducto(id uuid.UUID) []model.MovimientoStock {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == id {
			out = append(out, m)
		}
	}
	return out
}

// ── Usuario ───────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.usuarios {
		if existente.Username == u.Username {
			return apierror.Conflict("El nombre de usuario ya existe")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	clon := *u
	r.usuarios[u.ID] = &clon
	return nil
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *u
	return &clon, nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if u.Username == username {
			clon := *u
			return &clon, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *fakeUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clon := *u
	r.usuarios[u.ID] = &clon
	return nil
}

func (r *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return errNoEncontrado
	}
	u.Activo = false
	return nil
}

func (r *fakeUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return errNoEncontrado
	}
	u.Activo = true
	return nil
}

// ── Cliente ───────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clon := *c
	r.clientes[c.ID] = &clon
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNoEncontrado
	}
	clon := *c
	return &clon, nil
}

func (r *fakeClienteRepo) List(_ context.Context, nombre string) ([]model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Cliente
	for _, c := range r.clientes {
		if nombre == "" || strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(nombre)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clon := *c
	r.clientes[c.ID] = &clon
	return nil
}

func (r *fakeClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return errNoEncontrado
	}
	c.Activo = false
	return nil
}

// ── Environment ───────────────────────────────────────────────────────────────

// testEnv wires the services over their in-memory fakes exactly as the router
// wires them over GORM.
type testEnv struct {
	cajaRepo     *fakeCajaRepo
	ventaRepo    *fakeVentaRepo
	productoRepo *fakeProductoRepo
	movRepo      *fakeMovimientoRepo
	usuarioRepo  *fakeUsuarioRepo
	clienteRepo  *fakeClienteRepo

	inventario service.InventarioService
	ventas     service.VentaService
	cajas      service.CajaService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		cajaRepo:     newFakeCajaRepo(),
		ventaRepo:    newFakeVentaRepo(),
		productoRepo: newFakeProductoRepo(),
		movRepo:      newFakeMovimientoRepo(),
		usuarioRepo:  newFakeUsuarioRepo(),
		clienteRepo:  newFakeClienteRepo(),
	}
	tx := &fakeTx{
		cajas:  env.cajaRepo,
		ventas: env.ventaRepo,
		prods:  env.productoRepo,
		movs:   env.movRepo,
	}
	env.cajaRepo.tx = tx
	env.ventaRepo.tx = tx
	env.productoRepo.tx = tx
	env.inventario = service.NewInventarioService(env.productoRepo, env.movRepo, env.usuarioRepo)
	env.ventas = service.NewVentaService(env.ventaRepo, env.cajaRepo, env.productoRepo, env.clienteRepo, env.usuarioRepo, env.inventario)
	env.cajas = service.NewCajaService(env.cajaRepo, env.ventaRepo, env.usuarioRepo, nil)
	return env
}

func (env *testEnv) seedUsuario(rol string) uuid.UUID {
	u := &model.Usuario{
		Nombre:       "Usuario " + rol,
		Username:     rol + "-" + uuid.NewString()[:8],
		PasswordHash: "hash",
		Rol:          rol,
		Activo:       true,
	}
	if err := env.usuarioRepo.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u.ID
}

func (env *testEnv) seedProducto(nombre string, precio int64, stock int) uuid.UUID {
	p := &model.Producto{
		Codigo:      "P-" + uuid.NewString()[:8],
		Nombre:      nombre,
		PrecioCosto: decimal.NewFromInt(precio / 2),
		PrecioVenta: decimal.NewFromInt(precio),
		Stock:       stock,
		Activo:      true,
	}
	if err := env.productoRepo.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p.ID
}

func (env *testEnv) seedCliente(nombre string) uuid.UUID {
	c := &model.Cliente{Nombre: nombre, Activo: true}
	if err := env.clienteRepo.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c.ID
}

func (env *testEnv) abrirCaja(usuarioID uuid.UUID, monto int64) *dto.CajaResponse {
	resp, err := env.cajas.Abrir(context.Background(), usuarioID, dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromInt(monto),
	})
	if err != nil {
		panic(err)
	}
	return resp
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
