package router

import (
	"time"

	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/config"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/handler"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/infra"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/middleware"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/repository"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/service"
	"github.com/decoaromaspos/DecoAromas-POS-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// worker pool ready to start.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *worker.Pool) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	aromaRepo := repository.NewAromaRepository(db)
	familiaRepo := repository.NewFamiliaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo, usuarioRepo)
	productoSvc := service.NewProductoService(productoRepo, inventarioSvc, rdb)
	clienteSvc := service.NewClienteService(clienteRepo)
	catalogoSvc := service.NewCatalogoService(aromaRepo, familiaRepo)
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo, usuarioRepo, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, cajaRepo, productoRepo, clienteRepo, usuarioRepo, inventarioSvc)

	// ── Workers ──────────────────────────────────────────────────────────────
	pool := worker.NewPool(rdb)
	reporteW := worker.NewCierreReporteWorker(cajaRepo, ventaRepo, dispatcher, rdb,
		cfg.PDFStoragePath, cfg.ReporteEmailTo, cfg.NombreComercio)
	emailW := worker.NewEmailWorker(mailer, rdb)
	pool.Register("cierre_reporte", reporteW.Process)
	pool.Register("email", emailW.Process)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, ventaRepo, cfg)
	consultaH := handler.NewConsultaPreciosHandler(productoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Sales — any authenticated role can sell; delete needs supervisor+
		v1.POST("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.GetVenta)
		v1.GET("/ventas/:id/ticket", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.Ticket)
		v1.PATCH("/ventas/:id/documento", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ActualizarDocumento)
		v1.PATCH("/ventas/:id/cliente", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ActualizarCliente)
		v1.DELETE("/ventas/:id", middleware.RequireRole("supervisor", "administrador"), ventasH.EliminarVenta)

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Abrir)
			caja.POST("/cerrar", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Cerrar)
			caja.GET("/abierta", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.GetAbierta)
			caja.GET("/:id/resumen", middleware.RequireRole("supervisor", "administrador"), cajaH.Resumen)
			caja.GET("/historial", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)
		}

		// Products — all roles read, supervisor+ writes
		v1.GET("/productos", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.ObtenerPorID)
		prods := v1.Group("/productos", middleware.RequireRole("supervisor", "administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("supervisor", "administrador"))
		{
			inv.POST("/ajuste", inventarioH.AjustarStock)
			inv.POST("/fijar", inventarioH.FijarStock)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
		}

		// Clients — every role can consult and register
		clientes := v1.Group("/clientes", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", middleware.RequireRole("supervisor", "administrador"), clientesH.Desactivar)

		// Catalog axes — all roles read, supervisor+ writes
		v1.GET("/aromas", middleware.RequireRole("cajero", "supervisor", "administrador"), catalogoH.ListarAromas)
		v1.GET("/familias", middleware.RequireRole("cajero", "supervisor", "administrador"), catalogoH.ListarFamilias)
		cat := v1.Group("", middleware.RequireRole("supervisor", "administrador"))
		{
			cat.POST("/aromas", catalogoH.CrearAroma)
			cat.DELETE("/aromas/:id", catalogoH.DesactivarAroma)
			cat.POST("/familias", catalogoH.CrearFamilia)
			cat.DELETE("/familias/:id", catalogoH.DesactivarFamilia)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, pool
}
