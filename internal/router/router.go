package router

import (
	"time"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/config"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/handler"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/middleware"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/notify"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/repository"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/service"
	"github.com/Diegosuar/control-gastos-alpha-style/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	notifier := notify.NewNotifier(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	ventaSvc := service.NewVentaService(transaccionRepo, productoRepo, movimientoRepo, notifier, dispatcher)
	transaccionSvc := service.NewTransaccionService(transaccionRepo, notifier)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo, notifier)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	transaccionesH := handler.NewTransaccionesHandler(transaccionSvc, ventaSvc)
	productosH := handler.NewProductosHandler(productoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.POST("/ventas/precio", ventasH.Cotizar)

		v1.POST("/transacciones", transaccionesH.Crear)
		v1.GET("/transacciones", transaccionesH.Listar)
		v1.DELETE("/transacciones/:id", transaccionesH.Eliminar)
		v1.GET("/resumen", transaccionesH.Resumen)

		v1.POST("/productos", productosH.Crear)
		v1.GET("/productos", productosH.Listar)
		v1.PATCH("/productos/:id/stock", productosH.AjustarStock)
		v1.GET("/inventario/movimientos", productosH.ListarMovimientos)

		v1.GET("/eventos", handler.Eventos(notifier))
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
