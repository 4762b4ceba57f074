package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/auth"
	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/application/reports"
	"github.com/copypoint/copypoint-api/internal/application/sales"
	"github.com/copypoint/copypoint-api/internal/application/tickets"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UsuarioUC        *usecase.UsuarioUseCase
	CategoriaUC      *usecase.CategoriaUseCase
	ProductoUC       *usecase.ProductoUseCase
	ClienteUC        *usecase.ClienteUseCase
	CompanyUC        *usecase.CompanyUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQueries  *inventory.MovementQueryUseCase
	VentaUC          *sales.VentaUseCase
	TicketUC         *tickets.TicketUseCase
	ReportUC         *reports.ReportUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; cambio de contraseña protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RolAdmin)

	// Categorías
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Post("/", categoriaHandler.Create)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Put("/:id", categoriaHandler.Update)
	categorias.Delete("/:id", soloAdmin, categoriaHandler.Delete)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	movimientoHandler := NewMovimientoHandler(deps.RegisterMovement, deps.MovementQueries)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/bajo-stock", productoHandler.BajoStock)
	productos.Get("/stats", productoHandler.Stats)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Patch("/:id/activo", productoHandler.SetActivo)
	productos.Get("/:id/movimientos", movimientoHandler.ListByProducto)

	// Movimientos de inventario (el libro)
	movimientos := protected.Group("/movimientos")
	movimientos.Post("/", movimientoHandler.Register)
	movimientos.Get("/", movimientoHandler.List)
	movimientos.Get("/resumen", movimientoHandler.Resumen)
	movimientos.Get("/:id", movimientoHandler.GetByID)
	movimientos.Delete("/:id", soloAdmin, movimientoHandler.Delete)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Patch("/:id/activo", clienteHandler.SetActivo)

	// Ventas
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ticketHandler := NewTicketHandler(deps.TicketUC)
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Post("/:id/cancelar", ventaHandler.Cancel)
	ventas.Post("/:id/ticket", ticketHandler.GenerarVenta)

	// Tickets
	ticketsGroup := protected.Group("/tickets")
	ticketsGroup.Get("/", ticketHandler.List)
	ticketsGroup.Post("/:id/reprint", ticketHandler.Reprint)
	movimientos.Post("/:id/ticket", ticketHandler.GenerarMovimiento)

	// Usuarios (solo ADMIN)
	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Patch("/:id/rol", usuarioHandler.UpdateRol)
	usuarios.Patch("/:id/activo", usuarioHandler.SetActivo)

	// Configuración de empresa (lectura para todos, escritura solo ADMIN)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", soloAdmin, companyHandler.Update)

	// Reportes
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReportUC)
	reportes.Get("/movimientos", reporteHandler.Movimientos)
	reportes.Get("/bajo-stock", reporteHandler.BajoStock)
}
