package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/copypoint/copypoint-api/internal/application/auth"
	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/application/reports"
	"github.com/copypoint/copypoint-api/internal/application/sales"
	"github.com/copypoint/copypoint-api/internal/application/tickets"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
	infraexcel "github.com/copypoint/copypoint-api/internal/infrastructure/excel"
	infrapdf "github.com/copypoint/copypoint-api/internal/infrastructure/pdf"
	"github.com/copypoint/copypoint-api/internal/infrastructure/postgres"
	httpRouter "github.com/copypoint/copypoint-api/internal/interfaces/http"
	"github.com/copypoint/copypoint-api/pkg/config"
	"github.com/copypoint/copypoint-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	// Repositorios sobre el pool (los de tx los crea TxRunner)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productoRepo, movimientoRepo)
	movementQueriesUC := inventory.NewMovementQueryUseCase(movimientoRepo, productoRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, categoriaRepo, registerMovementUC)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log.Zerolog())
	ventaUC := sales.NewVentaUseCase(
		txRunner, ventaRepo, productoRepo, clienteRepo,
		registerMovementUC, ticketRepo, log.Zerolog(),
	)

	ticketGenerator := infrapdf.NewMarotoTicketGenerator()
	ticketUC := tickets.NewTicketUseCase(
		ticketRepo, ventaRepo, movimientoRepo, companyUC,
		ticketGenerator, cfg.Reports.Dir, log.Zerolog(),
	)

	excelExporter := infraexcel.NewExcelizeExporter()
	pdfExporter := infrapdf.NewMarotoReportExporter()
	reportUC := reports.NewReportUseCase(
		movimientoRepo, productoRepo, companyUC,
		excelExporter, pdfExporter, cfg.Reports.Dir, log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Copy Point API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UsuarioUC:        usuarioUC,
		CategoriaUC:      categoriaUC,
		ProductoUC:       productoUC,
		ClienteUC:        clienteUC,
		CompanyUC:        companyUC,
		RegisterMovement: registerMovementUC,
		MovementQueries:  movementQueriesUC,
		VentaUC:          ventaUC,
		TicketUC:         ticketUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
