// Seed inicial: usuario administrador y categorías base del punto de venta.
// Idempotente: los registros que ya existen se omiten.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/infrastructure/postgres"
	"github.com/copypoint/copypoint-api/pkg/config"
	"github.com/copypoint/copypoint-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	usuarioUC := usecase.NewUsuarioUseCase(postgres.NewUsuarioRepository(pool))
	categoriaUC := usecase.NewCategoriaUseCase(postgres.NewCategoriaRepository(pool))

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123*"
	}
	if _, err := usuarioUC.Create(ctx, usecase.UsuarioInput{
		NombreUsuario: "admin",
		Password:      password,
		Rol:           entity.RolAdmin,
	}); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		log.Info().Msg("usuario admin ya existe")
	} else {
		log.Info().Msg("usuario admin creado")
	}

	categorias := []usecase.CategoriaInput{
		{Nombre: "Papelería", Tipo: entity.CategoriaTipoMaterial, Descripcion: "Productos de papelería y oficina"},
		{Nombre: "Insumos de impresión", Tipo: entity.CategoriaTipoMaterial, Descripcion: "Tintas, tóner y papel"},
		{Nombre: "Servicios de impresión", Tipo: entity.CategoriaTipoServicio, Descripcion: "Copias, impresiones y escaneo"},
		{Nombre: "Servicios de diseño", Tipo: entity.CategoriaTipoServicio, Descripcion: "Diseño gráfico y edición"},
	}
	for _, c := range categorias {
		if _, err := categoriaUC.Create(ctx, c); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				log.Fatal().Err(err).Str("categoria", c.Nombre).Msg("crear categoría")
			}
			log.Info().Str("categoria", c.Nombre).Msg("categoría ya existe")
			continue
		}
		log.Info().Str("categoria", c.Nombre).Msg("categoría creada")
	}

	log.Info().Msg("seed completado")
}
