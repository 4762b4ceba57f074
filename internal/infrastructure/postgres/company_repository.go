package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación sobre PostgreSQL (usable con pool o tx).
// La configuración es una fila única con id = 1.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get obtiene la configuración vigente, o nil si no existe.
func (r *CompanyRepo) Get() (*entity.CompanyConfig, error) {
	query := `
		SELECT id, nombre, ruc, direccion, telefono, email, logo_path, itbms_rate, moneda, updated_at
		FROM company_config WHERE id = 1`
	var c entity.CompanyConfig
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.ID, &c.Nombre, &c.RUC, &c.Direccion, &c.Telefono, &c.Email,
		&c.LogoPath, &c.ITBMSRate, &c.Moneda, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company config: %w", err)
	}
	return &c, nil
}

// Upsert crea o reemplaza la configuración (siempre id = 1).
func (r *CompanyRepo) Upsert(config *entity.CompanyConfig) error {
	query := `
		INSERT INTO company_config (id, nombre, ruc, direccion, telefono, email, logo_path, itbms_rate, moneda, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			nombre = EXCLUDED.nombre, ruc = EXCLUDED.ruc, direccion = EXCLUDED.direccion,
			telefono = EXCLUDED.telefono, email = EXCLUDED.email, logo_path = EXCLUDED.logo_path,
			itbms_rate = EXCLUDED.itbms_rate, moneda = EXCLUDED.moneda, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		config.Nombre, config.RUC, config.Direccion, config.Telefono,
		config.Email, config.LogoPath, config.ITBMSRate, config.Moneda,
	)
	if err != nil {
		return fmt.Errorf("upsert company config: %w", err)
	}
	return nil
}
