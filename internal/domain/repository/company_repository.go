package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para la configuración de empresa.
// Es una fila única: Get devuelve la configuración vigente (o nil si no existe)
// y Upsert la crea o reemplaza.
type CompanyRepository interface {
	Get() (*entity.CompanyConfig, error)
	Upsert(config *entity.CompanyConfig) error
}
