package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var cienPorCiento = decimal.NewFromInt(100)

// CompanyUseCase gestiona la configuración de la empresa (fila única) con una
// caché en memoria protegida por RWMutex: los encabezados de tickets y
// reportes la leen en cada documento y la BD no cambia entre actualizaciones.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository

	mu    sync.RWMutex
	cache *entity.CompanyConfig

	printer *message.Printer
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{
		companyRepo: companyRepo,
		printer:     message.NewPrinter(language.Spanish),
	}
}

// Get devuelve la configuración vigente, usando la caché si está poblada.
// Si la BD no tiene fila, devuelve los valores por defecto.
func (uc *CompanyUseCase) Get(ctx context.Context) (*entity.CompanyConfig, error) {
	uc.mu.RLock()
	if uc.cache != nil {
		c := *uc.cache
		uc.mu.RUnlock()
		return &c, nil
	}
	uc.mu.RUnlock()

	config, err := uc.companyRepo.Get()
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = entity.DefaultCompanyConfig()
	}
	uc.mu.Lock()
	uc.cache = config
	uc.mu.Unlock()
	c := *config
	return &c, nil
}

// Update reemplaza la configuración e invalida la caché.
func (uc *CompanyUseCase) Update(ctx context.Context, config *entity.CompanyConfig) error {
	if strings.TrimSpace(config.Nombre) == "" {
		return fmt.Errorf("%w: el nombre de la empresa es obligatorio", domain.ErrInvalidInput)
	}
	if config.ITBMSRate.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: la tasa de ITBMS no puede ser negativa", domain.ErrInvalidInput)
	}
	if config.Moneda == "" {
		config.Moneda = "USD"
	}
	if err := uc.companyRepo.Upsert(config); err != nil {
		return err
	}
	uc.mu.Lock()
	uc.cache = nil
	uc.mu.Unlock()
	return nil
}

// CalcularITBMS impuesto sobre un monto según la tasa configurada, redondeado a centésimos.
func (uc *CompanyUseCase) CalcularITBMS(ctx context.Context, monto decimal.Decimal) (decimal.Decimal, error) {
	config, err := uc.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return monto.Mul(config.ITBMSRate).Div(cienPorCiento).Round(2), nil
}

// TotalConITBMS monto más el impuesto configurado.
func (uc *CompanyUseCase) TotalConITBMS(ctx context.Context, monto decimal.Decimal) (decimal.Decimal, error) {
	itbms, err := uc.CalcularITBMS(ctx, monto)
	if err != nil {
		return decimal.Zero, err
	}
	return monto.Add(itbms), nil
}

// FormatearMonto formatea un monto con la moneda configurada, ej. "USD 1,234.50".
func (uc *CompanyUseCase) FormatearMonto(ctx context.Context, monto decimal.Decimal) (string, error) {
	config, err := uc.Get(ctx)
	if err != nil {
		return "", err
	}
	f, _ := monto.Round(2).Float64()
	return uc.printer.Sprintf("%s %.2f", config.Moneda, f), nil
}

// EncabezadoDocumentos líneas de encabezado para tickets, facturas y reportes.
func (uc *CompanyUseCase) EncabezadoDocumentos(ctx context.Context) ([]string, error) {
	config, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	lineas := []string{config.Nombre}
	if config.RUC != "" {
		lineas = append(lineas, "RUC: "+config.RUC)
	}
	if config.Direccion != "" {
		lineas = append(lineas, config.Direccion)
	}
	if config.Telefono != "" {
		lineas = append(lineas, "Tel: "+config.Telefono)
	}
	if config.Email != "" {
		lineas = append(lineas, config.Email)
	}
	return lineas, nil
}
