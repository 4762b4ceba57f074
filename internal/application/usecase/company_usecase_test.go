package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// fakeCompanyRepo cuenta las lecturas para verificar el uso de la caché.
type fakeCompanyRepo struct {
	config *entity.CompanyConfig
	gets   int
}

func (r *fakeCompanyRepo) Get() (*entity.CompanyConfig, error) {
	r.gets++
	if r.config == nil {
		return nil, nil
	}
	copia := *r.config
	return &copia, nil
}

func (r *fakeCompanyRepo) Upsert(config *entity.CompanyConfig) error {
	copia := *config
	r.config = &copia
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración y caché
// ──────────────────────────────────────────────────────────────────────────────

// Sin fila en BD, Get devuelve la configuración por defecto.
func TestCompanyGet_SinFilaDevuelveDefaults(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{})

	config, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Copy Point S.A.", config.Nombre)
	assert.Equal(t, "USD", config.Moneda)
	assert.True(t, config.ITBMSRate.Equal(decimal.NewFromInt(7)))
}

// La segunda lectura sale de la caché, sin tocar el repositorio.
func TestCompanyGet_UsaCache(t *testing.T) {
	repo := &fakeCompanyRepo{config: entity.DefaultCompanyConfig()}
	uc := usecase.NewCompanyUseCase(repo)
	ctx := context.Background()

	_, err := uc.Get(ctx)
	require.NoError(t, err)
	_, err = uc.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets, "la segunda lectura debe salir de la caché")
}

// Update invalida la caché: la siguiente lectura ve el valor nuevo.
func TestCompanyUpdate_InvalidaCache(t *testing.T) {
	repo := &fakeCompanyRepo{config: entity.DefaultCompanyConfig()}
	uc := usecase.NewCompanyUseCase(repo)
	ctx := context.Background()

	antes, err := uc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Copy Point S.A.", antes.Nombre)

	nuevo := entity.DefaultCompanyConfig()
	nuevo.Nombre = "Copy Point Chorrera S.A."
	require.NoError(t, uc.Update(ctx, nuevo))

	despues, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Copy Point Chorrera S.A.", despues.Nombre)
}

// Mutar el resultado de Get no debe contaminar la caché.
func TestCompanyGet_DevuelveCopia(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{config: entity.DefaultCompanyConfig()})
	ctx := context.Background()

	config, err := uc.Get(ctx)
	require.NoError(t, err)
	config.Nombre = "mutado"

	otra, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Copy Point S.A.", otra.Nombre)
}

// Update valida nombre y tasa, y asigna la moneda por defecto.
func TestCompanyUpdate_Validaciones(t *testing.T) {
	repo := &fakeCompanyRepo{}
	uc := usecase.NewCompanyUseCase(repo)
	ctx := context.Background()

	sinNombre := entity.DefaultCompanyConfig()
	sinNombre.Nombre = "   "
	assert.ErrorIs(t, uc.Update(ctx, sinNombre), domain.ErrInvalidInput)

	tasaNegativa := entity.DefaultCompanyConfig()
	tasaNegativa.ITBMSRate = decimal.NewFromInt(-1)
	assert.ErrorIs(t, uc.Update(ctx, tasaNegativa), domain.ErrInvalidInput)

	sinMoneda := entity.DefaultCompanyConfig()
	sinMoneda.Moneda = ""
	require.NoError(t, uc.Update(ctx, sinMoneda))
	assert.Equal(t, "USD", repo.config.Moneda)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo de ITBMS
// ──────────────────────────────────────────────────────────────────────────────

// ITBMS al 7% redondeado a centésimos.
func TestCalcularITBMS(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{config: entity.DefaultCompanyConfig()})
	ctx := context.Background()

	casos := []struct {
		monto    string
		esperado string
	}{
		{"100", "7"},
		{"9", "0.63"},
		{"0.10", "0.01"},  // 0.007 redondea a 0.01
		{"10.55", "0.74"}, // 0.7385 redondea a 0.74
		{"0", "0"},
	}
	for _, c := range casos {
		monto, _ := decimal.NewFromString(c.monto)
		esperado, _ := decimal.NewFromString(c.esperado)
		itbms, err := uc.CalcularITBMS(ctx, monto)
		require.NoError(t, err)
		assert.True(t, itbms.Equal(esperado), "ITBMS de %s: esperado %s, obtenido %s", c.monto, c.esperado, itbms)
	}
}

// Total con impuesto incluido.
func TestTotalConITBMS(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{config: entity.DefaultCompanyConfig()})

	total, err := uc.TotalConITBMS(context.Background(), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(107)), "total: %s", total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Encabezado de documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestEncabezadoDocumentos_Completo(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{config: entity.DefaultCompanyConfig()})

	lineas, err := uc.EncabezadoDocumentos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Copy Point S.A.",
		"RUC: 888-888-8888",
		"Las Lajas, Las Cumbres, Panamá",
		"Tel: 6666-6666",
		"copy.point@gmail.com",
	}, lineas)
}

// Los campos vacíos se omiten del encabezado.
func TestEncabezadoDocumentos_OmiteVacios(t *testing.T) {
	config := entity.DefaultCompanyConfig()
	config.RUC = ""
	config.Telefono = ""
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{config: config})

	lineas, err := uc.EncabezadoDocumentos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Copy Point S.A.",
		"Las Lajas, Las Cumbres, Panamá",
		"copy.point@gmail.com",
	}, lineas)
}
