package tickets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appusecase "github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// TicketUseCase genera y registra documentos imprimibles: tickets de venta,
// de entrada y de ajuste. Cada ticket queda en el registro con su número,
// la ruta del PDF generado y el contador de reimpresiones.
type TicketUseCase struct {
	ticketRepo repository.TicketRepository
	ventaRepo  repository.VentaRepository
	movRepo    repository.MovimientoRepository
	company    *appusecase.CompanyUseCase
	pdfGen     PDFGenerator
	dir        string
	log        zerolog.Logger
}

// NewTicketUseCase construye el caso de uso. dir es el directorio donde se
// escriben los PDFs generados.
func NewTicketUseCase(
	ticketRepo repository.TicketRepository,
	ventaRepo repository.VentaRepository,
	movRepo repository.MovimientoRepository,
	company *appusecase.CompanyUseCase,
	pdfGen PDFGenerator,
	dir string,
	log zerolog.Logger,
) *TicketUseCase {
	return &TicketUseCase{
		ticketRepo: ticketRepo,
		ventaRepo:  ventaRepo,
		movRepo:    movRepo,
		company:    company,
		pdfGen:     pdfGen,
		dir:        dir,
		log:        log,
	}
}

// GenerarTicketVenta genera el ticket de una venta. El número del ticket es
// el número de factura de la venta: la secuencia se consumió al registrarla.
func (uc *TicketUseCase) GenerarTicketVenta(ctx context.Context, idVenta, generatedBy string) (*entity.Ticket, error) {
	venta, err := uc.ventaRepo.GetByID(idVenta)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, idVenta)
	}
	detalles, err := uc.ventaRepo.ListDetalles(idVenta)
	if err != nil {
		return nil, err
	}

	data, err := uc.baseData(ctx, venta.NumeroFactura, entity.TicketVenta, generatedBy)
	if err != nil {
		return nil, err
	}
	data.Venta = venta
	data.Detalles = detalles

	ticket := &entity.Ticket{
		ID:          uuid.New().String(),
		Numero:      venta.NumeroFactura,
		Tipo:        entity.TicketVenta,
		IDVenta:     &idVenta,
		GeneratedAt: data.Fecha,
		GeneratedBy: generatedBy,
	}
	if err := uc.renderAndStore(ticket, data); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GenerarTicketMovimiento genera el comprobante de una entrada o ajuste,
// consumiendo la secuencia de numeración del tipo correspondiente.
func (uc *TicketUseCase) GenerarTicketMovimiento(ctx context.Context, idMovimiento, generatedBy string) (*entity.Ticket, error) {
	mov, err := uc.movRepo.GetByID(idMovimiento)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, idMovimiento)
	}
	if mov.Tipo == entity.MovimientoVenta {
		return nil, fmt.Errorf("%w: las salidas por venta se documentan con el ticket de la venta", domain.ErrInvalidInput)
	}

	numero, err := uc.ticketRepo.NextNumero(mov.Tipo)
	if err != nil {
		return nil, err
	}
	data, err := uc.baseData(ctx, numero, mov.Tipo, generatedBy)
	if err != nil {
		return nil, err
	}
	data.Movimiento = mov

	ticket := &entity.Ticket{
		ID:           uuid.New().String(),
		Numero:       numero,
		Tipo:         mov.Tipo,
		IDMovimiento: &idMovimiento,
		GeneratedAt:  data.Fecha,
		GeneratedBy:  generatedBy,
	}
	if err := uc.renderAndStore(ticket, data); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Reprint regenera el PDF de un ticket existente marcado como COPIA y suma
// una reimpresión al contador.
func (uc *TicketUseCase) Reprint(ctx context.Context, id, generatedBy string) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
	}

	data, err := uc.baseData(ctx, ticket.Numero, ticket.Tipo, generatedBy)
	if err != nil {
		return nil, err
	}
	data.Copia = true
	if ticket.IDVenta != nil {
		venta, err := uc.ventaRepo.GetByID(*ticket.IDVenta)
		if err != nil {
			return nil, err
		}
		detalles, err := uc.ventaRepo.ListDetalles(*ticket.IDVenta)
		if err != nil {
			return nil, err
		}
		data.Venta = venta
		data.Detalles = detalles
	}
	if ticket.IDMovimiento != nil {
		mov, err := uc.movRepo.GetByID(*ticket.IDMovimiento)
		if err != nil {
			return nil, err
		}
		data.Movimiento = mov
	}

	pdf, err := uc.pdfGen.GenerarTicket(data)
	if err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	if err := uc.writePDF(ticket.PDFPath, pdf); err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.IncrementReprint(id); err != nil {
		return nil, err
	}
	ticket.ReprintCount++
	uc.log.Info().Str("numero", ticket.Numero).Int("reimpresiones", ticket.ReprintCount).Msg("ticket reimpreso")
	return ticket, nil
}

// GetByNumero obtiene un ticket por número formateado.
func (uc *TicketUseCase) GetByNumero(ctx context.Context, numero string) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepo.GetByNumero(numero)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, numero)
	}
	return ticket, nil
}

// ListByTipo tickets de un tipo, más recientes primero.
func (uc *TicketUseCase) ListByTipo(ctx context.Context, tipo string, limit int) ([]*entity.Ticket, error) {
	if !entity.TipoTicketValido(tipo) {
		return nil, fmt.Errorf("%w: tipo de ticket %q", domain.ErrInvalidInput, tipo)
	}
	return uc.ticketRepo.ListByTipo(tipo, limit)
}

func (uc *TicketUseCase) baseData(ctx context.Context, numero, tipo, generatedBy string) (TicketData, error) {
	if generatedBy == "" {
		return TicketData{}, fmt.Errorf("%w: generatedBy es obligatorio", domain.ErrInvalidInput)
	}
	encabezado, err := uc.company.EncabezadoDocumentos(ctx)
	if err != nil {
		return TicketData{}, err
	}
	config, err := uc.company.Get(ctx)
	if err != nil {
		return TicketData{}, err
	}
	return TicketData{
		Numero:      numero,
		Tipo:        tipo,
		Encabezado:  encabezado,
		Moneda:      config.Moneda,
		Fecha:       time.Now(),
		GeneratedBy: generatedBy,
	}, nil
}

func (uc *TicketUseCase) renderAndStore(ticket *entity.Ticket, data TicketData) error {
	pdf, err := uc.pdfGen.GenerarTicket(data)
	if err != nil {
		return fmt.Errorf("generar pdf: %w", err)
	}
	ticket.PDFPath = filepath.Join(uc.dir, fmt.Sprintf("ticket_%s.pdf", ticket.Numero))
	if err := uc.writePDF(ticket.PDFPath, pdf); err != nil {
		return err
	}
	if err := uc.ticketRepo.Create(ticket); err != nil {
		return err
	}
	uc.log.Info().Str("numero", ticket.Numero).Str("tipo", ticket.Tipo).Str("pdf", ticket.PDFPath).Msg("ticket generado")
	return nil
}

func (uc *TicketUseCase) writePDF(path string, pdf []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de tickets: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir pdf: %w", err)
	}
	return nil
}
