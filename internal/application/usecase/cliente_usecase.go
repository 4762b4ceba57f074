package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// ClienteUseCase gestiona el padrón de clientes.
type ClienteUseCase struct {
	clienteRepo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(clienteRepo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{clienteRepo: clienteRepo}
}

// ClienteInput datos para crear o actualizar un cliente.
type ClienteInput struct {
	Nombre    string
	RUC       string
	DV        string
	Telefono  string
	Email     string
	Direccion string
}

func validarCliente(input ClienteInput) error {
	if strings.TrimSpace(input.Nombre) == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	// El DV solo tiene sentido acompañando un RUC.
	if input.DV != "" && input.RUC == "" {
		return fmt.Errorf("%w: el DV requiere un RUC", domain.ErrInvalidInput)
	}
	return nil
}

// Create da de alta un cliente. El RUC, cuando existe, debe ser único.
func (uc *ClienteUseCase) Create(ctx context.Context, input ClienteInput) (*entity.Cliente, error) {
	if err := validarCliente(input); err != nil {
		return nil, err
	}
	if input.RUC != "" {
		existente, err := uc.clienteRepo.GetByRUC(input.RUC)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, fmt.Errorf("%w: ya existe un cliente con RUC %s", domain.ErrDuplicate, input.RUC)
		}
	}
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(input.Nombre),
		RUC:       input.RUC,
		DV:        input.DV,
		Telefono:  input.Telefono,
		Email:     input.Email,
		Direccion: input.Direccion,
		Activo:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.clienteRepo.Create(cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// Update modifica los datos de un cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, input ClienteInput) (*entity.Cliente, error) {
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	if err := validarCliente(input); err != nil {
		return nil, err
	}
	if input.RUC != "" && input.RUC != cliente.RUC {
		existente, err := uc.clienteRepo.GetByRUC(input.RUC)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != id {
			return nil, fmt.Errorf("%w: ya existe un cliente con RUC %s", domain.ErrDuplicate, input.RUC)
		}
	}
	cliente.Nombre = strings.TrimSpace(input.Nombre)
	cliente.RUC = input.RUC
	cliente.DV = input.DV
	cliente.Telefono = input.Telefono
	cliente.Email = input.Email
	cliente.Direccion = input.Direccion
	if err := uc.clienteRepo.Update(cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return cliente, nil
}

// GetByRUC obtiene un cliente por RUC.
func (uc *ClienteUseCase) GetByRUC(ctx context.Context, ruc string) (*entity.Cliente, error) {
	cliente, err := uc.clienteRepo.GetByRUC(ruc)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente con RUC %s", domain.ErrNotFound, ruc)
	}
	return cliente, nil
}

// List clientes, opcionalmente solo activos.
func (uc *ClienteUseCase) List(ctx context.Context, soloActivos bool) ([]*entity.Cliente, error) {
	return uc.clienteRepo.List(soloActivos)
}

// SetActivo activa o desactiva (borrado lógico) un cliente.
func (uc *ClienteUseCase) SetActivo(ctx context.Context, id string, activo bool) error {
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return uc.clienteRepo.SetActivo(id, activo)
}
