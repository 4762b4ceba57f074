package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

const minPasswordLen = 8

// UsuarioUseCase gestiona los usuarios del sistema (ADMIN y VENDEDOR).
type UsuarioUseCase struct {
	usuarioRepo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(usuarioRepo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{usuarioRepo: usuarioRepo}
}

// UsuarioInput datos para crear un usuario.
type UsuarioInput struct {
	NombreUsuario string
	Password      string
	Rol           string // ADMIN | VENDEDOR
}

// Create da de alta un usuario con la contraseña hasheada con bcrypt.
func (uc *UsuarioUseCase) Create(ctx context.Context, input UsuarioInput) (*entity.Usuario, error) {
	if input.NombreUsuario == "" {
		return nil, fmt.Errorf("%w: el nombre de usuario es obligatorio", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña necesita al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if !entity.RolValido(input.Rol) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, input.Rol)
	}
	existente, err := uc.usuarioRepo.GetByNombreUsuario(input.NombreUsuario)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: ya existe el usuario %q", domain.ErrDuplicate, input.NombreUsuario)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	usuario := &entity.Usuario{
		ID:            uuid.New().String(),
		NombreUsuario: input.NombreUsuario,
		PasswordHash:  string(hash),
		Rol:           input.Rol,
		Activo:        true,
		CreatedAt:     time.Now(),
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	// Nunca devolver el hash al caller HTTP
	usuario.PasswordHash = ""
	return usuario, nil
}

// GetByID obtiene un usuario por ID, sin el hash de contraseña.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	usuario, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	usuario.PasswordHash = ""
	return usuario, nil
}

// List todos los usuarios, sin hashes.
func (uc *UsuarioUseCase) List(ctx context.Context) ([]*entity.Usuario, error) {
	usuarios, err := uc.usuarioRepo.List()
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		u.PasswordHash = ""
	}
	return usuarios, nil
}

// ListByRol usuarios de un rol, sin hashes.
func (uc *UsuarioUseCase) ListByRol(ctx context.Context, rol string) ([]*entity.Usuario, error) {
	if !entity.RolValido(rol) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, rol)
	}
	usuarios, err := uc.usuarioRepo.ListByRol(rol)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		u.PasswordHash = ""
	}
	return usuarios, nil
}

// UpdateRol cambia el rol de un usuario.
func (uc *UsuarioUseCase) UpdateRol(ctx context.Context, id, rol string) error {
	if !entity.RolValido(rol) {
		return fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, rol)
	}
	usuario, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	usuario.Rol = rol
	return uc.usuarioRepo.Update(usuario)
}

// SetActivo activa o desactiva un usuario. Un usuario inactivo no puede iniciar sesión.
func (uc *UsuarioUseCase) SetActivo(ctx context.Context, id string, activo bool) error {
	usuario, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return uc.usuarioRepo.SetActivo(id, activo)
}
