package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
	"github.com/copypoint/copypoint-api/pkg/jwt"
)

// AuthUseCase autenticación con contraseñas bcrypt y tokens JWT.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtSecret   string
	jwtIssuer   string
	expMinutes  int
	log         zerolog.Logger
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtSecret, jwtIssuer string, expMinutes int, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo: usuarioRepo,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		expMinutes:  expMinutes,
		log:         log,
	}
}

// LoginResult token emitido y datos básicos del usuario autenticado.
type LoginResult struct {
	Token   string
	Usuario *entity.Usuario
}

// Login verifica las credenciales y emite un JWT. Usuario inexistente,
// inactivo o contraseña incorrecta devuelven el mismo error para no filtrar
// qué usuarios existen.
func (uc *AuthUseCase) Login(ctx context.Context, nombreUsuario, password string) (*LoginResult, error) {
	usuario, err := uc.usuarioRepo.GetByNombreUsuario(nombreUsuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Activo {
		return nil, domain.ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warn().Str("usuario", nombreUsuario).Msg("intento de login fallido")
			return nil, domain.ErrCredencialesInvalidas
		}
		return nil, fmt.Errorf("verificar contraseña: %w", err)
	}

	token, err := jwt.Generate(uc.jwtSecret, usuario.ID, usuario.NombreUsuario, usuario.Rol, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	usuario.PasswordHash = ""
	uc.log.Info().Str("usuario", nombreUsuario).Str("rol", usuario.Rol).Msg("login exitoso")
	return &LoginResult{Token: token, Usuario: usuario}, nil
}

// ChangePassword cambia la contraseña de un usuario verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, actual, nueva string) error {
	if len(nueva) < 8 {
		return fmt.Errorf("%w: la contraseña necesita al menos 8 caracteres", domain.ErrInvalidInput)
	}
	usuario, err := uc.usuarioRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(actual)); err != nil {
		return domain.ErrCredencialesInvalidas
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nueva), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear contraseña: %w", err)
	}
	return uc.usuarioRepo.UpdatePassword(userID, string(hash))
}
