package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id_usuario, nombre_usuario, password_hash, rol, activo, fecha_creacion`

// UsuarioRepo implementación sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un usuario.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id_usuario, nombre_usuario, password_hash, rol, activo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.NombreUsuario, usuario.PasswordHash, usuario.Rol,
		usuario.Activo, usuario.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.NombreUsuario, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id_usuario = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByNombreUsuario obtiene un usuario por nombre de usuario.
func (r *UsuarioRepo) GetByNombreUsuario(nombreUsuario string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE nombre_usuario = $1`, nombreUsuario))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by nombre: %w", err)
	}
	return u, nil
}

// Update actualiza nombre de usuario y rol. El hash se cambia vía UpdatePassword.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios SET nombre_usuario = $2, rol = $3
		WHERE id_usuario = $1`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.NombreUsuario, usuario.Rol,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UsuarioRepo) UpdatePassword(id, passwordHash string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET password_hash = $2 WHERE id_usuario = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva un usuario.
func (r *UsuarioRepo) SetActivo(id string, activo bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET activo = $2 WHERE id_usuario = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set activo usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) list(query string, args ...any) ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.NombreUsuario, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// List lista todos los usuarios.
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	list, err := r.list(`SELECT ` + usuarioColumns + ` FROM usuarios ORDER BY nombre_usuario`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return list, nil
}

// ListByRol lista usuarios por rol.
func (r *UsuarioRepo) ListByRol(rol string) ([]*entity.Usuario, error) {
	list, err := r.list(
		`SELECT `+usuarioColumns+` FROM usuarios WHERE rol = $1 ORDER BY nombre_usuario`, rol)
	if err != nil {
		return nil, fmt.Errorf("list usuarios by rol: %w", err)
	}
	return list, nil
}
