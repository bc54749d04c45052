package repositories

import (
	"context"

	"sgp/internal/models"
)

// UsuarioRepository defines the interface for usuario data access.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Usuario, error)
	// ExistsBySenhaDigest reports whether another usuario (id != excludeID) uses the digest.
	ExistsBySenhaDigest(ctx context.Context, digest string, excludeID uint) (bool, error)
	List(ctx context.Context, opts ListOptions) (*Page[models.Usuario], error)
	Update(ctx context.Context, usuario *models.Usuario) error
	Delete(ctx context.Context, id uint) error
}
