package repositories

import (
	"context"
	"fmt"

	"sgp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var usuarioSortColumns = map[string]string{
	"id":             "id",
	"nome":           "nome",
	"email":          "email",
	"dataNascimento": "data_nascimento",
	"status":         "status",
	"createdAt":      "created_at",
}

// GORMUsuarioRepository is a GORM implementation of UsuarioRepository.
type GORMUsuarioRepository struct {
	db *gorm.DB
}

// NewGORMUsuarioRepository creates a new instance of GORMUsuarioRepository.
func NewGORMUsuarioRepository(db *gorm.DB) *GORMUsuarioRepository {
	return &GORMUsuarioRepository{db: db}
}

// Create inserts a new usuario; the store assigns its ID.
func (r *GORMUsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	if err := r.db.WithContext(ctx).Create(usuario).Error; err != nil {
		return fmt.Errorf("failed to create usuario: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a usuario by its ID.
func (r *GORMUsuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	return r.first(ctx, "id", id)
}

// GetByEmail retrieves a usuario by its email.
func (r *GORMUsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return r.first(ctx, "email", email)
}

// GetByCPF retrieves a usuario by its cpf.
func (r *GORMUsuarioRepository) GetByCPF(ctx context.Context, cpf string) (*models.Usuario, error) {
	return r.first(ctx, "cpf", cpf)
}

func (r *GORMUsuarioRepository) first(ctx context.Context, column string, value interface{}) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).First(&usuario).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario by %s %v: %w", column, value, translate(err))
	}
	return &usuario, nil
}

func (r *GORMUsuarioRepository) ExistsBySenhaDigest(ctx context.Context, digest string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("senha_digest = ? AND id <> ?", digest, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check senha digest: %w", translate(err))
	}
	return count > 0, nil
}

// List returns one page of usuarios.
func (r *GORMUsuarioRepository) List(ctx context.Context, opts ListOptions) (*Page[models.Usuario], error) {
	page, err := paginate[models.Usuario](r.db.WithContext(ctx).Model(&models.Usuario{}), opts, usuarioSortColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}
	return page, nil
}

// Update writes every column of usuario except its identity and creation time.
func (r *GORMUsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	res := r.db.WithContext(ctx).
		Model(usuario).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(usuario)
	if res.Error != nil {
		return fmt.Errorf("failed to update usuario %d: %w", usuario.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("usuario with ID %d not found for update: %w", usuario.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a usuario. Rows still referencing it make the delete fail with ErrForeignKey.
func (r *GORMUsuarioRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Usuario{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete usuario %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("usuario with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
