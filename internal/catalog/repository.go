package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/types"
)

// Repository defines the read-only catalog queries.
type Repository interface {
	ListActiveRows(ctx context.Context, categoria string) ([]types.RowMap, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Produto, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListActiveRows returns active products as formatted rows ordered by SKU,
// optionally narrowed by a case-insensitive category substring.
func (r *repository) ListActiveRows(ctx context.Context, categoria string) ([]types.RowMap, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Produto{}).
		Where("esta_ativo = ?", true).
		Order("codigo_produto ASC")

	if categoria = strings.TrimSpace(categoria); categoria != "" {
		query = query.Where("LOWER(categoria) LIKE ?", "%"+strings.ToLower(categoria)+"%")
	}

	var rows []types.RowMap
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return types.FormatRows(rows), nil
}

// FindActiveBySlug resolves a product detail row. The url_slug column holds a
// legacy mix of "/produtos/<slug>" and bare "<slug>" values, so the prefixed
// form is tried first and the bare form second.
func (r *repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Produto, error) {
	slug = strings.TrimPrefix(strings.TrimSpace(slug), "/produtos/")

	for _, candidate := range []string{"/produtos/" + slug, slug} {
		var produto models.Produto
		err := r.db.WithContext(ctx).
			Where("url_slug = ? AND esta_ativo = ?", candidate, true).
			First(&produto).Error
		if err == nil {
			return &produto, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return nil, gorm.ErrRecordNotFound
}
