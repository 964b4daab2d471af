package products

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
)

// Service is the admin-facing product CRUD.
type Service interface {
	List(ctx context.Context) ([]models.Produto, error)
	Get(ctx context.Context, id int64) (*models.Produto, error)
	Create(ctx context.Context, input Input) (*models.Produto, error)
	Update(ctx context.Context, id int64, input Input) (*models.Produto, error)
	Delete(ctx context.Context, id int64) (*models.Produto, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the product CRUD service.
func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return &service{db: conn}, nil
}

// List returns every product, active or not, ordered by name for the panel.
func (s *service) List(ctx context.Context) ([]models.Produto, error) {
	var produtos []models.Produto
	if err := s.db.WithContext(ctx).Order("nome ASC").Find(&produtos).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return produtos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Produto, error) {
	var produto models.Produto
	if err := s.db.WithContext(ctx).First(&produto, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return &produto, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Produto, error) {
	produto := &models.Produto{}
	input.apply(produto)

	if err := s.db.WithContext(ctx).Create(produto).Error; err != nil {
		return nil, mapWriteError(err, "create product")
	}
	return produto, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*models.Produto, error) {
	produto, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(produto)

	if err := s.db.WithContext(ctx).Save(produto).Error; err != nil {
		return nil, mapWriteError(err, "update product")
	}
	return produto, nil
}

// Delete removes the product and returns the deleted row for confirmation
// messaging.
func (s *service) Delete(ctx context.Context, id int64) (*models.Produto, error) {
	produto, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Produto{}, id).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "produto referenciado por orçamentos ou pedidos")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return produto, nil
}

func mapWriteError(err error, op string) error {
	if db.IsUniqueViolation(err) {
		msg := "registro duplicado"
		if field := db.ConflictField(err); field != "" {
			msg = fmt.Sprintf("valor duplicado para %s", field)
		}
		return pkgerrors.New(pkgerrors.CodeConflict, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
