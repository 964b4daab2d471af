package admins

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/security"
)

// bootstrapAdminID is the first account, created at install time. It can
// never be deleted, regardless of who asks.
const bootstrapAdminID = 1

// Input carries the fields for creating an admin panel account.
type Input struct {
	Username string `json:"username" validate:"required,min=3"`
	Senha    string `json:"senha" validate:"required,min=8"`
}

// Service manages admin panel accounts. Password hashes never leave it.
type Service interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	Create(ctx context.Context, input Input) (*models.AdminUser, error)
	Delete(ctx context.Context, id int64) (*models.AdminUser, error)
}

type service struct {
	db       *gorm.DB
	password config.PasswordConfig
}

// NewService builds the admin account service.
func NewService(conn *gorm.DB, password config.PasswordConfig) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return &service{db: conn, password: password}, nil
}

func (s *service) List(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	err := s.db.WithContext(ctx).
		Select("id", "username", "criado_em").
		Order("id ASC").
		Find(&admins).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	return admins, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.AdminUser, error) {
	hash, err := security.HashPassword(input.Senha, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin := &models.AdminUser{
		Username:  strings.TrimSpace(input.Username),
		SenhaHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "nome de usuário já existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
	}
	return admin, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*models.AdminUser, error) {
	if id == bootstrapAdminID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "o administrador principal não pode ser excluído")
	}

	var admin models.AdminUser
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "administrador não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find admin")
	}

	if err := s.db.WithContext(ctx).Delete(&models.AdminUser{}, id).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete admin")
	}
	return &admin, nil
}
