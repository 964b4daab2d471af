package clients

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/security"
)

// Input is the admin-editable field set of a client. The access code is
// generated on create and never rewritten by updates.
type Input struct {
	Nome     string  `json:"nome" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Telefone *string `json:"telefone"`
	CPFCNPJ  *string `json:"cpf_cnpj"`
}

// Service is the admin-facing client CRUD.
type Service interface {
	List(ctx context.Context) ([]models.Cliente, error)
	Get(ctx context.Context, id int64) (*models.Cliente, error)
	Create(ctx context.Context, input Input) (*models.Cliente, error)
	Update(ctx context.Context, id int64, input Input) (*models.Cliente, error)
	Delete(ctx context.Context, id int64) (*models.Cliente, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the client CRUD service.
func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return &service{db: conn}, nil
}

func (s *service) List(ctx context.Context) ([]models.Cliente, error) {
	var clientes []models.Cliente
	if err := s.db.WithContext(ctx).Order("nome ASC").Find(&clientes).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}
	return clientes, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Cliente, error) {
	var cliente models.Cliente
	if err := s.db.WithContext(ctx).First(&cliente, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cliente não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find client")
	}
	return &cliente, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Cliente, error) {
	codigo, err := security.GenerateAccessCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate access code")
	}

	cliente := &models.Cliente{
		Nome:         strings.TrimSpace(input.Nome),
		Email:        normalizeEmail(input.Email),
		Telefone:     input.Telefone,
		CPFCNPJ:      input.CPFCNPJ,
		CodigoAcesso: codigo,
	}
	if err := s.db.WithContext(ctx).Create(cliente).Error; err != nil {
		return nil, mapWriteError(err, "create client")
	}
	return cliente, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*models.Cliente, error) {
	cliente, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cliente.Nome = strings.TrimSpace(input.Nome)
	cliente.Email = normalizeEmail(input.Email)
	cliente.Telefone = input.Telefone
	cliente.CPFCNPJ = input.CPFCNPJ

	if err := s.db.WithContext(ctx).Save(cliente).Error; err != nil {
		return nil, mapWriteError(err, "update client")
	}
	return cliente, nil
}

// Delete removes the client unless quotes or orders still reference it, in
// which case it reports a conflict and the row is kept.
func (s *service) Delete(ctx context.Context, id int64) (*models.Cliente, error) {
	cliente, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.hasReferences(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check client references")
	}
	if referenced {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cliente possui orçamentos ou pedidos e não pode ser excluído")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Cliente{}, id).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cliente possui orçamentos ou pedidos e não pode ser excluído")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return cliente, nil
}

func (s *service) hasReferences(ctx context.Context, clienteID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Orcamento{}).Where("cliente_id = ?", clienteID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Pedido{}).Where("cliente_id = ?", clienteID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
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
