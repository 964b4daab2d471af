package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PublicResult is the outcome of an anonymous submission. CodigoAcessoGerado
// is only set when a client was auto-provisioned, so the submitter can reach
// the customer portal.
type PublicResult struct {
	Orcamento           *models.Orcamento
	Cliente             *models.Cliente
	CodigoAcessoGerado  string
	ClienteProvisionado bool
}

// Service is the quote side of the quote/order workflow.
type Service interface {
	Create(ctx context.Context, clienteID int64, input CreateInput) (*models.Orcamento, error)
	CreatePublic(ctx context.Context, input PublicInput) (*PublicResult, error)
	List(ctx context.Context) ([]models.Orcamento, error)
	Get(ctx context.Context, id int64) (*models.Orcamento, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Orcamento, error)
	Approve(ctx context.Context, id int64) (*models.Pedido, error)
	ListForCliente(ctx context.Context, clienteID int64) ([]models.Orcamento, error)
}

type service struct {
	db *gorm.DB
	tx txRunner
}

// NewService builds the quote service.
func NewService(conn *gorm.DB, tx txRunner) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{db: conn, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, clienteID int64, input CreateInput) (*models.Orcamento, error) {
	if clienteID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente")
	}
	itens, err := buildItens(input.Itens)
	if err != nil {
		return nil, err
	}

	orcamento := &models.Orcamento{
		ClienteID: clienteID,
		Status:    enums.OrcamentoAguardandoOrcamento,
		Itens:     itens,
	}
	if err := s.db.WithContext(ctx).Create(orcamento).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "produto informado não existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}
	return orcamento, nil
}

func (s *service) CreatePublic(ctx context.Context, input PublicInput) (*PublicResult, error) {
	itens, err := buildItens(input.Itens)
	if err != nil {
		return nil, err
	}

	cliente, generated, provisioned, err := s.resolveCliente(ctx, input)
	if err != nil {
		return nil, err
	}

	orcamento := &models.Orcamento{
		ClienteID: cliente.ID,
		Status:    enums.OrcamentoAguardandoOrcamento,
		Itens:     itens,
	}
	if err := s.db.WithContext(ctx).Create(orcamento).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "produto informado não existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create public quote")
	}

	return &PublicResult{
		Orcamento:           orcamento,
		Cliente:             cliente,
		CodigoAcessoGerado:  generated,
		ClienteProvisionado: provisioned,
	}, nil
}

// resolveCliente implements the public submission matrix: a supplied access
// code must match (no fall-through on a miss), then the email is tried, and
// only then is a new client provisioned with a fresh access code.
func (s *service) resolveCliente(ctx context.Context, input PublicInput) (*models.Cliente, string, bool, error) {
	if codigo := strings.TrimSpace(input.CodigoAcesso); codigo != "" {
		var cliente models.Cliente
		err := s.db.WithContext(ctx).Where("codigo_acesso = ?", codigo).First(&cliente).Error
		if err == nil {
			return &cliente, "", false, nil
		}
		if db.IsNotFound(err) {
			return nil, "", false, pkgerrors.New(pkgerrors.CodeUnauthorized, "código de acesso inválido")
		}
		return nil, "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find client by access code")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var cliente models.Cliente
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&cliente).Error
	if err == nil {
		return &cliente, "", false, nil
	}
	if !db.IsNotFound(err) {
		return nil, "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find client by email")
	}

	codigo, err := security.GenerateAccessCode()
	if err != nil {
		return nil, "", false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate access code")
	}
	novo := &models.Cliente{
		Nome:         strings.TrimSpace(input.Nome),
		Email:        email,
		Telefone:     input.Telefone,
		CodigoAcesso: codigo,
	}
	if err := s.db.WithContext(ctx).Create(novo).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", false, pkgerrors.New(pkgerrors.CodeConflict, "cliente já cadastrado")
		}
		return nil, "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision client")
	}
	return novo, codigo, true, nil
}

func (s *service) List(ctx context.Context) ([]models.Orcamento, error) {
	var orcamentos []models.Orcamento
	err := s.db.WithContext(ctx).
		Preload("Cliente").
		Order("criado_em DESC").
		Find(&orcamentos).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	return orcamentos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Orcamento, error) {
	return s.get(ctx, s.db, id)
}

func (s *service) get(ctx context.Context, conn *gorm.DB, id int64) (*models.Orcamento, error) {
	var orcamento models.Orcamento
	err := conn.WithContext(ctx).
		Preload("Cliente").
		Preload("Itens").
		Preload("Itens.Produto").
		First(&orcamento, id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "orçamento não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find quote")
	}
	return &orcamento, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Orcamento, error) {
	orcamento, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status, err := enums.ParseOrcamentoStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status de orçamento inválido")
		}
		if orcamento.Status.IsTerminal() && status != orcamento.Status {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("orçamento com status %q não pode mudar de status", orcamento.Status))
		}
		orcamento.Status = status
	}
	if input.ValorFrete != nil {
		orcamento.ValorFrete = decimal.NewFromFloat(*input.ValorFrete)
	}
	if input.ValorTotal != nil {
		orcamento.ValorTotal = decimal.NewFromFloat(*input.ValorTotal)
	}
	if input.ChavePagamento != nil {
		orcamento.ChavePagamento = input.ChavePagamento
	}
	if input.ObservacoesAdmin != nil {
		orcamento.ObservacoesAdmin = input.ObservacoesAdmin
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Itens", "Cliente").Save(orcamento).Error; err != nil {
			return err
		}
		for _, item := range input.Itens {
			preco := decimal.NullDecimal{}
			if item.PrecoUnitario != nil {
				preco = decimal.NewNullDecimal(decimal.NewFromFloat(*item.PrecoUnitario))
			}
			result := tx.Model(&models.OrcamentoItem{}).
				Where("id = ? AND orcamento_id = ?", item.ItemID, id).
				Update("preco_unitario", preco)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d não pertence ao orçamento", item.ItemID))
			}
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote")
	}

	return s.Get(ctx, id)
}

// Approve converts the quote into an order inside a single transaction: the
// order row is seeded from the quote's financials and original creation
// timestamp, every line item is copied with its admin price, and the quote is
// marked converted. Partial failure persists nothing.
func (s *service) Approve(ctx context.Context, id int64) (*models.Pedido, error) {
	var pedido *models.Pedido

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orcamento, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if orcamento.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("orçamento com status %q não pode ser aprovado", orcamento.Status))
		}

		novo := &models.Pedido{
			ClienteID:        orcamento.ClienteID,
			OrcamentoID:      orcamento.ID,
			Status:           enums.PedidoEmProducao,
			ValorFrete:       orcamento.ValorFrete,
			ValorTotal:       orcamento.ValorTotal,
			ChavePagamento:   orcamento.ChavePagamento,
			ObservacoesAdmin: orcamento.ObservacoesAdmin,
			CriadoEm:         orcamento.CriadoEm,
		}
		for _, item := range orcamento.Itens {
			preco := decimal.Zero
			if item.PrecoUnitario.Valid {
				preco = item.PrecoUnitario.Decimal
			}
			novo.Itens = append(novo.Itens, models.PedidoItem{
				ProdutoID:     item.ProdutoID,
				Quantidade:    item.Quantidade,
				Observacao:    item.Observacao,
				PrecoUnitario: preco,
			})
		}
		if err := tx.Omit("Cliente").Create(novo).Error; err != nil {
			return err
		}

		err = tx.Model(&models.Orcamento{}).
			Where("id = ?", orcamento.ID).
			Update("status", enums.OrcamentoConvertidoEmPedido).Error
		if err != nil {
			return err
		}

		pedido = novo
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "orçamento já convertido em pedido")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve quote")
	}

	return pedido, nil
}

func (s *service) ListForCliente(ctx context.Context, clienteID int64) ([]models.Orcamento, error) {
	var orcamentos []models.Orcamento
	err := s.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Where("cliente_id = ?", clienteID).
		Order("criado_em DESC").
		Find(&orcamentos).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client quotes")
	}
	return orcamentos, nil
}

func buildItens(inputs []ItemInput) ([]models.OrcamentoItem, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "o orçamento precisa de pelo menos um item")
	}
	itens := make([]models.OrcamentoItem, 0, len(inputs))
	for _, input := range inputs {
		if input.ProdutoID <= 0 || input.Quantidade <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item com produto ou quantidade inválidos")
		}
		itens = append(itens, models.OrcamentoItem{
			ProdutoID:  input.ProdutoID,
			Quantidade: input.Quantidade,
			Observacao: input.Observacao,
		})
	}
	return itens, nil
}
