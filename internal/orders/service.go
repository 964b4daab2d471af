package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ItemPriceInput rewrites the admin-defined unit price on one order line.
type ItemPriceInput struct {
	ItemID        int64   `json:"item_id" validate:"required,gt=0"`
	PrecoUnitario float64 `json:"preco_unitario" validate:"gte=0"`
}

// UpdateInput is the admin order edit. Nil fields are left untouched.
type UpdateInput struct {
	Status           *string          `json:"status"`
	ValorFrete       *float64         `json:"valor_frete"`
	ValorTotal       *float64         `json:"valor_total"`
	ChavePagamento   *string          `json:"chave_pagamento"`
	ObservacoesAdmin *string          `json:"observacoes_admin"`
	CodigoRastreio   *string          `json:"codigo_rastreio"`
	Itens            []ItemPriceInput `json:"itens" validate:"dive"`
}

// Service manages orders after quote conversion. Orders are never created
// here; only the quote approval transaction inserts them.
type Service interface {
	List(ctx context.Context) ([]models.Pedido, error)
	Get(ctx context.Context, id int64) (*models.Pedido, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Pedido, error)
	ListForCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error)
}

type service struct {
	db *gorm.DB
	tx txRunner
}

// NewService builds the order service.
func NewService(conn *gorm.DB, tx txRunner) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{db: conn, tx: tx}, nil
}

func (s *service) List(ctx context.Context) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := s.db.WithContext(ctx).
		Preload("Cliente").
		Order("criado_em DESC").
		Find(&pedidos).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return pedidos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Pedido, error) {
	var pedido models.Pedido
	err := s.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Itens").
		Preload("Itens.Produto").
		First(&pedido, id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pedido não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return &pedido, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Pedido, error) {
	pedido, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status, err := enums.ParsePedidoStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status de pedido inválido")
		}
		if pedido.Status.IsTerminal() && status != pedido.Status {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("pedido com status %q não pode mudar de status", pedido.Status))
		}
		pedido.Status = status
	}
	if input.ValorFrete != nil {
		pedido.ValorFrete = decimal.NewFromFloat(*input.ValorFrete)
	}
	if input.ValorTotal != nil {
		pedido.ValorTotal = decimal.NewFromFloat(*input.ValorTotal)
	}
	if input.ChavePagamento != nil {
		pedido.ChavePagamento = input.ChavePagamento
	}
	if input.ObservacoesAdmin != nil {
		pedido.ObservacoesAdmin = input.ObservacoesAdmin
	}
	if input.CodigoRastreio != nil {
		pedido.CodigoRastreio = input.CodigoRastreio
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Itens", "Cliente").Save(pedido).Error; err != nil {
			return err
		}
		for _, item := range input.Itens {
			result := tx.Model(&models.PedidoItem{}).
				Where("id = ? AND pedido_id = ?", item.ItemID, id).
				Update("preco_unitario", decimal.NewFromFloat(item.PrecoUnitario))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d não pertence ao pedido", item.ItemID))
			}
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	return s.Get(ctx, id)
}

func (s *service) ListForCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := s.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Where("cliente_id = ?", clienteID).
		Order("criado_em DESC").
		Find(&pedidos).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client orders")
	}
	return pedidos, nil
}
