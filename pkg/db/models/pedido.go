package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
)

// Pedido is an approved quote being tracked through production and shipping.
// Rows are only ever created by the quote conversion transaction; CriadoEm is
// seeded from the source quote's creation timestamp.
type Pedido struct {
	ID               int64              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClienteID        int64              `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	OrcamentoID      int64              `gorm:"column:orcamento_id;not null;uniqueIndex" json:"orcamento_id"`
	Status           enums.PedidoStatus `gorm:"column:status;not null;default:'Em Produção'" json:"status"`
	ValorFrete       decimal.Decimal    `gorm:"column:valor_frete;type:numeric(10,2);not null;default:0" json:"valor_frete"`
	ValorTotal       decimal.Decimal    `gorm:"column:valor_total;type:numeric(10,2);not null;default:0" json:"valor_total"`
	ChavePagamento   *string            `gorm:"column:chave_pagamento" json:"chave_pagamento"`
	ObservacoesAdmin *string            `gorm:"column:observacoes_admin" json:"observacoes_admin"`
	CodigoRastreio   *string            `gorm:"column:codigo_rastreio" json:"codigo_rastreio"`
	Cliente          *Cliente           `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Itens            []PedidoItem       `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"itens"`
	CriadoEm         time.Time          `gorm:"column:criado_em" json:"criado_em"`
	AtualizadoEm     time.Time          `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

func (Pedido) TableName() string {
	return "oceano_pedidos"
}

// PedidoItem mirrors the source quote line item with the admin-defined price
// frozen at conversion time.
type PedidoItem struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PedidoID      int64           `gorm:"column:pedido_id;not null;index" json:"pedido_id"`
	ProdutoID     int64           `gorm:"column:produto_id;not null" json:"produto_id"`
	Quantidade    int             `gorm:"column:quantidade;not null" json:"quantidade"`
	Observacao    *string         `gorm:"column:observacao" json:"observacao"`
	PrecoUnitario decimal.Decimal `gorm:"column:preco_unitario;type:numeric(10,2);not null;default:0" json:"preco_unitario"`
	Produto       *Produto        `gorm:"foreignKey:ProdutoID" json:"produto,omitempty"`
}

func (PedidoItem) TableName() string {
	return "oceano_pedido_itens"
}
