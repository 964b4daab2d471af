package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
)

// Orcamento is a quote awaiting admin pricing. Converted quotes are retained
// with the terminal status, never deleted.
type Orcamento struct {
	ID               int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClienteID        int64                 `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	Status           enums.OrcamentoStatus `gorm:"column:status;not null;default:'Aguardando Orçamento'" json:"status"`
	ValorFrete       decimal.Decimal       `gorm:"column:valor_frete;type:numeric(10,2);not null;default:0" json:"valor_frete"`
	ValorTotal       decimal.Decimal       `gorm:"column:valor_total;type:numeric(10,2);not null;default:0" json:"valor_total"`
	ChavePagamento   *string               `gorm:"column:chave_pagamento" json:"chave_pagamento"`
	ObservacoesAdmin *string               `gorm:"column:observacoes_admin" json:"observacoes_admin"`
	Cliente          *Cliente              `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Itens            []OrcamentoItem       `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE" json:"itens"`
	CriadoEm         time.Time             `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
	AtualizadoEm     time.Time             `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

func (Orcamento) TableName() string {
	return "oceano_orcamentos"
}

// OrcamentoItem is one requested product line. The unit price starts empty
// and is filled in by the admin while quoting.
type OrcamentoItem struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrcamentoID   int64               `gorm:"column:orcamento_id;not null;index" json:"orcamento_id"`
	ProdutoID     int64               `gorm:"column:produto_id;not null" json:"produto_id"`
	Quantidade    int                 `gorm:"column:quantidade;not null" json:"quantidade"`
	Observacao    *string             `gorm:"column:observacao" json:"observacao"`
	PrecoUnitario decimal.NullDecimal `gorm:"column:preco_unitario;type:numeric(10,2)" json:"preco_unitario"`
	Produto       *Produto            `gorm:"foreignKey:ProdutoID" json:"produto,omitempty"`
}

func (OrcamentoItem) TableName() string {
	return "oceano_orcamento_itens"
}
