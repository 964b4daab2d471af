package quotes

// ItemInput is one requested product line on a new quote.
type ItemInput struct {
	ProdutoID  int64   `json:"produto_id" validate:"required,gt=0"`
	Quantidade int     `json:"quantidade" validate:"required,gt=0"`
	Observacao *string `json:"observacao"`
}

// CreateInput is a new quote from an authenticated portal customer.
type CreateInput struct {
	Itens []ItemInput `json:"itens" validate:"required,min=1,dive"`
}

// PublicInput is an anonymous storefront submission. The client is resolved
// by access code, then by email, and auto-provisioned as a last resort.
type PublicInput struct {
	Nome         string      `json:"nome" validate:"required"`
	Email        string      `json:"email" validate:"required,email"`
	Telefone     *string     `json:"telefone"`
	CodigoAcesso string      `json:"codigo_acesso"`
	Itens        []ItemInput `json:"itens" validate:"required,min=1,dive"`
}

// ItemPriceInput sets the admin-defined unit price on one quote line.
type ItemPriceInput struct {
	ItemID        int64    `json:"item_id" validate:"required,gt=0"`
	PrecoUnitario *float64 `json:"preco_unitario"`
}

// UpdateInput is the admin quote edit. Nil fields are left untouched.
type UpdateInput struct {
	Status           *string          `json:"status"`
	ValorFrete       *float64         `json:"valor_frete"`
	ValorTotal       *float64         `json:"valor_total"`
	ChavePagamento   *string          `json:"chave_pagamento"`
	ObservacoesAdmin *string          `json:"observacoes_admin"`
	Itens            []ItemPriceInput `json:"itens" validate:"dive"`
}
