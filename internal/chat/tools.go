package chat

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
)

const (
	toolCheckStatusPedido = "check_status_pedido"
	toolGetProductList    = "get_product_list"
)

func toolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolCheckStatusPedido,
				Description: "Consulta os orçamentos e pedidos do cliente autenticado e devolve um resumo de status.",
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolGetProductList,
				Description: "Lista o catálogo de produtos agrupado por categoria e subcategoria.",
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
	}
}

type statusResumo struct {
	Orcamentos []orcamentoResumo `json:"orcamentos"`
	Pedidos    []pedidoResumo    `json:"pedidos"`
}

type orcamentoResumo struct {
	ID         int64   `json:"id"`
	Status     string  `json:"status"`
	ValorTotal float64 `json:"valor_total"`
	CriadoEm   string  `json:"criado_em"`
}

type pedidoResumo struct {
	ID             int64   `json:"id"`
	Status         string  `json:"status"`
	ValorTotal     float64 `json:"valor_total"`
	CodigoRastreio *string `json:"codigo_rastreio"`
	CriadoEm       string  `json:"criado_em"`
}

// checkStatusPedido builds the quotes/orders summary for the authenticated
// client only; the client id comes from the verified token, never from the
// model's arguments.
func (s *service) checkStatusPedido(ctx context.Context, clienteID int64) (string, error) {
	var orcamentos []models.Orcamento
	err := s.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("criado_em DESC").
		Limit(10).
		Find(&orcamentos).Error
	if err != nil {
		return "", fmt.Errorf("list quotes: %w", err)
	}

	var pedidos []models.Pedido
	err = s.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("criado_em DESC").
		Limit(10).
		Find(&pedidos).Error
	if err != nil {
		return "", fmt.Errorf("list orders: %w", err)
	}

	resumo := statusResumo{
		Orcamentos: make([]orcamentoResumo, 0, len(orcamentos)),
		Pedidos:    make([]pedidoResumo, 0, len(pedidos)),
	}
	for _, orcamento := range orcamentos {
		resumo.Orcamentos = append(resumo.Orcamentos, orcamentoResumo{
			ID:         orcamento.ID,
			Status:     orcamento.Status.String(),
			ValorTotal: orcamento.ValorTotal.InexactFloat64(),
			CriadoEm:   orcamento.CriadoEm.Format("02/01/2006"),
		})
	}
	for _, pedido := range pedidos {
		resumo.Pedidos = append(resumo.Pedidos, pedidoResumo{
			ID:             pedido.ID,
			Status:         pedido.Status.String(),
			ValorTotal:     pedido.ValorTotal.InexactFloat64(),
			CodigoRastreio: pedido.CodigoRastreio,
			CriadoEm:       pedido.CriadoEm.Format("02/01/2006"),
		})
	}

	payload, err := json.Marshal(resumo)
	if err != nil {
		return "", fmt.Errorf("marshal status summary: %w", err)
	}
	return string(payload), nil
}

// getProductList reuses the navigation grouping as the catalog snapshot.
func (s *service) getProductList(ctx context.Context) (string, error) {
	menu := s.nav.Build(ctx)
	payload, err := json.Marshal(menu)
	if err != nil {
		return "", fmt.Errorf("marshal product list: %w", err)
	}
	return string(payload), nil
}
