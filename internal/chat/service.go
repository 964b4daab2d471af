package chat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/internal/navigation"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// Apology is returned whenever the model call or a tool dispatch fails. It
// is a fixed customer-facing message, never a raw error.
const Apology = "Desculpe, estou com dificuldades técnicas no momento. " +
	"Tente novamente em instantes ou fale conosco pelo WhatsApp."

const systemPrompt = "Você é o assistente virtual da Oceano Etiquetas, uma gráfica " +
	"especializada em lacres, adesivos, brindes e impressos. Responda sempre em " +
	"português, de forma curta e cordial. Use a ferramenta check_status_pedido " +
	"quando o cliente perguntar sobre orçamentos ou pedidos, e get_product_list " +
	"quando perguntar sobre o catálogo. Nunca invente status ou produtos."

// HistoryEntry is one prior turn supplied by the portal front end.
type HistoryEntry struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ModelClient is the slice of the OpenAI client the bridge needs; tests
// substitute a fake to script tool round-trips.
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service relays portal chat messages to the model and executes its tool
// calls.
type Service interface {
	Send(ctx context.Context, clienteID int64, message string, history []HistoryEntry) (string, error)
}

type service struct {
	model ModelClient
	cfg   config.OpenAIConfig
	db    *gorm.DB
	nav   *navigation.Builder
	logg  *logger.Logger
}

// NewService builds the chat bridge. A nil model client is allowed when the
// API key is not configured; Send then degrades to the apology.
func NewService(model ModelClient, cfg config.OpenAIConfig, conn *gorm.DB, nav *navigation.Builder, logg *logger.Logger) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	if nav == nil {
		return nil, fmt.Errorf("navigation builder required")
	}
	return &service{model: model, cfg: cfg, db: conn, nav: nav, logg: logg}, nil
}

func (s *service) Send(ctx context.Context, clienteID int64, message string, history []HistoryEntry) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "mensagem é obrigatória")
	}
	if clienteID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente")
	}
	if s.model == nil {
		return Apology, nil
	}

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	maxRounds := s.cfg.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = 4
	}

	for round := 0; round <= maxRounds; round++ {
		resp, err := s.model.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    s.cfg.Model,
			Messages: messages,
			Tools:    toolDefinitions(),
		})
		if err != nil {
			s.warn(ctx, "chat.model.failed", err)
			return Apology, nil
		}
		if len(resp.Choices) == 0 {
			s.warn(ctx, "chat.model.empty", nil)
			return Apology, nil
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			result, err := s.dispatch(ctx, clienteID, call)
			if err != nil {
				s.warn(ctx, "chat.tool.failed", err)
				return Apology, nil
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	s.warn(ctx, "chat.tool_rounds.exhausted", nil)
	return Apology, nil
}

func (s *service) dispatch(ctx context.Context, clienteID int64, call openai.ToolCall) (string, error) {
	switch call.Function.Name {
	case toolCheckStatusPedido:
		return s.checkStatusPedido(ctx, clienteID)
	case toolGetProductList:
		return s.getProductList(ctx)
	default:
		return "", fmt.Errorf("unknown tool %q", call.Function.Name)
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	if err != nil {
		ctx = s.logg.WithField(ctx, "error", err.Error())
	}
	s.logg.Warn(ctx, msg)
}
