package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/types"
)

// Detail is a product plus its parsed specification sheet, ready for the
// detail page template.
type Detail struct {
	Produto        *models.Produto
	Especificacoes map[string]any
}

// Service exposes the public catalog reads.
type Service interface {
	List(ctx context.Context, categoria string) ([]types.RowMap, error)
	Detail(ctx context.Context, slug string) (*Detail, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, categoria string) ([]types.RowMap, error) {
	rows, err := s.repo.ListActiveRows(ctx, categoria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	if rows == nil {
		rows = []types.RowMap{}
	}
	return rows, nil
}

func (s *service) Detail(ctx context.Context, slug string) (*Detail, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
	}

	produto, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}

	return &Detail{
		Produto:        produto,
		Especificacoes: ParseEspecificacoes(produto.Especificacoes),
	}, nil
}

// ParseEspecificacoes reads the semi-structured specification text. Valid
// JSON objects come through parsed; anything else is wrapped verbatim under
// a single "Descrição" key. It never fails.
func ParseEspecificacoes(raw *string) map[string]any {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return map[string]any{}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(*raw), &parsed); err == nil {
		return parsed
	}
	return map[string]any{"Descrição": *raw}
}
