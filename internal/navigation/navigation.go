package navigation

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// Item is one navigation entry pointing at a product detail page.
type Item struct {
	Nome string `json:"nome"`
	Link string `json:"link"`
}

// Subcategoria groups items under a subcategory label.
type Subcategoria struct {
	Nome  string `json:"nome"`
	Itens []Item `json:"itens"`
}

// Categoria is one top-level menu entry.
type Categoria struct {
	Nome          string         `json:"nome"`
	Subcategorias []Subcategoria `json:"subcategorias"`
}

// Menu is the full ordered navigation structure rendered on every page.
type Menu []Categoria

// seedCategorias fixes the display order of the known storefront categories;
// categories found in data but absent here are appended in first-seen order.
var seedCategorias = []string{"Lacres", "Adesivos", "Brindes", "Impressos"}

// Builder assembles the menu from active categorized products.
type Builder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewBuilder returns a navigation builder bound to the provided DB.
func NewBuilder(db *gorm.DB, logg *logger.Logger) *Builder {
	return &Builder{db: db, logg: logg}
}

// Build queries active products with a category and slug set and groups them
// into category → subcategory → items. It fails open: any query error yields
// an empty menu so page rendering never breaks on a navigation problem.
func (b *Builder) Build(ctx context.Context) Menu {
	var produtos []models.Produto
	err := b.db.WithContext(ctx).
		Select("nome", "url_slug", "categoria", "subcategoria").
		Where("esta_ativo = ?", true).
		Where("categoria IS NOT NULL AND categoria <> ''").
		Where("url_slug IS NOT NULL AND url_slug <> ''").
		Order("categoria ASC, subcategoria ASC, nome ASC").
		Find(&produtos).Error
	if err != nil {
		if b.logg != nil {
			b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "navigation.build.failed")
		}
		return Menu{}
	}
	return buildMenu(produtos)
}

func buildMenu(produtos []models.Produto) Menu {
	type subKey struct {
		categoria    string
		subcategoria string
	}

	categoriaOrder := make([]string, 0, len(seedCategorias))
	categoriaOrder = append(categoriaOrder, seedCategorias...)
	seenCategoria := make(map[string]bool, len(seedCategorias))
	for _, nome := range seedCategorias {
		seenCategoria[nome] = true
	}

	subOrder := make(map[string][]string)
	itens := make(map[subKey][]Item)

	for _, produto := range produtos {
		categoria := strings.TrimSpace(deref(produto.Categoria))
		if categoria == "" {
			continue
		}
		if !seenCategoria[categoria] {
			seenCategoria[categoria] = true
			categoriaOrder = append(categoriaOrder, categoria)
		}

		subcategoria := strings.TrimSpace(deref(produto.Subcategoria))
		if subcategoria == "" {
			subcategoria = "Geral"
		}
		key := subKey{categoria: categoria, subcategoria: subcategoria}
		if _, ok := itens[key]; !ok {
			subOrder[categoria] = append(subOrder[categoria], subcategoria)
		}
		itens[key] = append(itens[key], Item{
			Nome: produto.Nome,
			Link: NormalizeLink(produto.URLSlug),
		})
	}

	menu := make(Menu, 0, len(categoriaOrder))
	for _, categoria := range categoriaOrder {
		subs := subOrder[categoria]
		if len(subs) == 0 {
			continue
		}
		entry := Categoria{Nome: categoria, Subcategorias: make([]Subcategoria, 0, len(subs))}
		for _, subcategoria := range subs {
			entry.Subcategorias = append(entry.Subcategorias, Subcategoria{
				Nome:  subcategoria,
				Itens: itens[subKey{categoria: categoria, subcategoria: subcategoria}],
			})
		}
		menu = append(menu, entry)
	}
	return menu
}

// NormalizeLink strips any stored /produtos/ prefix and re-applies it, so
// links are well-formed no matter how the slug was written.
func NormalizeLink(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = strings.TrimPrefix(slug, "/produtos/")
	slug = strings.TrimPrefix(slug, "/")
	return "/produtos/" + slug
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
