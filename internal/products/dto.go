package products

import (
	"github.com/lib/pq"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
)

// Input is the full writable field set of a product. Updates replace the row
// (the admin panel always submits the complete form).
type Input struct {
	Nome            string   `json:"nome" validate:"required"`
	CodigoProduto   string   `json:"codigo_produto" validate:"required"`
	URLSlug         string   `json:"url_slug" validate:"required"`
	DescricaoCurta  *string  `json:"descricao_curta"`
	DescricaoLonga  *string  `json:"descricao_longa"`
	Especificacoes  *string  `json:"especificacoes"`
	ImagemPrincipal *string  `json:"imagem_principal"`
	ImagemAlt       *string  `json:"imagem_alt"`
	GaleriaImagens  []string `json:"galeria_imagens"`
	Categoria       *string  `json:"categoria"`
	Subcategoria    *string  `json:"subcategoria"`
	MetaTitle       *string  `json:"meta_title"`
	MetaDescription *string  `json:"meta_description"`
	TextoWhatsapp   *string  `json:"texto_whatsapp"`
	EstaAtivo       *bool    `json:"esta_ativo"`
}

func (in Input) apply(produto *models.Produto) {
	produto.Nome = in.Nome
	produto.CodigoProduto = in.CodigoProduto
	produto.URLSlug = in.URLSlug
	produto.DescricaoCurta = in.DescricaoCurta
	produto.DescricaoLonga = in.DescricaoLonga
	produto.Especificacoes = in.Especificacoes
	produto.ImagemPrincipal = in.ImagemPrincipal
	produto.ImagemAlt = in.ImagemAlt
	produto.GaleriaImagens = pq.StringArray(in.GaleriaImagens)
	produto.Categoria = in.Categoria
	produto.Subcategoria = in.Subcategoria
	produto.MetaTitle = in.MetaTitle
	produto.MetaDescription = in.MetaDescription
	produto.TextoWhatsapp = in.TextoWhatsapp
	produto.EstaAtivo = in.EstaAtivo == nil || *in.EstaAtivo
}
