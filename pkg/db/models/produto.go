package models

import (
	"time"

	"github.com/lib/pq"
)

// Produto is a catalog product. The url_slug column carries a legacy mix of
// values with and without the /produtos/ prefix; lookups must try both forms.
type Produto struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nome            string         `gorm:"column:nome;not null" json:"nome"`
	CodigoProduto   string         `gorm:"column:codigo_produto;not null;uniqueIndex" json:"codigo_produto"`
	URLSlug         string         `gorm:"column:url_slug;not null;uniqueIndex" json:"url_slug"`
	DescricaoCurta  *string        `gorm:"column:descricao_curta" json:"descricao_curta"`
	DescricaoLonga  *string        `gorm:"column:descricao_longa" json:"descricao_longa"`
	Especificacoes  *string        `gorm:"column:especificacoes" json:"especificacoes"`
	ImagemPrincipal *string        `gorm:"column:imagem_principal" json:"imagem_principal"`
	ImagemAlt       *string        `gorm:"column:imagem_alt" json:"imagem_alt"`
	GaleriaImagens  pq.StringArray `gorm:"column:galeria_imagens;type:text[]" json:"galeria_imagens"`
	Categoria       *string        `gorm:"column:categoria" json:"categoria"`
	Subcategoria    *string        `gorm:"column:subcategoria" json:"subcategoria"`
	MetaTitle       *string        `gorm:"column:meta_title" json:"meta_title"`
	MetaDescription *string        `gorm:"column:meta_description" json:"meta_description"`
	TextoWhatsapp   *string        `gorm:"column:texto_whatsapp" json:"texto_whatsapp"`
	EstaAtivo       bool           `gorm:"column:esta_ativo;not null;default:true" json:"esta_ativo"`
	CriadoEm        time.Time      `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
	AtualizadoEm    time.Time      `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

func (Produto) TableName() string {
	return "oceano_produtos"
}
