package models

import "time"

// Cliente is a customer. The access code is the portal login credential, so
// it never changes after provisioning.
type Cliente struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nome         string    `gorm:"column:nome;not null" json:"nome"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Telefone     *string   `gorm:"column:telefone" json:"telefone"`
	CPFCNPJ      *string   `gorm:"column:cpf_cnpj;uniqueIndex" json:"cpf_cnpj"`
	CodigoAcesso string    `gorm:"column:codigo_acesso;not null;uniqueIndex" json:"codigo_acesso"`
	CriadoEm     time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

func (Cliente) TableName() string {
	return "oceano_clientes"
}
