package models

import "time"

// AdminUser is an admin panel account. The stored credential is an argon2id
// hash. The row with id 1 is the bootstrap account and can never be deleted.
type AdminUser struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	SenhaHash string    `gorm:"column:senha_hash;not null" json:"-"`
	CriadoEm  time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
}

func (AdminUser) TableName() string {
	return "oceano_admin_users"
}
