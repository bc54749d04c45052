package models

import (
	"time"

	"gorm.io/datatypes"
)

// Usuario is a person that can be responsible for projects and be assigned tasks.
// SenhaHash is the bcrypt hash of the senha and SenhaDigest its keyed
// fingerprint, unique across accounts. Neither is ever serialised.
type Usuario struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Nome           string         `json:"nome" gorm:"type:varchar(50);not null"`
	CPF            string         `json:"cpf" gorm:"column:cpf;type:varchar(11);not null;uniqueIndex"`
	Email          string         `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	SenhaHash      string         `json:"-" gorm:"column:senha;type:varchar(60);not null"`
	SenhaDigest    string         `json:"-" gorm:"column:senha_digest;type:varchar(64);not null;uniqueIndex"`
	DataNascimento datatypes.Date `json:"dataNascimento" gorm:"column:data_nascimento;not null"`
	Status         StatusUsuario  `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Usuario) TableName() string {
	return "tb_usuarios"
}

// CanLogin reports whether the account may authenticate.
func (u *Usuario) CanLogin() bool {
	return u.Status == StatusUsuarioAtivo
}
