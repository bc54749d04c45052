package models

import (
	"time"

	"gorm.io/datatypes"
)

// Projeto is a project owned by one responsible Usuario.
type Projeto struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Nome          string          `json:"nome" gorm:"type:varchar(100);not null"`
	Descricao     string          `json:"descricao,omitempty" gorm:"type:text"`
	DataInicio    datatypes.Date  `json:"dataInicio" gorm:"column:data_inicio;not null"`
	DataFinal     *datatypes.Date `json:"dataFinal,omitempty" gorm:"column:data_final"`
	Status        StatusProjeto   `json:"status" gorm:"type:varchar(20);not null"`
	ResponsavelID uint            `json:"responsavelId" gorm:"column:usuario_resp_id;not null"`
	Responsavel   *Usuario        `json:"responsavel,omitempty" gorm:"foreignKey:ResponsavelID;constraint:OnDelete:RESTRICT"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Projeto) TableName() string { return "tb_projetos" }
