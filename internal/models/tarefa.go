package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tarefa is a task inside a Projeto, assigned to a Usuario.
type Tarefa struct {
	ID                     uint                   `json:"id" gorm:"primaryKey"`
	Titulo                 string                 `json:"titulo" gorm:"type:varchar(100);not null"`
	Descricao              string                 `json:"descricao,omitempty" gorm:"type:text"`
	DataCriacao            datatypes.Date         `json:"dataCriacao" gorm:"column:data_criacao;not null"`
	DataConclusao          *datatypes.Date        `json:"dataConclusao,omitempty" gorm:"column:data_conclusao"`
	StatusPrioridadeTarefa StatusPrioridadeTarefa `json:"statusPrioridadeTarefa" gorm:"column:status_prioridade_tarefa;type:varchar(20);not null"`
	StatusTarefa           *StatusTarefa          `json:"statusTarefa,omitempty" gorm:"column:status_tarefa;type:varchar(20)"`
	ProjetoID              uint                   `json:"projetoId" gorm:"column:projeto_id;not null"`
	Projeto                *Projeto               `json:"projeto,omitempty" gorm:"foreignKey:ProjetoID;constraint:OnDelete:RESTRICT"`
	UsuarioID              uint                   `json:"usuarioId" gorm:"column:usuario_id;not null"`
	Usuario                *Usuario               `json:"usuario,omitempty" gorm:"foreignKey:UsuarioID;constraint:OnDelete:RESTRICT"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

func (Tarefa) TableName() string { return "tb_tarefas" }
