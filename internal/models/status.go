package models

// StatusUsuario is the account state of a Usuario.
type StatusUsuario string

const (
	StatusUsuarioAtivo     StatusUsuario = "ATIVO"
	StatusUsuarioInativo   StatusUsuario = "INATIVO"
	StatusUsuarioBloqueado StatusUsuario = "BLOQUEADO"
)

// StatusProjeto is the progress state of a Projeto.
type StatusProjeto string

const (
	StatusProjetoNaoIniciado StatusProjeto = "NAO_INICIADO"
	StatusProjetoEmAndamento StatusProjeto = "EM_ANDAMENTO"
	StatusProjetoPausado     StatusProjeto = "PAUSADO"
	StatusProjetoConcluido   StatusProjeto = "CONCLUIDO"
	StatusProjetoCancelado   StatusProjeto = "CANCELADO"
)

// StatusTarefa is the progress state of a Tarefa.
type StatusTarefa string

const (
	StatusTarefaPendente    StatusTarefa = "PENDENTE"
	StatusTarefaEmAndamento StatusTarefa = "EM_ANDAMENTO"
	StatusTarefaConcluida   StatusTarefa = "CONCLUIDA"
	StatusTarefaCancelada   StatusTarefa = "CANCELADA"
)

// StatusPrioridadeTarefa is the priority of a Tarefa.
type StatusPrioridadeTarefa string

const (
	PrioridadeBaixa   StatusPrioridadeTarefa = "BAIXA"
	PrioridadeMedia   StatusPrioridadeTarefa = "MEDIA"
	PrioridadeAlta    StatusPrioridadeTarefa = "ALTA"
	PrioridadeUrgente StatusPrioridadeTarefa = "URGENTE"
)

// Enum is implemented by every status type so validation and the schema
// CHECK constraints can share one vocabulary.
type Enum interface {
	IsValid() bool
	String() string
}

func (StatusUsuario) Values() []string {
	return []string{string(StatusUsuarioAtivo), string(StatusUsuarioInativo), string(StatusUsuarioBloqueado)}
}

func (s StatusUsuario) IsValid() bool {
	return contains(s.Values(), string(s))
}

func (s StatusUsuario) String() string {
	return string(s)
}

func (StatusProjeto) Values() []string {
	return []string{
		string(StatusProjetoNaoIniciado),
		string(StatusProjetoEmAndamento),
		string(StatusProjetoPausado),
		string(StatusProjetoConcluido),
		string(StatusProjetoCancelado),
	}
}

func (s StatusProjeto) IsValid() bool {
	return contains(s.Values(), string(s))
}

func (s StatusProjeto) String() string {
	return string(s)
}

func (StatusTarefa) Values() []string {
	return []string{
		string(StatusTarefaPendente),
		string(StatusTarefaEmAndamento),
		string(StatusTarefaConcluida),
		string(StatusTarefaCancelada),
	}
}

func (s StatusTarefa) IsValid() bool {
	return contains(s.Values(), string(s))
}

func (s StatusTarefa) String() string {
	return string(s)
}

func (StatusPrioridadeTarefa) Values() []string {
	return []string{string(PrioridadeBaixa), string(PrioridadeMedia), string(PrioridadeAlta), string(PrioridadeUrgente)}
}

func (s StatusPrioridadeTarefa) IsValid() bool {
	return contains(s.Values(), string(s))
}

func (s StatusPrioridadeTarefa) String() string {
	return string(s)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
