package venda

import "github.com/MPGrupo/api-parceiros/internal/auth"

// Estados possíveis de uma venda. O fluxo normal é
// Para registo -> Pendente -> {Concluido, Ativo, Cancelado}; as passagens
// entre os estados finais ficam ao critério do back-office, o sistema só
// garante o conjunto de valores.
const (
	StatusParaRegisto = "Para registo"
	StatusPendente    = "Pendente"
	StatusConcluido   = "Concluido"
	StatusAtivo       = "Ativo"
	StatusCancelado   = "Cancelado"
)

// StatusValido indica se o valor pertence ao conjunto de estados.
func StatusValido(s string) bool {
	switch s {
	case StatusParaRegisto, StatusPendente, StatusConcluido, StatusAtivo, StatusCancelado:
		return true
	}
	return false
}

// StatusInicial determina o estado de uma venda acabada de criar: vendas
// registadas pelo lado do parceiro entram em "Para registo"; as da equipa
// interna entram já em "Pendente".
func StatusInicial(papelCriador string) string {
	if auth.PapelDeParceiro(papelCriador) {
		return StatusParaRegisto
	}
	return StatusPendente
}

// EventoNotificacao descreve uma mudança de estado que deve gerar alerta.
type EventoNotificacao struct {
	De   string
	Para string
}

// Transicao valida a passagem de estado e devolve o evento de notificação,
// se houver. Só a entrada em Concluido ou Ativo dispara notificação. O
// segundo retorno é false quando o estado de destino não é reconhecido.
func Transicao(antigo, novo string) (*EventoNotificacao, bool) {
	if !StatusValido(novo) {
		return nil, false
	}
	if antigo == novo {
		return nil, true
	}
	if novo == StatusConcluido || novo == StatusAtivo {
		return &EventoNotificacao{De: antigo, Para: novo}, true
	}
	return nil, true
}
