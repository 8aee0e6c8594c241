// Package models reúne os tipos embutidos partilhados pelas entidades
// (guardados em colunas JSONB, não em tabelas próprias).
package models

import (
	"time"

	"github.com/google/uuid"
)

// Nota é uma entrada do histórico de uma venda. A lista de notas é
// append-only: notas nunca são editadas nem removidas.
type Nota struct {
	ID         string    `json:"id"`
	Conteudo   string    `json:"conteudo"`
	Autor      string    `json:"autor"`
	PapelAutor string    `json:"papelAutor"`
	CriadaEm   time.Time `json:"criadaEm"`
}

// NovaNota cria uma nota com identidade e carimbo próprios.
func NovaNota(conteudo, autor, papelAutor string) Nota {
	return Nota{
		ID:         uuid.NewString(),
		Conteudo:   conteudo,
		Autor:      autor,
		PapelAutor: papelAutor,
		CriadaEm:   time.Now().UTC(),
	}
}

// Documento são os metadados de um anexo carregado (o ficheiro em si vive no
// armazenamento externo).
type Documento struct {
	ID           string    `json:"id"`
	Nome         string    `json:"nome"`
	URL          string    `json:"url"`
	CarregadoPor string    `json:"carregadoPor"`
	CarregadoEm  time.Time `json:"carregadoEm"`
}

// NovoDocumento cria os metadados de um anexo.
func NovoDocumento(nome, url, carregadoPor string) Documento {
	return Documento{
		ID:           uuid.NewString(),
		Nome:         nome,
		URL:          url,
		CarregadoPor: carregadoPor,
		CarregadoEm:  time.Now().UTC(),
	}
}
