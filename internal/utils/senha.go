package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	maiusculas = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minusculas = "abcdefghijklmnopqrstuvwxyz"
	digitos    = "0123456789"
	especiais  = "!@#$%^&*"
)

// ValidarSenhaForte verifica a política de senhas: mínimo 8 caracteres, pelo
// menos uma maiúscula, um dígito e um caractere especial de !@#$%^&*.
func ValidarSenhaForte(senha string) bool {
	if len(senha) < 8 {
		return false
	}
	var temMaiuscula, temDigito, temEspecial bool
	for _, r := range senha {
		switch {
		case r >= 'A' && r <= 'Z':
			temMaiuscula = true
		case r >= '0' && r <= '9':
			temDigito = true
		case strings.ContainsRune(especiais, r):
			temEspecial = true
		}
	}
	return temMaiuscula && temDigito && temEspecial
}

// GerarSenhaForte gera uma senha aleatória que satisfaz ValidarSenhaForte.
// Semeia uma maiúscula, um dígito e um especial, completa com o alfabeto
// completo e embaralha. Usa crypto/rand em todas as escolhas: é uma
// credencial, não um valor de teste.
func GerarSenhaForte(tamanho int) (string, error) {
	if tamanho < 8 {
		tamanho = 8
	}

	senha := make([]byte, 0, tamanho)

	for _, conjunto := range []string{maiusculas, digitos, especiais} {
		c, err := escolher(conjunto)
		if err != nil {
			return "", err
		}
		senha = append(senha, c)
	}

	todos := maiusculas + minusculas + digitos + especiais
	for len(senha) < tamanho {
		c, err := escolher(todos)
		if err != nil {
			return "", err
		}
		senha = append(senha, c)
	}

	// Fisher-Yates com fonte criptográfica
	for i := len(senha) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		senha[i], senha[j.Int64()] = senha[j.Int64()], senha[i]
	}

	return string(senha), nil
}

func escolher(conjunto string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(conjunto))))
	if err != nil {
		return 0, err
	}
	return conjunto[n.Int64()], nil
}
