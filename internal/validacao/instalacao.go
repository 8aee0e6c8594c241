package validacao

import (
	"regexp"
	"strings"
)

var (
	regexCPE = regexp.MustCompile(`^PT0002\d{12}[A-Z]{2}$`)
	regexCUI = regexp.MustCompile(`^PT16\d{15}[A-Z]{2}$`)
)

// ValidarCPE valida o código de ponto de entrega (PT0002 + 12 dígitos + 2 letras).
// A comparação ignora maiúsculas/minúsculas; o valor persistido deve ser o de
// NormalizarCodigo.
func ValidarCPE(cpe string) bool {
	return regexCPE.MatchString(NormalizarCodigo(cpe))
}

// ValidarCUI valida o código universal de instalação (PT16 + 15 dígitos + 2 letras).
func ValidarCUI(cui string) bool {
	return regexCUI.MatchString(NormalizarCodigo(cui))
}

// NormalizarCodigo devolve a forma canónica (maiúsculas, sem espaços laterais)
// de um CPE/CUI para persistência.
func NormalizarCodigo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
