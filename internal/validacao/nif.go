package validacao

import "strings"

// pesos aplicados aos 8 primeiros dígitos no cálculo do dígito de controlo
var pesosNIF = [8]int{9, 8, 7, 6, 5, 4, 3, 2}

// ValidarNIF valida um NIF português. Aceita o valor com pontuação ou espaços;
// apenas os dígitos são considerados. NIFs de entidades coletivas (iniciados
// por 5) exigem dígito de controlo válido; os restantes apenas o formato de
// 9 dígitos.
func ValidarNIF(valor string) bool {
	limpo := apenasDigitos(valor)
	if len(limpo) != 9 {
		return false
	}
	if limpo[0] == '5' {
		return validarDigitoControloNIF(limpo)
	}
	return true
}

// validarDigitoControloNIF aplica o cálculo de módulo 11 sobre os 8 primeiros
// dígitos e compara com o nono.
func validarDigitoControloNIF(nif string) bool {
	if len(nif) != 9 {
		return false
	}
	total := 0
	for i, peso := range pesosNIF {
		total += int(nif[i]-'0') * peso
	}
	controlo := 11 - (total % 11)
	if controlo >= 10 {
		controlo = 0
	}
	return controlo == int(nif[8]-'0')
}

func apenasDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
