package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// PhoneMaxLen é o tamanho da coluna clients.phone.
const PhoneMaxLen = 50

// NormalizePhone devolve o telefone em E.164 (mantendo o ramal) quando o
// número é válido. Números sem DDI são interpretados na região padrão.
// Qualquer outro texto é guardado como veio, sem espaços nas pontas.
func NormalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if p, err := libphonenumber.Parse(raw, region); err == nil && libphonenumber.IsValidNumber(p) {
		out := libphonenumber.Format(p, libphonenumber.E164)
		if ext := p.GetExtension(); ext != "" {
			out += " ext. " + ext
		}
		if len(out) <= PhoneMaxLen {
			return out
		}
	}
	return truncateRunes(raw, PhoneMaxLen)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
