package validator

import (
	"strings"
	"unicode/utf8"
)

// Termos bloqueados em comentários de avaliação (comparação sem
// distinção de maiúsculas). A lista é curta de propósito: o objetivo é
// barrar abuso óbvio, não substituir a moderação.
var reviewDenylist = []string{
	"merda",
	"porra",
	"caralho",
	"desgraça",
	"desgraca",
	"lixo de",
	"golpista",
	"vagabundo",
}

// ValidateReviewComment aplica as regras de conteúdo do comentário:
// pelo menos 2 palavras com 2+ caracteres cada, nenhum termo bloqueado
// e nenhum caractere repetido 3+ vezes seguidas. Retorna a mensagem do
// primeiro problema encontrado, ou "" quando o comentário é aceito.
func ValidateReviewComment(comment string) string {
	tokens := strings.Fields(comment)
	if len(tokens) < 2 {
		return "O comentário deve ter pelo menos 2 palavras"
	}

	for _, token := range tokens {
		if utf8.RuneCountInString(token) < 2 {
			return "Cada palavra do comentário deve ter pelo menos 2 caracteres"
		}
	}

	lower := strings.ToLower(comment)
	for _, term := range reviewDenylist {
		if strings.Contains(lower, term) {
			return "O comentário contém termos não permitidos"
		}
	}

	if hasRepeatedRun(comment, 3) {
		return "O comentário não pode repetir o mesmo caractere 3 vezes seguidas"
	}

	return ""
}

// hasRepeatedRun detecta n ou mais ocorrências consecutivas do mesmo caractere
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
			if count >= n {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}
