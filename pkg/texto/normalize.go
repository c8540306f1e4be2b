package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SemAcentos devolve s sem marcas diacríticas e em minúsculas,
// para comparação de busca insensível a acento.
// "José" -> "jose", "Conceição" -> "conceicao".
// A cadeia de transformação é criada por chamada: Transformers têm estado
// interno e não podem ser compartilhados entre goroutines.
func SemAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Contem informa se texto contém termo, ignorando acentos e maiúsculas.
// Termo vazio sempre casa.
func Contem(texto, termo string) bool {
	if termo == "" {
		return true
	}
	return strings.Contains(SemAcentos(texto), SemAcentos(termo))
}
