// Package brdoc clasifica documentos fiscales brasileños (CPF / CNPJ) para
// armar la identificación del pagador que exige el gateway.
package brdoc

import "unicode"

// Tipos de identificación aceptados por el gateway.
const (
	TypeCPF  = "CPF"  // persona física: 11 caracteres
	TypeCNPJ = "CNPJ" // persona jurídica: cualquier otra longitud
)

// Type devuelve "CPF" cuando el documento tiene exactamente 11 caracteres,
// "CNPJ" en cualquier otro caso. Se clasifica sobre el valor crudo guardado
// en la Company, sin normalizar puntuación: así lo espera el gateway.
func Type(document string) string {
	if len(document) == 11 {
		return TypeCPF
	}
	return TypeCNPJ
}

// Digits devuelve solo los dígitos del documento, útil para display y
// validaciones ligeras.
func Digits(document string) string {
	out := make([]rune, 0, len(document))
	for _, r := range document {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
