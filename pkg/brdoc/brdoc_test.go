package brdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conversahub/billing-api/pkg/brdoc"
)

// CPF: exactamente 11 caracteres. Cualquier otra longitud → CNPJ.
func TestType_CPFConOnceCaracteres(t *testing.T) {
	assert.Equal(t, brdoc.TypeCPF, brdoc.Type("12345678901"))
}

func TestType_CNPJConCatorceCaracteres(t *testing.T) {
	assert.Equal(t, brdoc.TypeCNPJ, brdoc.Type("12345678000190"))
}

func TestType_CPFPuntuadoNoCuentaComoCPF(t *testing.T) {
	// 14 caracteres con puntuación: se clasifica sobre el valor crudo.
	assert.Equal(t, brdoc.TypeCNPJ, brdoc.Type("123.456.789-01"))
}

func TestType_VacioEsCNPJ(t *testing.T) {
	assert.Equal(t, brdoc.TypeCNPJ, brdoc.Type(""))
}

func TestDigits_DescartaPuntuacion(t *testing.T) {
	assert.Equal(t, "12345678901", brdoc.Digits("123.456.789-01"))
}
