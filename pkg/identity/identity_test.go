package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "MATEMATICAS", Normalize(" Matemáticas "))
	assert.Equal(t, "GOMEZ PEREZ", Normalize("Gómez Pérez"))
	assert.Equal(t, "NUNEZ", Normalize("Núñez"))
	assert.Equal(t, "", Normalize("   "))
}

func TestCapitalizeName(t *testing.T) {
	assert.Equal(t, "Ana María", CapitalizeName("ana  maría"))
	assert.Equal(t, "Gómez Pérez", CapitalizeName("GÓMEZ PÉREZ"))
	assert.Equal(t, "", CapitalizeName("  "))
}

func TestDeriveQRID(t *testing.T) {
	assert.Equal(t, "AGP7", DeriveQRID("Ana", "Gómez Pérez", 7))
	assert.Equal(t, "JS12", DeriveQRID("john", "smith", 12))
	assert.Equal(t, "MN3", DeriveQRID("María", "Núñez", 3))
}

func TestDeriveQRIDDeterministic(t *testing.T) {
	a := DeriveQRID("Ana", "Gómez Pérez", 7)
	b := DeriveQRID("Ana", "Gómez Pérez", 7)
	assert.Equal(t, a, b)
}

func TestDeriveQRIDUniquePerID(t *testing.T) {
	a := DeriveQRID("Ana", "Gómez Pérez", 7)
	b := DeriveQRID("Ana", "Gómez Pérez", 8)
	assert.NotEqual(t, a, b)
}

func TestDeriveQRIDDegenerateNames(t *testing.T) {
	assert.Equal(t, "42", DeriveQRID("", "", 42))
	assert.Equal(t, "A42", DeriveQRID("Ana", "", 42))
	assert.Equal(t, "G42", DeriveQRID("", "Gómez", 42))
}
