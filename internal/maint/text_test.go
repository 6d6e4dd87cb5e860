package maint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
)

// garble reproduces the damage: UTF-8 bytes decoded with a single-byte code page.
func garble(t *testing.T, cm *charmap.Charmap, s string) string {
	t.Helper()
	out, err := cm.NewDecoder().String(s)
	if err != nil {
		t.Fatalf("garble %q: %v", s, err)
	}
	return out
}

func TestRepairTextKnownSequences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Teclado mec├ínico": "Teclado mecánico",
		"Bater├¡a":          "Batería",
		"Cami├│n":           "Camión",
		"Ã©xito":            "éxito",
		"CompaÃ±ero":        "Compañero",
		"Ãºtil":             "útil",
		"50┬ácm":            "50 cm",
		"Perif├®ricos":      "Periféricos",
	}
	for in, want := range cases {
		assert.Equal(t, want, RepairText(in), in)
	}
}

func TestRepairTextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Pantalla táctil de 15 pulgadas", "Año nuevo, canción vieja", "Güiro ÑANDÚ"} {
		assert.Equal(t, s, RepairText(garble(t, charmap.CodePage437, s)), "cp437 %q", s)
		assert.Equal(t, s, RepairText(garble(t, charmap.Windows1252, s)), "1252 %q", s)
	}
}

func TestRepairTextLeavesCleanTextAlone(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		"plain ascii 123",
		"Camión rápido",
		"ñandú",
		"日本語",
		"emoji 🚀 ok",
	} {
		assert.Equal(t, s, RepairText(s), s)
	}
}
