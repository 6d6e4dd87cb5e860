package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Teclado Mecánico":      "teclado-mecanico",
		"  Ñandú  & Cía. 2024 ": "nandu-cia-2024",
		"Café---con---leche!!!": "cafe-con-leche",
		"":                      "producto",
		"¿¡!?":                  "producto",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
	assert.LessOrEqual(t, len(Slugify(strings.Repeat("ab ", 200))), maxSlugLen)
}

func TestGeneratedSlug(t *testing.T) {
	t.Parallel()

	id := "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"
	assert.Equal(t, "mouse-4e7d4e5c", generatedSlug("Mouse", id))
	assert.Equal(t, "producto-4e7d4e5c", generatedSlug("手机", id))

	long := generatedSlug(strings.Repeat("ab ", 200), id)
	assert.LessOrEqual(t, len(long), maxSlugLen)
	assert.True(t, strings.HasSuffix(long, "-4e7d4e5c"), long)
}

func TestNormalizeSpecs(t *testing.T) {
	t.Parallel()

	assert.JSONEq(t, `{"color":"negro"}`, string(NormalizeSpecs([]byte(` {"color":"negro"} `))))
	for _, bad := range []string{"", "{", "[1,2]", "null", "\"x\""} {
		assert.Equal(t, "{}", string(NormalizeSpecs([]byte(bad))), bad)
	}
}
