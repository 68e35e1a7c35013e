package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "spaced with plus", in: "+7 999 123-45-67", want: "+79991234567", ok: true},
		{name: "leading eight", in: "89991234567", want: "+79991234567", ok: true},
		{name: "leading seven", in: "79991234567", want: "+79991234567", ok: true},
		{name: "ten digits", in: "9991234567", want: "+79991234567", ok: true},
		{name: "parentheses", in: "8 (999) 123-45-67", want: "+79991234567", ok: true},
		{name: "surrounding whitespace", in: "  +79991234567\n", want: "+79991234567", ok: true},
		{name: "letters", in: "abc123"},
		{name: "empty", in: ""},
		{name: "plus only", in: "+"},
		{name: "eleven digits wrong lead", in: "59991234567"},
		{name: "too short", in: "123456789"},
		{name: "too long", in: "799912345678"},
		{name: "double plus", in: "++79991234567"},
		{name: "non ascii digits", in: "٩٩٩١٢٣٤٥٦٧"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, in := range []string{"+7 999 123-45-67", "89991234567", "9991234567", "+79001112233"} {
		first, ok := Normalize(in)
		require.True(t, ok, in)
		second, ok := Normalize(first)
		require.True(t, ok, first)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeTenAndElevenDigitForms(t *testing.T) {
	d := "9001234567"
	for _, in := range []string{d, "7" + d, "8" + d, "+7" + d, "+8" + d} {
		got, ok := Normalize(in)
		require.True(t, ok, in)
		assert.Equal(t, "+7"+d, got, in)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+7******4567", Mask("+79991234567"))
	assert.Equal(t, "+7123", Mask("+7123"))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "+7******4567", Redact("+7 999 123-45-67"))
	assert.Equal(t, "мой номер +7******4567, спасибо", Redact("мой номер 89991234567, спасибо"))
	assert.Equal(t, "order 12345", Redact("order 12345"))
	assert.Equal(t, "family photos", Redact("family photos"))
}
