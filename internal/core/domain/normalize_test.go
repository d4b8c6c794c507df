package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masoo/money/internal/core/domain"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"USD", "usd"},
		{"usd", "usd"},
		{"Eur", "eur"},
		{"  gbp  ", "gbp"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.NormalizeCode(tt.in))
	}
}

func TestNormalizeNumeric(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"int", 840, 840, true},
		{"int64", int64(978), 978, true},
		{"string", "840", 840, true},
		{"string with leading zeros", "008", 8, true},
		{"padded string", " 392 ", 392, true},
		{"whole float", float64(826), 826, true},
		{"fractional float", 8.4, 0, false},
		{"garbage string", "eur", 0, false},
		{"empty string", "", 0, false},
		{"unsupported type", struct{}{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NormalizeNumeric(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
