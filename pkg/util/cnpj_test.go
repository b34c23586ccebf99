package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTaxID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Formatted CNPJ",
			input: "11.222.333/0001-81",
			want:  "11222333000181",
		},
		{
			name:  "Already normalized",
			input: "11222333000181",
			want:  "11222333000181",
		},
		{
			name:  "With spaces and letters",
			input: " 11 222 333 / 0001 - 81 abc",
			want:  "11222333000181",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTaxID(tt.input))
		})
	}
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "Valid formatted",
			input: "11.222.333/0001-81",
			want:  true,
		},
		{
			name:  "Valid normalized",
			input: "11222333000181",
			want:  true,
		},
		{
			name:  "Valid real-world style",
			input: "11.444.777/0001-61",
			want:  true,
		},
		{
			name:  "Wrong first check digit",
			input: "11222333000171",
			want:  false,
		},
		{
			name:  "Wrong second check digit",
			input: "11222333000182",
			want:  false,
		},
		{
			name:  "All same digits",
			input: "00000000000000",
			want:  false,
		},
		{
			name:  "All same digits formatted",
			input: "11.111.111/1111-11",
			want:  false,
		},
		{
			name:  "Too short",
			input: "1122233300018",
			want:  false,
		},
		{
			name:  "Too long",
			input: "112223330001811",
			want:  false,
		},
		{
			name:  "Empty",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCNPJ(tt.input))
		})
	}
}
