package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1133334444", DigitsOnly("(11) 3333-4444"))
	assert.Equal(t, "11999998888", DigitsOnly("(11) 99999-8888"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestIsValidLandline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Formatted landline", "(11) 3333-4444", true},
		{"Plain landline", "1133334444", true},
		{"Mobile is not landline", "(11) 99999-8888", false},
		{"Too short", "333-4444", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidLandline(tt.input))
		})
	}
}

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Formatted mobile", "(11) 99999-8888", true},
		{"Plain mobile", "11999998888", true},
		{"Landline is not mobile", "(11) 3333-4444", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMobile(tt.input))
		})
	}
}
