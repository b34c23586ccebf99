package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReviewComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantOK  bool
	}{
		{
			name:    "Valid comment",
			comment: "Atendimento excelente, recomendo muito",
			wantOK:  true,
		},
		{
			name:    "Two words minimum",
			comment: "Muito bom",
			wantOK:  true,
		},
		{
			name:    "Single word",
			comment: "Ótimo",
			wantOK:  false,
		},
		{
			name:    "Empty",
			comment: "",
			wantOK:  false,
		},
		{
			name:    "Only whitespace",
			comment: "   ",
			wantOK:  false,
		},
		{
			name:    "One-character word",
			comment: "Muito a bom",
			wantOK:  false,
		},
		{
			name:    "Two one-character words",
			comment: "a b",
			wantOK:  false,
		},
		{
			name:    "Denylisted term",
			comment: "Lugar golpista demais",
			wantOK:  false,
		},
		{
			name:    "Denylisted term uppercase",
			comment: "Lugar GOLPISTA demais",
			wantOK:  false,
		},
		{
			name:    "Triple repeated letter",
			comment: "Muito bommm mesmo",
			wantOK:  false,
		},
		{
			name:    "Triple repeated punctuation",
			comment: "Adorei demais!!!",
			wantOK:  false,
		},
		{
			name:    "Double letter is fine",
			comment: "Carro bonito, ótima assistência",
			wantOK:  true,
		},
		{
			name:    "Accented words count by rune",
			comment: "Pão ótimo",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateReviewComment(tt.comment)
			if tt.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestHasRepeatedRun(t *testing.T) {
	assert.True(t, hasRepeatedRun("aaa", 3))
	assert.True(t, hasRepeatedRun("abcccd", 3))
	assert.False(t, hasRepeatedRun("aabb", 3))
	assert.False(t, hasRepeatedRun("", 3))
	assert.True(t, hasRepeatedRun("ééé", 3))
}
