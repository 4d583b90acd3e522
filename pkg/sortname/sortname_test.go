package sortname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "The at beginning",
			input:    "The Musical Hop",
			expected: "Musical Hop, The",
		},
		{
			name:     "A at beginning",
			input:    "A Perfect Circle",
			expected: "Perfect Circle, A",
		},
		{
			name:     "An at beginning",
			input:    "An Horse",
			expected: "Horse, An",
		},
		{
			name:     "the lowercase",
			input:    "the wild sax band",
			expected: "wild sax band, the",
		},
		{
			name:     "THE uppercase",
			input:    "THE DUELING PIANOS BAR",
			expected: "DUELING PIANOS BAR, THE",
		},
		{
			name:     "no article",
			input:    "Park Square Live Music & Coffee",
			expected: "Park Square Live Music & Coffee",
		},
		{
			name:     "article in middle only",
			input:    "Guns N The Petals",
			expected: "Guns N The Petals",
		},
		{
			name:     "article prefix of a word",
			input:    "Theory of Jazz",
			expected: "Theory of Jazz",
		},
		{
			name:     "collapses whitespace",
			input:    "  The   Wild\tSax Band ",
			expected: "Wild Sax Band, The",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "just The",
			input:    "The",
			expected: "The",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForName(tt.input))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "the musical hop", Fold("The Musical Hop"))
	assert.Equal(t, Fold("éclat ñandú"), Fold("ÉCLAT ÑANDÚ"))
	assert.Equal(t, "strasse", Fold("STRASSE"))
	assert.Equal(t, Fold("Straße"), Fold("STRASSE"))
}
