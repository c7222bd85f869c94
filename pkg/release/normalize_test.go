package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Office", "office"},
		{"A Discovery of Witches", "discovery of witches"},
		{"Law & Order", "law and order"},
		{"Pokémon: The Series", "pokemon series"},
		{"Spider-Man: The Animated Series", "spider man animated series"},
		{"Rocky II", "rocky 2"},
		{"Doctor Who (2005)", "doctor who"},
		{"The Office (US)", "office us"},
		{"Grey's Anatomy", "greys anatomy"},
		{"Mr. Robot", "mr robot"},
		{"  Extra   Spaces  ", "extra spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}

func TestNormalizeRomanNumerals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"star trek ii", "star trek 2"},
		{"Star Trek IV", "Star Trek 4"},
		{"i robot", "i robot"},
		{"spy x family", "spy x family"},
		{"vii days", "vii days"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRomanNumerals(tt.input))
		})
	}
}
