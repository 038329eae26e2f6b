package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Technology", "technology"},
		{"Machine Learning & AI", "machine-learning-ai"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Hyphenated", "already-hyphenated"},
		{"C++ / Systems!", "c-systems"},
		{"--edges--", "edges"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.name))
		})
	}
}
