package wordcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeep(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"a", true},
		{"I", true},
		{"A", false},
		{"i", false},
		{"x", false},
		{"", false},
		{"am", true},
		{"of", true},
		{"é", false},
		{"né", true},
		{"7", false},
		{"42", true},
		{"😀", false},
		{"😀😀", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Keep(tt.word), "Keep(%q)", tt.word)
	}
}
