package wordcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopK(t *testing.T) {
	counts := Counts{"I": 1, "am": 1, "a": 3, "cat": 2, "dog": 1, "is": 1}

	tests := []struct {
		name string
		k    int
		want []Entry
	}{
		{"zero", 0, []Entry{}},
		{"negative", -1, []Entry{}},
		{"top3", 3, []Entry{{"a", 3}, {"cat", 2}, {"I", 1}}},
		{"all", 10, []Entry{{"a", 3}, {"cat", 2}, {"I", 1}, {"am", 1}, {"dog", 1}, {"is", 1}}},
		{"exact", 6, []Entry{{"a", 3}, {"cat", 2}, {"I", 1}, {"am", 1}, {"dog", 1}, {"is", 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopK(counts, tt.k))
		})
	}
}

func TestTopK_Empty(t *testing.T) {
	for _, k := range []int{0, 1, 5} {
		got := TopK(Counts{}, k)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Empty(t, TopK(nil, k))
	}
}

func TestTopK_TieBreakIsDeterministic(t *testing.T) {
	counts := make(Counts)
	for _, w := range []string{"zeta", "beta", "Alpha", "alpha", "gamma", "delta"} {
		counts[w] = 7
	}
	want := []Entry{{"Alpha", 7}, {"alpha", 7}, {"beta", 7}}
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, TopK(counts, 3))
	}
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "Word: 'the' with total 42 occurrences!", Entry{Word: "the", Count: 42}.String())
}
