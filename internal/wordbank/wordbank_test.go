package wordbank

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/pkg/primitives"
)

func testDictionary() dictionary.Dictionary {
	return dictionary.Dictionary{
		"cat":   {Frequency: 50, Definitions: []string{"Feline"}},
		"cot":   {Frequency: 10, Definitions: []string{"Small bed"}},
		"cut":   {Frequency: 90, Definitions: []string{"Slice"}},
		"dog":   {Frequency: 70, Definitions: []string{"Canine"}},
		"ox":    {Frequency: 99, Definitions: []string{"Bovine"}},
		"stone": {Frequency: 30, Definitions: []string{"Pebble"}},
		"store": {Frequency: 30, Definitions: []string{"Shop"}},
		"tones": {Frequency: 5, Definitions: []string{"Sounds"}},
	}
}

func intPtr(n int) *int { return &n }

func TestNewIndex(t *testing.T) {
	idx := NewIndex(testDictionary(), IndexParams{})

	assert.Equal(t, []int{3, 5}, idx.Lengths())
	assert.Equal(t, []string{"cat", "cot", "cut", "dog"}, idx.WordsOfLength(3))
	assert.Empty(t, idx.WordsOfLength(2), "words shorter than 3 are not indexed")
}

func TestNewIndex_Params(t *testing.T) {
	idx := NewIndex(testDictionary(), IndexParams{
		ExcludedWords: []string{"cot"},
		MinWordLength: intPtr(2),
		MaxWordLength: intPtr(3),
	})

	assert.Equal(t, []int{2, 3}, idx.Lengths())
	assert.Equal(t, []string{"cat", "cut", "dog"}, idx.WordsOfLength(3))
}

func TestFindMatches(t *testing.T) {
	idx := NewIndex(testDictionary(), IndexParams{})

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"all unknown sorted by frequency", "___", []string{"cut", "dog", "cat", "cot"}},
		{"fixed first letter", "c__", []string{"cut", "cat", "cot"}},
		{"fixed middle letter", "_o_", []string{"dog", "cot"}},
		{"frequency ties keep lexical order", "sto__", []string{"stone", "store"}},
		{"no match", "x__", nil},
		{"no words of this length", "____", nil},
		{"fully fixed", "tones", []string{"tones"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.FindMatches(primitives.ParsePattern(tt.pattern))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBank_Repeats(t *testing.T) {
	idx := NewIndex(testDictionary(), IndexParams{})

	b := idx.NewBank(false, SelectMostFrequent)
	b.MarkUsed("cut")
	assert.Equal(t, []string{"cat", "cot"}, b.FindMatches(primitives.ParsePattern("c__")))
	assert.Equal(t, []string{"cut"}, b.Used())

	// A second bank over the same index starts fresh.
	other := idx.NewBank(false, SelectMostFrequent)
	assert.Equal(t, []string{"cut", "cat", "cot"}, other.FindMatches(primitives.ParsePattern("c__")))

	repeats := idx.NewBank(true, SelectMostFrequent)
	repeats.MarkUsed("cut")
	assert.Equal(t, []string{"cut", "cat", "cot"}, repeats.FindMatches(primitives.ParsePattern("c__")))
}

func TestBank_Choose(t *testing.T) {
	idx := NewIndex(testDictionary(), IndexParams{})
	matches := idx.FindMatches(primitives.ParsePattern("___"))
	rng := rand.New(rand.NewPCG(42, 1024))

	t.Run("most frequent", func(t *testing.T) {
		b := idx.NewBank(false, SelectMostFrequent)
		for range 10 {
			assert.Equal(t, "cut", b.Choose(matches, rng))
		}
	})

	t.Run("uniform", func(t *testing.T) {
		b := idx.NewBank(false, SelectUniform)
		seen := make(map[string]int)
		for range 400 {
			seen[b.Choose(matches, rng)]++
		}
		assert.Len(t, seen, 4)
	})

	t.Run("weighted", func(t *testing.T) {
		b := idx.NewBank(false, SelectFrequencyWeighted)
		seen := make(map[string]int)
		for range 2000 {
			seen[b.Choose(matches, rng)]++
		}
		// cut (90) should be drawn far more often than cot (10).
		assert.Greater(t, seen["cut"], seen["cot"])
		for w := range seen {
			assert.Contains(t, matches, w)
		}
	})

	t.Run("single match", func(t *testing.T) {
		for _, s := range []Selection{SelectUniform, SelectMostFrequent, SelectFrequencyWeighted} {
			b := idx.NewBank(false, s)
			assert.Equal(t, "dog", b.Choose([]string{"dog"}, rng))
		}
	})
}

func TestParseSelection(t *testing.T) {
	for _, s := range []Selection{SelectUniform, SelectMostFrequent, SelectFrequencyWeighted} {
		got, err := ParseSelection(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSelection("best")
	assert.Error(t, err)
}

func BenchmarkFindMatches(b *testing.B) {
	idx := NewIndex(testDictionary(), IndexParams{})
	p := primitives.ParsePattern("c__")
	b.ReportAllocs()
	for b.Loop() {
		idx.FindMatches(p)
	}
}
