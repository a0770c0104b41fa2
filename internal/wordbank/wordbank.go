// Package wordbank indexes dictionary words by length and answers pattern queries.
package wordbank

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/pkg/primitives"
)

// Selection decides which of several matching words is placed.
type Selection int

const (
	// SelectUniform picks uniformly at random among all matches.
	SelectUniform Selection = iota
	// SelectMostFrequent always picks the first (highest frequency) match.
	SelectMostFrequent
	// SelectFrequencyWeighted picks at random with probability proportional to frequency.
	SelectFrequencyWeighted
)

func (s Selection) String() string {
	switch s {
	case SelectUniform:
		return "uniform"
	case SelectMostFrequent:
		return "frequent"
	case SelectFrequencyWeighted:
		return "weighted"
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// ParseSelection is the inverse of Selection.String.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "uniform", "":
		return SelectUniform, nil
	case "frequent":
		return SelectMostFrequent, nil
	case "weighted":
		return SelectFrequencyWeighted, nil
	}
	return 0, fmt.Errorf("unknown selection policy %q", s)
}

type IndexParams struct {
	ExcludedWords []string
	MinWordLength *int
	MaxWordLength *int
}

type params struct {
	excludedWords map[string]bool
	minWordLength int
	maxWordLength int
}

func asParams(p IndexParams) params {
	pp := params{
		excludedWords: make(map[string]bool, len(p.ExcludedWords)),
	}
	for _, w := range p.ExcludedWords {
		pp.excludedWords[w] = true
	}

	if p.MinWordLength == nil {
		pp.minWordLength = 3
	} else {
		pp.minWordLength = *p.MinWordLength
	}

	if p.MaxWordLength != nil {
		pp.maxWordLength = *p.MaxWordLength
	}

	return pp
}

// Index maps word length to the words of that length. It is immutable after
// NewIndex and may be shared by concurrent generators.
type Index struct {
	byLength  map[int][]string
	frequency map[string]int
}

// NewIndex builds the length index for d. Words within a length are kept in
// lexical order so that queries are deterministic.
func NewIndex(d dictionary.Dictionary, p IndexParams) *Index {
	params := asParams(p)
	idx := &Index{
		byLength:  make(map[int][]string),
		frequency: make(map[string]int, len(d)),
	}

	for _, word := range d.Words() {
		if len(word) < params.minWordLength {
			continue
		}
		if params.maxWordLength > 0 && len(word) > params.maxWordLength {
			continue
		}
		if params.excludedWords[word] {
			continue
		}
		idx.byLength[len(word)] = append(idx.byLength[len(word)], word)
		idx.frequency[word] = d.Frequency(word)
	}
	return idx
}

// WordsOfLength returns the indexed words of length n in lexical order.
func (idx *Index) WordsOfLength(n int) []string {
	return idx.byLength[n]
}

// Lengths returns the word lengths present in the index, ascending.
func (idx *Index) Lengths() []int {
	lengths := make([]int, 0, len(idx.byLength))
	for n := range idx.byLength {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	return lengths
}

// FindMatches returns every indexed word agreeing with p at its fixed positions,
// ordered by descending frequency (ties in lexical order). The result is empty if
// no word has p's length.
func (idx *Index) FindMatches(p primitives.Pattern) []string {
	return idx.findMatches(p, nil)
}

func (idx *Index) findMatches(p primitives.Pattern, skip map[string]bool) []string {
	var matches []string
	for _, word := range idx.byLength[len(p)] {
		if skip[word] {
			continue
		}
		if p.Matches(word) {
			matches = append(matches, word)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return idx.frequency[matches[i]] > idx.frequency[matches[j]]
	})
	return matches
}

// Bank is the per-puzzle view of an Index. Unless repeats are allowed, a word
// chosen for the puzzle is no longer offered for the rest of that puzzle.
type Bank struct {
	index        *Index
	allowRepeats bool
	selection    Selection
	used         map[string]bool
}

func (idx *Index) NewBank(allowRepeats bool, selection Selection) *Bank {
	return &Bank{
		index:        idx,
		allowRepeats: allowRepeats,
		selection:    selection,
		used:         make(map[string]bool),
	}
}

// FindMatches is Index.FindMatches without the words already used, unless repeats are allowed.
func (b *Bank) FindMatches(p primitives.Pattern) []string {
	if b.allowRepeats {
		return b.index.findMatches(p, nil)
	}
	return b.index.findMatches(p, b.used)
}

// Choose picks one of matches, which must be non-empty and ordered as returned
// by FindMatches, according to the bank's selection policy.
func (b *Bank) Choose(matches []string, rng *rand.Rand) string {
	switch b.selection {
	case SelectMostFrequent:
		return matches[0]
	case SelectFrequencyWeighted:
		total := 0
		for _, m := range matches {
			total += weight(b.index.frequency[m])
		}
		n := rng.IntN(total)
		for _, m := range matches {
			n -= weight(b.index.frequency[m])
			if n < 0 {
				return m
			}
		}
		return matches[len(matches)-1]
	default:
		return matches[rng.IntN(len(matches))]
	}
}

func weight(frequency int) int {
	return max(frequency, 1)
}

// MarkUsed records that word was placed in the puzzle.
func (b *Bank) MarkUsed(word string) {
	b.used[word] = true
}

// Used returns the words placed so far, in lexical order.
func (b *Bank) Used() []string {
	words := make([]string, 0, len(b.used))
	for w := range b.used {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}
