package primitives

import "strings"

// Blank marks an empty grid cell and an unknown position in a Pattern.
const Blank = '_'

// Pattern is a candidate word: each position is either a fixed letter or Blank.
type Pattern []rune

// NewBlankPattern returns a pattern of n unknown positions.
func NewBlankPattern(n int) Pattern {
	p := make(Pattern, n)
	for i := range p {
		p[i] = Blank
	}
	return p
}

// ParsePattern converts a string such as "_a__e" into a Pattern.
func ParsePattern(s string) Pattern {
	return Pattern([]rune(s))
}

// Matches reports whether word has the pattern's length and agrees at every fixed position.
func (p Pattern) Matches(word string) bool {
	if len(word) != len(p) {
		return false
	}
	for i, r := range p {
		if r != Blank && rune(word[i]) != r {
			return false
		}
	}
	return true
}

// Known returns the number of fixed positions.
func (p Pattern) Known() int {
	n := 0
	for _, r := range p {
		if r != Blank {
			n++
		}
	}
	return n
}

func (p Pattern) Clone() Pattern {
	c := make(Pattern, len(p))
	copy(c, p)
	return c
}

func (p Pattern) String() string {
	var sb strings.Builder
	for _, r := range p {
		sb.WriteRune(r)
	}
	return sb.String()
}
