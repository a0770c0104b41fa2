package primitives

import "fmt"

// LetterSet efficiently represents a set of characters in a contiguous range.
type LetterSet struct {
	available []bool
	min       rune
	count     int
}

func NewLetterSet(min, max rune) *LetterSet {
	return &LetterSet{
		available: make([]bool, max-min+1),
		min:       min,
		count:     0,
	}
}

// Alphabet returns the full set of letters a word may contain, 'a' through 'z'.
func Alphabet() *LetterSet {
	s := NewLetterSet('a', 'z')
	for r := 'a'; r <= 'z'; r++ {
		s.available[r-s.min] = true
	}
	s.count = len(s.available)
	return s
}

func (c *LetterSet) inRange(r rune) bool {
	return r >= c.min && r <= c.min+rune(len(c.available)-1)
}

// Add adds a character to the set.
func (c *LetterSet) Add(r rune) error {
	if !c.inRange(r) {
		return fmt.Errorf("character %c is out of range", r)
	}

	if c.available[r-c.min] {
		return nil
	}

	c.count++
	c.available[r-c.min] = true
	return nil
}

// Contains checks if a character is in the set. Characters outside the range are never contained.
func (c *LetterSet) Contains(r rune) bool {
	return c.inRange(r) && c.available[r-c.min]
}

// ContainsAll reports whether every character of s is in the set.
func (c *LetterSet) ContainsAll(s string) bool {
	for _, r := range s {
		if !c.Contains(r) {
			return false
		}
	}
	return true
}

// IsFull checks if the set is full.
func (c *LetterSet) IsFull() bool {
	return c.count == len(c.available)
}

// Count returns the number of characters in the set.
func (c *LetterSet) Count() int {
	return c.count
}
