// Package dictionary holds the word → (frequency, definitions) mapping that
// puzzles are built from, and the loaders that produce it.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"crosswarped.com/freeform/pkg/primitives"
)

var (
	ErrInvalidWord   = errors.New("word must contain only the letters a-z")
	ErrNoDefinitions = errors.New("word has no definitions")
)

// Entry is the dictionary record for a single word.
type Entry struct {
	Frequency   int      `json:"frequency"`
	Definitions []string `json:"definitions"`
}

// UnmarshalJSON accepts both the object form and the compact array form
// [frequency, ["definition", ...]].
func (e *Entry) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err == nil {
		if len(parts) != 2 {
			return fmt.Errorf("entry array must have 2 elements, got %d", len(parts))
		}
		if err := json.Unmarshal(parts[0], &e.Frequency); err != nil {
			return fmt.Errorf("frequency: %w", err)
		}
		if err := json.Unmarshal(parts[1], &e.Definitions); err != nil {
			return fmt.Errorf("definitions: %w", err)
		}
		return nil
	}

	type plain Entry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Dictionary maps lowercase words to their entries. It is treated as
// immutable once a puzzle is being built from it.
type Dictionary map[string]Entry

// Contains reports whether word is a key.
func (d Dictionary) Contains(word string) bool {
	_, ok := d[word]
	return ok
}

// Frequency returns the frequency of word, or 0 if absent.
func (d Dictionary) Frequency(word string) int {
	return d[word].Frequency
}

// Definitions returns the definitions of word, or ErrNoDefinitions.
func (d Dictionary) Definitions(word string) ([]string, error) {
	e, ok := d[word]
	if !ok || len(e.Definitions) == 0 {
		return nil, fmt.Errorf("%q: %w", word, ErrNoDefinitions)
	}
	return e.Definitions, nil
}

// Words returns every key in lexical order.
func (d Dictionary) Words() []string {
	words := make([]string, 0, len(d))
	for w := range d {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Undefined returns, in lexical order, the words that have no definitions.
func (d Dictionary) Undefined() []string {
	var out []string
	for w, e := range d {
		if len(e.Definitions) == 0 {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// DropUndefined removes words without definitions and returns how many were removed.
func (d Dictionary) DropUndefined() int {
	n := 0
	for w, e := range d {
		if len(e.Definitions) == 0 {
			delete(d, w)
			n++
		}
	}
	return n
}

var alphabet = primitives.Alphabet()

// Normalize lowercases word and strips diacritics ("Café" → "cafe"). It
// returns ErrInvalidWord if anything other than a-z remains.
func Normalize(word string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(word)))
	if err != nil {
		return "", fmt.Errorf("normalize %q: %w", word, err)
	}
	if s == "" || !alphabet.ContainsAll(s) {
		return "", fmt.Errorf("%q: %w", word, ErrInvalidWord)
	}
	return s, nil
}

// LoadJSON decodes a dictionary in the form {"word": [frequency, ["definition", ...]], ...}.
// Keys are normalized; entries whose key is not a valid word are skipped and
// entries that normalize to the same key are merged.
func LoadJSON(r io.Reader) (Dictionary, error) {
	var raw map[string]Entry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}

	d := make(Dictionary, len(raw))
	for word, e := range raw {
		key, err := Normalize(word)
		if err != nil {
			continue
		}
		d.add(key, e.Frequency, e.Definitions...)
	}
	return d, nil
}

// LoadWordList reads one word per line. A line may be a bare word, "word frequency",
// or "word|definition"; repeated words accumulate definitions and keep the highest
// frequency. Blank lines and lines starting with '#' are ignored, as are words whose
// length is outside [minLength, maxLength] (maxLength <= 0 means no upper bound).
func LoadWordList(r io.Reader, minLength, maxLength int) (Dictionary, error) {
	d := make(Dictionary)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var word, definition string
		frequency := 0
		if w, def, ok := strings.Cut(line, "|"); ok {
			word, definition = w, strings.TrimSpace(def)
		} else if fields := strings.Fields(line); len(fields) == 2 {
			f, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: frequency %q: %w", lineNo, fields[1], err)
			}
			word, frequency = fields[0], f
		} else {
			word = line
		}

		key, err := Normalize(word)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(key) < minLength || (maxLength > 0 && len(key) > maxLength) {
			continue
		}
		if definition != "" {
			d.add(key, frequency, definition)
		} else {
			d.add(key, frequency)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return d, nil
}

func (d Dictionary) add(word string, frequency int, definitions ...string) {
	e := d[word]
	if frequency > e.Frequency {
		e.Frequency = frequency
	}
	for _, def := range definitions {
		if def = strings.TrimSpace(def); def != "" {
			e.Definitions = append(e.Definitions, def)
		}
	}
	d[word] = e
}

// Write encodes d in the compact array form read by LoadJSON.
func (d Dictionary) Write(w io.Writer) error {
	out := make(map[string][2]any, len(d))
	for word, e := range d {
		defs := e.Definitions
		if defs == nil {
			defs = []string{}
		}
		out[word] = [2]any{e.Frequency, defs}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
