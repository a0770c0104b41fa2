package primitives

import "fmt"

// Orientation is an enum representing the direction a word runs in a grid, either 'Across' or 'Down'.
type Orientation int

const (
	Across Orientation = iota
	Down
)

// Opposite returns the perpendicular orientation.
func (o Orientation) Opposite() Orientation {
	switch o {
	case Across:
		return Down
	case Down:
		return Across
	}
	panic(fmt.Sprintf("unknown orientation %d", int(o)))
}

// Delta returns the row and column step taken when moving one cell along o.
func (o Orientation) Delta() (dRow, dCol int) {
	switch o {
	case Across:
		return 0, 1
	case Down:
		return 1, 0
	}
	panic(fmt.Sprintf("unknown orientation %d", int(o)))
}

func (o Orientation) String() string {
	switch o {
	case Across:
		return "across"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case Across, Down:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("unknown orientation %d", int(o))
}

func (o *Orientation) UnmarshalText(b []byte) error {
	parsed, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOrientation accepts "across"/"a" and "down"/"d" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "across", "Across", "ACROSS", "a", "A":
		return Across, nil
	case "down", "Down", "DOWN", "d", "D":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// LetterUse records which orientation(s) own a grid cell.
type LetterUse uint8

const (
	LetterUseNone LetterUse = iota
	LetterUseAcross
	LetterUseDown
	LetterUseBoth
)

// UseFor returns the single-orientation use for o.
func UseFor(o Orientation) LetterUse {
	switch o {
	case Across:
		return LetterUseAcross
	case Down:
		return LetterUseDown
	}
	panic(fmt.Sprintf("unknown orientation %d", int(o)))
}

// With returns the use after a word of orientation o is written over the cell.
// An unused cell takes o; any other cell becomes Both.
func (u LetterUse) With(o Orientation) LetterUse {
	if u == LetterUseNone {
		return UseFor(o)
	}
	return LetterUseBoth
}

// Includes reports whether a word of orientation o owns the cell.
func (u LetterUse) Includes(o Orientation) bool {
	switch u {
	case LetterUseNone:
		return false
	case LetterUseAcross:
		return o == Across
	case LetterUseDown:
		return o == Down
	case LetterUseBoth:
		return true
	}
	panic(fmt.Sprintf("unknown letter use %d", int(u)))
}

func (u LetterUse) String() string {
	switch u {
	case LetterUseNone:
		return "none"
	case LetterUseAcross:
		return "across"
	case LetterUseDown:
		return "down"
	case LetterUseBoth:
		return "both"
	}
	return fmt.Sprintf("LetterUse(%d)", int(u))
}
