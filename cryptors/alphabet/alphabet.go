// alphabet
package alphabet

import (
	"fmt"
	"iter"

	"github.com/bgallie/enigma/cryptors"
)

// Alphabet is an ordered symbol set with lookups in both directions.  It is
// never modified after construction and may be shared freely.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New builds an alphabet from the symbols of s.  Duplicates are not
// rejected: the symbol to index direction keeps the last position.
func New(s string) *Alphabet {
	var a Alphabet
	a.symbols = []rune(s)
	a.index = make(map[rune]int, len(a.symbols))
	for i, r := range a.symbols {
		a.index[r] = i
	}
	return &a
}

// NewStrict is New but fails with ErrDuplicateSymbol when s repeats a symbol.
func NewStrict(s string) (*Alphabet, error) {
	a := New(s)
	if len(a.index) != len(a.symbols) {
		seen := make(map[rune]bool, len(a.symbols))
		for _, r := range a.symbols {
			if seen[r] {
				return nil, fmt.Errorf("%w: %q", cryptors.ErrDuplicateSymbol, r)
			}
			seen[r] = true
		}
	}
	return a, nil
}

// IndexOf returns the index of r.
func (a *Alphabet) IndexOf(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrUnknownSymbol, r)
	}
	return i, nil
}

// SymbolAt returns the symbol at index i.
func (a *Alphabet) SymbolAt(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", cryptors.ErrIndexOutOfRange, i, len(a.symbols))
	}
	return a.symbols[i], nil
}

// Contains reports whether r is part of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns a copy of the symbols in order.
func (a *Alphabet) Symbols() []rune {
	return append([]rune(nil), a.symbols...)
}

// All iterates over the (index, symbol) pairs in order.
func (a *Alphabet) All() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i, r := range a.symbols {
			if !yield(i, r) {
				return
			}
		}
	}
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}
