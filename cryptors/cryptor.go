// Package cryptors holds the vocabulary shared by the enigma stages: the
// error kinds, the tagged lookup input and the named configuration defaults.
package cryptors

import (
	"errors"
	"fmt"
)

const (
	// Base64Alphabet is the default symbol set of a rotor bank.  It holds the
	// standard base64 symbols (and '=') in the order the bank files use.
	Base64Alphabet = "0123456789+/ABCDEFGHIJKLMNOPQRSTUVWXYZ=abcdefghijklmnopqrstuvwxyz"
	// Delimiter separates the records of a rotor bank file.
	Delimiter = ';'
	// DefaultSeed fills the seed positions the passphrase does not cover.
	DefaultSeed = 1
	// DefaultRotorCount is the number of rotors a generated bank gets.
	DefaultRotorCount = 28
)

var (
	ErrUnknownSymbol           = errors.New("unknown symbol")
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrInvalidInputType        = errors.New("input must be an index or a symbol")
	ErrInconsistentRotorLength = errors.New("rotor length is not consistent")
	ErrPassphraseTooLong       = errors.New("passphrase is too long")
	ErrDuplicateSymbol         = errors.New("duplicate symbol")
	ErrEmptyAlphabet           = errors.New("alphabet is empty")
	ErrSeedsExhausted          = errors.New("not enough seeds for the rotors")
)

type inputKind uint8

const (
	invalidInput inputKind = iota
	indexInput
	symbolInput
)

// Input is the argument of a stage lookup.  It is either an alphabet index
// or a symbol; the zero value is neither and is rejected with
// ErrInvalidInputType.
type Input struct {
	kind   inputKind
	index  int
	symbol rune
}

// Index returns an Input carrying the alphabet index i.
func Index(i int) Input {
	return Input{kind: indexInput, index: i}
}

// Symbol returns an Input carrying the symbol r.
func Symbol(r rune) Input {
	return Input{kind: symbolInput, symbol: r}
}

// IsIndex reports whether in carries an index.
func (in Input) IsIndex() bool { return in.kind == indexInput }

// IsSymbol reports whether in carries a symbol.
func (in Input) IsSymbol() bool { return in.kind == symbolInput }

// AsIndex returns the carried index.  It is only meaningful if IsIndex is true.
func (in Input) AsIndex() int { return in.index }

// AsSymbol returns the carried symbol.  It is only meaningful if IsSymbol is true.
func (in Input) AsSymbol() rune { return in.symbol }

func (in Input) String() string {
	switch in.kind {
	case indexInput:
		return fmt.Sprintf("index(%d)", in.index)
	case symbolInput:
		return fmt.Sprintf("symbol(%q)", in.symbol)
	}
	return "invalid"
}

// Crypter is one substitution stage of the machine: Forward maps from the
// outer alphabet into the stage, Backward maps back out.
type Crypter interface {
	Forward(Input) (rune, error)
	Backward(Input) (rune, error)
}

// Indexer resolves symbols to indices.  Alphabets satisfy it.
type Indexer interface {
	IndexOf(rune) (int, error)
	Len() int
}

// Resolve turns in into an index of ix, checking the range of a carried index.
func Resolve(ix Indexer, in Input) (int, error) {
	switch in.kind {
	case indexInput:
		if in.index < 0 || in.index >= ix.Len() {
			return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, in.index, ix.Len())
		}
		return in.index, nil
	case symbolInput:
		return ix.IndexOf(in.symbol)
	}
	return 0, ErrInvalidInputType
}

// Mod returns a modulo n in [0,n).
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
