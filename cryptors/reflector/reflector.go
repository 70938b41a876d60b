// Package reflector implements the static involution at the end of the rotor
// chain: index i is sent to N-1-i.  When N is odd the middle symbol maps to
// itself.
package reflector

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
)

var _ cryptors.Crypter = (*Reflector)(nil)

// Reflector is stateless and safe for concurrent use.
type Reflector struct {
	chars *alphabet.Alphabet
}

func New(chars *alphabet.Alphabet) *Reflector {
	return &Reflector{chars: chars}
}

// Reflect returns the symbol mirrored to in.
func (r *Reflector) Reflect(in cryptors.Input) (rune, error) {
	idx, err := cryptors.Resolve(r.chars, in)
	if err != nil {
		return 0, err
	}
	return r.chars.SymbolAt(r.chars.Len() - 1 - idx)
}

func (r *Reflector) ReflectIndex(i int) (rune, error) {
	return r.Reflect(cryptors.Index(i))
}

func (r *Reflector) ReflectSymbol(s rune) (rune, error) {
	return r.Reflect(cryptors.Symbol(s))
}

// Forward and Backward are both Reflect, so a Reflector can sit in a chain of
// cryptors.Crypter stages.
func (r *Reflector) Forward(in cryptors.Input) (rune, error)  { return r.Reflect(in) }
func (r *Reflector) Backward(in cryptors.Input) (rune, error) { return r.Reflect(in) }

func (r *Reflector) Alphabet() *alphabet.Alphabet {
	return r.chars
}

func (r *Reflector) Len() int {
	return r.chars.Len()
}

func (r *Reflector) String() string {
	return fmt.Sprintf("Reflector<length: %d>", r.chars.Len())
}
