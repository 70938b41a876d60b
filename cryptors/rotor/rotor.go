// rotor
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
)

var _ cryptors.Crypter = (*Rotor)(nil)

// Rotor is one keyed substitution stage.  The permutation table is built once
// with the offset already applied; only the position changes afterwards.
type Rotor struct {
	offset   int
	size     int
	step     int
	position int
	outer    *alphabet.Alphabet // the alphabet the rotor is wired to
	rotor    *alphabet.Alphabet // the permutation, rotated left by offset
}

// New creates a rotor over the permutation perm, wired to the outer alphabet.
// perm is rotated left by offset before the table is built and the position
// starts at 0.  perm must be a rearrangement of the symbols of outer.
func New(perm string, outer *alphabet.Alphabet, offset, step int) (*Rotor, error) {
	p := []rune(perm)
	if len(p) != outer.Len() {
		return nil, fmt.Errorf("%w: %d != %d", cryptors.ErrInconsistentRotorLength, len(p), outer.Len())
	}
	if len(p) == 0 {
		return nil, cryptors.ErrEmptyAlphabet
	}
	for _, r := range p {
		if !outer.Contains(r) {
			return nil, fmt.Errorf("rotor permutation: %w: %q", cryptors.ErrUnknownSymbol, r)
		}
	}
	if step < 0 {
		return nil, fmt.Errorf("rotor step must not be negative: %d", step)
	}
	var r Rotor
	r.size = len(p)
	r.offset = cryptors.Mod(offset, r.size)
	r.step = step
	r.outer = outer
	shifted := append(append([]rune(nil), p[r.offset:]...), p[:r.offset]...)
	table, err := alphabet.NewStrict(string(shifted))
	if err != nil {
		return nil, fmt.Errorf("rotor permutation: %w", err)
	}
	r.rotor = table
	return &r, nil
}

// Rotate advances the position by step and reports whether it wrapped past
// the end of the rotor.  The carry drives odometer-style stepping.
func (r *Rotor) Rotate() bool {
	old := r.position
	r.position = (r.position + r.step) % r.size
	return r.position < old
}

// SetPosition moves the rotor to position p (reduced modulo the rotor size).
func (r *Rotor) SetPosition(p int) {
	r.position = cryptors.Mod(p, r.size)
}

func (r *Rotor) Position() int {
	return r.position
}

func (r *Rotor) Step() int {
	return r.step
}

func (r *Rotor) Offset() int {
	return r.offset
}

func (r *Rotor) Size() int {
	return r.size
}

// Permutation returns the rotor table as built, offset applied.
func (r *Rotor) Permutation() *alphabet.Alphabet {
	return r.rotor
}

// Forward maps an outer alphabet index (or symbol) into rotor space.
func (r *Rotor) Forward(in cryptors.Input) (rune, error) {
	idx, err := cryptors.Resolve(r.outer, in)
	if err != nil {
		return 0, err
	}
	return r.rotor.SymbolAt((idx + r.position) % r.size)
}

// Backward maps a rotor symbol (or rotor table index) back to the outer alphabet.
func (r *Rotor) Backward(in cryptors.Input) (rune, error) {
	idx, err := cryptors.Resolve(r.rotor, in)
	if err != nil {
		return 0, err
	}
	return r.outer.SymbolAt((idx + r.position) % r.size)
}

func (r *Rotor) ForwardIndex(i int) (rune, error)   { return r.Forward(cryptors.Index(i)) }
func (r *Rotor) ForwardSymbol(s rune) (rune, error) { return r.Forward(cryptors.Symbol(s)) }
func (r *Rotor) BackwardIndex(i int) (rune, error)  { return r.Backward(cryptors.Index(i)) }
func (r *Rotor) BackwardSymbol(s rune) (rune, error) {
	return r.Backward(cryptors.Symbol(s))
}

// Clone returns a rotor sharing the tables of r with its own position.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("Rotor<size: %d, offset: %d, step: %d, position: %d>\n",
		r.size, r.offset, r.step, r.position))
	output.WriteString("\t")
	output.WriteString(r.rotor.String())
	return output.String()
}
