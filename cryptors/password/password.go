// Package password validates a passphrase against an alphabet and derives the
// per-rotor seeds from it.
package password

import (
	"fmt"
	"unicode/utf8"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
)

type Password struct {
	password string
	chars    *alphabet.Alphabet
}

// New checks that password is no longer than chars and uses only its symbols.
func New(password string, chars *alphabet.Alphabet) (*Password, error) {
	if n := utf8.RuneCountInString(password); n > chars.Len() {
		return nil, fmt.Errorf("%w: %d > %d", cryptors.ErrPassphraseTooLong, n, chars.Len())
	}
	for _, r := range password {
		if !chars.Contains(r) {
			return nil, fmt.Errorf("passphrase is not valid: %w: %q", cryptors.ErrUnknownSymbol, r)
		}
	}
	return &Password{password: password, chars: chars}, nil
}

// Indexes returns the alphabet index of every passphrase symbol, in order.
func (p *Password) Indexes() []int {
	res := make([]int, 0, p.Len())
	for _, r := range p.password {
		i, _ := p.chars.IndexOf(r)
		res = append(res, i)
	}
	return res
}

// Seeds returns one seed per alphabet position.  The passphrase indexes fill
// the rightmost positions in order; the rest hold cryptors.DefaultSeed.
// Rotors take their seeds from the front of the list.
func (p *Password) Seeds() []int {
	n := p.chars.Len()
	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = cryptors.DefaultSeed
	}
	copy(seeds[n-p.Len():], p.Indexes())
	return seeds
}

func (p *Password) Alphabet() *alphabet.Alphabet {
	return p.chars
}

// Len returns the passphrase length in symbols.
func (p *Password) Len() int {
	return utf8.RuneCountInString(p.password)
}

func (p *Password) String() string {
	return p.password
}
