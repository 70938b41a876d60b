// Package enigma assembles an alphabet, a rotor chain and a reflector into a
// reversible symbol transform.
//
// Each symbol goes forward through the rotors in chain order, through the
// reflector, and back through the rotors in reverse order.  Encrypt never
// moves a rotor, so for a given rotor state the transform is one fixed
// bijection applied symbol by symbol, and it is its own inverse.  Decrypt
// restores the rotor positions recorded at construction and then runs the
// same transform.
//
//	m, err := enigma.Open("new.rotors", "123456")
//	if err != nil {
//		log.Fatal(err)
//	}
//	enc, err := m.Encrypt("SGVsbG8=")
//	...
//	dec, err := m.Decrypt(enc) // "SGVsbG8="
//
// A Machine is not safe for concurrent use.  Give each session its own
// Machine, or its own Clone.
package enigma

import (
	"fmt"
	"iter"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/cryptors/bank"
	"github.com/bgallie/enigma/cryptors/password"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

type Machine struct {
	chars     *alphabet.Alphabet
	rotors    []*rotor.Rotor
	reflector *reflector.Reflector
	password  *password.Password
	initial   []int // rotor positions at construction, restored by Reset
}

// Option configures a Machine.
type Option func(*Machine)

// WithReflector replaces the default reflector over the machine alphabet.
func WithReflector(r *reflector.Reflector) Option {
	return func(m *Machine) {
		m.reflector = r
	}
}

// New creates a machine over chars driven by rotors, in chain order.  The
// machine takes ownership of the rotors; the caller must not use them
// afterwards.  pw may be nil when the rotors were keyed by other means.
func New(chars *alphabet.Alphabet, rotors []*rotor.Rotor, pw *password.Password, opts ...Option) (*Machine, error) {
	m := &Machine{
		chars:    chars,
		rotors:   append([]*rotor.Rotor(nil), rotors...),
		password: pw,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.reflector == nil {
		m.reflector = reflector.New(chars)
	}
	if m.reflector.Len() != chars.Len() {
		return nil, fmt.Errorf("reflector: %w: %d != %d",
			cryptors.ErrInconsistentRotorLength, m.reflector.Len(), chars.Len())
	}
	m.initial = make([]int, len(m.rotors))
	for i, r := range m.rotors {
		if r.Size() != chars.Len() {
			return nil, fmt.Errorf("rotor %d: %w: %d != %d",
				i+1, cryptors.ErrInconsistentRotorLength, r.Size(), chars.Len())
		}
		m.initial[i] = r.Position()
	}
	return m, nil
}

// Open loads the rotor bank in fileName, keys its rotors with passphrase and
// returns the machine with the default reflector.
func Open(fileName, passphrase string, opts ...Option) (*Machine, error) {
	b, err := bank.Load(fileName)
	if err != nil {
		return nil, err
	}
	return FromBank(b, passphrase, opts...)
}

// FromBank keys the rotors of b with passphrase and builds the machine.
func FromBank(b *bank.Bank, passphrase string, opts ...Option) (*Machine, error) {
	pw, err := password.New(passphrase, b.Alphabet)
	if err != nil {
		return nil, err
	}
	rotors, err := b.Build(pw)
	if err != nil {
		return nil, err
	}
	return New(b.Alphabet, rotors, pw, opts...)
}

// Encrypt transforms every symbol of text.  If any symbol is not part of the
// alphabet nothing is returned but the error.
func (m *Machine) Encrypt(text string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text))
	i := 0
	for _, r := range text {
		c, err := m.transform(r)
		if err != nil {
			return "", fmt.Errorf("symbol %d: %w", i, err)
		}
		sb.WriteRune(c)
		i++
	}
	return sb.String(), nil
}

// Decrypt resets the rotors and transforms text.
func (m *Machine) Decrypt(text string) (string, error) {
	m.Reset()
	return m.Encrypt(text)
}

// EncryptChunks yields the encryption of text size symbols at a time.
// Joining the chunks gives Encrypt(text).
func (m *Machine) EncryptChunks(text string, size int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if size < 1 {
			yield("", fmt.Errorf("chunk size must be at least 1: %d", size))
			return
		}
		runes := []rune(text)
		for start := 0; start < len(runes); start += size {
			end := min(start+size, len(runes))
			out, err := m.Encrypt(string(runes[start:end]))
			if err != nil {
				yield("", fmt.Errorf("chunk at %d: %w", start, err))
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// DecryptChunks resets the rotors now and returns EncryptChunks(text, size).
func (m *Machine) DecryptChunks(text string, size int) iter.Seq2[string, error] {
	m.Reset()
	return m.EncryptChunks(text, size)
}

// Reset moves every rotor back to its position at construction.
func (m *Machine) Reset() {
	for i, r := range m.rotors {
		r.SetPosition(m.initial[i])
	}
}

// Advance steps the rotor chain like an odometer: the first rotor rotates
// and every rotor that wraps carries into the next one.  Encrypt and Decrypt
// never call it.
func (m *Machine) Advance() {
	for _, r := range m.rotors {
		if !r.Rotate() {
			return
		}
	}
}

// Clone returns a machine with its own rotor positions that shares the
// alphabet, the rotor tables and the reflector with m.
func (m *Machine) Clone() *Machine {
	c := *m
	c.rotors = make([]*rotor.Rotor, len(m.rotors))
	for i, r := range m.rotors {
		c.rotors[i] = r.Clone()
	}
	return &c
}

// Positions returns the current rotor positions in chain order.
func (m *Machine) Positions() []int {
	p := make([]int, len(m.rotors))
	for i, r := range m.rotors {
		p[i] = r.Position()
	}
	return p
}

func (m *Machine) Alphabet() *alphabet.Alphabet {
	return m.chars
}

func (m *Machine) Reflector() *reflector.Reflector {
	return m.reflector
}

func (m *Machine) Password() *password.Password {
	return m.password
}

// Len returns the number of rotors.
func (m *Machine) Len() int {
	return len(m.rotors)
}

func (m *Machine) String() string {
	return fmt.Sprintf("Enigma<rotor_count: %d>", len(m.rotors))
}

func (m *Machine) transform(s rune) (rune, error) {
	var err error
	if !m.chars.Contains(s) {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrUnknownSymbol, s)
	}
	for _, r := range m.rotors {
		if s, err = r.ForwardSymbol(s); err != nil {
			return 0, err
		}
	}
	if s, err = m.reflector.ReflectSymbol(s); err != nil {
		return 0, err
	}
	for i := len(m.rotors) - 1; i >= 0; i-- {
		if s, err = m.rotors[i].BackwardSymbol(s); err != nil {
			return 0, err
		}
	}
	return s, nil
}
