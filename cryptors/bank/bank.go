// Package bank reads and writes rotor bank files.
//
// A bank file is plain text.  Its lines are joined (line terminators are
// dropped) and the result is split on ';'.  The first record is the base
// alphabet, every following non-empty record is a rotor permutation of the
// same length:
//
//	0123...xyz;Kq9...;7/b...;
//
// There is no escaping, so ';' can never be part of an alphabet.
package bank

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/cryptors/password"
	"github.com/bgallie/enigma/cryptors/rotor"
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Bank is a parsed rotor bank: the base alphabet and the rotor permutations
// in file order.
type Bank struct {
	Alphabet *alphabet.Alphabet
	Rotors   []string
}

// Load reads the rotor bank in the file fileName.
func Load(fileName string) (*Bank, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return b, nil
}

// Parse reads a rotor bank from rdr.
func Parse(rdr io.Reader) (*Bank, error) {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses the rotor bank held in s.
func ParseString(s string) (*Bank, error) {
	records := strings.Split(lineBreaks.Replace(s), string(cryptors.Delimiter))
	base := records[0]
	if len(base) == 0 {
		return nil, cryptors.ErrEmptyAlphabet
	}
	baseLen := utf8.RuneCountInString(base)
	b := &Bank{Alphabet: alphabet.New(base)}
	for i, rec := range records[1:] {
		recLen := utf8.RuneCountInString(rec)
		if recLen == 0 {
			continue
		}
		if recLen != baseLen {
			return nil, fmt.Errorf("record %d: %w: %d != %d",
				i+1, cryptors.ErrInconsistentRotorLength, recLen, baseLen)
		}
		b.Rotors = append(b.Rotors, rec)
	}
	return b, nil
}

// Build creates the rotor chain.  Each rotor, in file order, takes the next
// seed of pw and uses it both as offset and as step.
func (b *Bank) Build(pw *password.Password) ([]*rotor.Rotor, error) {
	seeds := pw.Seeds()
	if len(b.Rotors) > len(seeds) {
		return nil, fmt.Errorf("%w: %d rotors, %d seeds", cryptors.ErrSeedsExhausted, len(b.Rotors), len(seeds))
	}
	rotors := make([]*rotor.Rotor, 0, len(b.Rotors))
	for i, perm := range b.Rotors {
		var seed int
		seed, seeds = seeds[0], seeds[1:]
		r, err := rotor.New(perm, b.Alphabet, seed, seed)
		if err != nil {
			return nil, fmt.Errorf("rotor %d: %w", i+1, err)
		}
		rotors = append(rotors, r)
	}
	return rotors, nil
}

// WriteTo writes b in the bank file format.
func (b *Bank) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(b.Alphabet.String())
	sb.WriteRune(cryptors.Delimiter)
	for _, r := range b.Rotors {
		sb.WriteString(r)
		sb.WriteRune(cryptors.Delimiter)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Save writes b to the file fileName.
func (b *Bank) Save(fileName string) error {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err = b.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
