package bank

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
)

// Generate returns a bank of count rotors, each a shuffle of chars drawn
// from rng.  chars must not contain the record delimiter.
func Generate(chars *alphabet.Alphabet, count int, rng *rand.Rand) (*Bank, error) {
	if chars.Len() == 0 {
		return nil, cryptors.ErrEmptyAlphabet
	}
	if chars.Contains(cryptors.Delimiter) {
		return nil, fmt.Errorf("alphabet must not contain the delimiter %q", cryptors.Delimiter)
	}
	if count < 0 {
		return nil, fmt.Errorf("rotor count must not be negative: %d", count)
	}
	b := &Bank{Alphabet: chars, Rotors: make([]string, 0, count)}
	for range count {
		perm := chars.Symbols()
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		b.Rotors = append(b.Rotors, string(perm))
	}
	return b, nil
}

// NewRand returns a ChaCha8 generator keyed by seed.  A zero seed keys it
// from the runtime's random source instead.
func NewRand(seed uint64) *rand.Rand {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		if seed == 0 {
			binary.LittleEndian.PutUint64(key[i:], rand.Uint64())
		} else {
			binary.LittleEndian.PutUint64(key[i:], seed)
		}
	}
	return rand.New(rand.NewChaCha8(key))
}
