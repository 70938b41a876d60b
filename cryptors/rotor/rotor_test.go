package rotor_test

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRotor(t *testing.T, perm string, offset, step int) *rotor.Rotor {
	t.Helper()
	r, err := rotor.New(perm, alphabet.New("abcd"), offset, step)
	require.NoError(t, err)
	return r
}

func TestRotor_OffsetIsBakedIntoTable(t *testing.T) {
	r := newRotor(t, "cadb", 1, 2)
	assert.Equal(t, "adbc", r.Permutation().String())
	assert.Equal(t, 0, r.Position())
	assert.Equal(t, 1, r.Offset())
	assert.Equal(t, 2, r.Step())
	assert.Equal(t, 4, r.Size())

	assert.Equal(t, "adbc", newRotor(t, "cadb", 5, 1).Permutation().String())
	assert.Equal(t, "bcad", newRotor(t, "cadb", -1, 1).Permutation().String())
	assert.Equal(t, "cadb", newRotor(t, "cadb", 0, 1).Permutation().String())
}

func TestRotor_ForwardBackward(t *testing.T) {
	r := newRotor(t, "cadb", 1, 2)

	for in, want := range map[rune]rune{'a': 'a', 'b': 'd', 'c': 'b', 'd': 'c'} {
		got, err := r.ForwardSymbol(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "forward %q", in)

		back, err := r.BackwardSymbol(got)
		require.NoError(t, err)
		assert.Equal(t, in, back, "backward %q", got)
	}

	got, err := r.ForwardIndex(1)
	require.NoError(t, err)
	assert.Equal(t, 'd', got)

	got, err = r.BackwardIndex(3)
	require.NoError(t, err)
	assert.Equal(t, 'd', got)
}

func TestRotor_PositionShiftsBothDirections(t *testing.T) {
	r := newRotor(t, "cadb", 1, 1)
	r.SetPosition(1)

	got, err := r.ForwardSymbol('a')
	require.NoError(t, err)
	assert.Equal(t, 'd', got)

	// The backward lookup adds the position as well, so it is only the
	// inverse of Forward at position 0 (or where 2*position is a multiple
	// of the rotor size).
	got, err = r.BackwardSymbol('d')
	require.NoError(t, err)
	assert.Equal(t, 'c', got)

	r.SetPosition(6)
	assert.Equal(t, 2, r.Position())
	r.SetPosition(-1)
	assert.Equal(t, 3, r.Position())
}

func TestRotor_Rotate(t *testing.T) {
	r := newRotor(t, "cadb", 0, 3)
	var carries []bool
	var positions []int
	for i := 0; i < 4; i++ {
		carries = append(carries, r.Rotate())
		positions = append(positions, r.Position())
	}
	assert.Equal(t, []int{3, 2, 1, 0}, positions)
	assert.Equal(t, []bool{false, true, true, true}, carries)

	still := newRotor(t, "cadb", 0, 0)
	assert.False(t, still.Rotate())
	assert.Equal(t, 0, still.Position())

	full := newRotor(t, "cadb", 0, 4)
	assert.False(t, full.Rotate())
	assert.Equal(t, 0, full.Position())
}

func TestRotor_Errors(t *testing.T) {
	a := alphabet.New("abcd")

	_, err := rotor.New("abc", a, 0, 1)
	require.ErrorIs(t, err, cryptors.ErrInconsistentRotorLength)
	require.ErrorContains(t, err, "3 != 4")

	_, err = rotor.New("abcx", a, 0, 1)
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)

	_, err = rotor.New("abca", a, 0, 1)
	require.ErrorIs(t, err, cryptors.ErrDuplicateSymbol)

	_, err = rotor.New("abcd", a, 0, -1)
	require.Error(t, err)

	_, err = rotor.New("", alphabet.New(""), 0, 1)
	require.ErrorIs(t, err, cryptors.ErrEmptyAlphabet)

	r := newRotor(t, "cadb", 0, 1)
	_, err = r.ForwardSymbol('x')
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)
	_, err = r.BackwardSymbol('x')
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)
	_, err = r.ForwardIndex(4)
	require.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)
	_, err = r.BackwardIndex(-1)
	require.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)
	_, err = r.Forward(cryptors.Input{})
	require.ErrorIs(t, err, cryptors.ErrInvalidInputType)
	_, err = r.Backward(cryptors.Input{})
	require.ErrorIs(t, err, cryptors.ErrInvalidInputType)
}

func TestRotor_Clone(t *testing.T) {
	r := newRotor(t, "cadb", 1, 1)
	c := r.Clone()
	c.Rotate()
	assert.Equal(t, 0, r.Position())
	assert.Equal(t, 1, c.Position())
	assert.Same(t, r.Permutation(), c.Permutation())
}

func TestRotor_String(t *testing.T) {
	r := newRotor(t, "cadb", 1, 2)
	assert.Equal(t, "Rotor<size: 4, offset: 1, step: 2, position: 0>\n\tadbc", r.String())
}
