package cryptors_test

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	a := alphabet.New("abcd")

	i, err := cryptors.Resolve(a, cryptors.Index(2))
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = cryptors.Resolve(a, cryptors.Symbol('d'))
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = cryptors.Resolve(a, cryptors.Index(4))
	require.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)

	_, err = cryptors.Resolve(a, cryptors.Symbol('e'))
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)

	_, err = cryptors.Resolve(a, cryptors.Input{})
	require.ErrorIs(t, err, cryptors.ErrInvalidInputType)
}

func TestInput(t *testing.T) {
	in := cryptors.Index(7)
	assert.True(t, in.IsIndex())
	assert.False(t, in.IsSymbol())
	assert.Equal(t, 7, in.AsIndex())
	assert.Equal(t, "index(7)", in.String())

	in = cryptors.Symbol('Q')
	assert.True(t, in.IsSymbol())
	assert.Equal(t, 'Q', in.AsSymbol())
	assert.Equal(t, "symbol('Q')", in.String())

	assert.Equal(t, "invalid", cryptors.Input{}.String())
}

func TestMod(t *testing.T) {
	assert.Equal(t, 1, cryptors.Mod(5, 4))
	assert.Equal(t, 3, cryptors.Mod(-1, 4))
	assert.Equal(t, 0, cryptors.Mod(-8, 4))
}
