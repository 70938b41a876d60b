package cmd

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/cryptors/bank"
	"github.com/bgallie/enigma/enigma"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testMachine(t *testing.T) (*bank.Bank, *enigma.Machine) {
	t.Helper()
	b, err := bank.Generate(alphabet.New(cryptors.Base64Alphabet), cryptors.DefaultRotorCount, bank.NewRand(11))
	require.NoError(t, err)
	m, err := enigma.FromBank(b, "123456")
	require.NoError(t, err)
	return b, m
}

func TestHeader(t *testing.T) {
	h := header{apiLevel: enigmaApiLevel, fileName: "notes.txt", lines: true, compression: true}
	assert.Equal(t, "+ENIGMA|1|notes.txt|l|true\n", h.String())

	got, err := parseHeader(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got, err = parseHeader("+ENIGMA|1||r|false")
	require.NoError(t, err)
	assert.Equal(t, header{apiLevel: 1}, got)

	_, err = parseHeader("+TNT2|1||r|false\n")
	require.Error(t, err)
	_, err = parseHeader("+ENIGMA|x||r|false\n")
	require.Error(t, err)
	_, err = parseHeader("+ENIGMA|1|r|false\n")
	require.Error(t, err)
}

func TestCheckFraming(t *testing.T) {
	require.NoError(t, checkFraming(alphabet.New(cryptors.Base64Alphabet)))
	require.NoError(t, checkFraming(alphabet.New(cryptors.Base64Alphabet+"-_")))
	require.Error(t, checkFraming(alphabet.New(strings.TrimSuffix(cryptors.Base64Alphabet, "z"))))
}

func TestBase64Framing(t *testing.T) {
	id := uuid.New()
	framed, err := io.ReadAll(toBase64(bytes.NewReader(id[:])))
	require.NoError(t, err)
	for _, r := range string(framed) {
		assert.True(t, strings.ContainsRune(base64Symbols, r))
	}

	raw, err := io.ReadAll(fromBase64(bytes.NewReader(framed)))
	require.NoError(t, err)
	assert.Equal(t, id[:], raw)

	_, err = io.ReadAll(fromBase64(strings.NewReader("!!!!")))
	require.Error(t, err)
}

func TestCipherHelper(t *testing.T) {
	_, m := testMachine(t)
	data := strings.Repeat("SGVsbG8gd29ybGQ=", 100)
	want, err := m.Encrypt(data)
	require.NoError(t, err)

	for _, tc := range []struct{ chunk, workers int }{{1, 1}, {7, 1}, {4096, 1}, {64, 4}, {5, 3}} {
		got, err := io.ReadAll(cipherHelper(m, strings.NewReader(data), tc.chunk, tc.workers))
		require.NoError(t, err)
		require.Equal(t, want, string(got), "chunk %d workers %d", tc.chunk, tc.workers)
	}

	_, err = io.ReadAll(cipherHelper(m, strings.NewReader("SGVs!"), 2, 1))
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)
}

func TestRawStreamRoundTrip(t *testing.T) {
	_, m := testMachine(t)
	var plain bytes.Buffer
	for i := 0; i < 64; i++ {
		id := uuid.New()
		plain.Write(id[:])
	}

	var enc bytes.Buffer
	h := header{apiLevel: enigmaApiLevel, fileName: "payload.bin"}
	require.NoError(t, encryptStream(m, bytes.NewReader(plain.Bytes()), &enc, h, false, 100, 2))
	assert.True(t, strings.HasPrefix(enc.String(), "+ENIGMA|1|payload.bin|r|false\n"))

	got, body, err := readPreamble(bufio.NewReader(bytes.NewReader(enc.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, h, got)

	var dec bytes.Buffer
	require.NoError(t, decryptStream(m, body, &dec, got, 33, 1))
	assert.Equal(t, plain.Bytes(), dec.Bytes())
}

func TestStreamRoundTrip_Framings(t *testing.T) {
	_, m := testMachine(t)
	var plain bytes.Buffer
	for i := 0; i < 200; i++ {
		id := uuid.New()
		plain.Write(id[:])
	}

	for _, tc := range []struct {
		name     string
		lines    bool
		compress bool
		asPem    bool
	}{
		{name: "lines", lines: true},
		{name: "lines+flate", lines: true, compress: true},
		{name: "pem", asPem: true},
		{name: "pem+flate", asPem: true, compress: true},
		{name: "raw+flate", compress: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := header{apiLevel: enigmaApiLevel, fileName: "payload.bin", lines: tc.lines, compression: tc.compress}
			var enc bytes.Buffer
			require.NoError(t, encryptStream(m, bytes.NewReader(plain.Bytes()), &enc, h, tc.asPem, 256, 2))
			if tc.asPem {
				assert.True(t, strings.HasPrefix(enc.String(), "-----BEGIN "+pemType))
			} else {
				assert.True(t, strings.HasPrefix(enc.String(), h.String()))
			}

			got, body, err := readPreamble(bufio.NewReader(bytes.NewReader(enc.Bytes())))
			require.NoError(t, err)
			assert.Equal(t, enigmaApiLevel, got.apiLevel)
			assert.Equal(t, "payload.bin", got.fileName)
			assert.Equal(t, tc.compress, got.compression)

			var dec bytes.Buffer
			require.NoError(t, decryptStream(m, body, &dec, got, 100, 1))
			assert.Equal(t, plain.Bytes(), dec.Bytes())
		})
	}
}

func TestReadPreamble_Errors(t *testing.T) {
	_, _, err := readPreamble(bufio.NewReader(strings.NewReader("+ENIGMA|2||r|false\nabc")))
	require.ErrorContains(t, err, "API Level mismatch")

	_, _, err = readPreamble(bufio.NewReader(strings.NewReader("abc")))
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	b, _ := testMachine(t)

	var out bytes.Buffer
	require.NoError(t, inspect(&out, b, nil))
	var s bankSummary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, cryptors.Base64Alphabet, s.Alphabet)
	assert.Equal(t, len(cryptors.Base64Alphabet), s.Symbols)
	assert.Equal(t, 28, s.Rotors)
	assert.True(t, s.Base64)
	assert.Empty(t, s.Keyed)

	s, err := summarize(b, []string{"123456"})
	require.NoError(t, err)
	require.Len(t, s.Keyed, 28)
	assert.Equal(t, rotorSummary{Offset: 1, Step: 1}, s.Keyed[0])

	_, err = summarize(b, []string{"12#"})
	require.ErrorIs(t, err, cryptors.ErrUnknownSymbol)
}
